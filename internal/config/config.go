// Package config loads the project configuration that scopes a file
// collection: file type, namespace mode, and the base locale.
package config

import (
	"fmt"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/poppingmoon/slang/internal/format"
)

// Config scopes one project's translation files. Shared by every file in a
// collection; read-only after Load.
type Config struct {
	FileType       format.FileType
	Namespaces     bool
	BaseLocale     language.Tag
	InputDirectory string
}

type rawConfig struct {
	FileType       string `yaml:"file_type"`
	Namespaces     bool   `yaml:"namespaces"`
	BaseLocale     string `yaml:"base_locale"`
	InputDirectory string `yaml:"input_directory"`
}

// Load reads a slang.yml from fs. Missing file_type defaults to json,
// missing base_locale to en, matching the file layout most projects start
// with.
func Load(fs billy.Basic, path string) (*Config, error) {
	raw, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var rc rawConfig
	if err := yaml.Unmarshal(raw, &rc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if rc.FileType == "" {
		rc.FileType = "json"
	}
	if rc.BaseLocale == "" {
		rc.BaseLocale = "en"
	}
	if rc.InputDirectory == "" {
		rc.InputDirectory = "."
	}

	ft, err := format.ParseFileType(rc.FileType)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	base, err := ParseLocale(rc.BaseLocale)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &Config{
		FileType:       ft,
		Namespaces:     rc.Namespaces,
		BaseLocale:     base,
		InputDirectory: rc.InputDirectory,
	}, nil
}

// ParseLocale parses a language tag such as "en" or "de-CH". Locale
// equality throughout the tool is exact canonical-tag equality.
func ParseLocale(tag string) (language.Tag, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	return t, nil
}
