package edit

import (
	"fmt"
	"path"
	"sort"
	"strings"

	billy "github.com/go-git/go-billy/v5"

	"github.com/poppingmoon/slang/internal/config"
	"github.com/poppingmoon/slang/internal/format"
)

// Collection is the ordered set of translation files for one project,
// scoped by a shared configuration. Constructed once per command
// invocation; only the files' on-disk content changes afterwards.
type Collection struct {
	Files  []FileRecord
	Config *config.Config
	FS     billy.Basic
	Codecs format.Registry
}

// NewCollection enforces the namespace invariant: with namespace mode on,
// every record carries a namespace.
func NewCollection(fs billy.Basic, cfg *config.Config, codecs format.Registry, files []FileRecord) (*Collection, error) {
	if cfg.Namespaces {
		for _, f := range files {
			if f.Namespace == "" {
				return nil, fmt.Errorf("namespace mode: file %s has no namespace", f.Path)
			}
		}
	}
	return &Collection{Files: files, Config: cfg, FS: fs, Codecs: codecs}, nil
}

// namespaceMatch is the matching predicate shared by every operation:
// always true with namespace mode off, exact namespace equality otherwise.
func (c *Collection) namespaceMatch(f FileRecord, namespace string) bool {
	if !c.Config.Namespaces {
		return true
	}
	return f.Namespace == namespace
}

// Scan builds the file records for a project directory. Files are named
// <namespace>_<locale>.<ext> (the namespace part is optional without
// namespace mode); an ".i18n" marker before the extension is tolerated.
// Files whose name or locale does not parse are skipped.
func Scan(fs billy.Filesystem, cfg *config.Config) ([]FileRecord, error) {
	entries, err := fs.ReadDir(cfg.InputDirectory)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", cfg.InputDirectory, err)
	}
	var files []FileRecord
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.TrimPrefix(path.Ext(name), ".")
		ft, err := format.ParseFileType(ext)
		if err != nil || ft != cfg.FileType {
			continue
		}
		base := strings.TrimSuffix(name, path.Ext(name))
		base = strings.TrimSuffix(base, ".i18n")

		namespace, localeTag := "", base
		if i := strings.LastIndex(base, "_"); i >= 0 {
			namespace, localeTag = base[:i], base[i+1:]
		}
		locale, err := config.ParseLocale(localeTag)
		if err != nil {
			continue
		}
		files = append(files, FileRecord{
			Path:      fs.Join(cfg.InputDirectory, name),
			Locale:    locale,
			Namespace: namespace,
			FileType:  ft,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
