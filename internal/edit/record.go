// Package edit applies the reorganization operations (move, copy, delete,
// add, outdated) across a project's translation files.
package edit

import (
	"fmt"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/text/language"

	"github.com/poppingmoon/slang/internal/format"
	"github.com/poppingmoon/slang/internal/tree"
)

// FileRecord is one physical translation file's identity. The identity is
// immutable; the file's tree is read on demand and discarded after each
// operation touches it.
type FileRecord struct {
	Path      string
	Locale    language.Tag
	Namespace string
	FileType  format.FileType
}

// ReadTree reads and decodes the file. The underlying handle is released
// before returning on every path, decode failures included.
func (r FileRecord) ReadTree(fs billy.Basic, codecs format.Registry) (*tree.Mapping, error) {
	codec, err := codecs.For(r.FileType)
	if err != nil {
		return nil, err
	}
	raw, err := util.ReadFile(fs, r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}
	root, err := codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Path, err)
	}
	return root, nil
}

// WriteTree serializes root and overwrites the file whole. Encoding goes
// to an in-memory buffer first, so an encode failure leaves the file as it
// was.
func (r FileRecord) WriteTree(fs billy.Basic, codecs format.Registry, root *tree.Mapping) error {
	codec, err := codecs.For(r.FileType)
	if err != nil {
		return err
	}
	data, err := codec.Encode(root)
	if err != nil {
		return fmt.Errorf("%s: %w", r.Path, err)
	}
	if err := util.WriteFile(fs, r.Path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.Path, err)
	}
	return nil
}
