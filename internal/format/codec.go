// Package format holds the per-file-type codecs that turn raw bytes into
// the generic translation tree and back.
package format

import (
	"fmt"

	"github.com/poppingmoon/slang/internal/tree"
)

// FileType identifies a supported translation file format.
type FileType string

const (
	JSON FileType = "json"
	YAML FileType = "yaml"
	CSV  FileType = "csv"
)

// ParseFileType maps a config value or file extension to a FileType.
func ParseFileType(s string) (FileType, error) {
	switch s {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "csv":
		return CSV, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (expected json, yaml, or csv)", s)
	}
}

// Codec decodes raw file content into a tree and encodes a tree back to
// bytes. Encode must not touch any file; writers buffer its output first.
type Codec interface {
	Decode(raw []byte) (*tree.Mapping, error)
	Encode(root *tree.Mapping) ([]byte, error)
}

// Registry is the explicit codec table handed to file collections at
// construction. No global dispatch state.
type Registry map[FileType]Codec

// DefaultRegistry returns codecs for all supported file types.
func DefaultRegistry() Registry {
	return Registry{
		JSON: jsonCodec{},
		YAML: yamlCodec{},
		CSV:  csvCodec{},
	}
}

// For returns the codec for t, or an error naming the supported types.
func (r Registry) For(t FileType) (Codec, error) {
	c, ok := r[t]
	if !ok {
		return nil, fmt.Errorf("no codec for file type %q (expected json, yaml, or csv)", t)
	}
	return c, nil
}
