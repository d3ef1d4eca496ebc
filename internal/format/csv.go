package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"golang.org/x/text/language"

	"github.com/poppingmoon/slang/internal/tree"
)

// csvCodec reads flat tables of (dotted path, value) rows. Two layouts:
// a compact file whose header names one locale per value column, decoded
// into a root mapping keyed by locale; and a plain two-column key/value
// file decoded into a single tree. Both feed every cell through the shared
// tree insertion, so list indices must arrive gap-free and in order.
//
// Edit operations address one locale per physical file, so only the
// two-column layout is editable; the compact layout round-trips through
// the codec for ingestion and export, but its locale-keyed root is not
// addressable by per-locale file records.
type csvCodec struct{}

func (csvCodec) Decode(raw []byte) (*tree.Mapping, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv: empty document")
	}
	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("parse csv: header needs a key column and at least one value column")
	}

	root := tree.NewMapping()
	if len(header) >= 3 {
		// Compact layout: one column per locale.
		for _, locale := range header[1:] {
			root.Set(locale, tree.NewMapping())
		}
		for _, row := range records[1:] {
			path, err := tree.ParsePath(row[0])
			if err != nil {
				return nil, fmt.Errorf("parse csv: %w", err)
			}
			for col := 1; col < len(row) && col < len(header); col++ {
				if row[col] == "" {
					continue
				}
				sub, _ := root.Get(header[col])
				if err := insertFlat(sub.(*tree.Mapping), path, row[col]); err != nil {
					return nil, err
				}
			}
		}
		return root, nil
	}

	for _, row := range records[1:] {
		path, err := tree.ParsePath(row[0])
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		value := ""
		if len(row) > 1 {
			value = row[1]
		}
		if err := insertFlat(root, path, value); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// insertFlat validates list-index order for path against the tree built so
// far, then inserts. Rejecting out-of-order indices here keeps an authoring
// mistake in the source file from being silently reordered.
func insertFlat(root *tree.Mapping, path tree.Path, value string) error {
	if err := checkIndices(root, path); err != nil {
		return err
	}
	if err := tree.Add(root, path, tree.Scalar(value)); err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}
	return nil
}

// checkIndices walks path against the current tree the same way Add will,
// and fails when a list index would land past the tail of its list. Once
// the walk leaves existing structure every further index must be 0, since
// it addresses a freshly created list.
func checkIndices(root *tree.Mapping, path tree.Path) error {
	var cur tree.Node = root
	inTree := true
	for _, seg := range path.Segments() {
		if !inTree {
			if seg.IsIndex && seg.Index != 0 {
				return fmt.Errorf("parse csv: cannot add %q: missing indices before %d", path, seg.Index)
			}
			continue
		}
		switch n := cur.(type) {
		case *tree.Mapping:
			next, ok := n.Get(seg.Key)
			if !ok {
				inTree = false
				continue
			}
			cur = next
		case *tree.Sequence:
			if !seg.IsIndex {
				return nil // type conflict, surfaced by the insertion
			}
			switch {
			case seg.Index < len(n.Items):
				cur = n.Items[seg.Index]
			case seg.Index == len(n.Items):
				inTree = false
			default:
				return fmt.Errorf("parse csv: cannot add %q: missing indices before %d", path, seg.Index)
			}
		default:
			return nil
		}
	}
	return nil
}

func (csvCodec) Encode(root *tree.Mapping) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if isCompact(root) {
		locales := root.Keys()
		if err := w.Write(append([]string{"key"}, locales...)); err != nil {
			return nil, fmt.Errorf("encode csv: %w", err)
		}
		// Union of paths across locales, first-seen order.
		var paths []string
		values := make(map[string]map[string]string, len(locales))
		for _, locale := range locales {
			sub, _ := root.Get(locale)
			flat := make(map[string]string)
			for _, p := range flatten(sub, "") {
				if !containsPath(values, p.path) {
					paths = append(paths, p.path)
				}
				flat[p.path] = p.value
			}
			values[locale] = flat
		}
		for _, path := range paths {
			row := make([]string, 0, len(locales)+1)
			row = append(row, path)
			for _, locale := range locales {
				row = append(row, values[locale][path])
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("encode csv: %w", err)
			}
		}
	} else {
		if err := w.Write([]string{"key", "value"}); err != nil {
			return nil, fmt.Errorf("encode csv: %w", err)
		}
		for _, p := range flatten(root, "") {
			if err := w.Write([]string{p.path, p.value}); err != nil {
				return nil, fmt.Errorf("encode csv: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

func containsPath(values map[string]map[string]string, path string) bool {
	for _, flat := range values {
		if _, ok := flat[path]; ok {
			return true
		}
	}
	return false
}

// isCompact reports whether root looks like a compact table: every top
// level entry is a subtree keyed by a parsable locale tag.
func isCompact(root *tree.Mapping) bool {
	if root.Len() == 0 {
		return false
	}
	for _, k := range root.Keys() {
		v, _ := root.Get(k)
		if _, ok := v.(*tree.Mapping); !ok {
			return false
		}
		if _, err := language.Parse(k); err != nil {
			return false
		}
	}
	return true
}

type flatPair struct {
	path  string
	value string
}

// flatten lists every scalar leaf as a (dotted path, value) pair in tree
// order. List positions become numeral segments.
func flatten(n tree.Node, prefix string) []flatPair {
	switch v := n.(type) {
	case tree.Scalar:
		return []flatPair{{path: prefix, value: string(v)}}
	case *tree.Sequence:
		var out []flatPair
		for i, it := range v.Items {
			out = append(out, flatten(it, joinPath(prefix, strconv.Itoa(i)))...)
		}
		return out
	case *tree.Mapping:
		var out []flatPair
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			out = append(out, flatten(child, joinPath(prefix, k))...)
		}
		return out
	default:
		return nil
	}
}

func joinPath(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "." + seg
}
