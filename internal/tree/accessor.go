package tree

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch reports an insertion through a node whose type conflicts
// with the path, e.g. a list index through a scalar.
var ErrTypeMismatch = errors.New("type mismatch")

// UpdateFunc replaces the final key/value pair of a path. Returning a new
// key with the same value is a rename; returning the same key with a new
// value annotates in place.
type UpdateFunc func(key string, value Node) (string, Node)

// leafFunc acts on the parent of the final path segment.
type leafFunc func(parent Node, last Segment) (bool, error)

// walk resolves all but the last segment of path starting at root, then
// hands the parent to leaf. With create set, missing intermediate mappings
// and list tails are created; otherwise a missing segment resolves to
// (false, nil). Every accessor operation goes through here.
func walk(root *Mapping, path Path, create bool, leaf leafFunc) (bool, error) {
	var cur Node = root
	segs := path.Segments()
	for i := 0; i < len(segs)-1; i++ {
		seg := segs[i]
		if next, ok := step(cur, seg); ok {
			cur = next
			continue
		}
		if !create {
			return false, nil
		}
		next, err := attach(cur, seg, segs[i+1])
		if err != nil {
			return false, fmt.Errorf("at %q in %q: %w", seg.Key, path, err)
		}
		cur = next
	}
	return leaf(cur, segs[len(segs)-1])
}

// step resolves one segment against cur. A Mapping resolves by key (numeral
// keys included); a Sequence resolves only index segments within range.
func step(cur Node, seg Segment) (Node, bool) {
	switch n := cur.(type) {
	case *Mapping:
		return n.Get(seg.Key)
	case *Sequence:
		if seg.IsIndex && seg.Index < len(n.Items) {
			return n.Items[seg.Index], true
		}
		return nil, false
	default:
		return nil, false
	}
}

// attach creates the child for seg under cur. The child's type follows the
// next segment: an index means a fresh list, anything else a fresh mapping.
// Sequences extend at the tail; callers that need gap detection validate
// index order before inserting.
func attach(cur Node, seg, next Segment) (Node, error) {
	var child Node
	if next.IsIndex {
		child = &Sequence{}
	} else {
		child = NewMapping()
	}
	switch n := cur.(type) {
	case *Mapping:
		if _, exists := n.Get(seg.Key); exists {
			return nil, ErrTypeMismatch
		}
		n.Set(seg.Key, child)
	case *Sequence:
		if !seg.IsIndex {
			return nil, ErrTypeMismatch
		}
		n.Items = append(n.Items, child)
	default:
		return nil, ErrTypeMismatch
	}
	return child, nil
}

// Get returns the node at path, or (nil, false) when any segment fails to
// resolve. Absence is a normal outcome, never an error.
func Get(root *Mapping, path Path) (Node, bool) {
	var out Node
	ok, _ := walk(root, path, false, func(parent Node, last Segment) (bool, error) {
		v, found := step(parent, last)
		if found {
			out = v
		}
		return found, nil
	})
	return out, ok
}

// Add inserts item at path, creating intermediate structure as needed. A
// trailing index segment replaces in range or extends the list tail.
func Add(root *Mapping, path Path, item Node) error {
	_, err := walk(root, path, true, func(parent Node, last Segment) (bool, error) {
		switch p := parent.(type) {
		case *Mapping:
			p.Set(last.Key, item)
			return true, nil
		case *Sequence:
			if !last.IsIndex {
				return false, fmt.Errorf("at %q in %q: %w", last.Key, path, ErrTypeMismatch)
			}
			if last.Index < len(p.Items) {
				p.Items[last.Index] = item
			} else {
				p.Items = append(p.Items, item)
			}
			return true, nil
		default:
			return false, fmt.Errorf("at %q in %q: %w", last.Key, path, ErrTypeMismatch)
		}
	})
	return err
}

// Delete removes the entry or element at path and reports whether anything
// was removed. Deleting an absent path returns false; callers decide
// whether that matters.
func Delete(root *Mapping, path Path) bool {
	ok, _ := walk(root, path, false, func(parent Node, last Segment) (bool, error) {
		switch p := parent.(type) {
		case *Mapping:
			return p.Delete(last.Key), nil
		case *Sequence:
			if !last.IsIndex || last.Index >= len(p.Items) {
				return false, nil
			}
			p.Items = append(p.Items[:last.Index], p.Items[last.Index+1:]...)
			return true, nil
		default:
			return false, nil
		}
	})
	return ok
}

// Update resolves the parent of the final segment and replaces the final
// key/value pair via fn, keeping its position in the mapping. Reports false
// when the path does not resolve to a mapping entry.
func Update(root *Mapping, path Path, fn UpdateFunc) bool {
	ok, _ := walk(root, path, false, func(parent Node, last Segment) (bool, error) {
		p, isMap := parent.(*Mapping)
		if !isMap {
			return false, nil
		}
		v, found := p.Get(last.Key)
		if !found {
			return false, nil
		}
		newKey, newVal := fn(last.Key, v)
		return p.Replace(last.Key, newKey, newVal), nil
	})
	return ok
}
