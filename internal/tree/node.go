// Package tree holds the generic translation tree and the path-addressed
// accessor shared by every file format and edit operation.
package tree

// Node is one vertex of a decoded translation tree: a Scalar leaf, an
// ordered Sequence, or an order-preserving Mapping. The root of a decoded
// file is always a *Mapping.
type Node interface {
	node()
}

// Scalar is a leaf value. Translation values are strings regardless of the
// source format; non-string JSON/YAML scalars keep their literal form.
type Scalar string

func (Scalar) node() {}

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items []Node
}

func (*Sequence) node() {}

// Mapping is a string-keyed map that preserves insertion order. Keys are
// unique; Set on an existing key replaces the value in place.
type Mapping struct {
	keys  []string
	index map[string]int
	vals  []Node
}

func (*Mapping) node() {}

func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (m *Mapping) Keys() []string {
	return m.keys
}

func (m *Mapping) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

// Set inserts key at the end, or replaces the value in place when the key
// already exists.
func (m *Mapping) Set(key string, v Node) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = v
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

// Delete removes the entry for key and reports whether it existed.
func (m *Mapping) Delete(key string) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	delete(m.index, key)
	for k, j := range m.index {
		if j > i {
			m.index[k] = j - 1
		}
	}
	return true
}

// Replace swaps the entry at oldKey for (newKey, v) without changing its
// position. Reports false when oldKey is absent or newKey already names a
// different entry.
func (m *Mapping) Replace(oldKey, newKey string, v Node) bool {
	i, ok := m.index[oldKey]
	if !ok {
		return false
	}
	if j, exists := m.index[newKey]; exists && j != i {
		return false
	}
	delete(m.index, oldKey)
	m.index[newKey] = i
	m.keys[i] = newKey
	m.vals[i] = v
	return true
}

// Clone returns a deep copy of n. Copies share no mutable structure with
// the original.
func Clone(n Node) Node {
	switch v := n.(type) {
	case Scalar:
		return v
	case *Sequence:
		items := make([]Node, len(v.Items))
		for i, it := range v.Items {
			items[i] = Clone(it)
		}
		return &Sequence{Items: items}
	case *Mapping:
		out := NewMapping()
		for i, k := range v.keys {
			out.Set(k, Clone(v.vals[i]))
		}
		return out
	default:
		return nil
	}
}
