package tree

import (
	"fmt"
	"strings"
)

// Segment is one step of a dotted path: either a mapping key or a list
// index. Numeric segments are classified as indices once, at parse time.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	return s.Key
}

// Path is a parsed dotted key-path such as "a.0.title". In namespace mode
// the first segment names the namespace; see Namespace.
type Path struct {
	segments []Segment
}

// ParsePath splits a dotted path into pre-classified segments. Empty paths
// and empty segments are rejected.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("empty path")
	}
	parts := strings.Split(s, ".")
	segments := make([]Segment, len(parts))
	for i, p := range parts {
		if p == "" {
			return Path{}, fmt.Errorf("path %q: empty segment", s)
		}
		seg := Segment{Key: p}
		if n, ok := parseIndex(p); ok {
			seg.Index = n
			seg.IsIndex = true
		}
		segments[i] = seg
	}
	return Path{segments: segments}, nil
}

// parseIndex reports whether s is a non-negative integer numeral.
func parseIndex(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func (p Path) Len() int {
	return len(p.segments)
}

func (p Path) Segments() []Segment {
	return p.segments
}

func (p Path) Last() Segment {
	return p.segments[len(p.segments)-1]
}

func (p Path) String() string {
	parts := make([]string, len(p.segments))
	for i, s := range p.segments {
		parts[i] = s.Key
	}
	return strings.Join(parts, ".")
}

// Namespace splits off the leading namespace segment. A namespace-qualified
// path needs at least one segment after the namespace, and the namespace
// itself cannot be a list index.
func (p Path) Namespace() (string, Path, error) {
	if len(p.segments) < 2 {
		return "", Path{}, fmt.Errorf("path %q: namespace mode requires <namespace>.<key>", p)
	}
	ns := p.segments[0]
	if ns.IsIndex {
		return "", Path{}, fmt.Errorf("path %q: namespace segment cannot be an index", p)
	}
	return ns.Key, Path{segments: p.segments[1:]}, nil
}
