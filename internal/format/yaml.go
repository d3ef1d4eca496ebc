package format

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/poppingmoon/slang/internal/tree"
)

// yamlCodec round-trips through yaml.Node, which preserves mapping order
// in both directions.
type yamlCodec struct{}

func (yamlCodec) Decode(raw []byte) (*tree.Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse yaml: empty document")
	}
	n, err := fromYAML(doc.Content[0])
	if err != nil {
		return nil, err
	}
	root, ok := n.(*tree.Mapping)
	if !ok {
		return nil, fmt.Errorf("parse yaml: root must be a mapping")
	}
	return root, nil
}

func (yamlCodec) Encode(root *tree.Mapping) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(root)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func fromYAML(n *yaml.Node) (tree.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return tree.Scalar(n.Value), nil
	case yaml.SequenceNode:
		seq := &tree.Sequence{Items: make([]tree.Node, 0, len(n.Content))}
		for _, c := range n.Content {
			child, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, child)
		}
		return seq, nil
	case yaml.MappingNode:
		m := tree.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("parse yaml: line %d: non-scalar mapping key", key.Line)
			}
			child, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, child)
		}
		return m, nil
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	default:
		return nil, fmt.Errorf("parse yaml: line %d: unsupported node kind", n.Line)
	}
}

func toYAML(n tree.Node) *yaml.Node {
	switch v := n.(type) {
	case tree.Scalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}
	case *tree.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range v.Items {
			out.Content = append(out.Content, toYAML(it))
		}
		return out
	case *tree.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toYAML(child))
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
