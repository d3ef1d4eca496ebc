package format

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/poppingmoon/slang/internal/tree"
)

// jsonCodec parses JSON through ojg's tokenizer so mapping keys keep their
// file order; the stdlib decoder would shuffle them.
//
// Every leaf is a string scalar. Non-string JSON scalars (numbers,
// booleans, null) decode to their literal text and re-encode as quoted
// strings, so {"a": 5} round-trips to {"a": "5"}. Translation values are
// strings, so this lossiness is the codec's contract, not an accident.
type jsonCodec struct{}

func (jsonCodec) Decode(raw []byte) (*tree.Mapping, error) {
	b := &jsonBuilder{}
	if err := oj.Tokenize(raw, b); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if b.err != nil {
		return nil, b.err
	}
	if b.root == nil {
		return nil, fmt.Errorf("parse json: empty document")
	}
	return b.root, nil
}

func (jsonCodec) Encode(root *tree.Mapping) ([]byte, error) {
	var buf bytes.Buffer
	writeJSON(&buf, root, 0)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n tree.Node, depth int) {
	indent := strings.Repeat("  ", depth+1)
	switch v := n.(type) {
	case tree.Scalar:
		buf.WriteString(oj.JSON(string(v)))
	case *tree.Sequence:
		if len(v.Items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, it := range v.Items {
			buf.WriteString(indent)
			writeJSON(buf, it, depth+1)
			if i < len(v.Items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteByte(']')
	case *tree.Mapping:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		keys := v.Keys()
		for i, k := range keys {
			child, _ := v.Get(k)
			buf.WriteString(indent)
			buf.WriteString(oj.JSON(k))
			buf.WriteString(": ")
			writeJSON(buf, child, depth+1)
			if i < len(keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteByte('}')
	}
}

// jsonBuilder implements ojg.TokenHandler, assembling the ordered tree as
// tokens arrive.
type jsonBuilder struct {
	root  *tree.Mapping
	stack []tree.Node
	key   string
	err   error
}

// place attaches v to the open container, or makes it the root.
func (b *jsonBuilder) place(v tree.Node) {
	if b.err != nil {
		return
	}
	if len(b.stack) == 0 {
		m, ok := v.(*tree.Mapping)
		if !ok {
			b.err = fmt.Errorf("parse json: root must be an object")
			return
		}
		if b.root != nil {
			b.err = fmt.Errorf("parse json: multiple root values")
			return
		}
		b.root = m
		return
	}
	switch c := b.stack[len(b.stack)-1].(type) {
	case *tree.Mapping:
		c.Set(b.key, v)
	case *tree.Sequence:
		c.Items = append(c.Items, v)
	}
}

func (b *jsonBuilder) push(v tree.Node) {
	b.place(v)
	if b.err == nil {
		b.stack = append(b.stack, v)
	}
}

func (b *jsonBuilder) pop() {
	if b.err == nil && len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

func (b *jsonBuilder) Null()             { b.place(tree.Scalar("null")) }
func (b *jsonBuilder) Bool(v bool)       { b.place(tree.Scalar(strconv.FormatBool(v))) }
func (b *jsonBuilder) Int(v int64)       { b.place(tree.Scalar(strconv.FormatInt(v, 10))) }
func (b *jsonBuilder) Float(v float64)   { b.place(tree.Scalar(strconv.FormatFloat(v, 'g', -1, 64))) }
func (b *jsonBuilder) Number(num string) { b.place(tree.Scalar(num)) }
func (b *jsonBuilder) String(str string) { b.place(tree.Scalar(str)) }
func (b *jsonBuilder) Key(k string)      { b.key = k }
func (b *jsonBuilder) ObjectStart()      { b.push(tree.NewMapping()) }
func (b *jsonBuilder) ObjectEnd()        { b.pop() }
func (b *jsonBuilder) ArrayStart()       { b.push(&tree.Sequence{}) }
func (b *jsonBuilder) ArrayEnd()         { b.pop() }
