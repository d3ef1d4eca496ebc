package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poppingmoon/slang/internal/tree"
)

func TestJSON_DecodePreservesKeyOrder(t *testing.T) {
	raw := []byte(`{"zebra": "z", "apple": "a", "mango": {"ripe": "yes"}}`)

	root, err := jsonCodec{}.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, root.Keys())

	v, ok := root.Get("mango")
	require.True(t, ok)
	inner, ok := v.(*tree.Mapping).Get("ripe")
	require.True(t, ok)
	assert.Equal(t, tree.Scalar("yes"), inner)
}

func TestJSON_DecodeLists(t *testing.T) {
	raw := []byte(`{"a": [{"title": "First"}, {"title": "Second"}]}`)

	root, err := jsonCodec{}.Decode(raw)
	require.NoError(t, err)

	v, ok := root.Get("a")
	require.True(t, ok)
	seq, ok := v.(*tree.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Items, 2)
}

func TestJSON_RoundTrip(t *testing.T) {
	raw := []byte(`{
  "login": {
    "title": "Sign in",
    "hints": [
      "one",
      "two"
    ]
  },
  "logout": "Sign out"
}
`)
	root, err := jsonCodec{}.Decode(raw)
	require.NoError(t, err)

	out, err := jsonCodec{}.Encode(root)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(out))
}

func TestJSON_EscapesStrings(t *testing.T) {
	root := tree.NewMapping()
	root.Set(`quote"key`, tree.Scalar("line\nbreak"))

	out, err := jsonCodec{}.Encode(root)
	require.NoError(t, err)

	again, err := jsonCodec{}.Decode(out)
	require.NoError(t, err)
	v, ok := again.Get(`quote"key`)
	require.True(t, ok)
	assert.Equal(t, tree.Scalar("line\nbreak"), v)
}

func TestJSON_NonStringScalarsBecomeStrings(t *testing.T) {
	root, err := jsonCodec{}.Decode([]byte(`{"a": 5, "b": true, "c": null}`))
	require.NoError(t, err)

	v, _ := root.Get("a")
	assert.Equal(t, tree.Scalar("5"), v)
	v, _ = root.Get("b")
	assert.Equal(t, tree.Scalar("true"), v)
	v, _ = root.Get("c")
	assert.Equal(t, tree.Scalar("null"), v)

	out, err := jsonCodec{}.Encode(root)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"a": "5"`)
}

func TestJSON_RejectsNonObjectRoot(t *testing.T) {
	_, err := jsonCodec{}.Decode([]byte(`["a", "b"]`))
	assert.Error(t, err)

	_, err = jsonCodec{}.Decode([]byte(`"scalar"`))
	assert.Error(t, err)
}

func TestJSON_RejectsMalformed(t *testing.T) {
	_, err := jsonCodec{}.Decode([]byte(`{"a":`))
	assert.Error(t, err)
}
