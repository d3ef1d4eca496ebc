package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poppingmoon/slang/internal/tree"
)

func TestYAML_DecodePreservesKeyOrder(t *testing.T) {
	raw := []byte("zebra: z\napple: a\nmango:\n  ripe: yes\n")

	root, err := yamlCodec{}.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, root.Keys())
}

func TestYAML_DecodeLists(t *testing.T) {
	raw := []byte("a:\n  - title: First\n  - title: Second\n")

	root, err := yamlCodec{}.Decode(raw)
	require.NoError(t, err)

	v, ok := root.Get("a")
	require.True(t, ok)
	seq, ok := v.(*tree.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Items, 2)

	first, ok := seq.Items[0].(*tree.Mapping).Get("title")
	require.True(t, ok)
	assert.Equal(t, tree.Scalar("First"), first)
}

func TestYAML_RoundTrip(t *testing.T) {
	root := tree.NewMapping()
	login := tree.NewMapping()
	login.Set("title", tree.Scalar("Sign in"))
	login.Set("hints", &tree.Sequence{Items: []tree.Node{tree.Scalar("one"), tree.Scalar("two")}})
	root.Set("login", login)
	root.Set("logout", tree.Scalar("Sign out"))

	out, err := yamlCodec{}.Encode(root)
	require.NoError(t, err)

	again, err := yamlCodec{}.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"login", "logout"}, again.Keys())

	v, ok := again.Get("login")
	require.True(t, ok)
	title, ok := v.(*tree.Mapping).Get("title")
	require.True(t, ok)
	assert.Equal(t, tree.Scalar("Sign in"), title)
}

func TestYAML_RejectsScalarRoot(t *testing.T) {
	_, err := yamlCodec{}.Decode([]byte("just a string\n"))
	assert.Error(t, err)
}

func TestYAML_RejectsEmpty(t *testing.T) {
	_, err := yamlCodec{}.Decode([]byte(""))
	assert.Error(t, err)
}
