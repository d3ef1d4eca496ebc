package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath_ClassifiesSegments(t *testing.T) {
	p, err := ParsePath("a.0.title")
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())

	segs := p.Segments()
	assert.False(t, segs[0].IsIndex)
	assert.Equal(t, "a", segs[0].Key)
	assert.True(t, segs[1].IsIndex)
	assert.Equal(t, 0, segs[1].Index)
	assert.False(t, segs[2].IsIndex)
	assert.Equal(t, "a.0.title", p.String())
}

func TestParsePath_RejectsEmpty(t *testing.T) {
	_, err := ParsePath("")
	assert.Error(t, err)

	_, err = ParsePath("a..b")
	assert.Error(t, err)

	_, err = ParsePath(".a")
	assert.Error(t, err)
}

func TestParsePath_NegativeIsNotAnIndex(t *testing.T) {
	p, err := ParsePath("a.-1")
	require.NoError(t, err)
	assert.False(t, p.Last().IsIndex)
}

func TestNamespace_Split(t *testing.T) {
	p, err := ParsePath("auth.login.title")
	require.NoError(t, err)

	ns, rest, err := p.Namespace()
	require.NoError(t, err)
	assert.Equal(t, "auth", ns)
	assert.Equal(t, "login.title", rest.String())
}

func TestNamespace_RequiresSecondSegment(t *testing.T) {
	p, err := ParsePath("auth")
	require.NoError(t, err)

	_, _, err = p.Namespace()
	assert.Error(t, err)
}

func TestNamespace_RejectsIndexNamespace(t *testing.T) {
	p, err := ParsePath("0.title")
	require.NoError(t, err)

	_, _, err = p.Namespace()
	assert.Error(t, err)
}
