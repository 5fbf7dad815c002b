package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndSnapshot(t *testing.T) {
	b := New()
	b.Append("int x = 1;")
	b.Append("x + 1")

	assert.Equal(t, []string{"int x = 1;", "x + 1"}, b.Snapshot())
	assert.Equal(t, 2, b.Len())
}

func TestSnapshot_IsACopy(t *testing.T) {
	b := New("a", "b")

	snap := b.Snapshot()
	snap[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, b.Snapshot())
}

func TestNew_CopiesSeed(t *testing.T) {
	seed := []string{"a"}
	b := New(seed...)
	seed[0] = "z"

	assert.Equal(t, []string{"a"}, b.Snapshot())
}

func TestPopLast(t *testing.T) {
	b := New("first", "second")

	line, err := b.PopLast()
	require.NoError(t, err)
	assert.Equal(t, "second", line)
	assert.Equal(t, []string{"first"}, b.Snapshot())
}

func TestPopLast_Empty(t *testing.T) {
	b := New()

	line, err := b.PopLast()

	require.ErrorIs(t, err, ErrEmpty)
	assert.Empty(t, line)
	assert.Equal(t, 0, b.Len())
}

func TestClearAndReplace(t *testing.T) {
	b := New("a", "b")

	b.Clear()
	assert.Equal(t, 0, b.Len())

	b.Replace([]string{"x", "y", "z"})
	assert.Equal(t, []string{"x", "y", "z"}, b.Snapshot())
}
