package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightPreservesLineCount(t *testing.T) {
	h := New("monokai")
	in := []string{"package main", "", "func main() {}"}
	out, err := h.Highlight("go", in)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	assert.Contains(t, out[0], "package")
}

func TestUnknownLanguagePassesThrough(t *testing.T) {
	h := New("monokai")
	in := []string{"plain text", "more"}
	out, err := h.Highlight("definitely-not-a-language", in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnknownStyleFallsBack(t *testing.T) {
	h := New("no-such-style")
	out, err := h.Highlight("go", []string{"package main"})
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestEmptyInput(t *testing.T) {
	h := New("monokai")
	out, err := h.Highlight("go", []string{""})
	require.NoError(t, err)
	require.Len(t, out, 1)
}
