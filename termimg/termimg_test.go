package termimg

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKittySingleChunk(t *testing.T) {
	out, err := Kitty{}.Encode([]byte("png"), 0, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\x1b_Gf=100,a=T,"), "prefix: %q", out)
	assert.True(t, strings.HasSuffix(out, "\x1b\\"), "suffix: %q", out)
	assert.Contains(t, out, "m=0;")
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("png")))
}

func TestKittyChunking(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 8192)
	out, err := Kitty{}.Encode(data, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\x1b_G"), "chunk count")
	assert.Equal(t, 3, strings.Count(out, "\x1b\\"))
	assert.Contains(t, out, "m=1;")
	// the final chunk closes the transmission
	last := out[strings.LastIndex(out, "\x1b_G"):]
	assert.Contains(t, last, "m=0;")
}

func TestKittyDimensions(t *testing.T) {
	out, err := Kitty{}.Encode([]byte("png"), 40, 10)
	require.NoError(t, err)
	assert.Contains(t, out, "c=40,")
	assert.Contains(t, out, "r=10,")
}

func TestITerm2(t *testing.T) {
	out, err := ITerm2{}.Encode([]byte("img"), 20, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\x1b]1337;File=inline=1"), "prefix: %q", out)
	assert.True(t, strings.HasSuffix(out, "\a"), "suffix: %q", out)
	assert.Contains(t, out, ";size=3")
	assert.Contains(t, out, ";width=20")
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("img")))
}

func TestEmptyDataRejected(t *testing.T) {
	_, err := Kitty{}.Encode(nil, 0, 0)
	assert.ErrorIs(t, err, ErrEmptyImage)
	_, err = ITerm2{}.Encode(nil, 0, 0)
	assert.ErrorIs(t, err, ErrEmptyImage)
}
