package fieldenc

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPureASCII(t *testing.T) {
	assert.True(t, IsPureASCII(""))
	assert.True(t, IsPureASCII("3021"))
	assert.True(t, IsPureASCII("4-1-4 skip code"))
	assert.False(t, IsPureASCII("一"))
	assert.False(t, IsPureASCII("mixed 一 value"))
}

func TestEncodeScalar(t *testing.T) {
	// ASCII passes through untouched.
	assert.Equal(t, "4e00", EncodeScalar("4e00"))

	// Non-ASCII is base64 wrapped.
	got := EncodeScalar("イチ")
	assert.NotEqual(t, "イチ", got)
	raw, err := base64.StdEncoding.DecodeString(got)
	assert.NoError(t, err)
	assert.Equal(t, "イチ", string(raw))
}

func TestEncodeList(t *testing.T) {
	got := EncodeList([]string{"イチ", "イツ"})
	raw, err := base64.StdEncoding.DecodeString(got)
	assert.NoError(t, err)
	assert.Equal(t, "イチ\nイツ", string(raw))
}

func TestDecodeRoundTrip(t *testing.T) {
	cases := []string{"イチ", "ひと.つ", "一二三", "みず, さんずい"}
	for _, c := range cases {
		assert.Equal(t, c, Decode(EncodeScalar(c)), "scalar round-trip for %q", c)
	}

	list := []string{"イチ", "イツ", "ひと-"}
	assert.Equal(t, list, DecodeList(EncodeList(list)))
}

func TestDecodeFallsBackToStoredValue(t *testing.T) {
	// Not base64 at all.
	assert.Equal(t, "not@base64!", Decode("not@base64!"))
	// Valid base64 shape but decodes to invalid UTF-8; the stored value wins.
	assert.Equal(t, "3021", Decode("3021"))
}

func TestDecodeListEmpty(t *testing.T) {
	assert.Nil(t, DecodeList(""))
}
