package kanjidic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theodave/kanjidb/pkg/fieldenc"
)

func validRecord() *Record {
	rec := NewRecord()
	rec.Scalars[ColLiteral] = "一"
	rec.Scalars[ColUCS] = "4e00"
	return rec
}

func TestEncodeRequiresPrimaryKey(t *testing.T) {
	rec := NewRecord()
	rec.Scalars[ColLiteral] = "一"
	_, _, err := rec.Encode()
	assert.ErrorContains(t, err, "missing primary key")

	rec = NewRecord()
	rec.Scalars[ColUCS] = "4e00"
	_, _, err = rec.Encode()
	assert.ErrorContains(t, err, "missing primary key")
}

func TestEncodeAppliesFieldRules(t *testing.T) {
	rec := validRecord()
	rec.Scalars[ColGrade] = "1"
	rec.Lists["reading_type_ja_on"] = []string{"イチ", "イツ"}

	text, blobs, err := rec.Encode()
	require.NoError(t, err)

	// ASCII scalars pass through, non-ASCII ones are wrapped.
	assert.Equal(t, "4e00", text[ColUCS])
	assert.Equal(t, "1", text[ColGrade])
	assert.NotEqual(t, "一", text[ColLiteral])
	assert.Equal(t, "一", fieldenc.Decode(text[ColLiteral]))

	// Lists are wrapped and round-trip in order.
	assert.Equal(t, []string{"イチ", "イツ"}, fieldenc.DecodeList(text["reading_type_ja_on"]))
	assert.Empty(t, blobs)
}

func TestEncodeOmitsEmptyFields(t *testing.T) {
	rec := validRecord()
	rec.Scalars[ColGrade] = ""
	rec.Lists[ColNanori] = nil

	text, _, err := rec.Encode()
	require.NoError(t, err)
	_, hasGrade := text[ColGrade]
	_, hasNanori := text[ColNanori]
	assert.False(t, hasGrade)
	assert.False(t, hasNanori)
}

func TestEncodeCapsImageSlots(t *testing.T) {
	rec := validRecord()
	for i := 0; i < MaxImageSlots+3; i++ {
		rec.Images = append(rec.Images, []byte{byte(i)})
	}

	_, blobs, err := rec.Encode()
	require.NoError(t, err)
	assert.Len(t, blobs, MaxImageSlots)
	assert.Equal(t, []byte{0}, blobs["img_0"])
	assert.Equal(t, []byte{9}, blobs["img_9"])
}

func TestColumnsCatalog(t *testing.T) {
	cols := Columns()

	byName := map[string]Column{}
	for _, c := range cols {
		_, dup := byName[c.Name]
		require.False(t, dup, "duplicate column %s", c.Name)
		byName[c.Name] = c
	}

	assert.True(t, byName[ColLiteral].Key)
	assert.True(t, byName[ColUCS].Key)
	assert.False(t, byName["cp_type_jis208"].Key)
	assert.True(t, byName["img_0"].Blob)
	assert.True(t, byName["img_9"].Blob)
	assert.False(t, byName[ColSVG].Blob)

	keys := 0
	for _, c := range cols {
		if c.Key {
			keys++
		}
	}
	assert.Equal(t, 2, keys, "exactly literal and cp_type_ucs form the primary key")
}
