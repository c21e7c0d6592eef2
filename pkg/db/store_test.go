package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theodave/kanjidb/pkg/kanjidic"
)

// insertTestRecord builds a minimal record through the real encoder and
// inserts it.
func insertTestRecord(t *testing.T, conn *sql.DB, literal, ucs, strokes, freq string) {
	t.Helper()
	rec := kanjidic.NewRecord()
	rec.Scalars[kanjidic.ColLiteral] = literal
	rec.Scalars[kanjidic.ColUCS] = ucs
	if strokes != "" {
		rec.Scalars[kanjidic.ColStrokeCount] = strokes
	}
	if freq != "" {
		rec.Scalars[kanjidic.ColFrequency] = freq
	}
	rec.Lists[kanjidic.ColSVG] = []string{ucs + ".svg"}
	rec.Images = append(rec.Images, []byte("svg-bytes-"+ucs))

	text, blobs, err := rec.Encode()
	require.NoError(t, err)
	require.NoError(t, InsertRecord(conn, text, blobs))
}

func TestInsertAndLoadKanji(t *testing.T) {
	conn := setupTestDB(t)

	rec := kanjidic.NewRecord()
	rec.Scalars[kanjidic.ColLiteral] = "一"
	rec.Scalars[kanjidic.ColUCS] = "4e00"
	rec.Scalars[kanjidic.ColBytes] = kanjidic.BytesKey("一")
	rec.Scalars[kanjidic.ColGrade] = "1"
	rec.Scalars[kanjidic.ColStrokeCount] = "1"
	rec.Scalars[kanjidic.ColFrequency] = "2"
	rec.Lists["reading_type_ja_on"] = []string{"イチ", "イツ"}
	rec.Lists["reading_type_ja_kun"] = []string{"ひと-"}
	rec.Lists["meaning_type_en"] = []string{"one", "one radical (no.1)"}
	rec.Lists[kanjidic.ColNanori] = []string{"かず"}
	rec.Lists[kanjidic.ColRadicals] = []string{"一"}
	rec.Lists[kanjidic.ColSVG] = []string{"4E00.svg"}
	rec.Images = append(rec.Images, []byte("<svg/>"))

	text, blobs, err := rec.Encode()
	require.NoError(t, err)
	require.NoError(t, InsertRecord(conn, text, blobs))

	kanji, err := LoadKanji(conn)
	require.NoError(t, err)
	require.Len(t, kanji, 1)

	k := kanji[0]
	assert.Equal(t, "一", k.Literal)
	assert.Equal(t, "4e00", k.Codepoint)
	assert.Equal(t, "0xe4/0xb8/0x80", k.Bytes)
	assert.Equal(t, "1", k.Grade)
	assert.Equal(t, "1", k.StrokeCount)
	assert.Equal(t, "2", k.Frequency)
	assert.Equal(t, []string{"イチ", "イツ"}, k.OnReadings)
	assert.Equal(t, []string{"ひと-"}, k.KunReadings)
	assert.Equal(t, []string{"one", "one radical (no.1)"}, k.Meanings)
	assert.Equal(t, []string{"かず"}, k.Nanori)
	assert.Equal(t, []string{"一"}, k.Radicals)
	assert.Equal(t, []byte("<svg/>"), k.Images[0])
	assert.Nil(t, k.Images[1])
}

func TestLoadKanjiOrdersByStrokeThenFrequency(t *testing.T) {
	conn := setupTestDB(t)

	// Stroke counts sort numerically, not lexicographically; within a stroke
	// count, higher frequency rank comes first.
	insertTestRecord(t, conn, "鬱", "9b31", "29", "")
	insertTestRecord(t, conn, "一", "4e00", "1", "2")
	insertTestRecord(t, conn, "二", "4e8c", "2", "9")
	insertTestRecord(t, conn, "十", "5341", "2", "8")

	kanji, err := LoadKanji(conn)
	require.NoError(t, err)
	require.Len(t, kanji, 4)

	var literals []string
	for _, k := range kanji {
		literals = append(literals, k.Literal)
	}
	assert.Equal(t, []string{"一", "二", "十", "鬱"}, literals)
}

func TestInsertDuplicatePrimaryKeyFails(t *testing.T) {
	conn := setupTestDB(t)
	insertTestRecord(t, conn, "一", "4e00", "1", "2")

	rec := kanjidic.NewRecord()
	rec.Scalars[kanjidic.ColLiteral] = "一"
	rec.Scalars[kanjidic.ColUCS] = "4e00"
	text, blobs, err := rec.Encode()
	require.NoError(t, err)

	err = InsertRecord(conn, text, blobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate primary key")
}

func TestInsertRecordRejectsMissingKey(t *testing.T) {
	conn := setupTestDB(t)
	err := InsertRecord(conn, map[string]string{kanjidic.ColLiteral: "x"}, nil)
	assert.ErrorContains(t, err, "missing primary key")
}

func TestLoadAssetNames(t *testing.T) {
	conn := setupTestDB(t)
	insertTestRecord(t, conn, "一", "4e00", "1", "2")

	names, err := LoadAssetNames(conn, "一", "4e00")
	require.NoError(t, err)
	assert.Equal(t, []string{"4e00.svg"}, names)
}

func TestSettingsRoundTrip(t *testing.T) {
	conn := setupTestDB(t)

	want := Settings{Choice: 42, Screen0X: 10, Screen0Y: 20, Screen1X: 30, Screen1Y: 40}
	require.NoError(t, UpdateSettings(conn, want))

	got, err := LoadSettings(conn)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Upsert replaces rather than accumulating rows.
	require.NoError(t, UpdateSettings(conn, Settings{Choice: 7}))
	got, err = LoadSettings(conn)
	require.NoError(t, err)
	assert.Equal(t, Settings{Choice: 7}, got)

	var rows int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&rows))
	assert.Equal(t, 1, rows)
}
