package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/theodave/kanjidb/pkg/fieldenc"
	"github.com/theodave/kanjidb/pkg/kanjidic"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// IsUniqueConstraintErr returns true when the error indicates a unique or
// primary-key violation. A duplicate (literal, cp_type_ucs) pair aborts the
// run; it is never silently skipped.
func IsUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

// InsertRecord writes one encoded record. Only columns present on the record
// appear in the statement; absent fields rely on column nullability. Columns
// are emitted in catalog order so statements are deterministic.
func InsertRecord(exec DBExecutor, text map[string]string, blobs map[string][]byte) error {
	if text[kanjidic.ColLiteral] == "" || text[kanjidic.ColUCS] == "" {
		return fmt.Errorf("insert record: missing primary key")
	}

	var cols []string
	var args []interface{}
	for _, c := range kanjidic.Columns() {
		if c.Blob {
			if payload, ok := blobs[c.Name]; ok {
				cols = append(cols, c.Name)
				args = append(args, payload)
			}
			continue
		}
		if val, ok := text[c.Name]; ok {
			cols = append(cols, c.Name)
			args = append(args, val)
		}
	}

	query := fmt.Sprintf("INSERT INTO library (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	if _, err := exec.Exec(query, args...); err != nil {
		if IsUniqueConstraintErr(err) {
			return fmt.Errorf("insert record %s/%s: duplicate primary key: %w",
				fieldenc.Decode(text[kanjidic.ColLiteral]), text[kanjidic.ColUCS], err)
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// loadKanjiQuery is the widget's fixed projection: stroke count ascending,
// frequency descending, with non-numeric values cast to a numeric sort key.
const loadKanjiQuery = `SELECT frequency,
	img_0, img_1, img_2, img_3, img_4, img_5, img_6, img_7, img_8, img_9,
	bytes,
	cp_type_ucs,
	literal,
	grade,
	jlpt,
	stroke_count,
	radical_name,
	meaning_type_en,
	nanori,
	radicals,
	reading_type_ja_kun,
	reading_type_ja_on
FROM library
ORDER BY CAST(stroke_count AS INT), CAST(frequency AS INT) DESC`

// LoadKanji reads every library row in widget display order and decodes each
// text field with the inverse of the storage encoding.
func LoadKanji(exec DBExecutor) ([]Kanji, error) {
	rows, err := exec.Query(loadKanjiQuery)
	if err != nil {
		return nil, fmt.Errorf("load kanji: %w", err)
	}
	defer rows.Close()

	var out []Kanji
	for rows.Next() {
		var k Kanji
		var frequency, bytesKey, codepoint, literal sql.NullString
		var grade, jlpt, strokeCount, radicalName sql.NullString
		var meanings, nanori, radicals, kun, on sql.NullString
		images := make([][]byte, kanjidic.MaxImageSlots)

		dest := []interface{}{&frequency}
		for i := range images {
			dest = append(dest, &images[i])
		}
		dest = append(dest, &bytesKey, &codepoint, &literal, &grade, &jlpt,
			&strokeCount, &radicalName, &meanings, &nanori, &radicals, &kun, &on)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan kanji row: %w", err)
		}

		k.Literal = fieldenc.Decode(literal.String)
		k.Codepoint = codepoint.String
		k.Bytes = bytesKey.String
		k.Grade = grade.String
		k.StrokeCount = strokeCount.String
		k.Frequency = frequency.String
		k.JLPT = jlpt.String
		k.RadicalName = fieldenc.Decode(radicalName.String)
		k.Meanings = fieldenc.DecodeList(meanings.String)
		k.Nanori = fieldenc.DecodeList(nanori.String)
		k.Radicals = fieldenc.DecodeList(radicals.String)
		k.KunReadings = fieldenc.DecodeList(kun.String)
		k.OnReadings = fieldenc.DecodeList(on.String)

		k.Images = images
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadAssetNames returns the decoded diagram filename list for one record.
func LoadAssetNames(exec DBExecutor, literal, codepoint string) ([]string, error) {
	var svg sql.NullString
	err := exec.QueryRow(`SELECT svg FROM library WHERE literal = ? AND cp_type_ucs = ?`,
		fieldenc.EncodeScalar(literal), codepoint).Scan(&svg)
	if err != nil {
		return nil, err
	}
	return fieldenc.DecodeList(svg.String), nil
}

// LoadSettings reads the single session-state row.
func LoadSettings(exec DBExecutor) (Settings, error) {
	var s Settings
	err := exec.QueryRow(
		`SELECT choice, screen0x, screen0y, screen1x, screen1y FROM settings WHERE idx = 1`,
	).Scan(&s.Choice, &s.Screen0X, &s.Screen0Y, &s.Screen1X, &s.Screen1Y)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

// UpdateSettings upserts the session-state row under its fixed identifier.
func UpdateSettings(exec DBExecutor, s Settings) error {
	_, err := exec.Exec(
		`REPLACE INTO settings (idx, choice, screen0x, screen0y, screen1x, screen1y)
		 VALUES (1, ?, ?, ?, ?, ?)`,
		s.Choice, s.Screen0X, s.Screen0Y, s.Screen1X, s.Screen1Y)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// CountRecords returns the number of persisted library rows.
func CountRecords(exec DBExecutor) (int, error) {
	var n int
	if err := exec.QueryRow(`SELECT COUNT(*) FROM library`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
