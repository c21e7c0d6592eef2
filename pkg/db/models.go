package db

// Kanji is the decoded consumer view of one library row, projected the way
// the widget reads it.
type Kanji struct {
	Literal     string
	Codepoint   string // Unicode hex (cp_type_ucs)
	Bytes       string // /-joined hex of the literal's UTF-8 bytes
	Grade       string
	StrokeCount string
	Frequency   string
	JLPT        string
	RadicalName string
	Meanings    []string // English meanings, document order
	OnReadings  []string
	KunReadings []string
	Nanori      []string
	Radicals    []string
	AssetNames  []string // matched diagram filenames
	Images      [][]byte // img_0..img_9, nil for empty slots
}

// Settings is the widget's single session-state row.
type Settings struct {
	Choice   int
	Screen0X int
	Screen0Y int
	Screen1X int
	Screen1Y int
}
