package kanjidic

import "strconv"

// Field name families. Typed sub-elements of a character entry map onto
// columns named {family}_{variant}; the variant vocabulary is enumerated
// below so the schema stays closed. Unknown variants are logged and skipped
// at parse time instead of growing the column set.
const (
	ColLiteral     = "literal"
	ColBytes       = "bytes"
	ColGrade       = "grade"
	ColStrokeCount = "stroke_count"
	ColFrequency   = "frequency"
	ColRadicalName = "radical_name"
	ColJLPT        = "jlpt"
	ColNanori      = "nanori"
	ColSVG         = "svg"
	ColRadicals    = "radicals"

	famCodepoint = "cp_type"
	famRadical   = "rad_type"
	famVariant   = "var_type"
	famDicRef    = "dr_type"
	famQueryCode = "qc_type"
	famReading   = "reading_type"
	famMeaning   = "meaning_type"
)

// ColUCS is the Unicode codepoint column; together with ColLiteral it forms
// the library table's composite primary key.
const ColUCS = famCodepoint + "_ucs"

// MaxImageSlots is the number of positional diagram columns (img_0..img_9)
// the widget knows how to read.
const MaxImageSlots = 10

// Variant vocabularies, in schema order. Sourced from the lexicon's DTD.
var (
	cpTypes  = []string{"jis208", "jis212", "jis213", "ucs"}
	radTypes = []string{"classical", "nelson_c"}
	varTypes = []string{"jis208", "jis212", "jis213", "deroo", "njecd", "s_h", "nelson_c", "oneill", "ucs"}
	drTypes  = []string{
		"nelson_c", "nelson_n", "halpern_njecd", "halpern_kkd", "halpern_kkld",
		"halpern_kkld_2ed", "heisig", "heisig6", "gakken", "oneill_names",
		"oneill_kk", "moro", "henshall", "sh_kk", "sh_kk2", "sakade",
		"jf_cards", "henshall3", "tutt_cards", "crowley", "kanji_in_context",
		"busy_people", "kodansha_compact", "maniette",
	}
	qcTypes      = []string{"skip", "sh_desc", "four_corner", "deroo", "misclass"}
	readingTypes = []string{"pinyin", "korean_r", "korean_h", "vietnam", "ja_on", "ja_kun"}
	meaningLangs = []string{"en", "fr", "es", "pt"}
)

// knownFields maps family → variant → resolved column name.
var knownFields = map[string]map[string]string{}

func init() {
	register := func(family string, variants []string) {
		m := make(map[string]string, len(variants))
		for _, v := range variants {
			m[v] = family + "_" + v
		}
		knownFields[family] = m
	}
	register(famCodepoint, cpTypes)
	register(famRadical, radTypes)
	register(famVariant, varTypes)
	register(famDicRef, drTypes)
	register(famQueryCode, qcTypes)
	register(famReading, readingTypes)
	register(famMeaning, meaningLangs)
}

// resolveField looks up the column for a family/variant pair. ok is false for
// variants outside the enumerated vocabulary.
func resolveField(family, variant string) (string, bool) {
	col, ok := knownFields[family][variant]
	return col, ok
}

// Column describes one field of the library table schema.
type Column struct {
	Name string
	Blob bool // raw diagram payload rather than text
	Key  bool // part of the composite primary key, NOT NULL
}

// Columns returns the full library schema in its canonical order: identity,
// codepoints, radical classification, miscellaneous, dictionary references,
// query codes, readings/meanings, name readings, assets, radical index.
func Columns() []Column {
	cols := []Column{
		{Name: ColLiteral, Key: true},
		{Name: ColBytes},
	}
	appendFamily := func(family string, variants []string) {
		for _, v := range variants {
			cols = append(cols, Column{Name: family + "_" + v, Key: family == famCodepoint && v == "ucs"})
		}
	}
	appendFamily(famCodepoint, cpTypes)
	appendFamily(famRadical, radTypes)
	cols = append(cols,
		Column{Name: ColGrade},
		Column{Name: ColStrokeCount},
	)
	appendFamily(famVariant, varTypes)
	cols = append(cols,
		Column{Name: ColFrequency},
		Column{Name: ColRadicalName},
		Column{Name: ColJLPT},
	)
	appendFamily(famDicRef, drTypes)
	appendFamily(famQueryCode, qcTypes)
	appendFamily(famReading, readingTypes)
	appendFamily(famMeaning, meaningLangs)
	cols = append(cols,
		Column{Name: ColNanori},
		Column{Name: ColSVG},
		Column{Name: ColRadicals},
	)
	for i := 0; i < MaxImageSlots; i++ {
		cols = append(cols, Column{Name: ImageColumn(i), Blob: true})
	}
	return cols
}

// ImageColumn returns the positional diagram column name for slot i.
func ImageColumn(i int) string {
	return "img_" + strconv.Itoa(i)
}
