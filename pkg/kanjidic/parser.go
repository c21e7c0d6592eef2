// Package kanjidic parses the character-per-element lexicon document into
// flat records ready for encoding and storage. Pure functions: reader in,
// records out. No database dependencies.
package kanjidic

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/theodave/kanjidb/pkg/radicals"
)

// Deserialization types for one <character> entry. Attribute names differ per
// sub-element family, so each gets its own struct.

type xmlCPValue struct {
	Type  string `xml:"cp_type,attr"`
	Value string `xml:",chardata"`
}

type xmlRadValue struct {
	Type  string `xml:"rad_type,attr"`
	Value string `xml:",chardata"`
}

type xmlVariant struct {
	Type  string `xml:"var_type,attr"`
	Value string `xml:",chardata"`
}

type xmlDicRef struct {
	Type  string `xml:"dr_type,attr"`
	Value string `xml:",chardata"`
}

type xmlQCode struct {
	Type  string `xml:"qc_type,attr"`
	Value string `xml:",chardata"`
}

type xmlReading struct {
	Type  string `xml:"r_type,attr"`
	Value string `xml:",chardata"`
}

type xmlMeaning struct {
	Lang  string `xml:"m_lang,attr"`
	Value string `xml:",chardata"`
}

type xmlMisc struct {
	Grade        string       `xml:"grade"`
	StrokeCounts []string     `xml:"stroke_count"`
	Variants     []xmlVariant `xml:"variant"`
	Freq         string       `xml:"freq"`
	RadNames     []string     `xml:"rad_name"`
	JLPT         string       `xml:"jlpt"`
}

type xmlRMGroup struct {
	Readings []xmlReading `xml:"reading"`
	Meanings []xmlMeaning `xml:"meaning"`
}

type xmlReadingMeaning struct {
	Group  *xmlRMGroup `xml:"rmgroup"`
	Nanori []string    `xml:"nanori"`
}

type xmlCharacter struct {
	Literal        string             `xml:"literal"`
	Codepoints     []xmlCPValue       `xml:"codepoint>cp_value"`
	RadValues      []xmlRadValue      `xml:"radical>rad_value"`
	Misc           *xmlMisc           `xml:"misc"`
	DicRefs        []xmlDicRef        `xml:"dic_number>dic_ref"`
	QueryCodes     []xmlQCode         `xml:"query_code>q_code"`
	ReadingMeaning *xmlReadingMeaning `xml:"reading_meaning"`
}

// ParseDocument streams the lexicon document and returns one record per
// character entry, in document order. The radical index is attached to each
// record by literal lookup. A document that fails to parse as XML is fatal;
// unknown typed variants are logged and skipped.
func ParseDocument(r io.Reader, idx radicals.Index, logger *log.Logger) ([]*Record, error) {
	dec := xml.NewDecoder(r)

	var records []*Record
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode lexicon document: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "character" {
			continue
		}
		var xc xmlCharacter
		if err := dec.DecodeElement(&xc, &start); err != nil {
			return nil, fmt.Errorf("decode character entry %d: %w", len(records)+1, err)
		}
		records = append(records, parseCharacter(xc, idx, logger))
	}
	return records, nil
}

// parseCharacter flattens one character entry into a record, applying the
// fixed population order: identity, codepoints, radical classification,
// miscellaneous, dictionary references, query codes, readings/meanings, name
// readings, radical index lookup.
func parseCharacter(xc xmlCharacter, idx radicals.Index, logger *log.Logger) *Record {
	rec := NewRecord()

	rec.setScalar(ColLiteral, xc.Literal)
	rec.setScalar(ColBytes, BytesKey(xc.Literal))

	for _, cp := range xc.Codepoints {
		setTyped(rec, famCodepoint, cp.Type, cp.Value, logger)
	}
	for _, rv := range xc.RadValues {
		setTyped(rec, famRadical, rv.Type, rv.Value, logger)
	}

	if m := xc.Misc; m != nil {
		rec.setScalar(ColGrade, m.Grade)
		// First stroke count is the accepted one; the rest are common miscounts.
		if len(m.StrokeCounts) > 0 {
			rec.setScalar(ColStrokeCount, m.StrokeCounts[0])
		}
		for _, v := range m.Variants {
			setTyped(rec, famVariant, v.Type, v.Value, logger)
		}
		rec.setScalar(ColFrequency, m.Freq)
		if len(m.RadNames) > 0 {
			rec.setScalar(ColRadicalName, m.RadNames[0])
		}
		rec.setScalar(ColJLPT, m.JLPT)
	}

	for _, dr := range xc.DicRefs {
		setTyped(rec, famDicRef, dr.Type, dr.Value, logger)
	}
	for _, qc := range xc.QueryCodes {
		setTyped(rec, famQueryCode, qc.Type, qc.Value, logger)
	}

	if rm := xc.ReadingMeaning; rm != nil {
		if g := rm.Group; g != nil {
			for _, rd := range g.Readings {
				appendTyped(rec, famReading, rd.Type, rd.Value, logger)
			}
			for _, mn := range g.Meanings {
				lang := mn.Lang
				if lang == "" {
					lang = "en"
				}
				appendTyped(rec, famMeaning, lang, mn.Value, logger)
			}
		}
		for _, n := range rm.Nanori {
			if n != "" {
				rec.appendList(ColNanori, n)
			}
		}
	}

	if rads := idx.Lookup(xc.Literal); len(rads) > 0 {
		rec.Lists[ColRadicals] = rads
	}

	return rec
}

// setTyped resolves a typed-variant field and stores it with overwrite
// semantics (attribute-keyed, last wins).
func setTyped(rec *Record, family, variant, value string, logger *log.Logger) {
	if variant == "" || value == "" {
		return
	}
	col, ok := resolveField(family, variant)
	if !ok {
		if logger != nil {
			logger.Printf("kanjidic: unknown %s variant %q for %q, skipping", family, variant, rec.Literal())
		}
		return
	}
	rec.Scalars[col] = value
}

// appendTyped resolves a typed-variant field and accumulates it in document
// order (readings and meanings repeat per type).
func appendTyped(rec *Record, family, variant, value string, logger *log.Logger) {
	if variant == "" || value == "" {
		return
	}
	col, ok := resolveField(family, variant)
	if !ok {
		if logger != nil {
			logger.Printf("kanjidic: unknown %s variant %q for %q, skipping", family, variant, rec.Literal())
		}
		return
	}
	rec.appendList(col, value)
}

// BytesKey derives the search key the widget matches clipboard characters
// against: the literal's UTF-8 bytes as /-joined 0x-prefixed hex, e.g.
// "一" → "0xe4/0xb8/0x80".
func BytesKey(literal string) string {
	if literal == "" {
		return ""
	}
	parts := make([]string, len(literal))
	for i := 0; i < len(literal); i++ {
		parts[i] = fmt.Sprintf("%#x", literal[i])
	}
	return strings.Join(parts, "/")
}
