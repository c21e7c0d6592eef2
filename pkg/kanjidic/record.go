package kanjidic

import (
	"fmt"

	"github.com/theodave/kanjidb/pkg/fieldenc"
)

// Record is the canonical per-character unit of pipeline output: a mapping
// from column name to scalar, list, or diagram payload. Populated in parse
// order, encoded once, inserted once, never mutated afterwards.
type Record struct {
	Scalars map[string]string
	Lists   map[string][]string
	// Images holds raw diagram bytes in enumeration order; slot i lands in
	// column img_i.
	Images [][]byte
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{
		Scalars: make(map[string]string),
		Lists:   make(map[string][]string),
	}
}

// Literal returns the character glyph, the human-facing identity field.
func (r *Record) Literal() string {
	return r.Scalars[ColLiteral]
}

// Codepoint returns the Unicode codepoint variant (hex), the second half of
// the primary key.
func (r *Record) Codepoint() string {
	return r.Scalars[ColUCS]
}

// HasPrimaryKey reports whether both mandatory identity fields are present.
// A record failing this check must never reach storage.
func (r *Record) HasPrimaryKey() bool {
	return r.Literal() != "" && r.Codepoint() != ""
}

// HasAssets reports whether at least one diagram was bound. Records without
// assets are parsed but not persisted.
func (r *Record) HasAssets() bool {
	return len(r.Lists[ColSVG]) > 0
}

// setScalar stores a single-valued field, dropping empty values so absent
// sub-elements stay absent rather than becoming empty strings.
func (r *Record) setScalar(col, val string) {
	if val == "" {
		return
	}
	r.Scalars[col] = val
}

// appendList accumulates a multi-valued field in document order.
func (r *Record) appendList(col, val string) {
	r.Lists[col] = append(r.Lists[col], val)
}

// Encode applies the storage encoding to every populated field: scalars via
// the pure-ASCII rule, lists newline-joined and base64 wrapped, diagram
// payloads passed through as raw blobs. Empty fields are omitted.
func (r *Record) Encode() (text map[string]string, blobs map[string][]byte, err error) {
	if !r.HasPrimaryKey() {
		return nil, nil, fmt.Errorf("record %q: missing primary key", r.Literal())
	}
	text = make(map[string]string, len(r.Scalars)+len(r.Lists))
	for col, val := range r.Scalars {
		if val == "" {
			continue
		}
		text[col] = fieldenc.EncodeScalar(val)
	}
	for col, vals := range r.Lists {
		if len(vals) == 0 {
			continue
		}
		text[col] = fieldenc.EncodeList(vals)
	}
	blobs = make(map[string][]byte, len(r.Images))
	for i, payload := range r.Images {
		if i >= MaxImageSlots {
			break
		}
		blobs[ImageColumn(i)] = payload
	}
	return text, blobs, nil
}
