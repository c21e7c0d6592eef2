// Package fieldenc canonicalizes record values into the text encoding the
// widget expects: multi-valued fields and non-ASCII scalars are base64
// wrapped, plain ASCII scalars pass through untouched.
package fieldenc

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// IsPureASCII reports whether every byte of s is a single-byte character.
// Such values survive storage verbatim and need no wrapping.
func IsPureASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// EncodeScalar prepares a single string value for storage. ASCII values are
// stored as-is; anything else is base64 encoded so it round-trips exactly.
func EncodeScalar(s string) string {
	if IsPureASCII(s) {
		return s
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// EncodeList joins the elements with a newline separator and base64 encodes
// the result. List fields are always wrapped, even when every element is
// ASCII, so the consumer can split on newlines after decoding.
func EncodeList(vals []string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(vals, "\n")))
}

// Decode is the consumer-side inverse of EncodeScalar/EncodeList. It attempts
// a base64 decode and falls back to the stored value when the field was never
// wrapped (or decoding yields invalid UTF-8).
func Decode(stored string) string {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil || !utf8.Valid(raw) {
		return stored
	}
	return string(raw)
}

// DecodeList decodes a stored list field back into its elements. An empty
// stored value yields a nil slice.
func DecodeList(stored string) []string {
	if stored == "" {
		return nil
	}
	decoded := Decode(stored)
	if decoded == "" {
		return nil
	}
	return strings.Split(decoded, "\n")
}
