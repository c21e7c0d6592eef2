// Package assets binds stroke-order diagram files to parsed records by
// codepoint match. Filenames are matched case-insensitively and sorted before
// positional assignment so slot numbering is stable across filesystems.
package assets

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/theodave/kanjidb/pkg/kanjidic"
)

// Binder scans one diagram directory per pipeline run. The listing is read
// once up front; Bind then only touches the files that match.
type Binder struct {
	dir    string
	names  []string
	logger *log.Logger
}

// NewBinder lists the diagram directory. An unreadable directory is fatal to
// the run.
func NewBinder(dir string, logger *log.Logger) (*Binder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read asset directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return &Binder{dir: dir, names: names, logger: logger}, nil
}

// Len returns the number of candidate diagram files.
func (b *Binder) Len() int {
	return len(b.names)
}

// Bind attaches every diagram whose filename contains the record's codepoint
// (case-insensitive) to the record: the filename list under the svg field and
// the raw bytes of each match, in sorted order, as positional payloads. A
// record with no codepoint or no matches is left untouched; unreadable
// matched files are fatal.
func (b *Binder) Bind(rec *kanjidic.Record) error {
	codepoint := strings.ToLower(rec.Codepoint())
	if codepoint == "" {
		return nil
	}

	var matched []string
	for _, name := range b.names {
		if strings.Contains(strings.ToLower(name), codepoint) {
			matched = append(matched, name)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	if len(matched) > kanjidic.MaxImageSlots && b.logger != nil {
		b.logger.Printf("assets: %q matches %d diagrams, keeping payloads for the first %d",
			rec.Literal(), len(matched), kanjidic.MaxImageSlots)
	}

	rec.Lists[kanjidic.ColSVG] = matched
	for i, name := range matched {
		if i >= kanjidic.MaxImageSlots {
			break
		}
		payload, err := os.ReadFile(filepath.Join(b.dir, name))
		if err != nil {
			return fmt.Errorf("read diagram %s: %w", name, err)
		}
		rec.Images = append(rec.Images, payload)
	}
	return nil
}
