// Package radicals builds the character → constituent-radicals index from the
// two radical reference files (kradfile and radkfile). Pure functions: file
// contents in, merged index out. No database dependencies.
package radicals

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode"
)

// Index maps a kanji literal to its ordered list of constituent radicals.
// Built once per pipeline run and read-only afterwards.
type Index map[string][]string

// Lookup returns the radical list for the given literal, or nil when the
// character is unknown to both sources.
func (ix Index) Lookup(literal string) []string {
	return ix[literal]
}

// Stats holds builder counters for logging.
type Stats struct {
	KradEntries  int
	RadkClusters int
	SkippedLines int
	Characters   int
}

// BuildIndex reads both radical sources and returns the merged index.
// Missing or unreadable files are fatal; malformed lines and clusters are
// skipped. The optional logger receives skip notices.
func BuildIndex(kradPath, radkPath string, logger *log.Logger) (Index, Stats, error) {
	kradFile, err := os.Open(kradPath)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open kradfile: %w", err)
	}
	defer kradFile.Close()

	idx, stats, err := ParseKradfile(kradFile, logger)
	if err != nil {
		return nil, stats, fmt.Errorf("parse kradfile: %w", err)
	}

	radkData, err := os.ReadFile(radkPath)
	if err != nil {
		return nil, stats, fmt.Errorf("read radkfile: %w", err)
	}

	if err := MergeRadkfile(idx, string(radkData), &stats, logger); err != nil {
		return nil, stats, fmt.Errorf("parse radkfile: %w", err)
	}

	stats.Characters = len(idx)
	return idx, stats, nil
}

// ParseKradfile reads the colon-delimited source: one line per kanji, the
// literal before the first colon and a whitespace-separated radical list in
// the last colon field. Comment lines start with '#'.
func ParseKradfile(r io.Reader, logger *log.Logger) (Index, Stats, error) {
	idx := make(Index)
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		literal := strings.TrimSpace(fields[0])
		if literal == "" {
			continue
		}
		rads := strings.Fields(fields[len(fields)-1])
		if len(rads) == 0 {
			stats.SkippedLines++
			if logger != nil {
				logger.Printf("kradfile: skipping line with no radicals for %q", literal)
			}
			continue
		}
		idx[literal] = rads
		stats.KradEntries++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}
	return idx, stats, nil
}

// MergeRadkfile folds the '$'-delimited cluster source into idx. Each cluster
// names one radical followed by its stroke count and the kanji that contain
// it. A radical is appended to a character's list only when not already
// present, so kradfile ordering and precedence are preserved.
func MergeRadkfile(idx Index, data string, stats *Stats, logger *log.Logger) error {
	var kept []string
	for _, line := range strings.Split(data, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}

	for _, cluster := range strings.Split(strings.Join(kept, "\n"), "$") {
		cleaned := strings.NewReplacer("\n", "", " ", "").Replace(cluster)
		if cleaned == "" {
			continue
		}
		radical, kanjis, ok := splitCluster(cleaned)
		if !ok {
			stats.SkippedLines++
			if logger != nil {
				logger.Printf("radkfile: skipping malformed cluster %q", truncate(cleaned, 20))
			}
			continue
		}
		stats.RadkClusters++
		for _, kanji := range kanjis {
			literal := string(kanji)
			if !contains(idx[literal], radical) {
				idx[literal] = append(idx[literal], radical)
			}
		}
	}
	return nil
}

// splitCluster separates a cleaned cluster into its leading radical glyph and
// the kanji string trailing the digits. The stroke count (and any glyph tag
// wedged between digits) sits between the first and last digit and is
// discarded.
func splitCluster(cleaned string) (radical, kanjis string, ok bool) {
	first := strings.IndexFunc(cleaned, unicode.IsDigit)
	last := strings.LastIndexFunc(cleaned, unicode.IsDigit)
	if first <= 0 || last < 0 {
		return "", "", false
	}
	radical = cleaned[:first]
	kanjis = cleaned[last+1:] // digits are single-byte, safe to skip one byte
	if kanjis == "" {
		return "", "", false
	}
	return radical, kanjis, true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
