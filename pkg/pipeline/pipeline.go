// Package pipeline wires the compilation stages in sequence: radical index,
// lexicon parse, asset binding, field encoding, store population. Strictly
// single-threaded and single-pass; a failed run leaves the store dropped and
// the caller re-runs to completion.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/theodave/kanjidb/pkg/assets"
	"github.com/theodave/kanjidb/pkg/db"
	"github.com/theodave/kanjidb/pkg/kanjidic"
	"github.com/theodave/kanjidb/pkg/radicals"
)

// Config holds the input and output locations for one run.
type Config struct {
	LexiconPath  string // character-per-element XML document
	KradfilePath string // radical source A, colon-delimited lines
	RadkfilePath string // radical source B, $-delimited clusters
	AssetDir     string // stroke-order diagram directory
}

// Stats summarizes a completed run.
type Stats struct {
	RadicalChars    int // characters in the merged radical index
	Parsed          int // character entries read from the lexicon
	Persisted       int // records inserted
	SkippedNoAssets int // parsed records dropped by the persistence gate
	Duration        time.Duration
}

// Pipeline compiles the lexicon sources into the target store.
type Pipeline struct {
	conn *sql.DB
	cfg  Config

	// Logger receives skip notices and the run summary. nil means no logging.
	Logger *log.Logger
	// OnProgress is called once per character processed. Reporting is a side
	// effect only; it never alters control flow or ordering.
	OnProgress func(current, total int)
}

// New creates a pipeline writing to the given connection. The connection is
// exclusively owned by the pipeline for the run's duration.
func New(conn *sql.DB, cfg Config) *Pipeline {
	return &Pipeline{conn: conn, cfg: cfg}
}

// Run executes the full rebuild. Unreadable sources, an unparseable lexicon
// document, a record missing its primary key, and duplicate primary keys are
// all fatal; records with no matched diagrams are parsed and then dropped.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	var stats Stats

	idx, radStats, err := radicals.BuildIndex(p.cfg.KradfilePath, p.cfg.RadkfilePath, p.Logger)
	if err != nil {
		return stats, err
	}
	stats.RadicalChars = radStats.Characters
	p.logf("radical index built: %d characters (%d krad entries, %d radk clusters)",
		radStats.Characters, radStats.KradEntries, radStats.RadkClusters)

	lexicon, err := os.Open(p.cfg.LexiconPath)
	if err != nil {
		return stats, fmt.Errorf("open lexicon document: %w", err)
	}
	defer lexicon.Close()

	records, err := kanjidic.ParseDocument(lexicon, idx, p.Logger)
	if err != nil {
		return stats, err
	}
	stats.Parsed = len(records)
	p.logf("lexicon parsed: %d character entries", len(records))

	binder, err := assets.NewBinder(p.cfg.AssetDir, p.Logger)
	if err != nil {
		return stats, err
	}
	p.logf("asset directory listed: %d files", binder.Len())

	if err := db.CreateSchema(p.conn); err != nil {
		return stats, err
	}

	tx, err := p.conn.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin insert transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	total := len(records)
	for i, rec := range records {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		if !rec.HasPrimaryKey() {
			return stats, fmt.Errorf("character entry %d (literal %q, codepoint %q): missing primary key",
				i+1, rec.Literal(), rec.Codepoint())
		}

		if err := binder.Bind(rec); err != nil {
			return stats, err
		}

		if rec.HasAssets() {
			text, blobs, err := rec.Encode()
			if err != nil {
				return stats, err
			}
			if err := db.InsertRecord(tx, text, blobs); err != nil {
				return stats, err
			}
			stats.Persisted++
		} else {
			stats.SkippedNoAssets++
		}

		if p.OnProgress != nil {
			p.OnProgress(i+1, total)
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit inserts: %w", err)
	}

	stats.Duration = time.Since(start)
	p.logf("run complete: %d records persisted, %d skipped without diagrams, took %v",
		stats.Persisted, stats.SkippedNoAssets, stats.Duration)
	return stats, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
