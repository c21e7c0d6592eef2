package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/mattn/go-sqlite3"

	"github.com/theodave/kanjidb/pkg/config"
	"github.com/theodave/kanjidb/pkg/pipeline"
)

var buildFlags struct {
	configPath string
	lexicon    string
	kradfile   string
	radkfile   string
	assetDir   string
	database   string
	quiet      bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full lexicon-to-store rebuild",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildFlags.configPath, "config", "c", "", "path to TOML config file")
	buildCmd.Flags().StringVar(&buildFlags.lexicon, "lexicon", "", "lexicon XML document (overrides config)")
	buildCmd.Flags().StringVar(&buildFlags.kradfile, "kradfile", "", "kradfile radical source (overrides config)")
	buildCmd.Flags().StringVar(&buildFlags.radkfile, "radkfile", "", "radkfile radical source (overrides config)")
	buildCmd.Flags().StringVar(&buildFlags.assetDir, "assets", "", "stroke-order diagram directory (overrides config)")
	buildCmd.Flags().StringVar(&buildFlags.database, "db", "", "output database path (overrides config)")
	buildCmd.Flags().BoolVarP(&buildFlags.quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(buildFlags.configPath)
	if err != nil {
		return err
	}
	applyOverride(&cfg.Lexicon, buildFlags.lexicon)
	applyOverride(&cfg.Kradfile, buildFlags.kradfile)
	applyOverride(&cfg.Radkfile, buildFlags.radkfile)
	applyOverride(&cfg.AssetDir, buildFlags.assetDir)
	applyOverride(&cfg.Database, buildFlags.database)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := sql.Open("sqlite3", cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	p := pipeline.New(conn, pipeline.Config{
		LexiconPath:  cfg.Lexicon,
		KradfilePath: cfg.Kradfile,
		RadkfilePath: cfg.Radkfile,
		AssetDir:     cfg.AssetDir,
	})
	if !buildFlags.quiet {
		p.Logger = log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
		p.OnProgress = func(current, total int) {
			if current%100 == 0 || current == total {
				cmd.Printf("\rProcessing %d/%d characters", current, total)
			}
			if current == total {
				cmd.Println()
			}
		}
	}

	stats, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Persisted %d of %d records to %s (%d without diagrams) in %v\n",
		stats.Persisted, stats.Parsed, cfg.Database, stats.SkippedNoAssets, stats.Duration.Round(time.Millisecond))
	return nil
}

func applyOverride(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
