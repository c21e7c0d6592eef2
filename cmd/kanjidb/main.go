package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "kanjidb",
	Short: "Compile the kanji lexicon sources into a single SQLite store",
	Long: `kanjidb merges the kanji lexicon document, the two radical reference
files and the stroke-order diagram directory into one SQLite database
consumed by the desktop widget. Every run is a full rebuild.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("kanjidb version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
