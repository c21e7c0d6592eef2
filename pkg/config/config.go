// Package config loads the build tool's TOML configuration: where the
// lexicon sources live and where the compiled store goes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config names the pipeline inputs and the output store.
type Config struct {
	Lexicon  string `toml:"lexicon"`
	Kradfile string `toml:"kradfile"`
	Radkfile string `toml:"radkfile"`
	AssetDir string `toml:"asset_dir"`
	Database string `toml:"database"`
}

// Default returns the conventional repository layout.
func Default() Config {
	return Config{
		Lexicon:  filepath.Join("data", "lex", "kanjidic2.xml"),
		Kradfile: filepath.Join("data", "lex", "kradfile2.utf8"),
		Radkfile: filepath.Join("data", "lex", "radkfilex.utf8"),
		AssetDir: filepath.Join("data", "img", "svg"),
		Database: "kanjidic.db",
	}
}

// Load reads a TOML config file over the defaults. An empty path returns the
// defaults unchanged; a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
