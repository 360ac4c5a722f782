// Package config loads and persists the user's default options as a
// TOML file under the platform config directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the defaults applied when a flag is not given on the
// command line.
type Config struct {
	// CachePath overrides the card cache database location.
	CachePath string `toml:"cache_path"`
	// OutputDir is where generated sheets land by default.
	OutputDir string `toml:"output_dir"`

	Render RenderConfig `toml:"render"`
	Page   PageConfig   `toml:"page"`
}

type RenderConfig struct {
	Color        bool   `toml:"color"`
	TextSymbols  bool   `toml:"text_symbols"`
	FullArtLands bool   `toml:"full_art_lands"`
	AcornStamp   bool   `toml:"acorn_stamp"`
	Playtest     bool   `toml:"playtest"`
	IconPath     string `toml:"icon_path"`
}

type PageConfig struct {
	Format       string `toml:"format"`
	Small        bool   `toml:"small"`
	TightSpacing bool   `toml:"tight_spacing"`
}

// Default is the configuration written on first run.
func Default() Config {
	return Config{
		OutputDir: "pages",
		Render: RenderConfig{
			TextSymbols: true,
			AcornStamp:  true,
		},
		Page: PageConfig{
			Format: "a4",
		},
	}
}

// DefaultPath is the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "bwproxy", "config.toml"), nil
}

// Load reads the config file, creating it with defaults on first run.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config file, creating its directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
