package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all wachat configuration.
type Config struct {
	DataDir string `toml:"data_dir"`

	Parser  ParserConfig  `toml:"parser"`
	Archive ArchiveConfig `toml:"archive"`
	Watch   WatchConfig   `toml:"watch"`
}

type ParserConfig struct {
	ChunkSize     int `toml:"chunk_size"`
	ProgressEvery int `toml:"progress_every"`
}

type ArchiveConfig struct {
	Compress bool   `toml:"compress"`
	Dir      string `toml:"dir"`
}

type WatchConfig struct {
	Dir string `toml:"dir"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DataDir: "~/.local/share/wachat",
		Parser: ParserConfig{
			ChunkSize:     200,
			ProgressEvery: 500,
		},
		Archive: ArchiveConfig{
			Compress: true,
		},
		Watch: WatchConfig{
			Dir: "~/exports",
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	paths := configPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	// Expand ~ in paths
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Archive.Dir = expandHome(cfg.Archive.Dir)
	cfg.Watch.Dir = expandHome(cfg.Watch.Dir)

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "wachat", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "wachat", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// StorePath returns the sqlite database path inside the data dir.
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, "chats.db")
}

// ArchiveDir returns the archive directory, defaulting to a
// subdirectory of the data dir when unset.
func (c Config) ArchiveDir() string {
	if c.Archive.Dir != "" {
		return c.Archive.Dir
	}
	return filepath.Join(c.DataDir, "archive")
}
