package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/songsearch/internal/catalog"
)

const defaultScanWorkers = 8

type Config struct {
	LibrarySources []string `koanf:"library_sources"` // song folders to scan
	Database       string   `koanf:"database"`        // empty means the XDG data dir
	DefaultSort    string   `koanf:"default_sort"`    // attribute name, default: "name"
	LogLevel       string   `koanf:"log_level"`       // debug, info, warn, error
	LogFile        string   `koanf:"log_file"`        // empty disables logging in the TUI

	Search SearchConfig `koanf:"search"`
	Scan   ScanConfig   `koanf:"scan"`
}

// SearchConfig holds ranked search settings.
type SearchConfig struct {
	Workers int `koanf:"workers"` // parallel rank workers (default: GOMAXPROCS)
}

// ScanConfig holds library scan settings.
type ScanConfig struct {
	Workers int `koanf:"workers"` // files parsed in parallel (default: 8)
}

func Load() (*Config, error) {
	return loadFiles(getConfigPaths())
}

// loadFiles merges the existing files among paths, later files overriding
// earlier ones.
func loadFiles(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}
	cfg.Database = expandPath(cfg.Database)
	cfg.LogFile = expandPath(cfg.LogFile)

	if _, err := cfg.SortAttribute(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/songsearch/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "songsearch", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// SortAttribute returns the configured default sort, Name when unset.
func (c *Config) SortAttribute() (catalog.Attribute, error) {
	if c.DefaultSort == "" {
		return catalog.Name, nil
	}
	attr, err := catalog.ParseAttribute(c.DefaultSort)
	if err != nil {
		return catalog.Name, fmt.Errorf("default_sort: %w", err)
	}
	return attr, nil
}

// SearchWorkers returns the ranked search parallelism with defaults applied.
func (c *Config) SearchWorkers() int {
	if c.Search.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Search.Workers
}

// ScanWorkers returns the scan parallelism with defaults applied.
func (c *Config) ScanWorkers() int {
	if c.Scan.Workers <= 0 {
		return defaultScanWorkers
	}
	return c.Scan.Workers
}
