// Package config handles bft.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file bft looks for.
const FileName = "bft.toml"

// Config represents a bft.toml configuration.
type Config struct {
	Log Log `toml:"log"`
	Run Run `toml:"run"`

	// Dir is the directory containing the bft.toml file (set at load time).
	Dir string `toml:"-"`
}

// Log configures logging.
type Log struct {
	// Verbosity: 0 errors only, 1 adds info, 2 adds debug.
	Verbosity int `toml:"verbosity"`
	// File receives the log; empty logs to stderr. A leading ~ expands to
	// the user's home directory.
	File string `toml:"file"`
}

// Run configures program execution.
type Run struct {
	// Seed pins the ? instruction's generator when nonzero.
	Seed uint64 `toml:"seed"`
	// Trace is the default path for recorded execution sessions.
	Trace string `toml:"trace"`
}

// Default returns the configuration used when no bft.toml exists.
func Default() *Config {
	return &Config{Log: Log{Verbosity: 1}}
}

// Load parses the configuration file at path. Defaults are applied first,
// so keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse error in %s: %w", path, err)
	}

	cfg.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve path %s: %w", path, err)
	}
	return cfg, nil
}

// FindAndLoad walks up from startDir looking for a bft.toml file, then
// loads and returns it. Returns nil without error when none is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve path %s: %w", startDir, err)
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root.
			return nil, nil
		}
		dir = parent
	}
}

// ExpandHome replaces a leading ~ with the user's home directory. Paths
// not starting with ~ pass through unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// DefaultLogFile creates ~/.bft/logs if needed and returns a fresh
// timestamped file path inside it.
func DefaultLogFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".bft", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("config: cannot create %s: %w", dir, err)
	}
	name := fmt.Sprintf("bft_log_%s.txt", time.Now().Format("20060102_150405"))
	return filepath.Join(dir, name), nil
}
