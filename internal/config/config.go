// Package config resolves where the dataset lives and how output is written.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvConfigDir = "RYDSCHEME_CONFIG_DIR"
	EnvData      = "RYDSCHEME_DATA"
	EnvDB        = "RYDSCHEME_DB"
	EnvFormat    = "RYDSCHEME_FORMAT"
)

type Config struct {
	// DataDir holds levels.dat, absorption.dat and spontaneous.dat.
	DataDir string `json:"dataDir,omitempty"`
	// DBPath, when set, loads the dataset from a SQLite cache instead of DataDir.
	DBPath string     `json:"dbPath,omitempty"`
	Format string     `json:"format,omitempty"`
	TUI    *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	PlotWidth  int `json:"plotWidth,omitempty"`
	PlotHeight int `json:"plotHeight,omitempty"`
}

// LoadDotEnv loads ./.env if present. Variables already set win.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.rydscheme).
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rydscheme"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file; a missing file is an empty config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// Overrides are values given on the command line; empty means unset.
type Overrides struct {
	DataDir string
	DBPath  string
	Format  string
}

// Resolve applies flag > environment > config file > default.
func Resolve(o Overrides) (Config, error) {
	file, err := Load()
	if err != nil {
		return Config{}, err
	}
	out := Config{
		DataDir: first(o.DataDir, os.Getenv(EnvData), file.DataDir, "."),
		DBPath:  first(o.DBPath, os.Getenv(EnvDB), file.DBPath),
		Format:  first(o.Format, os.Getenv(EnvFormat), file.Format, "json"),
		TUI:     &TUIConfig{},
	}
	if file.TUI != nil {
		*out.TUI = *file.TUI
	}
	return out, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
