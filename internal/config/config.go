package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved tailpane configuration.
type Config struct {
	Name      string
	Backlog   int
	ShowTitle bool
	SaveDir   string
	Refresh   time.Duration
	LogFile   string
	LogLevel  string
	Backend   string
	Files     []string
	Exec      string
}

// Backends understood by the app.
const (
	BackendTea   = "tea"
	BackendTcell = "tcell"
)

const (
	defaultConfigPath = "~/.config/tailpane/config.toml"
	defaultName       = "tailpane"
	defaultBacklog    = 5000
	defaultSaveDir    = "~/.local/share/tailpane"
	defaultRefreshMS  = 250
	defaultLogFile    = "~/.local/state/tailpane/tailpane.log"
	defaultLogLevel   = "info"
	defaultBackend    = BackendTea
)

var logLevels = []string{"trace", "debug", "info", "error"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Name:      defaultName,
		Backlog:   defaultBacklog,
		ShowTitle: true,
		SaveDir:   mustExpand(defaultSaveDir),
		Refresh:   defaultRefreshMS * time.Millisecond,
		LogFile:   mustExpand(defaultLogFile),
		LogLevel:  defaultLogLevel,
		Backend:   defaultBackend,
	}
}

// Load reads the config at path, or the default location when path is blank.
// A missing file yields Default; blank values fall back to their defaults.
func Load(path string) (Config, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Name      string   `toml:"name"`
		Backlog   *int     `toml:"backlog"`
		ShowTitle *bool    `toml:"show_title"`
		SaveDir   string   `toml:"save_dir"`
		RefreshMS *int     `toml:"refresh_ms"`
		LogFile   string   `toml:"log_file"`
		LogLevel  string   `toml:"log_level"`
		Backend   string   `toml:"backend"`
		Files     []string `toml:"files"`
		Exec      string   `toml:"exec"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if name := strings.TrimSpace(raw.Name); name != "" {
		cfg.Name = name
	}
	if raw.Backlog != nil {
		cfg.Backlog = max(0, *raw.Backlog)
	}
	if raw.ShowTitle != nil {
		cfg.ShowTitle = *raw.ShowTitle
	}
	if dir := strings.TrimSpace(raw.SaveDir); dir != "" {
		cfg.SaveDir = mustExpand(dir)
	}
	if raw.RefreshMS != nil && *raw.RefreshMS > 0 {
		cfg.Refresh = time.Duration(*raw.RefreshMS) * time.Millisecond
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	if backend := strings.ToLower(strings.TrimSpace(raw.Backend)); backend != "" {
		cfg.Backend = backend
	}
	for _, f := range raw.Files {
		if f = strings.TrimSpace(f); f != "" {
			cfg.Files = append(cfg.Files, mustExpand(f))
		}
	}
	cfg.Exec = strings.TrimSpace(raw.Exec)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (want one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if c.Backend != BackendTea && c.Backend != BackendTcell {
		return fmt.Errorf("invalid backend %q (want %s or %s)", c.Backend, BackendTea, BackendTcell)
	}
	return nil
}

// ExpandPath expands a leading ~ to the home directory and returns the
// absolute form of path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// ResolvePath returns the absolute config path, or the default location when
// path is blank.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}
