package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Name != defaultName {
		t.Fatalf("Name = %q, want %q", cfg.Name, defaultName)
	}
	if cfg.Backlog != defaultBacklog {
		t.Fatalf("Backlog = %d, want %d", cfg.Backlog, defaultBacklog)
	}
	if !cfg.ShowTitle {
		t.Fatalf("ShowTitle = false, want true")
	}
	if cfg.Refresh != 250*time.Millisecond {
		t.Fatalf("Refresh = %v, want 250ms", cfg.Refresh)
	}
	if want := filepath.Join(home, ".local/share/tailpane"); cfg.SaveDir != want {
		t.Fatalf("SaveDir = %q, want %q", cfg.SaveDir, want)
	}
	if want := filepath.Join(home, ".local/state/tailpane/tailpane.log"); cfg.LogFile != want {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, want)
	}
	if cfg.LogLevel != "info" || cfg.Backend != BackendTea {
		t.Fatalf("LogLevel/Backend = %q/%q, want info/tea", cfg.LogLevel, cfg.Backend)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
name = "  build  "
backlog = 200
show_title = false
save_dir = "  ~/saved  "
refresh_ms = 50
log_level = " DEBUG "
backend = "tcell"
files = ["~/a.log", "  ", "/var/log/b.log"]
exec = "  make test  "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Name != "build" {
		t.Fatalf("Name = %q, want %q", cfg.Name, "build")
	}
	if cfg.Backlog != 200 {
		t.Fatalf("Backlog = %d, want 200", cfg.Backlog)
	}
	if cfg.ShowTitle {
		t.Fatalf("ShowTitle = true, want false")
	}
	if cfg.SaveDir != filepath.Join(home, "saved") {
		t.Fatalf("SaveDir = %q, want %q", cfg.SaveDir, filepath.Join(home, "saved"))
	}
	if cfg.Refresh != 50*time.Millisecond {
		t.Fatalf("Refresh = %v, want 50ms", cfg.Refresh)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Backend != BackendTcell {
		t.Fatalf("Backend = %q, want tcell", cfg.Backend)
	}
	if len(cfg.Files) != 2 || cfg.Files[0] != filepath.Join(home, "a.log") || cfg.Files[1] != "/var/log/b.log" {
		t.Fatalf("Files = %q, want [~/a.log /var/log/b.log] expanded", cfg.Files)
	}
	if cfg.Exec != "make test" {
		t.Fatalf("Exec = %q, want %q", cfg.Exec, "make test")
	}
}

func TestLoad_ZeroBacklogMeansUnbounded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(writeConfig(t, "backlog = 0\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backlog != 0 {
		t.Fatalf("Backlog = %d, want 0", cfg.Backlog)
	}

	cfg, err = Load(writeConfig(t, "backlog = -5\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backlog != 0 {
		t.Fatalf("Backlog = %d, want negative values clamped to 0", cfg.Backlog)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, `
name = "   "
save_dir = ""
refresh_ms = 0
log_level = ""
backend = " "
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def := Default()
	if cfg.Name != def.Name || cfg.SaveDir != def.SaveDir || cfg.Refresh != def.Refresh ||
		cfg.LogLevel != def.LogLevel || cfg.Backend != def.Backend {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `backlog = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_RejectsUnknownChoices(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"log level", `log_level = "verbose"`, "log_level"},
		{"backend", `backend = "curses"`, "backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want it to mention %s", err, tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
