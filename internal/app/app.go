package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"pkt.systems/pslog"

	"github.com/five82/tailpane/internal/config"
	"github.com/five82/tailpane/internal/panel"
	"github.com/five82/tailpane/internal/prefs"
	"github.com/five82/tailpane/internal/source"
	"github.com/five82/tailpane/internal/termui"
	"github.com/five82/tailpane/internal/ui"
)

// Options configure the tailpane application. Zero values leave the loaded
// configuration alone.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tailpane/prefs.toml

	Name     string
	Backlog  *int
	NoTitle  bool
	Files    []string
	Exec     string
	Backend  string
	LogLevel string

	// Stdin, when set, is followed as an extra source.
	Stdin io.Reader
	// WatchConfig reloads the backlog cap when the config file changes.
	WatchConfig bool
}

// Run boots the tailpane UI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := opts.apply(&cfg); err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	p := panel.New(cfg.Name, panel.Options{
		Backlog:   cfg.Backlog,
		ShowTitle: cfg.ShowTitle,
		SaveDir:   saveDir(cfg, userPrefs),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sources := buildSources(cfg, opts.Stdin)
	logger.Info("tailpane starting",
		"name", cfg.Name,
		"backend", cfg.Backend,
		"backlog", cfg.Backlog,
		"sources", len(sources),
	)
	StartSources(ctx, p, sources...)
	if opts.WatchConfig {
		StartConfigWatch(ctx, opts.ConfigPath, p)
	}

	switch cfg.Backend {
	case config.BackendTcell:
		err = termui.Run(termui.Options{
			Context: ctx,
			Panel:   p,
			Refresh: cfg.Refresh,
		})
	default:
		err = ui.Run(ui.Options{
			Context:   ctx,
			Panel:     p,
			Refresh:   cfg.Refresh,
			ThemeName: userPrefs.Theme,
			PrefsPath: opts.PrefsPath,
			InputTTY:  opts.Stdin != nil,
		})
	}
	if err != nil {
		return fmt.Errorf("run %s ui: %w", cfg.Backend, err)
	}
	logger.Info("tailpane stopped")
	return nil
}

// apply merges command line overrides into cfg and validates the result.
func (o Options) apply(cfg *config.Config) error {
	if name := strings.TrimSpace(o.Name); name != "" {
		cfg.Name = name
	}
	if o.Backlog != nil {
		cfg.Backlog = max(0, *o.Backlog)
	}
	if o.NoTitle {
		cfg.ShowTitle = false
	}
	for _, f := range o.Files {
		if f = strings.TrimSpace(f); f != "" {
			cfg.Files = append(cfg.Files, f)
		}
	}
	if exec := strings.TrimSpace(o.Exec); exec != "" {
		cfg.Exec = exec
	}
	if backend := strings.ToLower(strings.TrimSpace(o.Backend)); backend != "" {
		cfg.Backend = backend
	}
	if level := strings.ToLower(strings.TrimSpace(o.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	return cfg.Validate()
}

// saveDir prefers the directory of the last successful save.
func saveDir(cfg config.Config, p prefs.Prefs) string {
	if p.LastSaveDir != "" {
		return p.LastSaveDir
	}
	return cfg.SaveDir
}

func buildSources(cfg config.Config, stdin io.Reader) []source.Source {
	var sources []source.Source
	if stdin != nil {
		sources = append(sources, source.Reader{Label: "stdin", R: stdin})
	}
	for _, path := range cfg.Files {
		sources = append(sources, source.File{Path: path, Seed: cfg.Backlog})
	}
	if cfg.Exec != "" {
		sources = append(sources, source.Command{Line: cfg.Exec})
	}
	return sources
}
