package app

import (
	"context"
	"errors"
	"time"

	"pkt.systems/pslog"

	"github.com/five82/tailpane/internal/config"
	"github.com/five82/tailpane/internal/panel"
	"github.com/five82/tailpane/internal/source"
)

const (
	watchRetryInterval = 2 * time.Second
	maxBackoff         = 30 * time.Second
)

// StartSources launches the producers feeding p in the background. It
// returns immediately.
func StartSources(ctx context.Context, p *panel.ScrollPanel, sources ...source.Source) {
	if len(sources) == 0 {
		return
	}
	go func() {
		if err := source.RunAll(ctx, p, sources...); err != nil {
			pslog.Ctx(ctx).Error("sources stopped", "err", err)
		}
	}()
}

// StartConfigWatch reloads the backlog cap of p whenever the config file
// changes. A watch that cannot start, for example because the config
// directory does not exist yet, is retried with backoff.
func StartConfigWatch(ctx context.Context, path string, p *panel.ScrollPanel) {
	go func() {
		log := pslog.Ctx(ctx)
		failures := 0
		for {
			err := config.Watch(ctx, path, func(cfg config.Config) {
				p.RequestBacklog(cfg.Backlog)
			})
			if ctx.Err() != nil {
				return
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				failures++
				log.Debug("config watch failed", "err", err, "failures", failures)
			} else {
				failures = 0
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(calculateBackoff(failures, watchRetryInterval)):
			}
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
