// Package source runs the producers that feed a panel: a reader such as
// stdin, followed files and a shell command. Producers only ever call
// Enqueue, so they never wait on the goroutine that draws.
package source

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"
)

// Sink receives text from producers. Implementations must be safe for
// concurrent use and must not block.
type Sink interface {
	Enqueue(text string)
}

// Source produces text until its input ends or ctx is cancelled.
type Source interface {
	Name() string
	Run(ctx context.Context, sink Sink) error
}

// RunAll runs every source concurrently and waits for all of them. A failing
// source is logged and reported into the sink; it does not stop the others.
func RunAll(ctx context.Context, sink Sink, sources ...Source) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			log := pslog.Ctx(ctx).With("source", src.Name())
			log.Debug("source started")
			err := src.Run(ctx, sink)
			switch {
			case err == nil, errors.Is(err, context.Canceled):
				log.Debug("source stopped")
			default:
				log.Error("source failed", "err", err)
				sink.Enqueue(fmt.Sprintf("%s: %v", src.Name(), err))
			}
			return nil
		})
	}
	return g.Wait()
}
