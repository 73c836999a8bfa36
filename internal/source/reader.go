package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

const maxLineBytes = 1024 * 1024

// Reader copies lines from R until EOF.
//
// A read blocked on a terminal or pipe cannot be interrupted. When the
// context is cancelled Run returns at once and its scanning goroutine lives
// on until R yields the next line or EOF. That goroutine checks the context
// before every Enqueue, so at most the line already in flight is dropped and
// nothing reaches the sink after cancellation is observed.
type Reader struct {
	Label string
	R     io.Reader
}

// Name implements Source.
func (r Reader) Name() string {
	if r.Label == "" {
		return "reader"
	}
	return r.Label
}

// Run implements Source.
func (r Reader) Run(ctx context.Context, sink Sink) error {
	done := make(chan error, 1)
	go func() {
		done <- scanLines(ctx, r.R, sink)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("read %s: %w", r.Name(), err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func scanLines(ctx context.Context, rd io.Reader, sink Sink) error {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		sink.Enqueue(scanner.Text())
	}
	return scanner.Err()
}
