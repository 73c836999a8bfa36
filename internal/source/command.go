package source

import (
	"context"
	"fmt"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// Command runs a shell command line and merges its stdout and stderr lines.
type Command struct {
	Line string
	// Shell defaults to /bin/sh.
	Shell string
}

// Name implements Source.
func (c Command) Name() string {
	return "exec"
}

// Run implements Source. When the command ends a status line is added so the
// panel shows how it finished.
func (c Command) Run(ctx context.Context, sink Sink) error {
	shell := c.Shell
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", c.Line)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	// Both pipes must be drained before Wait closes them.
	var g errgroup.Group
	g.Go(func() error { return scanLines(ctx, stdout, sink) })
	g.Go(func() error { return scanLines(ctx, stderr, sink) })
	scanErr := g.Wait()
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if waitErr != nil {
		sink.Enqueue(fmt.Sprintf("[%s] %v", c.Line, waitErr))
		return nil
	}
	if scanErr != nil {
		return fmt.Errorf("read command output: %w", scanErr)
	}
	sink.Enqueue(fmt.Sprintf("[%s] exited", c.Line))
	return nil
}
