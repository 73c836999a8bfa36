package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/five82/tailpane/internal/app"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	// Until the app opens its log file, diagnostics go to stderr.
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("tailpane failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		opts    app.Options
		backlog int
		stdin   bool
		noWatch bool
	)

	root := &cobra.Command{
		Use:   "tailpane [flags]",
		Short: "Scrollable, tail-following log viewer for the terminal",
		Long: "tailpane shows lines from stdin, followed files and a command in a\n" +
			"scrollable pane that keeps up with the tail until you scroll away.\n" +
			"Press s to save the buffered log to a file.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("backlog") {
				opts.Backlog = &backlog
			}
			if stdin || stdinIsPipe() {
				opts.Stdin = cmd.InOrStdin()
			}
			opts.WatchConfig = !noWatch
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/tailpane/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/tailpane/prefs.toml)")
	flags.StringVar(&opts.Name, "name", "", "panel name shown on the title row")
	flags.IntVar(&backlog, "backlog", 0, "maximum lines kept, 0 keeps everything")
	flags.BoolVar(&opts.NoTitle, "no-title", false, "hide the title row")
	flags.StringArrayVarP(&opts.Files, "file", "f", nil, "follow a file (repeatable)")
	flags.StringVarP(&opts.Exec, "exec", "e", "", "run a shell command and show its output")
	flags.BoolVar(&stdin, "stdin", false, "read stdin even when it is a terminal")
	flags.StringVar(&opts.Backend, "backend", "", "front end: tea or tcell")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: trace, debug, info or error")
	flags.BoolVar(&noWatch, "no-watch", false, "do not reload the backlog when the config file changes")

	return root
}

// stdinIsPipe reports whether stdin is redirected rather than a terminal.
func stdinIsPipe() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
