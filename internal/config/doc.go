// Package config loads the tailpane TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tailpane/config.toml
//  3. If the config file doesn't exist, fall back to Default
//  4. If the file exists but fields are missing or blank, use defaults
//
// Command-line flags are applied on top of the loaded Config by the caller.
//
// # Default Values
//
//   - name: tailpane
//   - backlog: 5000 lines (0 keeps everything)
//   - show_title: true
//   - save_dir: ~/.local/share/tailpane
//   - refresh_ms: 250
//   - log_file: ~/.local/state/tailpane/tailpane.log
//   - log_level: info (trace, debug, info, error)
//   - backend: tea (tea or tcell)
//
// # TOML Format
//
//	name = "build"
//	backlog = 10000
//	show_title = true
//	save_dir = "~/logs"
//	refresh_ms = 100
//	files = ["/var/log/syslog"]
//	exec = "make test"
//
// Every field is optional. Tilde expansion is performed on path fields.
//
// # Reloading
//
// Watch reloads the file whenever it is written or replaced and hands the
// new Config to a callback. The app uses it to change the backlog cap of a
// running panel. Files that fail to load are logged and skipped.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Unknown log_level or backend values
package config
