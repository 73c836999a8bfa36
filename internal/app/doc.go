// Package app provides the orchestration layer for tailpane.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the
// producers and one of the two front ends. It is the composition root where
// every dependency is created and connected.
//
// # Startup
//
//  1. Load ~/.config/tailpane/config.toml and apply command line overrides
//  2. Open the structured log file; the terminal belongs to the UI
//  3. Load preferences (theme, last save directory)
//  4. Create the panel
//  5. Start the producers and, optionally, the config watcher
//  6. Run the Bubble Tea or tcell front end until the user quits
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config, apply flags
//	       ├─────> newFileLogger()      pslog into the log file
//	       ├─────> panel.New()          Backlog, queue, scroll state
//	       ├─────> StartSources()       stdin, files, command (background)
//	       ├─────> StartConfigWatch()   Backlog reload (background)
//	       └─────> ui.Run / termui.Run  Front end (blocks)
//
//	Producers                          Front end goroutine
//	┌─────────────────────┐            ┌──────────────────────────┐
//	│ source.RunAll()     │  Enqueue   │ tick / notify            │
//	│  ├─> Reader         │ ─────────> │  └─> panel.Flush()       │
//	│  ├─> File           │   queue    │ draw                     │
//	│  └─> Command        │            │  └─> panel.Draw(surface) │
//	└─────────────────────┘            └──────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration or flag values
//   - The log file cannot be opened
//   - The front end fails to start
//
// Recoverable errors (logged, the UI keeps running):
//   - A producer fails; its error is also shown in the panel
//   - The config file cannot be watched or reloaded
package app
