// Package ui renders a log panel with Bubble Tea.
//
// The Model owns the panel: producers only enqueue, while Update flushes the
// queue and View lays the backlog out onto a render.Canvas. Saving is done
// synchronously inside Update so the backlog is never read from another
// goroutine.
package ui
