// Package panel composes the backlog, the ingest queue and the scroll state
// into a ScrollPanel: the single-owner object a front-end draws and feeds key
// presses to.
//
// # Data flow
//
// Producers call Enqueue from any goroutine. The owner calls Flush (Draw does
// so first) to move queued payloads into the backlog through Append. Append
// splits payloads into logical lines, evicts the oldest lines over the cap and,
// while the panel follows the tail, snaps the scroll window to the new end.
//
// Draw wraps the backlog at the surface width, recomputes the scroll window
// for the surface height and hands the visible slice to the render package.
// The wrapped layout is cached per width and buffer version and extended in
// place on Append, so a following panel does not re-wrap the whole backlog
// for every new line.
//
// # Follow mode
//
// The panel follows the tail exactly when the bottom of its window is the
// last wrapped line. Scrolling up pins the window; scrolling back down to the
// last line follows again. Content shorter than the viewport is always
// followed. A draw never moves the window's top, so a smaller surface or a
// narrower re-wrap that leaves the tail out of view pins the panel.
//
// # Saving
//
// SaveLog asks a Prompter for a path and calls SaveTo, which appends every
// logical line to the file and then adds "Log saved to <path>" to the panel.
// On failure the error is returned and the panel is left untouched.
package panel
