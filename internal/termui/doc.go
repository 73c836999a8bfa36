// Package termui runs a log panel directly on a tcell screen.
//
// One event loop owns the panel. Producers wake it through interrupt events,
// and a frame is pushed to the terminal only when the panel asks for a
// redraw.
package termui
