// Package render projects the visible window of a scroll panel onto a text
// grid.
//
// The driver knows nothing about terminals. It asks a Surface for its size
// and places strings at row/column positions with one of two attributes.
// Canvas backs the bubbletea front-end and the tests; TcellSurface backs the
// tcell front-end.
//
// # Layout
//
//	row 0        name (standout) + hint          when the title is shown
//	col 0        scrollbar thumb (standout)
//	col 1        scrollbar box line
//	col 3..w-1   wrapped content, padded to ContentWidth(w)
package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/five82/tailpane/internal/textwrap"
)

// Attr is a display attribute for placed text.
type Attr int

const (
	Normal Attr = iota
	Standout
)

// ContentColumn is the first column used for log content.
const ContentColumn = 3

const boxLine = "│"

// Surface is the text grid a Frame is drawn onto.
type Surface interface {
	Size() (width, height int)
	PlaceText(row, col int, text string, attr Attr)
}

// Frame is everything Draw needs for one pass. Lines holds the full wrapped
// sequence; only Lines[Top:Bottom] is placed.
type Frame struct {
	Name      string
	Hint      string
	ShowTitle bool
	Lines     []string
	Top       int
	Bottom    int
	Total     int
}

// ContentWidth returns the cells available for content on a surface w cells
// wide. Wrapping and padding both use it so the two never disagree.
func ContentWidth(w int) int {
	return max(0, w-ContentColumn)
}

// TitleRows returns how many rows the title takes.
func TitleRows(showTitle bool) int {
	if showTitle {
		return 1
	}
	return 0
}

// Draw places f onto s. Nothing is drawn when there is no content.
func Draw(s Surface, f Frame) {
	if f.Total <= 0 {
		return
	}
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}

	row := 0
	if f.ShowTitle {
		s.PlaceText(row, 0, f.Name, Standout)
		if f.Hint != "" {
			s.PlaceText(row, runewidth.StringWidth(f.Name)+1, f.Hint, Normal)
		}
		row++
	}

	rows := height - row
	if rows <= 0 {
		return
	}
	drawScrollBar(s, row, rows, f.Top, f.Bottom, f.Total)

	contentWidth := ContentWidth(width)
	if contentWidth == 0 {
		return
	}
	top := min(max(0, f.Top), len(f.Lines))
	bottom := min(max(top, f.Bottom), len(f.Lines), top+rows)
	for _, line := range f.Lines[top:bottom] {
		s.PlaceText(row, ContentColumn, textwrap.Pad(line, contentWidth), Normal)
		row++
	}
}

// Thumb returns the first row and the size of the scrollbar thumb for the
// window [top, bottom) over total lines drawn in rows rows. The thumb is at
// least one row tall and reaches the last row once bottom == total.
func Thumb(top, bottom, total, rows int) (start, size int) {
	if rows <= 0 || total <= 0 {
		return 0, 0
	}
	top = min(max(0, top), total)
	bottom = min(max(top, bottom), total)

	start = top * rows / total
	end := (bottom*rows + total - 1) / total
	if end <= start {
		end = start + 1
	}
	if end > rows {
		end = rows
		start = min(start, rows-1)
	}
	return start, end - start
}

func drawScrollBar(s Surface, first, rows, top, bottom, total int) {
	start, size := Thumb(top, bottom, total, rows)
	for i := 0; i < rows; i++ {
		if i >= start && i < start+size {
			s.PlaceText(first+i, 0, " ", Standout)
		}
		s.PlaceText(first+i, 1, boxLine, Normal)
	}
}
