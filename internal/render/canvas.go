package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	r    rune
	attr Attr
	// cont marks the right half of a wide rune.
	cont bool
}

// Canvas is an in-memory Surface. The bubbletea front-end draws a frame into
// it and returns String from View.
type Canvas struct {
	width  int
	height int
	cells  [][]cell

	standout lipgloss.Style
}

// NewCanvas returns a blank canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{standout: lipgloss.NewStyle().Reverse(true)}
	c.Resize(width, height)
	return c
}

// SetStandoutStyle replaces the style used for Standout runs.
func (c *Canvas) SetStandoutStyle(style lipgloss.Style) {
	c.standout = style
}

// Size implements Surface.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(width, height int) {
	c.width = max(0, width)
	c.height = max(0, height)
	c.cells = make([][]cell, c.height)
	for i := range c.cells {
		c.cells[i] = make([]cell, c.width)
	}
	c.Clear()
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = cell{r: ' '}
		}
	}
}

// PlaceText implements Surface. Text running past the right edge is clipped
// and a wide rune that does not fit is dropped.
func (c *Canvas) PlaceText(row, col int, text string, attr Attr) {
	if row < 0 || row >= c.height || col < 0 {
		return
	}
	line := c.cells[row]
	x := col
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.width {
			return
		}
		c.split(line, x)
		if w == 2 {
			c.split(line, x+1)
			line[x+1] = cell{attr: attr, cont: true}
		}
		line[x] = cell{r: r, attr: attr}
		x += w
	}
}

// split blanks any wide rune that straddles x so overwriting half of it does
// not leave the other half behind.
func (c *Canvas) split(line []cell, x int) {
	if line[x].cont && x > 0 {
		line[x-1] = cell{r: ' ', attr: line[x-1].attr}
	}
	if x+1 < len(line) && line[x+1].cont {
		line[x+1] = cell{r: ' ', attr: line[x+1].attr}
	}
}

// Line returns row as plain text without attributes.
func (c *Canvas) Line(row int) string {
	if row < 0 || row >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.cells[row] {
		if !cl.cont {
			b.WriteRune(cl.r)
		}
	}
	return b.String()
}

// Lines returns every row as plain text.
func (c *Canvas) Lines() []string {
	out := make([]string, c.height)
	for i := range out {
		out[i] = c.Line(i)
	}
	return out
}

// AttrAt returns the attribute of the cell at row, col.
func (c *Canvas) AttrAt(row, col int) Attr {
	if row < 0 || row >= c.height || col < 0 || col >= c.width {
		return Normal
	}
	return c.cells[row][col].attr
}

// String renders the canvas with Standout runs styled.
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for i, line := range c.cells {
		var b, run strings.Builder
		runAttr := Normal
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runAttr == Standout {
				b.WriteString(c.standout.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range line {
			if cl.cont {
				continue
			}
			if cl.attr != runAttr {
				flush()
				runAttr = cl.attr
			}
			run.WriteRune(cl.r)
		}
		flush()
		rows[i] = b.String()
	}
	return strings.Join(rows, "\n")
}
