package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TcellSurface adapts a tcell screen to Surface. Standout is drawn in reverse
// video.
type TcellSurface struct {
	screen tcell.Screen
	normal tcell.Style
}

// NewTcellSurface wraps screen.
func NewTcellSurface(screen tcell.Screen) *TcellSurface {
	return &TcellSurface{screen: screen, normal: tcell.StyleDefault}
}

// Size implements Surface.
func (t *TcellSurface) Size() (int, int) {
	return t.screen.Size()
}

// PlaceText implements Surface.
func (t *TcellSurface) PlaceText(row, col int, text string, attr Attr) {
	style := t.normal
	if attr == Standout {
		style = style.Reverse(true)
	}
	width, height := t.screen.Size()
	if row < 0 || row >= height {
		return
	}
	x := col
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			return
		}
		t.screen.SetContent(x, row, r, nil, style)
		x += w
	}
}

// Clear blanks the screen before a frame is drawn.
func (t *TcellSurface) Clear() {
	t.screen.Clear()
}
