package termui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/five82/tailpane/internal/render"
)

const promptMark = "> "

// Prompt implements panel.Prompter. It takes over the screen and runs a
// nested event loop until the answer is confirmed or cancelled. Producer
// wake-ups are left queued; a stop request cancels the prompt.
func (a *App) Prompt(query, initial string) (string, bool) {
	answer := []rune(initial)
	defer a.screen.HideCursor()

	for {
		a.drawPrompt(query, string(answer))

		ev := a.screen.PollEvent()
		if ev == nil {
			a.stopped = true
			return "", false
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(stop); ok {
				a.stopped = true
				return "", false
			}

		case *tcell.EventResize:
			a.screen.Sync()

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				return string(answer), true
			case tcell.KeyEscape:
				return "", false
			case tcell.KeyCtrlC:
				a.stopped = true
				return "", false
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(answer) > 0 {
					answer = answer[:len(answer)-1]
				}
			case tcell.KeyCtrlU:
				answer = answer[:0]
			case tcell.KeyRune:
				answer = append(answer, ev.Rune())
			}
		}
	}
}

// drawPrompt shows the query on the first row and the answer below it. A
// long answer scrolls so its end stays visible.
func (a *App) drawPrompt(query, answer string) {
	a.surface.Clear()
	width, height := a.surface.Size()
	if width <= 0 || height <= 0 {
		a.screen.Show()
		return
	}

	a.surface.PlaceText(0, 0, query, render.Standout)
	row := min(1, height-1)

	room := width - runewidth.StringWidth(promptMark) - 1
	shown := answer
	if room > 0 && runewidth.StringWidth(shown) > room {
		shown = runewidth.TruncateLeft(shown, runewidth.StringWidth(shown)-room, "")
	}
	a.surface.PlaceText(row, 0, promptMark+shown, render.Normal)
	a.screen.ShowCursor(min(width-1, runewidth.StringWidth(promptMark+shown)), row)
	a.screen.Show()
}
