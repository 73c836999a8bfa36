// Package textwrap breaks logical lines into display lines that fit a
// terminal column budget.
//
// Widths are measured in terminal cells, not bytes or runes: wide runes count
// as two cells and combining marks as zero. ANSI escape sequences are removed
// before measuring so colored producer output does not skew the layout; the
// raw text is left untouched in the backlog.
package textwrap

import (
	"iter"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

// Wrap returns the display lines of text at the given width. The sequence is
// lazy and can be ranged over any number of times. Empty text yields a single
// empty line so blank log lines keep their row; a non-positive width yields
// nothing.
func Wrap(text string, width int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if width <= 0 {
			return
		}
		clean := Sanitize(text)
		if clean == "" {
			yield("")
			return
		}

		var line strings.Builder
		cells := 0
		for _, r := range clean {
			w := runewidth.RuneWidth(r)
			if cells > 0 && cells+w > width {
				if !yield(line.String()) {
					return
				}
				line.Reset()
				cells = 0
			}
			line.WriteRune(r)
			cells += w
		}
		if line.Len() > 0 {
			yield(line.String())
		}
	}
}

// Count returns how many display lines Wrap produces for text at width.
func Count(text string, width int) int {
	n := 0
	for range Wrap(text, width) {
		n++
	}
	return n
}

// Pad returns text clamped or right-filled with spaces to exactly width cells.
func Pad(text string, width int) string {
	if width <= 0 {
		return ""
	}
	clean := Sanitize(text)
	if runewidth.StringWidth(clean) > width {
		clean = runewidth.Truncate(clean, width, "")
	}
	return runewidth.FillRight(clean, width)
}

// Sanitize strips escape sequences, expands tabs and drops the remaining
// control characters that would move the terminal cursor.
func Sanitize(text string) string {
	text = ansi.Strip(text)
	if !strings.ContainsFunc(text, isControl) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t':
			b.WriteString(strings.Repeat(" ", tabWidth))
		case isControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
