package panel

import (
	"slices"

	"github.com/five82/tailpane/internal/backlog"
	"github.com/five82/tailpane/internal/textwrap"
)

// layout caches the wrapped form of a buffer at one width. counts holds the
// number of wrapped lines each logical line produced so evictions can drop
// the matching prefix of lines.
type layout struct {
	ready   bool
	width   int
	version uint64
	lines   []string
	counts  []int
}

func (l *layout) current(buf *backlog.Buffer) bool {
	return l.ready && l.version == buf.Version()
}

// ensure returns the wrapped lines of buf at width, rebuilding only when the
// width or the buffer changed since the last call.
func (l *layout) ensure(buf *backlog.Buffer, width int) []string {
	if l.current(buf) && l.width == width {
		return l.lines
	}
	l.width = width
	l.lines = l.lines[:0]
	l.counts = l.counts[:0]
	buf.Each(func(_ int, line string) bool {
		l.add(line)
		return true
	})
	l.version = buf.Version()
	l.ready = true
	return l.lines
}

// extend brings a layout that was current before an append up to date.
// added is the count returned by Buffer.Append.
func (l *layout) extend(buf *backlog.Buffer, added int) {
	for i := max(0, buf.Len()-added); i < buf.Len(); i++ {
		l.add(buf.At(i))
	}
	drop, n := 0, 0
	for len(l.counts)-n > buf.Len() {
		drop += l.counts[n]
		n++
	}
	if n > 0 {
		clear(l.lines[:drop])
		l.lines = l.lines[drop:]
		l.counts = l.counts[n:]
	}
	l.version = buf.Version()
}

func (l *layout) add(line string) {
	n := textwrap.Count(line, l.width)
	l.lines = slices.Grow(l.lines, n)
	for w := range textwrap.Wrap(line, l.width) {
		l.lines = append(l.lines, w)
	}
	l.counts = append(l.counts, n)
}
