// Package backlog holds the ordered, size-capped sequence of logical log
// lines shown by a scroll panel.
//
// A Buffer is not safe for concurrent use. It is owned by the single consumer
// that draws the panel; producers hand lines over through the ingest queue.
package backlog

import "strings"

// Buffer is an ordered list of logical lines with an optional cap. Once the
// cap is exceeded the oldest lines are evicted first.
type Buffer struct {
	lines   []string
	limit   int
	version uint64
}

// New returns a Buffer that keeps at most limit lines. A limit of zero or
// less never evicts.
func New(limit int) *Buffer {
	return &Buffer{limit: limit}
}

// Append splits text on line breaks and adds each piece in order, evicting
// the oldest lines while the buffer is over its cap. It returns the number of
// logical lines added.
func (b *Buffer) Append(text string) int {
	parts := SplitLines(text)
	b.lines = append(b.lines, parts...)
	b.evict()
	b.version++
	return len(parts)
}

// Snapshot returns a copy of the current lines. Later appends and evictions
// are not visible through the returned slice.
func (b *Buffer) Snapshot() []string {
	if len(b.lines) == 0 {
		return nil
	}
	dup := make([]string, len(b.lines))
	copy(dup, b.lines)
	return dup
}

// At returns the line at index i. It panics if i is out of range.
func (b *Buffer) At(i int) string {
	return b.lines[i]
}

// Each calls fn for every line in order until fn returns false.
func (b *Buffer) Each(fn func(i int, line string) bool) {
	for i, line := range b.lines {
		if !fn(i, line) {
			return
		}
	}
}

// Len returns the number of lines held.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Cap returns the configured line cap; zero or less means unbounded.
func (b *Buffer) Cap() int {
	return b.limit
}

// SetCap changes the line cap and evicts immediately if needed.
func (b *Buffer) SetCap(limit int) {
	b.limit = limit
	if b.evict() {
		b.version++
	}
}

// Version increases on every mutation. Callers use it to invalidate layouts
// derived from the buffer.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Clear drops every line.
func (b *Buffer) Clear() {
	b.lines = nil
	b.version++
}

// evict drops the oldest lines until the cap holds. Evicted slots are zeroed
// so the strings are collectable before append next reallocates the array.
func (b *Buffer) evict() bool {
	if b.limit <= 0 {
		return false
	}
	overflow := len(b.lines) - b.limit
	if overflow <= 0 {
		return false
	}
	clear(b.lines[:overflow])
	b.lines = b.lines[overflow:]
	return true
}

// SplitLines breaks text into logical lines. "\r\n" counts as one break and a
// single trailing break does not produce an extra empty line, so "a\n" is one
// line while "" is one empty line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
