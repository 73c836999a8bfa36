// Package scroll tracks which slice of a panel's wrapped lines is visible and
// whether the view is following the tail of the log.
//
// A State has two logical modes. It is Following while the bottom of the
// visible window sits on the last wrapped line, and Pinned otherwise. The mode
// is never stored: Follow derives it from the window every time, so navigating
// back to the tail re-enters Following without any flag being toggled.
package scroll

// State is the scroll window over the wrapped lines of one panel. The zero
// value is an empty, Following window.
//
// Invariant: 0 <= top <= bottom <= total and bottom-top <= height.
type State struct {
	top    int
	bottom int
	total  int
	height int
}

// Top returns the index of the first visible wrapped line.
func (s State) Top() int { return s.top }

// Bottom returns the index one past the last visible wrapped line.
func (s State) Bottom() int { return s.bottom }

// Total returns the wrapped line count from the last layout.
func (s State) Total() int { return s.total }

// Height returns the rows available for content from the last layout.
func (s State) Height() int { return s.height }

// Window returns the visible range [top, bottom).
func (s State) Window() (top, bottom int) { return s.top, s.bottom }

// Follow reports whether the window shows the tail. Content shorter than
// the viewport is always followed.
func (s State) Follow() bool { return s.bottom == s.total }

// Recompute applies the per-draw transition rule with the current viewport
// height and wrapped line count: the bottom is min(top+height, total) and the
// window is Following exactly when that bottom is the last line. top is only
// clamped into the content; nothing here moves the window toward the tail.
func (s *State) Recompute(height, total int) {
	s.height = max(0, height)
	s.total = max(0, total)
	s.top = min(max(0, s.top), s.total)
	s.bottom = min(s.top+s.height, s.total)
}

// SnapToTail moves the window to the end of total wrapped lines. The panel
// calls it after appending while Following.
func (s *State) SnapToTail(total int) {
	s.total = max(0, total)
	s.bottom = s.total
	s.top = max(0, s.bottom-s.height)
}

// SetTop moves the window to start at top, clamped to the content. It
// reports whether the window moved so the caller can request a redraw.
func (s *State) SetTop(top int) bool {
	top = min(max(0, top), s.total)
	if top == s.top {
		return false
	}
	s.top = top
	s.bottom = min(s.top+s.height, s.total)
	return true
}
