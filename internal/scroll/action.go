package scroll

// Action is a navigation request decoded from a key press.
type Action int

const (
	None Action = iota
	LineUp
	LineDown
	HalfPageUp
	HalfPageDown
	PageUp
	PageDown
	Home
	End
)

var actionNames = map[Action]string{
	None:         "none",
	LineUp:       "line-up",
	LineDown:     "line-down",
	HalfPageUp:   "half-page-up",
	HalfPageDown: "half-page-down",
	PageUp:       "page-up",
	PageDown:     "page-down",
	Home:         "home",
	End:          "end",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// NewTop returns the top index after applying a to a window starting at top
// over total wrapped lines with height visible rows. The result is clamped so
// the window never scrolls past the last full page.
func NewTop(a Action, top, height, total int) int {
	height = max(0, height)
	page := max(1, height)
	half := max(1, height/2)

	switch a {
	case LineUp:
		top--
	case LineDown:
		top++
	case HalfPageUp:
		top -= half
	case HalfPageDown:
		top += half
	case PageUp:
		top -= page
	case PageDown:
		top += page
	case Home:
		top = 0
	case End:
		top = total
	}
	return min(max(0, top), max(0, total-height))
}
