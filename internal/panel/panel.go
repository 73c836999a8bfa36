package panel

import (
	"sync/atomic"
	"time"

	"github.com/five82/tailpane/internal/backlog"
	"github.com/five82/tailpane/internal/ingest"
	"github.com/five82/tailpane/internal/render"
	"github.com/five82/tailpane/internal/scroll"
)

// SaveHint is shown after the panel name on the title row.
const SaveHint = "s: save log"

// Options configures a ScrollPanel.
type Options struct {
	// Backlog caps the number of logical lines kept. Zero or less keeps
	// everything.
	Backlog   int
	ShowTitle bool
	// SaveDir is the directory DefaultSavePath points into.
	SaveDir string
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// ScrollPanel is a scrollable, tail-following view over a capped log.
//
// Only Enqueue, Queue and RequestBacklog may be used from producer goroutines. Every other
// method belongs to the goroutine that draws the panel.
type ScrollPanel struct {
	name      string
	showTitle bool
	saveDir   string
	clock     func() time.Time

	buf    *backlog.Buffer
	queue  *ingest.Queue
	state  scroll.State
	layout layout
	redraw bool
	// tailPending records a follow snap made before the first layout, when
	// the wrapped tail was still unknown.
	tailPending bool

	// pendingCap holds a backlog limit requested from another goroutine
	// until the next Flush applies it.
	pendingCap atomic.Pointer[int]
}

// New returns an empty panel.
func New(name string, opts Options) *ScrollPanel {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &ScrollPanel{
		name:      name,
		showTitle: opts.ShowTitle,
		saveDir:   opts.SaveDir,
		clock:     clock,
		buf:       backlog.New(opts.Backlog),
		queue:     ingest.NewQueue(),
	}
}

// Name returns the panel name shown on the title row.
func (p *ScrollPanel) Name() string { return p.name }

// Queue returns the hand-off queue producers write to.
func (p *ScrollPanel) Queue() *ingest.Queue { return p.queue }

// Enqueue hands text to the panel from any goroutine. It shows up after the
// next Flush.
func (p *ScrollPanel) Enqueue(text string) {
	p.queue.Enqueue(text)
}

// Append adds text to the backlog, one entry per line. While the panel is
// following, the window moves so the new tail is visible.
func (p *ScrollPanel) Append(text string) {
	fresh := p.layout.current(p.buf)
	added := p.buf.Append(text)
	if fresh {
		p.layout.extend(p.buf, added)
	}
	if p.state.Follow() {
		p.snap()
	}
	p.redraw = true
}

// Flush moves everything producers enqueued into the backlog and returns how
// many payloads it appended.
func (p *ScrollPanel) Flush() int {
	if limit := p.pendingCap.Swap(nil); limit != nil {
		p.SetBacklog(*limit)
	}
	return p.queue.Drain(p.Append)
}

// Lines returns a copy of the logical lines.
func (p *ScrollPanel) Lines() []string {
	return p.buf.Snapshot()
}

// Len returns the number of logical lines held.
func (p *ScrollPanel) Len() int {
	return p.buf.Len()
}

// SetBacklog changes the line cap, evicting at once if needed.
func (p *ScrollPanel) SetBacklog(limit int) {
	before := p.buf.Version()
	p.buf.SetCap(limit)
	if p.buf.Version() == before {
		return
	}
	if p.state.Follow() {
		p.snap()
	}
	p.redraw = true
}

// Clear drops every line and resumes following.
func (p *ScrollPanel) Clear() {
	p.buf.Clear()
	p.snap()
	p.redraw = true
}

// RequestBacklog asks for a new line cap from any goroutine. It takes
// effect on the next Flush; later requests replace earlier ones.
func (p *ScrollPanel) RequestBacklog(limit int) {
	p.pendingCap.Store(&limit)
}

// Backlog returns the current line cap.
func (p *ScrollPanel) Backlog() int {
	return p.buf.Cap()
}

// State returns the scroll window from the last layout.
func (p *ScrollPanel) State() scroll.State {
	return p.state
}

// Follow reports whether the panel is tracking the tail.
func (p *ScrollPanel) Follow() bool {
	return p.state.Follow()
}

// TitleVisible reports whether the title row is drawn.
func (p *ScrollPanel) TitleVisible() bool {
	return p.showTitle
}

// SetTitleVisible shows or hides the title row.
func (p *ScrollPanel) SetTitleVisible(visible bool) {
	if p.showTitle != visible {
		p.showTitle = visible
		p.redraw = true
	}
}

// HandleKey applies a navigation action. It reports whether the action was a
// scroll action at all; a redraw is requested only when the window moved.
func (p *ScrollPanel) HandleKey(a scroll.Action) bool {
	if a == scroll.None {
		return false
	}
	top, _ := p.state.Window()
	next := scroll.NewTop(a, top, p.state.Height(), p.state.Total())
	if next != top && p.state.SetTop(next) {
		p.redraw = true
	}
	return true
}

// TakeRedraw reports whether the panel changed since the last call.
func (p *ScrollPanel) TakeRedraw() bool {
	r := p.redraw
	p.redraw = false
	return r
}

// Draw flushes pending input, lays the backlog out for s and draws the
// visible window.
func (p *ScrollPanel) Draw(s render.Surface) {
	p.Flush()

	width, height := s.Size()
	lines := p.layout.ensure(p.buf, render.ContentWidth(width))
	p.state.Recompute(height-render.TitleRows(p.showTitle), len(lines))
	if p.tailPending {
		p.tailPending = false
		p.state.SnapToTail(len(lines))
	}

	top, bottom := p.state.Window()
	render.Draw(s, render.Frame{
		Name:      p.name,
		Hint:      SaveHint,
		ShowTitle: p.showTitle,
		Lines:     lines,
		Top:       top,
		Bottom:    bottom,
		Total:     len(lines),
	})
	p.redraw = false
}

// snap moves a following window to the current tail. Before the first draw
// the width is unknown, so the snap is repeated by Draw once it is.
func (p *ScrollPanel) snap() {
	if !p.layout.ready {
		p.tailPending = true
		p.state.SnapToTail(0)
		return
	}
	p.state.SnapToTail(len(p.layout.ensure(p.buf, p.layout.width)))
}
