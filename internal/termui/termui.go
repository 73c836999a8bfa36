package termui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"pkt.systems/pslog"

	"github.com/five82/tailpane/internal/panel"
	"github.com/five82/tailpane/internal/render"
	"github.com/five82/tailpane/internal/scroll"
)

// Options configures the tcell front end.
type Options struct {
	Context context.Context
	Panel   *panel.ScrollPanel
	// Refresh is the interval at which queued input is flushed even when no
	// enqueue signal arrives.
	Refresh time.Duration
	// Screen defaults to the terminal.
	Screen tcell.Screen
}

// stop is posted as interrupt data once the context is done.
type stop struct{}

// flush is posted as interrupt data when producers enqueued text.
type flush struct{}

// App drives one panel on a tcell screen.
type App struct {
	ctx     context.Context
	panel   *panel.ScrollPanel
	refresh time.Duration
	screen  tcell.Screen
	surface *render.TcellSurface
	stopped bool
	// notice overlays the last row until the next key press.
	notice string
}

// New initialises the screen and returns an App ready to Run.
func New(opts Options) (*App, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = 250 * time.Millisecond
	}
	if opts.Panel == nil {
		return nil, fmt.Errorf("termui: panel is required")
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()

	return &App{
		ctx:     ctx,
		panel:   opts.Panel,
		refresh: refresh,
		screen:  screen,
		surface: render.NewTcellSurface(screen),
	}, nil
}

// Run starts the tcell front end and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	app, err := New(opts)
	if err != nil {
		return err
	}
	return app.Run()
}

// Run processes events until quit. The screen is finalised on return.
func (a *App) Run() error {
	defer a.screen.Fini()

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	go a.pump(ctx)

	a.draw()
	for !a.stopped {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.handle(ev)
	}
	return nil
}

// pump turns enqueue signals and the refresh ticker into interrupt events so
// the event loop stays the only goroutine touching the panel.
func (a *App) pump(ctx context.Context) {
	ticker := time.NewTicker(a.refresh)
	defer ticker.Stop()
	notify := a.panel.Queue().Notify()
	for {
		select {
		case <-ctx.Done():
			if a.ctx.Err() != nil {
				_ = a.screen.PostEvent(tcell.NewEventInterrupt(stop{}))
			}
			return
		case <-notify:
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(flush{}))
		case <-ticker.C:
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(flush{}))
		}
	}
}

// handle applies one event to the panel.
func (a *App) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.draw()

	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(stop); ok {
			a.stopped = true
			return
		}
		a.panel.Flush()
		if a.panel.TakeRedraw() {
			a.draw()
		}

	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.notice != "" {
		a.notice = ""
		defer a.draw()
	}

	if a.panel.HandleKey(keyAction(ev)) {
		if a.panel.TakeRedraw() {
			a.draw()
		}
		return
	}

	switch {
	case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyEscape, isRune(ev, 'q'):
		a.stopped = true

	case isRune(ev, 's'):
		a.save()

	case isRune(ev, 't'):
		a.panel.SetTitleVisible(!a.panel.TitleVisible())
		a.draw()

	case isRune(ev, 'c'):
		a.panel.Clear()
		a.draw()
	}
}

func (a *App) save() {
	log := pslog.Ctx(a.ctx).With("panel", a.panel.Name())
	path, err := a.panel.SaveLog(a)
	switch {
	case err != nil:
		log.Error("save log failed", "err", err)
		a.notice = "Save failed: " + err.Error()
	case path != "":
		log.Info("log saved", "path", path, "lines", a.panel.Len())
	}
	a.draw()
}

func (a *App) draw() {
	a.surface.Clear()
	a.panel.Draw(a.surface)
	if a.notice != "" {
		if width, height := a.surface.Size(); height > 0 {
			a.surface.PlaceText(height-1, 0, runewidth.FillRight(a.notice, width), render.Standout)
		}
	}
	a.screen.Show()
}

func isRune(ev *tcell.EventKey, r rune) bool {
	return ev.Key() == tcell.KeyRune && ev.Rune() == r && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0
}

// keyAction maps a key event to a scroll action, or scroll.None.
func keyAction(ev *tcell.EventKey) scroll.Action {
	return scroll.ActionForKey(keyName(ev))
}

// keyName spells ev the way scroll.Keys names keys.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdown"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyCtrlU:
		return "ctrl+u"
	case tcell.KeyCtrlD:
		return "ctrl+d"
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			return string(ev.Rune())
		}
	}
	return ""
}
