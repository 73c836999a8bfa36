package termui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/five82/tailpane/internal/panel"
	"github.com/five82/tailpane/internal/scroll"
)

func newTestApp(t *testing.T, w, h int) (*App, tcell.SimulationScreen, string) {
	t.Helper()
	dir := t.TempDir()
	screen := tcell.NewSimulationScreen("")
	p := panel.New("build", panel.Options{
		Backlog:   100,
		ShowTitle: true,
		SaveDir:   dir,
		Clock:     func() time.Time { return time.Unix(1700000000, 0) },
	})
	app, err := New(Options{Panel: p, Screen: screen, Refresh: 10 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return app, screen, dir
}

func rowText(screen tcell.Screen, row int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, _, _, _ := screen.GetContent(x, row)
		if mainc == 0 {
			mainc = ' '
		}
		b.WriteRune(mainc)
	}
	return strings.TrimRight(b.String(), " ")
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func fill(app *App, n int) {
	for i := 0; i < n; i++ {
		app.panel.Enqueue(fmt.Sprintf("line %d", i))
	}
	app.handle(tcell.NewEventInterrupt(flush{}))
}

func TestNew_RequiresPanel(t *testing.T) {
	_, err := New(Options{Screen: tcell.NewSimulationScreen("")})
	require.Error(t, err)
}

func TestInterruptFlushesAndDraws(t *testing.T) {
	app, screen, _ := newTestApp(t, 20, 4)
	app.draw()
	fill(app, 10)

	require.Equal(t, "build s: save log", rowText(screen, 0))
	require.True(t, strings.HasSuffix(rowText(screen, 3), "line 9"))
	require.True(t, app.panel.Follow())
}

func TestKeysScrollAndPin(t *testing.T) {
	app, screen, _ := newTestApp(t, 20, 4)
	app.draw()
	fill(app, 10)

	app.handle(runeKey('g'))
	require.False(t, app.panel.Follow())
	require.True(t, strings.HasSuffix(rowText(screen, 1), "line 0"))

	fill(app, 3)
	require.True(t, strings.HasSuffix(rowText(screen, 1), "line 0"), "pinned view moved")

	app.handle(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	require.True(t, app.panel.Follow())
}

func TestToggleTitle(t *testing.T) {
	app, screen, _ := newTestApp(t, 20, 4)
	app.draw()
	fill(app, 2)

	app.handle(runeKey('t'))
	require.False(t, app.panel.TitleVisible())
	require.True(t, strings.HasSuffix(rowText(screen, 0), "line 0"))
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		runeKey('q'),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
	} {
		app, _, _ := newTestApp(t, 20, 4)
		app.handle(ev)
		require.True(t, app.stopped, "key %v should quit", ev.Name())
	}
}

func TestSave_AcceptsDefault(t *testing.T) {
	app, screen, dir := newTestApp(t, 40, 6)
	app.draw()
	fill(app, 3)

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	app.handle(runeKey('s'))

	data, err := os.ReadFile(filepath.Join(dir, "build-1700000000.log"))
	require.NoError(t, err)
	require.Equal(t, "line 0\nline 1\nline 2\n", string(data))

	lines := app.panel.Lines()
	require.Equal(t, "Log saved to "+filepath.Join(dir, "build-1700000000.log"), lines[len(lines)-1])
}

func TestSave_EditAnswer(t *testing.T) {
	app, screen, dir := newTestApp(t, 40, 6)
	fill(app, 1)

	// Clear the default, type a relative name, then confirm.
	events := []tcell.Event{tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl)}
	target := filepath.Join(dir, "x.log")
	for _, r := range target {
		events = append(events, runeKey(r))
	}
	events = append(events, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, ev := range events {
			for screen.PostEvent(ev) != nil {
				time.Sleep(time.Millisecond)
			}
		}
	}()
	app.handle(runeKey('s'))
	<-done

	_, err := os.Stat(target)
	require.NoError(t, err)
}

func TestSave_EscapeCancels(t *testing.T) {
	app, screen, dir := newTestApp(t, 40, 6)
	fill(app, 2)

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	app.handle(runeKey('s'))

	require.False(t, app.stopped, "escape in the prompt must not quit")
	require.Equal(t, 2, app.panel.Len())
	_, err := os.Stat(filepath.Join(dir, "build-1700000000.log"))
	require.True(t, os.IsNotExist(err))
}

func TestSave_FailureShowsNotice(t *testing.T) {
	app, screen, dir := newTestApp(t, 60, 6)
	app.draw()
	fill(app, 2)

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	events := []tcell.Event{tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl)}
	for _, r := range filepath.Join(blocker, "out.log") {
		events = append(events, runeKey(r))
	}
	events = append(events, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	go func() {
		for _, ev := range events {
			for screen.PostEvent(ev) != nil {
				time.Sleep(time.Millisecond)
			}
		}
	}()
	app.handle(runeKey('s'))

	require.Equal(t, 2, app.panel.Len(), "failed save must not touch the panel")
	require.True(t, strings.HasPrefix(rowText(screen, 5), "Save failed"))

	app.handle(runeKey('j'))
	require.Empty(t, app.notice)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	screen := tcell.NewSimulationScreen("")
	p := panel.New("build", panel.Options{ShowTitle: true})
	app, err := New(Options{Context: ctx, Panel: p, Screen: screen, Refresh: 5 * time.Millisecond})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	p.Enqueue("hello")
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_QuitKey(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	p := panel.New("build", panel.Options{})
	app, err := New(Options{Panel: p, Screen: screen})
	require.NoError(t, err)
	require.NoError(t, screen.PostEvent(runeKey('q')))

	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want scroll.Action
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), scroll.LineUp},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), scroll.LineDown},
		{tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), scroll.PageUp},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), scroll.PageDown},
		{tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), scroll.Home},
		{tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone), scroll.End},
		{runeKey('k'), scroll.LineUp},
		{runeKey('j'), scroll.LineDown},
		{runeKey(' '), scroll.PageDown},
		{runeKey('G'), scroll.End},
		{runeKey('s'), scroll.None},
		{tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModAlt), scroll.None},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, keyAction(tt.ev), tt.ev.Name())
	}
}

var tcellKeys = map[string]tcell.Key{
	"up":     tcell.KeyUp,
	"down":   tcell.KeyDown,
	"pgup":   tcell.KeyPgUp,
	"pgdown": tcell.KeyPgDn,
	"home":   tcell.KeyHome,
	"end":    tcell.KeyEnd,
	"ctrl+u": tcell.KeyCtrlU,
	"ctrl+d": tcell.KeyCtrlD,
}

func TestKeyAction_CoversSharedKeys(t *testing.T) {
	for action, names := range scroll.Keys {
		for _, name := range names {
			var ev *tcell.EventKey
			if k, ok := tcellKeys[name]; ok {
				mod := tcell.ModNone
				if strings.HasPrefix(name, "ctrl+") {
					mod = tcell.ModCtrl
				}
				ev = tcell.NewEventKey(k, 0, mod)
			} else {
				runes := []rune(name)
				require.Len(t, runes, 1, "no tcell event for key %q", name)
				ev = runeKey(runes[0])
			}
			require.Equal(t, action, keyAction(ev), "key %q", name)
		}
	}
}

func TestClearKey(t *testing.T) {
	app, screen, _ := newTestApp(t, 20, 4)
	app.draw()
	fill(app, 10)
	app.handle(runeKey('g'))
	require.False(t, app.panel.Follow())

	app.handle(runeKey('c'))
	require.Equal(t, 0, app.panel.Len())
	require.True(t, app.panel.Follow())
	require.Equal(t, "", rowText(screen, 1))

	fill(app, 5)
	require.True(t, strings.HasSuffix(rowText(screen, 3), "line 4"))
}
