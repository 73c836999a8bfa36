package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/five82/tailpane/internal/panel"
	"github.com/five82/tailpane/internal/prefs"
	"github.com/five82/tailpane/internal/render"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Panel   *panel.ScrollPanel
	// Refresh is the interval at which queued input is flushed even when no
	// enqueue signal arrives.
	Refresh   time.Duration
	ThemeName string
	PrefsPath string
	// InputTTY reads keys from the terminal instead of stdin, for when
	// stdin is a piped log.
	InputTTY bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	panel     *panel.ScrollPanel
	prefsPath string
	refresh   time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	canvas *render.Canvas
	width  int
	height int
	ready  bool

	// Help overlay
	showHelp bool

	// Save prompt
	saving    bool
	saveInput textinput.Model

	// Status line message from the last save.
	status    string
	statusErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = 250 * time.Millisecond
	}

	p := opts.Panel
	if p == nil {
		p = panel.New("tailpane", panel.Options{ShowTitle: true})
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)
	canvas := render.NewCanvas(0, 0)
	canvas.SetStandoutStyle(theme.Styles().Standout)

	return Model{
		ctx:       ctx,
		panel:     p,
		prefsPath: prefsPath,
		refresh:   refresh,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		canvas:    canvas,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.refresh),
		waitForInput(m.ctx, m.panel.Queue().Notify()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.Resize(m.width, m.contentHeight())
		m.help.Width = m.width
		m.saveInput.Width = m.promptWidth()
		m.ready = true
		return m, nil

	case tickMsg:
		m.panel.Flush()
		return m, tickCmd(m.refresh)

	case inputMsg:
		m.panel.Flush()
		return m, waitForInput(m.ctx, m.panel.Queue().Notify())

	case stopMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.saving {
		return m.renderSavePrompt()
	}

	m.canvas.Clear()
	m.panel.Draw(m.canvas)

	var b strings.Builder
	b.WriteString(m.canvas.String())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// Panel returns the panel the model draws.
func (m Model) Panel() *panel.ScrollPanel {
	return m.panel
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Handle help overlay
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.saving {
		return m.handleSaveKey(msg)
	}

	if m.panel.HandleKey(m.keys.Action(msg)) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.canvas.SetStandoutStyle(m.theme.Styles().Standout)
		if m.prefsPath != "" {
			name := m.theme.Name
			if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
				pslog.Ctx(m.ctx).Warn("save theme preference failed", "err", err)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleTitle):
		m.panel.SetTitleVisible(!m.panel.TitleVisible())
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.openSavePrompt()

	case key.Matches(msg, m.keys.Clear):
		m.panel.Clear()
		return m, nil
	}

	return m, nil
}

// contentHeight is the number of rows left for the panel under the status
// line.
func (m Model) contentHeight() int {
	return max(0, m.height-1)
}

// Messages

type tickMsg time.Time

// inputMsg signals that producers enqueued text.
type inputMsg struct{}

// stopMsg is sent once the model's context is done.
type stopMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForInput(ctx context.Context, notify <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-notify:
			return inputMsg{}
		case <-ctx.Done():
			return stopMsg{}
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	return err
}
