// Package tui is the terminal front end. It owns the element tree, feeds
// mouse input to the drag engine as element events and paints the board.
// Everything runs on bubbletea's Update goroutine, which is the single
// input goroutine the engine expects.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/jaskboard/internal/board"
	"github.com/jask/jaskboard/internal/dom"
	"github.com/jask/jaskboard/internal/drag"
	"github.com/jask/jaskboard/internal/notify"
)

// Options wires the front end.
type Options struct {
	Markers  board.Markers
	Strategy drag.Strategy
	// BoardPath is re-read on the reload key. Empty means the built-in board.
	BoardPath string
	Log       logrus.FieldLogger
	// Sink also receives every layout change, after the status line.
	Sink drag.Sink
}

// BoardReloadedMsg delivers a re-read board; the engine is rebuilt from it.
type BoardReloadedMsg struct {
	Spec board.Spec
	Err  error
}

// LayoutChangedMsg reports a finished drag.
type LayoutChangedMsg struct {
	Change drag.LayoutChange
}

type mouseState struct{ x, y int }

// App is the bubbletea model.
type App struct {
	opts      Options
	keys      keyMap
	spec      board.Spec
	doc       *dom.Document
	container *dom.Element
	engine    *drag.Engine
	changes   *notify.Recorder
	mouse     mouseState
	width     int
	height    int
	status    string
	statusErr bool
}

// New builds the element tree and engine for spec. A configuration error
// leaves the board visible but inert and is shown in the status line.
func New(spec board.Spec, opts Options) *App {
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}
	a := &App{opts: opts, keys: newKeyMap(), changes: &notify.Recorder{}}
	a.load(spec)
	return a
}

// load is the re-configuration path: the previous engine is closed and a
// fresh one is built over the new tree.
func (a *App) load(spec board.Spec) {
	a.Close()
	a.spec = spec
	a.doc = board.Build(spec, a.opts.Markers)
	board.Resize(a.doc, a.width, a.height)
	a.engine = nil
	a.container = nil

	container, err := board.Container(a.doc, a.opts.Markers.Container)
	if err != nil {
		a.fail(err)
		return
	}
	a.container = container
	for _, w := range board.Lint(a.doc, a.opts.Markers) {
		a.opts.Log.WithField("element", w.Element).Warn(w.Message)
	}

	opts := []drag.Option{
		drag.WithStrategy(a.opts.Strategy),
		drag.WithSink(a.changes),
		drag.WithLogger(a.opts.Log),
	}
	if a.opts.Markers.Handle != "" {
		opts = append(opts, drag.WithHandle(a.opts.Markers.Handle))
	}
	engine, err := drag.New(container, a.opts.Markers.Item, opts...)
	if err != nil {
		a.fail(err)
		return
	}
	a.engine = engine
	a.setStatus(fmt.Sprintf("%d draggable cards", engine.Registry().Len()), false)
}

func (a *App) fail(err error) {
	a.opts.Log.WithError(err).Error("board not draggable")
	a.setStatus("error: "+err.Error(), true)
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

// Close detaches the engine from the tree. The model can still render.
func (a *App) Close() {
	if a.engine != nil {
		a.engine.Close()
	}
}

// Engine returns the active engine, nil after a configuration error.
func (a *App) Engine() *drag.Engine { return a.engine }

// Document returns the current element tree.
func (a *App) Document() *dom.Document { return a.doc }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		board.Resize(a.doc, m.Width, m.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(m, a.keys.Quit):
			a.Close()
			return a, tea.Quit
		case key.Matches(m, a.keys.Reload):
			a.setStatus("reloading...", false)
			return a, a.reloadCmd()
		}
	case tea.MouseMsg:
		a.handleMouse(m)
		return a, a.flushChanges()
	case LayoutChangedMsg:
		c := m.Change
		a.setStatus(fmt.Sprintf("moved %s to %d,%d", c.Item, c.Left, c.Top), false)
		if a.opts.Sink != nil {
			a.opts.Sink.LayoutChanged(c)
		}
	case BoardReloadedMsg:
		if m.Err != nil {
			a.setStatus("reload failed: "+m.Err.Error(), true)
			return a, nil
		}
		a.load(m.Spec)
	}
	return a, nil
}

func (a *App) reloadCmd() tea.Cmd {
	path := a.opts.BoardPath
	return func() tea.Msg {
		if path == "" {
			return BoardReloadedMsg{Spec: board.Default()}
		}
		spec, err := board.Load(path)
		return BoardReloadedMsg{Spec: spec, Err: err}
	}
}

// handleMouse turns a terminal mouse report into an element event. The
// movement delta is taken from the previous report, which is what the
// engine's movement strategy consumes.
func (a *App) handleMouse(m tea.MouseMsg) {
	if a.doc == nil {
		return
	}
	ev := &dom.Event{
		X:         m.X,
		Y:         m.Y,
		MovementX: m.X - a.mouse.x,
		MovementY: m.Y - a.mouse.y,
		Target:    a.doc.HitTest(m.X, m.Y),
	}
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft {
			return
		}
		ev.Type = dom.EventPress
		ev.MovementX, ev.MovementY = 0, 0
	case tea.MouseActionMotion:
		if ev.MovementX == 0 && ev.MovementY == 0 {
			return
		}
		ev.Type = dom.EventMove
	case tea.MouseActionRelease:
		ev.Type = dom.EventRelease
	default:
		return
	}
	a.mouse.x, a.mouse.y = m.X, m.Y
	a.doc.Dispatch(ev)
}

func (a *App) flushChanges() tea.Cmd {
	changes := a.changes.Drain()
	if len(changes) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(changes))
	for _, c := range changes {
		c := c
		cmds = append(cmds, func() tea.Msg { return LayoutChangedMsg{Change: c} })
	}
	return tea.Batch(cmds...)
}
