package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/jaskboard/internal/board"
	"github.com/jask/jaskboard/internal/dom"
	"github.com/jask/jaskboard/internal/drag"
	"github.com/jask/jaskboard/internal/notify"
)

var testMarkers = board.Markers{Container: "data-board", Item: "data-draggable", Handle: "data-drag-handle"}

func newTestApp(t *testing.T, spec board.Spec, opts Options) *App {
	t.Helper()
	if opts.Markers == (board.Markers{}) {
		opts.Markers = testMarkers
	}
	a := New(spec, opts)
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// runCmd executes cmd and returns the messages it produced, unpacking
// batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func gripOf(t *testing.T, a *App, id string) dom.Rect {
	t.Helper()
	it, ok := a.Engine().Registry().Get(id)
	require.True(t, ok)
	require.NotNil(t, it.Handle)
	return it.Handle.Rect()
}

func TestMouseDragMovesCardAndReports(t *testing.T) {
	t.Parallel()

	rec := &notify.Recorder{}
	a := newTestApp(t, board.Default(), Options{Sink: rec})
	g := gripOf(t, a, "backlog")

	_, cmd := a.Update(mouse(tea.MouseActionPress, g.X, g.Y))
	require.Nil(t, cmd)
	a.Update(mouse(tea.MouseActionMotion, g.X+5, g.Y))
	a.Update(mouse(tea.MouseActionMotion, g.X+5, g.Y+3))
	_, cmd = a.Update(mouse(tea.MouseActionRelease, g.X+5, g.Y+3))

	it, _ := a.Engine().Registry().Get("backlog")
	left, top := it.Position()
	require.Equal(t, 2+5, left)
	require.Equal(t, 1+3, top)

	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	changed, ok := msgs[0].(LayoutChangedMsg)
	require.True(t, ok)
	require.Equal(t, "backlog", changed.Change.Item)

	a.Update(changed)
	require.Contains(t, a.status, "moved backlog to 7,4")
	require.Equal(t, 1, rec.Len())
}

func TestPressOffGripDoesNotDrag(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, board.Default(), Options{})
	g := gripOf(t, a, "doing")

	// One row below the grip is the card body.
	a.Update(mouse(tea.MouseActionPress, g.X, g.Y+1))
	_, ok := a.Engine().Active()
	require.False(t, ok)
	a.Update(mouse(tea.MouseActionMotion, g.X+4, g.Y+1))
	_, cmd := a.Update(mouse(tea.MouseActionRelease, g.X+4, g.Y+1))
	require.Nil(t, cmd)

	it, _ := a.Engine().Registry().Get("doing")
	left, top := it.Position()
	require.Equal(t, 26, left)
	require.Equal(t, 1, top)
}

func TestReleaseOutsideBoardEndsDrag(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, board.Default(), Options{})
	g := gripOf(t, a, "done")

	a.Update(mouse(tea.MouseActionPress, g.X, g.Y))
	_, ok := a.Engine().Active()
	require.True(t, ok)
	_, cmd := a.Update(mouse(tea.MouseActionRelease, 99, 29))
	_, ok = a.Engine().Active()
	require.False(t, ok)
	require.Len(t, runCmd(cmd), 1)
}

func TestWheelAndRightClickIgnored(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, board.Default(), Options{})
	g := gripOf(t, a, "backlog")

	a.Update(tea.MouseMsg{X: g.X, Y: g.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	a.Update(tea.MouseMsg{X: g.X, Y: g.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	_, ok := a.Engine().Active()
	require.False(t, ok)
}

func TestReloadRebuildsEngine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = \"two\"\n[[card]]\nid = \"x\"\n[[card]]\nid = \"y\"\n"), 0o644))

	a := newTestApp(t, board.Default(), Options{BoardPath: path})
	old := a.Engine()
	oldDoc := a.Document()

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	a.Update(msgs[0])

	require.NotSame(t, old, a.Engine())
	require.Equal(t, 2, a.Engine().Registry().Len())
	require.Zero(t, oldDoc.ListenerCount(dom.EventRelease))
	require.Equal(t, 1, a.Document().ListenerCount(dom.EventRelease))
	require.Equal(t, "2 draggable cards", a.status)
}

func TestReloadWithDuplicateIDsShowsError(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, board.Default(), Options{})
	old := a.Engine()
	spec, err := board.Parse([]byte("[[card]]\nid = \"dup\"\n[[card]]\nid = \"dup\"\n"))
	require.NoError(t, err)

	a.Update(BoardReloadedMsg{Spec: spec})
	require.Nil(t, a.Engine())
	require.True(t, a.statusErr)
	require.Contains(t, a.status, "not unique")
	require.Equal(t, drag.Idle{}, old.State())
	require.Zero(t, a.Document().ListenerCount(dom.EventRelease))

	// The board still renders and mouse input is harmless.
	a.Update(mouse(tea.MouseActionPress, 3, 3))
	require.Contains(t, ansi.Strip(a.View()), "not unique")
}

func TestReloadErrorKeepsBoard(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, board.Default(), Options{})
	engine := a.Engine()
	a.Update(BoardReloadedMsg{Err: errors.New("parse board: boom")})
	require.Same(t, engine, a.Engine())
	require.Contains(t, a.status, "reload failed")
}

func TestQuitClosesEngine(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, board.Default(), Options{})
	doc := a.Document()
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	require.True(t, isQuit)
	require.Zero(t, doc.ListenerCount(dom.EventRelease))
}

func TestViewPaintsBoard(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, board.Default(), Options{})
	out := ansi.Strip(a.View())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 30)
	require.Contains(t, lines[0], "jaskboard")
	require.Contains(t, out, "Backlog")
	require.Contains(t, out, "Pinned")
	require.Contains(t, out, "q quit")
	require.Contains(t, out, "3 draggable cards")
}

func TestViewBeforeWindowSize(t *testing.T) {
	t.Parallel()

	a := New(board.Default(), Options{Markers: testMarkers})
	defer a.Close()
	out := ansi.Strip(a.View())
	require.Contains(t, out, "Backlog")
}
