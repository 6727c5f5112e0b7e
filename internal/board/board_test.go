package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskboard/internal/dom"
	"github.com/jask/jaskboard/internal/drag"
)

var markers = Markers{Container: "data-board", Item: "data-draggable", Handle: "data-drag-handle"}

const sample = `
title = "sprint"
width = 60
height = 16

[[card]]
id = "A"
title = "Alpha"
body = "first"
left = 10
top = 20

[[card]]
id = "B"
left = 30
top = 2
width = 2
height = 1
handle = false

[[card]]
id = "C"
draggable = false

[card.attrs]
data-dragable = ""
`

func TestParseNormalises(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Equal(t, "sprint", s.Title)
	require.Equal(t, 60, s.Width)
	require.Len(t, s.Cards, 3)

	require.Equal(t, "Alpha", s.Cards[0].Title)
	require.Equal(t, defaultCardWidth, s.Cards[0].Width)
	require.Equal(t, minCardWidth, s.Cards[1].Width)
	require.Equal(t, minCardHeight, s.Cards[1].Height)
	require.Equal(t, "B", s.Cards[1].Title)
	require.Equal(t, "", s.Cards[2].Attrs["data-dragable"])
}

func TestParseError(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("title = ["))
	require.ErrorContains(t, err, "parse board")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.Cards, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "read board")
}

func TestBuildMarksTree(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	doc := Build(s, markers)

	container, err := Container(doc, markers.Container)
	require.NoError(t, err)
	require.Equal(t, ContainerID, container.ID)
	require.True(t, container.Framed)
	require.Equal(t, 60, container.Width)

	items := container.QueryAll(markers.Item)
	require.Len(t, items, 2)
	require.Equal(t, "A", items[0].ID)
	require.Equal(t, "10px", items[0].Style.Left)
	require.Equal(t, "20px", items[0].Style.Top)
	require.NotNil(t, items[0].Query(markers.Handle))
	require.Nil(t, items[1].Query(markers.Handle))
	require.False(t, doc.FindByID("C").HasAttr(markers.Item))
}

func TestBuiltBoardDrivesEngine(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	doc := Build(s, markers)
	container, err := Container(doc, markers.Container)
	require.NoError(t, err)

	e, err := drag.New(container, markers.Item, drag.WithHandle(markers.Handle))
	require.NoError(t, err)
	defer e.Close()

	a, ok := e.Registry().Get("A")
	require.True(t, ok)
	grip := a.Handle
	require.NotNil(t, grip)
	r := grip.Rect()
	require.Same(t, grip, doc.HitTest(r.X, r.Y))

	doc.Dispatch(&dom.Event{Type: dom.EventPress, Target: doc.HitTest(r.X, r.Y), X: r.X, Y: r.Y})
	doc.Dispatch(&dom.Event{Type: dom.EventMove, Target: container, MovementX: 5})
	doc.Dispatch(&dom.Event{Type: dom.EventMove, Target: container, MovementY: -3})
	doc.Dispatch(&dom.Event{Type: dom.EventRelease})

	left, top := a.Position()
	require.Equal(t, 15, left)
	require.Equal(t, 17, top)
}

func TestBuildWithRepeatedIDsFailsInEngine(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte("[[card]]\nid = \"dup\"\n[[card]]\nid = \"dup\"\n"))
	require.NoError(t, err)
	doc := Build(s, markers)
	container, err := Container(doc, markers.Container)
	require.NoError(t, err)

	_, err = drag.New(container, markers.Item)
	require.ErrorIs(t, err, drag.ErrDuplicateID)
}

func TestContainerFallsBackToID(t *testing.T) {
	t.Parallel()

	doc := Build(Default(), Markers{Item: "x"})
	c, err := Container(doc, "data-missing")
	require.NoError(t, err)
	require.Equal(t, ContainerID, c.ID)

	_, err = Container(dom.NewDocument(dom.NewElement("screen", "")), "data-board")
	require.Error(t, err)
	_, err = Container(nil, "data-board")
	require.Error(t, err)
}

func TestLint(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	warnings := Lint(Build(s, markers), markers)
	require.Len(t, warnings, 1)
	require.Equal(t, "card#C", warnings[0].Element)
	require.Contains(t, warnings[0].String(), `"data-dragable" looks like a misspelling of "data-draggable"`)

	none := Lint(Build(Spec{Cards: []CardSpec{{ID: "x", Draggable: boolPtr(false)}}}, markers), markers)
	require.Len(t, none, 1)
	require.Contains(t, none[0].String(), "nothing can be dragged")

	require.Empty(t, Lint(Build(Default(), markers), markers))
}

func TestResize(t *testing.T) {
	t.Parallel()

	doc := Build(Default(), markers)
	Resize(doc, 100, 40)
	require.Equal(t, 100, doc.Root.Width)
	require.Equal(t, 40, doc.Root.Height)
	Resize(nil, 1, 1)
}
