// Package board reads board files and turns them into element trees the
// drag engine can work on.
package board

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jask/jaskboard/internal/dom"
)

// Spec is the TOML board description.
type Spec struct {
	Title  string     `toml:"title"`
	Width  int        `toml:"width"`
	Height int        `toml:"height"`
	Cards  []CardSpec `toml:"card"`
}

// CardSpec describes one card. Draggable and Handle default to true.
type CardSpec struct {
	ID        string            `toml:"id"`
	Title     string            `toml:"title"`
	Body      string            `toml:"body"`
	Left      int               `toml:"left"`
	Top       int               `toml:"top"`
	Width     int               `toml:"width"`
	Height    int               `toml:"height"`
	Draggable *bool             `toml:"draggable"`
	Handle    *bool             `toml:"handle"`
	Attrs     map[string]string `toml:"attrs"`
}

// Markers are the attribute names written onto the tree.
type Markers struct {
	Container string
	Item      string
	Handle    string
}

const (
	defaultWidth      = 72
	defaultHeight     = 20
	defaultCardWidth  = 22
	defaultCardHeight = 5
	minCardWidth      = 6
	minCardHeight     = 3

	// ContainerID is the element id of the board container.
	ContainerID = "board"
)

// Parse decodes and normalises a board description.
func Parse(data []byte) (Spec, error) {
	var s Spec
	if err := toml.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("parse board: %w", err)
	}
	return normalize(s), nil
}

// Load reads a board file.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read board: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func normalize(s Spec) Spec {
	if s.Width <= 0 {
		s.Width = defaultWidth
	}
	if s.Height <= 0 {
		s.Height = defaultHeight
	}
	if strings.TrimSpace(s.Title) == "" {
		s.Title = "board"
	}
	for i := range s.Cards {
		c := &s.Cards[i]
		if c.Width == 0 {
			c.Width = defaultCardWidth
		}
		if c.Height == 0 {
			c.Height = defaultCardHeight
		}
		c.Width = max(c.Width, minCardWidth)
		c.Height = max(c.Height, minCardHeight)
		if c.Title == "" {
			c.Title = c.ID
		}
	}
	return s
}

func flag(b *bool) bool { return b == nil || *b }

// Build creates screen > container > cards. Draggable cards carry
// m.Item; cards with a handle get a one-row grip child carrying m.Handle.
// Card ids are copied as-is, so missing or repeated ids reach the engine.
func Build(s Spec, m Markers) *dom.Document {
	screen := dom.NewElement("screen", "")
	container := dom.NewElement("board", ContainerID)
	container.Framed = true
	container.Width = s.Width
	container.Height = s.Height
	container.Text = s.Title
	container.SetOffset(0, 0)
	if m.Container != "" {
		container.SetAttr(m.Container, "")
	}
	screen.Append(container)

	for _, c := range s.Cards {
		card := dom.NewElement("card", c.ID)
		card.Framed = true
		card.Width = c.Width
		card.Height = c.Height
		card.Text = c.Body
		card.SetOffset(c.Left, c.Top)
		card.SetAttr("title", c.Title)
		for k, v := range c.Attrs {
			card.SetAttr(k, v)
		}
		if flag(c.Draggable) && m.Item != "" {
			card.SetAttr(m.Item, "")
		}
		if flag(c.Handle) {
			grip := dom.NewElement("grip", "")
			grip.Width = c.Width - 2
			grip.Height = 1
			grip.Text = c.Title
			grip.SetOffset(0, 0)
			if m.Handle != "" {
				grip.SetAttr(m.Handle, "")
			}
			card.Append(grip)
		}
		container.Append(card)
	}
	return dom.NewDocument(screen)
}

// Container finds the board container in doc: the first element carrying
// attr, or the element with ContainerID when attr is empty or unused.
func Container(doc *dom.Document, attr string) (*dom.Element, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("board: empty document")
	}
	if attr != "" {
		if el := doc.Root.Query(attr); el != nil {
			return el, nil
		}
	}
	if el := doc.FindByID(ContainerID); el != nil {
		return el, nil
	}
	return nil, fmt.Errorf("board: no container marked [%s]", attr)
}

// Resize sets the screen element to the terminal size.
func Resize(doc *dom.Document, width, height int) {
	if doc == nil || doc.Root == nil {
		return
	}
	doc.Root.Width = width
	doc.Root.Height = height
}

func boolPtr(b bool) *bool { return &b }

// Default is the board shown when no board file is configured.
func Default() Spec {
	return normalize(Spec{
		Title:  "jaskboard",
		Width:  72,
		Height: 18,
		Cards: []CardSpec{
			{ID: "backlog", Title: "Backlog", Body: "drag a card by\nits title row", Left: 2, Top: 1},
			{ID: "doing", Title: "Doing", Body: "release anywhere\nto drop it", Left: 26, Top: 1},
			{ID: "done", Title: "Done", Body: "r reloads the board", Left: 50, Top: 1},
			{ID: "pinned", Title: "Pinned", Body: "this one stays put", Left: 2, Top: 9, Draggable: boolPtr(false)},
		},
	})
}
