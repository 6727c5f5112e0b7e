package drag

import (
	"time"

	"github.com/google/uuid"
)

// Placement is one item's offsets at notification time.
type Placement struct {
	ID   string `json:"id"`
	Left int    `json:"left"`
	Top  int    `json:"top"`
}

// LayoutChange is the payload of the layout-changed notification. Exactly
// one is produced per completed drag.
type LayoutChange struct {
	ID        string      `json:"id"`
	At        time.Time   `json:"at"`
	Container string      `json:"container"`
	Item      string      `json:"item"`
	Left      int         `json:"left"`
	Top       int         `json:"top"`
	Layout    []Placement `json:"layout"`
}

// Sink receives layout-changed notifications.
type Sink interface {
	LayoutChanged(LayoutChange)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(LayoutChange)

func (f SinkFunc) LayoutChanged(c LayoutChange) { f(c) }

type discardSink struct{}

func (discardSink) LayoutChanged(LayoutChange) {}

func (e *Engine) layoutChange(moved *Item) LayoutChange {
	left, top := moved.Position()
	layout := make([]Placement, 0, e.registry.Len())
	for _, it := range e.registry.order {
		l, t := it.Position()
		layout = append(layout, Placement{ID: it.ID, Left: l, Top: t})
	}
	return LayoutChange{
		ID:        uuid.NewString(),
		At:        e.now(),
		Container: e.container.ID,
		Item:      moved.ID,
		Left:      left,
		Top:       top,
		Layout:    layout,
	}
}
