package drag

import (
	"fmt"
	"strings"

	"github.com/jask/jaskboard/internal/dom"
)

// Strategy selects how a move event is turned into a position delta.
type Strategy int

const (
	// StrategyMovement adds the per-event delta reported by the input source.
	StrategyMovement Strategy = iota
	// StrategyPointer adds the difference between the pointer position and
	// the position recorded at the previous event.
	StrategyPointer
)

func (s Strategy) String() string {
	switch s {
	case StrategyPointer:
		return "pointer"
	default:
		return "movement"
	}
}

// ParseStrategy accepts "movement" (or "") and "pointer".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "movement":
		return StrategyMovement, nil
	case "pointer":
		return StrategyPointer, nil
	}
	return StrategyMovement, fmt.Errorf("unknown drag strategy %q", s)
}

// Point is a pointer position or delta in cells.
type Point struct{ X, Y int }

// State is either Idle or Dragging.
type State interface{ isState() }

// Idle is the state with no drag session.
type Idle struct{}

// Dragging is the drag session: the item being moved and the pointer
// position seen at the last press or move.
type Dragging struct {
	Item *Item
	Last Point
}

func (Idle) isState()     {}
func (Dragging) isState() {}

// InputKind is the kind of pointer input fed to Transition.
type InputKind int

const (
	Press InputKind = iota
	Move
	Release
)

func (k InputKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	}
	return fmt.Sprintf("InputKind(%d)", int(k))
}

// Input is one pointer event. Item is set for presses only: it is the item
// whose press listener fired, not necessarily the event target.
type Input struct {
	Kind     InputKind
	Item     *Item
	Target   *dom.Element
	Pointer  Point
	Movement Point
}

// Rules are the parts of the engine configuration Transition depends on.
type Rules struct {
	HandleAttr string
	Strategy   Strategy
}

// Effect is a side effect requested by Transition.
type Effect interface{ isEffect() }

// AttachMove asks for the container move listener to be attached.
type AttachMove struct{}

// DetachMove asks for the container move listener to be removed.
type DetachMove struct{}

// MoveBy shifts the item's offsets.
type MoveBy struct {
	Item   *Item
	DX, DY int
}

// CancelEvent stops default handling and propagation of the current event.
type CancelEvent struct{}

// NotifyLayout emits the layout-changed notification for a finished drag.
type NotifyLayout struct{ Item *Item }

func (AttachMove) isEffect()   {}
func (DetachMove) isEffect()   {}
func (MoveBy) isEffect()       {}
func (CancelEvent) isEffect()  {}
func (NotifyLayout) isEffect() {}

// Transition is the drag state machine:
//
//	Idle     + press (grip ok) -> Dragging  [AttachMove]
//	Idle     + press (no grip) -> Idle
//	Dragging + press           -> Dragging  (ignored)
//	Dragging + move            -> Dragging  [MoveBy, CancelEvent]
//	Dragging + release         -> Idle      [DetachMove, NotifyLayout]
//	Idle     + move/release    -> Idle
//
// It never touches the element tree. A press without an item is a
// UsageError.
func Transition(s State, in Input, rules Rules) (State, []Effect, error) {
	if s == nil {
		s = Idle{}
	}
	switch in.Kind {
	case Press:
		if in.Item == nil {
			return s, nil, &UsageError{Op: "begin drag", Reason: "press delivered without an item"}
		}
		if _, busy := s.(Dragging); busy {
			return s, nil, nil
		}
		if !in.Item.Grips(in.Target, rules.HandleAttr) {
			return s, nil, nil
		}
		return Dragging{Item: in.Item, Last: in.Pointer}, []Effect{AttachMove{}}, nil

	case Move:
		d, ok := s.(Dragging)
		if !ok {
			return s, nil, nil
		}
		delta := in.Movement
		if rules.Strategy == StrategyPointer {
			delta = Point{X: in.Pointer.X - d.Last.X, Y: in.Pointer.Y - d.Last.Y}
		}
		d.Last = in.Pointer
		return d, []Effect{MoveBy{Item: d.Item, DX: delta.X, DY: delta.Y}, CancelEvent{}}, nil

	case Release:
		d, ok := s.(Dragging)
		if !ok {
			return s, nil, nil
		}
		return Idle{}, []Effect{DetachMove{}, NotifyLayout{Item: d.Item}}, nil
	}
	return s, nil, &UsageError{Op: "transition", Reason: "unknown input " + in.Kind.String()}
}
