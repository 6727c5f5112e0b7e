// Package drag repositions draggable elements inside a container in
// response to pointer input.
//
// An Engine registers every descendant of the container that carries the
// item marker attribute, listens for presses on those items, follows pointer
// movement on the container while an item is held, and emits one
// LayoutChange when the pointer is released anywhere in the document. The
// state machine itself lives in Transition and does not depend on the
// element tree; Engine applies the effects it returns.
//
// Engines are not safe for concurrent use. All handlers are expected to run
// on the goroutine that dispatches input.
package drag

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jask/jaskboard/internal/dom"
)

// Engine is a drag engine bound to one container.
type Engine struct {
	doc       *dom.Document
	container *dom.Element
	itemAttr  string
	rules     Rules
	registry  *Registry
	state     State
	sink      Sink
	log       logrus.FieldLogger
	now       func() time.Time

	release dom.Handle
	move    dom.Handle
	presses []dom.Handle
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithHandle restricts grabbing to elements carrying attr inside each item.
func WithHandle(attr string) Option {
	return func(e *Engine) { e.rules.HandleAttr = attr }
}

func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.rules.Strategy = s }
}

// WithSink sets the receiver of layout-changed notifications. Notifications
// are also dispatched as dom.EventLayoutChange from the container.
func WithSink(s Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New registers the draggable descendants of container and attaches the
// engine's listeners. A missing or duplicate item id returns a
// *ConfigurationError and leaves the tree without any engine listener.
func New(container *dom.Element, itemAttr string, opts ...Option) (*Engine, error) {
	if container == nil || container.OwnerDocument() == nil {
		return nil, &UsageError{Op: "new", Reason: "container is not attached to a document"}
	}
	if itemAttr == "" {
		return nil, &UsageError{Op: "new", Reason: "item attribute is empty"}
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	e := &Engine{
		doc:       container.OwnerDocument(),
		container: container,
		itemAttr:  itemAttr,
		state:     Idle{},
		sink:      discardSink{},
		log:       quiet,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	reg, err := discover(container, itemAttr, e.rules.HandleAttr)
	if err != nil {
		return nil, err
	}
	e.registry = reg

	// Release is watched on the whole document: a release outside the
	// container must still end the drag.
	e.release = e.doc.AddListener(dom.EventRelease, e.handleRelease)
	e.presses = make([]dom.Handle, 0, reg.Len())
	for _, it := range reg.order {
		e.presses = append(e.presses, it.Element.AddListener(dom.EventPress, e.pressListener(it)))
		if e.rules.HandleAttr != "" && it.Handle == nil {
			e.log.WithField("item", it.ID).Warn("item has no handle and cannot be dragged")
		}
	}
	e.log.WithFields(logrus.Fields{
		"container": container.ID,
		"items":     reg.Len(),
		"handle":    e.rules.HandleAttr,
		"strategy":  e.rules.Strategy.String(),
	}).Debug("drag engine ready")
	return e, nil
}

func (e *Engine) pressListener(it *Item) dom.Listener {
	return func(ev *dom.Event) {
		if err := e.BeginDrag(it, ev); err != nil {
			panic(err)
		}
	}
}

func (e *Engine) handleMove(ev *dom.Event) { e.OnMove(ev) }

func (e *Engine) handleRelease(*dom.Event) { e.EndDrag() }

// BeginDrag starts a session for item if press landed on a grip and no
// session is active. item must come from this engine's registry.
func (e *Engine) BeginDrag(item *Item, press *dom.Event) error {
	if e.closed {
		return &UsageError{Op: "begin drag", Reason: "engine is closed"}
	}
	if !e.registry.owns(item) {
		return &UsageError{Op: "begin drag", Reason: "item is not registered with this engine"}
	}
	in := Input{Kind: Press, Item: item}
	if press != nil {
		in.Target = press.Target
		in.Pointer = Point{X: press.X, Y: press.Y}
	}
	return e.step(in, press)
}

// OnMove applies one move event to the held item. Without a session it does
// nothing.
func (e *Engine) OnMove(ev *dom.Event) {
	if ev == nil {
		return
	}
	_ = e.step(Input{
		Kind:     Move,
		Target:   ev.Target,
		Pointer:  Point{X: ev.X, Y: ev.Y},
		Movement: Point{X: ev.MovementX, Y: ev.MovementY},
	}, ev)
}

// EndDrag finishes the session and notifies. Without a session it does
// nothing.
func (e *Engine) EndDrag() {
	_ = e.step(Input{Kind: Release}, nil)
}

func (e *Engine) step(in Input, ev *dom.Event) error {
	next, effects, err := Transition(e.state, in, e.rules)
	if err != nil {
		return err
	}
	e.state = next
	for _, eff := range effects {
		e.apply(eff, ev)
	}
	return nil
}

func (e *Engine) apply(eff Effect, ev *dom.Event) {
	switch eff := eff.(type) {
	case AttachMove:
		e.move.Remove()
		e.move = e.container.AddListener(dom.EventMove, e.handleMove)
		e.log.WithField("item", e.state.(Dragging).Item.ID).Debug("drag started")
	case DetachMove:
		e.move.Remove()
		e.move = dom.Handle{}
	case MoveBy:
		left, top := eff.Item.Position()
		eff.Item.Element.SetOffset(left+eff.DX, top+eff.DY)
	case CancelEvent:
		if ev != nil {
			ev.PreventDefault()
			ev.StopPropagation()
		}
	case NotifyLayout:
		change := e.layoutChange(eff.Item)
		e.log.WithFields(logrus.Fields{
			"item": change.Item,
			"left": change.Left,
			"top":  change.Top,
		}).Debug("drag ended")
		e.sink.LayoutChanged(change)
		e.doc.Dispatch(&dom.Event{Type: dom.EventLayoutChange, Target: e.container, Detail: change})
	}
}

// Close removes every listener the engine attached. An active session is
// dropped without a notification. Close is idempotent.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.release.Remove()
	e.move.Remove()
	for _, h := range e.presses {
		h.Remove()
	}
	e.presses = nil
	e.release, e.move = dom.Handle{}, dom.Handle{}
	e.state = Idle{}
}

// State returns the current state, Idle{} or Dragging{...}.
func (e *Engine) State() State { return e.state }

// Active returns the held item, if any.
func (e *Engine) Active() (*Item, bool) {
	d, ok := e.state.(Dragging)
	if !ok {
		return nil, false
	}
	return d.Item, true
}

func (e *Engine) Registry() *Registry { return e.registry }

func (e *Engine) Container() *dom.Element { return e.container }

func (e *Engine) Strategy() Strategy { return e.rules.Strategy }

func (e *Engine) HandleAttr() string { return e.rules.HandleAttr }
