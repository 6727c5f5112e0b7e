package dom

// Event types produced by the input adapter and by the drag engine.
const (
	EventPress        = "press"
	EventMove         = "move"
	EventRelease      = "release"
	EventLayoutChange = "layoutchange"
)

// Event is a dispatched input or custom event. X, Y are absolute cell
// coordinates; MovementX, MovementY are the pointer delta since the previous
// event reported by the input source.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element // nil while document listeners run
	X, Y          int
	MovementX     int
	MovementY     int
	Detail        any

	defaultPrevented bool
	stopped          bool
	stoppedNow       bool
}

func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation keeps the event from reaching further targets; listeners
// on the current target still run.
func (ev *Event) StopPropagation() { ev.stopped = true }

// StopImmediatePropagation also skips the remaining listeners on the current
// target.
func (ev *Event) StopImmediatePropagation() {
	ev.stopped = true
	ev.stoppedNow = true
}

func (ev *Event) PropagationStopped() bool { return ev.stopped }

// Listener handles a dispatched event.
type Listener func(*Event)

type listener struct {
	id uint32
	fn Listener
}

type registry struct {
	byType map[string][]listener
	nextID uint32
}

func (r *registry) add(typ string, fn Listener) uint32 {
	if r.byType == nil {
		r.byType = map[string][]listener{}
	}
	r.nextID++
	r.byType[typ] = append(r.byType[typ], listener{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *registry) remove(typ string, id uint32) bool {
	s := r.byType[typ]
	for i := range s {
		if s[i].id == id {
			r.byType[typ] = append(s[:i:i], s[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot copies the listener list so listeners added or removed during
// dispatch take effect from the next event.
func (r *registry) snapshot(typ string) []listener {
	s := r.byType[typ]
	if len(s) == 0 {
		return nil
	}
	out := make([]listener, len(s))
	copy(out, s)
	return out
}

func (r *registry) count(typ string) int {
	return len(r.byType[typ])
}

// Handle unregisters a listener. The zero Handle is valid and does nothing.
type Handle struct {
	reg *registry
	typ string
	id  uint32
}

// Remove unregisters the listener. Calling it more than once is harmless.
func (h Handle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.typ, h.id)
}

// Active reports whether the listener is still registered.
func (h Handle) Active() bool {
	if h.reg == nil {
		return false
	}
	for _, l := range h.reg.byType[h.typ] {
		if l.id == h.id {
			return true
		}
	}
	return false
}

// AddListener registers fn for events of typ targeted at e or bubbling
// through it.
func (e *Element) AddListener(typ string, fn Listener) Handle {
	return Handle{reg: &e.events, typ: typ, id: e.events.add(typ, fn)}
}

// ListenerCount reports how many listeners of typ are registered on e.
func (e *Element) ListenerCount(typ string) int {
	return e.events.count(typ)
}

// Document owns the tree and the document-level listeners.
type Document struct {
	Root   *Element
	events registry
}

// NewDocument attaches root, and everything below it, to a new document.
func NewDocument(root *Element) *Document {
	d := &Document{Root: root}
	if root != nil {
		root.parent = nil
		root.setDocument(d)
	}
	return d
}

// AddListener registers fn at document level. Document listeners run last,
// after the event has bubbled through every ancestor of its target.
func (d *Document) AddListener(typ string, fn Listener) Handle {
	return Handle{reg: &d.events, typ: typ, id: d.events.add(typ, fn)}
}

func (d *Document) ListenerCount(typ string) int {
	return d.events.count(typ)
}

// FindByID returns the first element in document order whose ID is id.
func (d *Document) FindByID(id string) *Element {
	if d.Root == nil || id == "" {
		return nil
	}
	var found *Element
	d.Root.Walk(func(e *Element) bool {
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// Dispatch delivers ev to its target, then to each ancestor, then to the
// document, stopping early when a listener stops propagation. A nil target
// delivers to the document only. It reports whether the default action was
// prevented.
func (d *Document) Dispatch(ev *Event) bool {
	for n := ev.Target; n != nil; n = n.parent {
		ev.CurrentTarget = n
		if fire(&n.events, ev) || ev.stopped {
			ev.CurrentTarget = nil
			return ev.defaultPrevented
		}
	}
	ev.CurrentTarget = nil
	fire(&d.events, ev)
	return ev.defaultPrevented
}

// fire runs the listeners for ev.Type and reports whether immediate
// propagation was stopped.
func fire(r *registry, ev *Event) bool {
	for _, l := range r.snapshot(ev.Type) {
		l.fn(ev)
		if ev.stoppedNow {
			return true
		}
	}
	return false
}
