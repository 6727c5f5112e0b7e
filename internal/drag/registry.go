package drag

import (
	"github.com/jask/jaskboard/internal/dom"
)

// Item is a registered draggable element. Handle is nil unless a handle
// attribute is configured and the item contains an element carrying it.
type Item struct {
	ID      string
	Element *dom.Element
	Handle  *dom.Element
}

// Position returns the item's current left/top offsets.
func (it *Item) Position() (left, top int) {
	return it.Element.Offset()
}

// Grips reports whether a press on target may start dragging the item.
// With no handle attribute configured the whole item is a grip.
func (it *Item) Grips(target *dom.Element, handleAttr string) bool {
	if handleAttr == "" {
		return true
	}
	return it.Handle != nil && target != nil && it.Handle.Contains(target)
}

// Registry maps identifiers to items. It is filled once by discover and
// never changes afterwards.
type Registry struct {
	order []*Item
	byID  map[string]*Item
}

func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) Get(id string) (*Item, bool) {
	it, ok := r.byID[id]
	return it, ok
}

// Items returns the items in document order.
func (r *Registry) Items() []*Item {
	out := make([]*Item, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) owns(it *Item) bool {
	if it == nil {
		return false
	}
	got, ok := r.byID[it.ID]
	return ok && got == it
}

// discover scans container's descendants for itemAttr. The first element
// without an id, or with an id seen before, fails the whole scan.
func discover(container *dom.Element, itemAttr, handleAttr string) (*Registry, error) {
	elems := container.QueryAll(itemAttr)
	reg := &Registry{
		order: make([]*Item, 0, len(elems)),
		byID:  make(map[string]*Item, len(elems)),
	}
	for i, el := range elems {
		if el.ID == "" {
			return nil, &ConfigurationError{Attr: itemAttr, Index: i, Err: ErrMissingID}
		}
		if _, dup := reg.byID[el.ID]; dup {
			return nil, &ConfigurationError{Attr: itemAttr, Index: i, ID: el.ID, Err: ErrDuplicateID}
		}
		it := &Item{ID: el.ID, Element: el}
		if handleAttr != "" {
			it.Handle = el.Query(handleAttr)
		}
		reg.order = append(reg.order, it)
		reg.byID[it.ID] = it
	}
	return reg, nil
}
