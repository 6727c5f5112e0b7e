// Package dom is a small retained element tree with DOM-style event
// dispatch. It stands in for the browser document: elements carry string
// attributes and left/top style offsets, and input is delivered as events
// that bubble from a target through its ancestors to the document.
package dom

import (
	"strconv"
	"strings"
)

// Style holds the positioning properties the board understands. Values are
// CSS-like strings ("12px"); see ParseOffset.
type Style struct {
	Left string
	Top  string
}

// Element is a node in the tree.
type Element struct {
	ID     string
	Tag    string
	Text   string
	Style  Style
	Width  int
	Height int
	// Framed elements draw a one cell border; children are laid out inside it.
	Framed bool

	attrs    map[string]string
	children []*Element
	parent   *Element
	doc      *Document
	events   registry
}

// NewElement returns a detached element.
func NewElement(tag, id string) *Element {
	return &Element{Tag: tag, ID: id, attrs: map[string]string{}}
}

func (e *Element) SetAttr(name, value string) *Element {
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	e.attrs[name] = value
	return e
}

func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

func (e *Element) HasAttr(name string) bool {
	if name == "" {
		return false
	}
	_, ok := e.attrs[name]
	return ok
}

func (e *Element) Attr(name string) string {
	return e.attrs[name]
}

// AttrNames returns the element's attribute names in no particular order.
func (e *Element) AttrNames() []string {
	out := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		out = append(out, k)
	}
	return out
}

// Append adds child as the last child of e. A child that already has a
// parent is moved.
func (e *Element) Append(child *Element) *Element {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	child.setDocument(e.doc)
	return e
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	child.parent = nil
	child.setDocument(nil)
}

func (e *Element) setDocument(d *Document) {
	e.doc = d
	for _, c := range e.children {
		c.setDocument(d)
	}
}

func (e *Element) Parent() *Element { return e.parent }

func (e *Element) Children() []*Element { return e.children }

// OwnerDocument is nil until the element is attached below a document root.
func (e *Element) OwnerDocument() *Document { return e.doc }

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Walk visits e and its descendants in document order (pre-order). Returning
// false from fn stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// QueryAll returns the descendants of e (not e itself) that carry attr, in
// document order.
func (e *Element) QueryAll(attr string) []*Element {
	var out []*Element
	for _, c := range e.children {
		c.Walk(func(n *Element) bool {
			if n.HasAttr(attr) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Query returns the first element in e's subtree, e included, that carries
// attr.
func (e *Element) Query(attr string) *Element {
	var found *Element
	e.Walk(func(n *Element) bool {
		if n.HasAttr(attr) {
			found = n
			return false
		}
		return true
	})
	return found
}

// ParseOffset reads a leading integer from a style value the way browsers'
// parseInt does: surrounding whitespace and trailing units are ignored.
// Values without a leading integer yield ok == false.
func ParseOffset(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatOffset renders n as a pixel-style value.
func FormatOffset(n int) string {
	return strconv.Itoa(n) + "px"
}

// Offset returns the element's left/top offsets. Absent or unparseable
// values count as zero.
func (e *Element) Offset() (left, top int) {
	left, _ = ParseOffset(e.Style.Left)
	top, _ = ParseOffset(e.Style.Top)
	return left, top
}

func (e *Element) SetOffset(left, top int) {
	e.Style.Left = FormatOffset(left)
	e.Style.Top = FormatOffset(top)
}
