package dom

// Rect is an absolute cell rectangle. X, Y is the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Rect returns the element's absolute rectangle: its own offsets plus the
// content origin of every ancestor. A framed ancestor shifts its children by
// one cell for the border.
func (e *Element) Rect() Rect {
	x, y := e.Offset()
	for p := e.parent; p != nil; p = p.parent {
		px, py := p.Offset()
		x += px
		y += py
		if p.Framed {
			x++
			y++
		}
	}
	return Rect{X: x, Y: y, W: e.Width, H: e.Height}
}

// HitTest returns the topmost element under (x, y). Later siblings paint
// over earlier ones and children paint over their parent, so the search
// runs in reverse painter order. Elements with no size are skipped but their
// children are still searched.
func (d *Document) HitTest(x, y int) *Element {
	if d.Root == nil {
		return nil
	}
	return hitTest(d.Root, x, y)
}

func hitTest(e *Element, x, y int) *Element {
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := hitTest(e.children[i], x, y); hit != nil {
			return hit
		}
	}
	r := e.Rect()
	if !r.Empty() && r.Contains(x, y) {
		return e
	}
	return nil
}
