package player

import "math"

// Rect is the on-screen geometry of an element: its top edge relative to the
// viewport and its height.
type Rect struct {
	Top    float64
	Height float64
}

// Viewport is the scrollable container holding transcript or sentence rows.
type Viewport interface {
	Bounds() Rect
	ScrollTop() float64
	ViewHeight() float64
	ScrollTo(top float64)
}

// CenterOffset computes the scroll position that vertically centers target
// inside a container, clamped at zero.
func CenterOffset(scrollTop float64, container, target Rect, viewHeight float64) float64 {
	top := scrollTop + (target.Top - container.Top) - viewHeight/2 + target.Height/2
	return math.Max(0, top)
}

// AutoScroller keeps the active transcript row centered as the active index
// advances. It recomputes only on index changes and never scrolls when no
// active element exists.
type AutoScroller struct {
	view      Viewport
	lastIndex int
}

func NewAutoScroller(view Viewport) *AutoScroller {
	return &AutoScroller{view: view, lastIndex: -1}
}

// ActiveChanged re-centers the row at index. target is the row's geometry,
// or nil when no row is active.
func (a *AutoScroller) ActiveChanged(index int, target *Rect) {
	if index == a.lastIndex {
		return
	}
	a.lastIndex = index
	if index < 0 || target == nil || a.view == nil {
		return
	}
	top := CenterOffset(a.view.ScrollTop(), a.view.Bounds(), *target, a.view.ViewHeight())
	a.view.ScrollTo(top)
}

// Reset forgets the last active index, as on a query change.
func (a *AutoScroller) Reset() {
	a.lastIndex = -1
}
