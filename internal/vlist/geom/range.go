// Package geom holds the range arithmetic shared by the list engine.
//
// Coordinates are rows along the scroll axis with the origin at the top of
// the scrollable content, so a list header occupies [0, headerHeight).
package geom

import "fmt"

// Range is a half-open interval [Top, Bottom) along the scroll axis.
type Range struct {
	Top    int
	Bottom int
}

// Height returns the size of the range, never negative.
func (r Range) Height() int {
	return max(0, r.Bottom-r.Top)
}

// Offset returns the range shifted by d.
func (r Range) Offset(d int) Range {
	return Range{Top: r.Top + d, Bottom: r.Bottom + d}
}

// Sub subtracts o from r edge by edge.
func (r Range) Sub(o Range) Range {
	return Range{Top: r.Top - o.Top, Bottom: r.Bottom - o.Bottom}
}

func (r Range) Equal(o Range) bool {
	return r.Top == o.Top && r.Bottom == o.Bottom
}

// Intersects reports whether the interval [top, bottom) overlaps r.
func (r Range) Intersects(top, bottom int) bool {
	return bottom > r.Top && top < r.Bottom
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Top, r.Bottom)
}

// RenderRange returns the range, relative to the viewport top, in which items
// may be mounted: the visible area plus a leading buffer above it and a
// trailing buffer below it.
func RenderRange(leading, trailing, viewportHeight int) Range {
	return Range{
		Top:    -leading,
		Bottom: viewportHeight + trailing,
	}
}

// IndexRange is an inclusive run of item indices [First, Last].
type IndexRange struct {
	First int
	Last  int
}

func (r IndexRange) Equal(o IndexRange) bool {
	return r.First == o.First && r.Last == o.Last
}

// Len returns the number of indices in the range.
func (r IndexRange) Len() int {
	return max(0, r.Last-r.First+1)
}

// Contains reports whether index lies in the range.
func (r IndexRange) Contains(index int) bool {
	return index >= r.First && index <= r.Last
}

func (r IndexRange) String() string {
	return fmt.Sprintf("[%d..%d]", r.First, r.Last)
}
