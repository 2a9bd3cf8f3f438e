package treemap

import (
	"github.com/Koranir/dumap/pkg/scan"
)

// Rect is an axis-aligned rectangle in layout coordinates. The origin
// is the top-left corner and Y grows downward, matching SVG.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether the point (x, y) falls inside the
// rectangle. The top and left edges are inclusive, the bottom and
// right edges exclusive, so adjacent rectangles never both claim a
// shared border.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Area returns the rectangle's area in square layout units.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// Element is a single weighted slot at one directory level. Node is
// nil for the aggregate slot that absorbs entries too small to draw
// individually.
type Element struct {
	Node   *scan.Node
	Weight int64
}

// Partition splits a directory's children into layout slots for a
// target area of w by h square units.
//
// Children are assumed sorted by size descending, as [scan.Scan]
// produces them. Each child whose projected on-screen area reaches
// minArea gets its own slot; everything after the first child below
// the cutoff is folded into one trailing aggregate slot whose weight
// is the remainder of the directory's size. Because the children are
// sorted, the cutoff is a single split point.
//
// A directory with no children yields nil. A directory whose size is
// zero yields one zero-weight slot per child so callers still see the
// entries, just without area.
func Partition(dir *scan.Node, w, h, minArea float64) []Element {
	if dir == nil || len(dir.Children) == 0 {
		return nil
	}

	// Bytes per square unit at this zoom level.
	var cutoff int64
	if area := w * h; area > 0 {
		cutoff = int64(minArea * float64(dir.Size) / area)
	}

	split := len(dir.Children)
	for i, c := range dir.Children {
		if c.Size < cutoff {
			split = i
			break
		}
	}

	elems := make([]Element, 0, split+1)
	var accum int64
	for _, c := range dir.Children[:split] {
		elems = append(elems, Element{Node: c, Weight: c.Size})
		accum += c.Size
	}
	if split < len(dir.Children) {
		elems = append(elems, Element{Weight: dir.Size - accum})
	}
	return elems
}

// Squarify lays the elements out inside bounds, returning one
// rectangle per element in the same order. Rectangle areas are
// proportional to element weights and together tile bounds exactly.
//
// The algorithm greedily grows a strip along the shorter axis of the
// remaining space for as long as adding the next element improves the
// worst aspect ratio of the strip, then fixes the strip and recurses
// into the rest. Elements should arrive sorted by weight descending
// for the classic squarified look; the layout is still valid (just
// less square) for any order.
//
// If the total weight is zero every returned rectangle is empty.
func Squarify(elems []Element, bounds Rect) []Rect {
	rects := make([]Rect, len(elems))
	if totalWeight(elems, 0, len(elems)-1) <= 0 {
		return rects
	}
	layout(elems, rects, 0, len(elems)-1, bounds)
	return rects
}

func totalWeight(elems []Element, lo, hi int) float64 {
	var total float64
	for i := lo; i <= hi; i++ {
		total += float64(elems[i].Weight)
	}
	return total
}

func layout(elems []Element, rects []Rect, lo, hi int, bounds Rect) {
	if lo > hi {
		return
	}
	if hi-lo < 2 {
		sliceBest(elems, rects, lo, hi, bounds)
		return
	}

	total := totalWeight(elems, lo, hi)
	if total <= 0 {
		return
	}

	// Grow the strip while the leading element keeps getting squarer.
	mid := lo
	a := float64(elems[lo].Weight) / total
	b := a
	if bounds.W < bounds.H {
		for mid < hi {
			aspect := normAspect(bounds.H, bounds.W, a, b)
			q := float64(elems[mid+1].Weight) / total
			if normAspect(bounds.H, bounds.W, a, b+q) > aspect {
				break
			}
			mid++
			b += q
		}
		sliceBest(elems, rects, lo, mid, Rect{bounds.X, bounds.Y, bounds.W, bounds.H * b})
		layout(elems, rects, mid+1, hi, Rect{bounds.X, bounds.Y + bounds.H*b, bounds.W, bounds.H * (1 - b)})
	} else {
		for mid < hi {
			aspect := normAspect(bounds.W, bounds.H, a, b)
			q := float64(elems[mid+1].Weight) / total
			if normAspect(bounds.W, bounds.H, a, b+q) > aspect {
				break
			}
			mid++
			b += q
		}
		sliceBest(elems, rects, lo, mid, Rect{bounds.X, bounds.Y, bounds.W * b, bounds.H})
		layout(elems, rects, mid+1, hi, Rect{bounds.X + bounds.W*b, bounds.Y, bounds.W * (1 - b), bounds.H})
	}
}

// aspect is the width/height ratio of the first strip element when the
// strip occupies fraction b of the bounds and the element fraction a
// of the total.
func aspect(big, small, a, b float64) float64 {
	return (big * b) / (small * a / b)
}

func normAspect(big, small, a, b float64) float64 {
	x := aspect(big, small, a, b)
	if x < 1 {
		return 1 / x
	}
	return x
}

// sliceBest stacks elems[lo..hi] along the longer axis of bounds.
func sliceBest(elems []Element, rects []Rect, lo, hi int, bounds Rect) {
	total := totalWeight(elems, lo, hi)
	if total <= 0 {
		return
	}
	var accum float64
	for i := lo; i <= hi; i++ {
		frac := float64(elems[i].Weight) / total
		if bounds.W > bounds.H {
			rects[i] = Rect{bounds.X + bounds.W*accum, bounds.Y, bounds.W * frac, bounds.H}
		} else {
			rects[i] = Rect{bounds.X, bounds.Y + bounds.H*accum, bounds.W, bounds.H * frac}
		}
		accum += frac
	}
}
