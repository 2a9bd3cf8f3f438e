package treemap

import (
	"github.com/Koranir/dumap/pkg/scan"
)

const (
	// DefaultLabelHeight is the caption text size used when
	// [Options.LabelHeight] is zero.
	DefaultLabelHeight = 12.0

	// DefaultMinArea is the smallest on-screen box area, in square
	// layout units, drawn individually when [Options.MinArea] is zero.
	DefaultMinArea = 64.0

	// headerScale converts a label height into the strip actually
	// reserved above each directory's children, leaving breathing room
	// around the caption glyphs.
	headerScale = 1.4
)

// Options control how [Build] subdivides the target area.
type Options struct {
	// LabelHeight is the caption text size in layout units. Every
	// directory level reserves a strip of LabelHeight*1.4 at its top.
	LabelHeight float64

	// MinArea is the cutoff passed to [Partition]: children whose
	// projected area falls below it share one aggregate box.
	MinArea float64

	// MaxDepth, when positive, stops recursion below the given depth
	// even if room remains. Zero means unbounded.
	MaxDepth int
}

func (o Options) withDefaults() Options {
	if o.LabelHeight <= 0 {
		o.LabelHeight = DefaultLabelHeight
	}
	if o.MinArea <= 0 {
		o.MinArea = DefaultMinArea
	}
	return o
}

// Box is one drawable rectangle in a finished layout. Node is nil for
// aggregate boxes standing in for many small entries; Dir is the
// directory the box was partitioned from, always set for aggregates.
type Box struct {
	// ID is unique within a single [Build] result and stable across
	// identical inputs. It is assigned in depth-first draw order.
	ID int

	Rect Rect
	Node *scan.Node
	Dir  *scan.Node

	// Size is the box's weight in bytes: the node's size, or for an
	// aggregate box the combined size of the entries it stands for.
	Size int64

	// Depth is the nesting level, zero for the root's direct children.
	Depth int
}

// Label returns the caption shown for the box.
func (b Box) Label() string {
	if b.Node == nil {
		return "<files>"
	}
	return b.Node.Name()
}

// Aggregate reports whether the box stands for the folded tail of
// small entries rather than a single node.
func (b Box) Aggregate() bool {
	return b.Node == nil
}

// Layout is the complete treemap for one scanned tree: every box at
// every depth, in draw order (parents before their children).
type Layout struct {
	Root   *scan.Node
	Bounds Rect
	Boxes  []Box

	// LabelHeight is the caption size the layout was built with, kept
	// so renderers size their text to match the reserved strips.
	LabelHeight float64
}

// Build lays out the whole tree inside bounds.
//
// Every directory level, the root included, reserves a caption strip
// of LabelHeight*1.4 at its top and partitions its children into the
// remaining space. Recursion descends into a child directory only when
// the space left under that child's own strip could still hold another
// strip, so captions never overflow their boxes.
//
// Box IDs restart from zero for every call, making layouts of the same
// tree reproducible.
func Build(root *scan.Node, bounds Rect, opts Options) *Layout {
	opts = opts.withDefaults()
	l := &Layout{Root: root, Bounds: bounds, LabelHeight: opts.LabelHeight}
	if root == nil {
		return l
	}
	next := 0
	l.subdivide(root, bounds, 0, opts, &next)
	return l
}

func (l *Layout) subdivide(dir *scan.Node, bounds Rect, depth int, opts Options, next *int) {
	header := opts.LabelHeight * headerScale
	inner := Rect{bounds.X, bounds.Y + header, bounds.W, bounds.H - header}
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	elems := Partition(dir, inner.W, inner.H, opts.MinArea)
	rects := Squarify(elems, inner)

	for i, e := range elems {
		box := Box{
			ID:    *next,
			Rect:  rects[i],
			Node:  e.Node,
			Dir:   dir,
			Size:  e.Weight,
			Depth: depth,
		}
		*next++
		l.Boxes = append(l.Boxes, box)

		if e.Node == nil || !e.Node.IsDir() {
			continue
		}
		if opts.MaxDepth > 0 && depth+1 >= opts.MaxDepth {
			continue
		}
		// Descend only if the child can fit content under its own
		// caption strip.
		if rects[i].H-header >= header {
			l.subdivide(e.Node, rects[i], depth+1, opts, next)
		}
	}
}

// FindAt returns the deepest box containing the point (x, y), or nil
// when the point misses every box. A point inside a directory's
// caption strip resolves to the directory box itself since children
// are laid out below the strip.
func (l *Layout) FindAt(x, y float64) *Box {
	var found *Box
	for i := range l.Boxes {
		if l.Boxes[i].Rect.Contains(x, y) {
			found = &l.Boxes[i]
		}
	}
	return found
}
