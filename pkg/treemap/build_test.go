package treemap

import (
	"testing"

	"github.com/Koranir/dumap/pkg/scan"
)

// testTree is a two-level fixture: a dominant subdirectory next to a
// small file.
//
//	/r        1000
//	  sub/     900
//	    a      600
//	    b      300
//	  top      100
func testTree() *scan.Node {
	return dirNode("/r",
		dirNode("/r/sub",
			fileNode("/r/sub/a", 600),
			fileNode("/r/sub/b", 300),
		),
		fileNode("/r/top", 100),
	)
}

func TestBuild_NilRoot(t *testing.T) {
	l := Build(nil, Rect{0, 0, 100, 100}, Options{})
	if len(l.Boxes) != 0 {
		t.Errorf("len(Boxes) = %d, want 0", len(l.Boxes))
	}
}

func TestBuild_EmptyDir(t *testing.T) {
	l := Build(dirNode("/r"), Rect{0, 0, 100, 100}, Options{})
	if len(l.Boxes) != 0 {
		t.Errorf("len(Boxes) = %d, want 0", len(l.Boxes))
	}
}

func TestBuild_SequentialIDs(t *testing.T) {
	l := Build(testTree(), Rect{0, 0, 100, 100}, Options{LabelHeight: 12, MinArea: 1})
	if len(l.Boxes) != 4 {
		t.Fatalf("len(Boxes) = %d, want 4", len(l.Boxes))
	}
	for i, b := range l.Boxes {
		if b.ID != i {
			t.Errorf("Boxes[%d].ID = %d, want %d", i, b.ID, i)
		}
	}
}

func TestBuild_DrawOrder(t *testing.T) {
	l := Build(testTree(), Rect{0, 0, 100, 100}, Options{LabelHeight: 12, MinArea: 1})

	want := []struct {
		label string
		depth int
	}{
		{"sub", 0},
		{"a", 1},
		{"b", 1},
		{"top", 0},
	}
	if len(l.Boxes) != len(want) {
		t.Fatalf("len(Boxes) = %d, want %d", len(l.Boxes), len(want))
	}
	for i, w := range want {
		if got := l.Boxes[i].Label(); got != w.label {
			t.Errorf("Boxes[%d].Label() = %q, want %q", i, got, w.label)
		}
		if got := l.Boxes[i].Depth; got != w.depth {
			t.Errorf("Boxes[%d].Depth = %d, want %d", i, got, w.depth)
		}
	}
}

func TestBuild_RootCaptionStripReserved(t *testing.T) {
	opts := Options{LabelHeight: 12, MinArea: 1}
	header := opts.LabelHeight * headerScale

	l := Build(testTree(), Rect{0, 0, 100, 100}, opts)
	for _, b := range l.Boxes {
		if b.Depth == 0 && b.Rect.Y < header-epsilon {
			t.Errorf("%s: Y = %v, overlaps root caption strip (header %v)", b.Label(), b.Rect.Y, header)
		}
	}
}

func TestBuild_ChildrenNestInsideParent(t *testing.T) {
	opts := Options{LabelHeight: 12, MinArea: 1}
	header := opts.LabelHeight * headerScale

	l := Build(testTree(), Rect{0, 0, 100, 100}, opts)

	parent := make(map[*scan.Node]Rect)
	for _, b := range l.Boxes {
		if b.Node != nil && b.Node.IsDir() {
			parent[b.Node] = b.Rect
		}
	}
	for _, b := range l.Boxes {
		if b.Depth == 0 {
			continue
		}
		p, ok := parent[b.Dir]
		if !ok {
			t.Fatalf("%s: no box for parent directory %s", b.Label(), b.Dir.Path)
		}
		if b.Rect.X < p.X-epsilon || b.Rect.X+b.Rect.W > p.X+p.W+epsilon ||
			b.Rect.Y < p.Y+header-epsilon || b.Rect.Y+b.Rect.H > p.Y+p.H+epsilon {
			t.Errorf("%s: rect %+v not nested under parent %+v below its caption", b.Label(), b.Rect, p)
		}
	}
}

func TestBuild_StopsWithoutRoomForCaption(t *testing.T) {
	// At 100x50 with a 16.8-unit caption strip, the subdirectory's box
	// is 33.2 tall: under its own strip only 16.4 units remain, too
	// short for another caption, so its children are not laid out.
	l := Build(testTree(), Rect{0, 0, 100, 50}, Options{LabelHeight: 12, MinArea: 1})
	for _, b := range l.Boxes {
		if b.Depth > 0 {
			t.Errorf("unexpected nested box %s at depth %d", b.Label(), b.Depth)
		}
	}

	// Ten more units of height is room enough.
	l = Build(testTree(), Rect{0, 0, 100, 60}, Options{LabelHeight: 12, MinArea: 1})
	var nested int
	for _, b := range l.Boxes {
		if b.Depth > 0 {
			nested++
		}
	}
	if nested != 2 {
		t.Errorf("nested boxes = %d, want 2", nested)
	}
}

func TestBuild_MaxDepth(t *testing.T) {
	l := Build(testTree(), Rect{0, 0, 100, 100}, Options{LabelHeight: 12, MinArea: 1, MaxDepth: 1})
	for _, b := range l.Boxes {
		if b.Depth > 0 {
			t.Errorf("MaxDepth 1: unexpected box %s at depth %d", b.Label(), b.Depth)
		}
	}
}

func TestBuild_AggregateBox(t *testing.T) {
	children := []*scan.Node{fileNode("/r/big", 1 << 20)}
	for i := range 200 {
		children = append(children, fileNode("/r/f", int64(1+i%3)))
	}
	l := Build(dirNode("/r", children...), Rect{0, 0, 100, 100}, Options{LabelHeight: 12, MinArea: 64})

	var agg *Box
	for i := range l.Boxes {
		if l.Boxes[i].Aggregate() {
			if agg != nil {
				t.Fatal("more than one aggregate box at a single level")
			}
			agg = &l.Boxes[i]
		}
	}
	if agg == nil {
		t.Fatal("no aggregate box produced")
	}
	if got := agg.Label(); got != "<files>" {
		t.Errorf("Label() = %q, want %q", got, "<files>")
	}
	if agg.Dir.Path != "/r" {
		t.Errorf("Dir.Path = %q, want %q", agg.Dir.Path, "/r")
	}
}

func TestFindAt(t *testing.T) {
	l := Build(testTree(), Rect{0, 0, 100, 100}, Options{LabelHeight: 12, MinArea: 1})

	tests := []struct {
		name string
		x, y float64
		want string // "" means nil
	}{
		{"root caption strip", 5, 5, ""},
		{"subdir caption strip", 5, 20, "sub"},
		{"nested file", 5, 50, "a"},
		{"top-level file", 95, 50, "top"},
		{"outside bounds", 150, 50, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.FindAt(tt.x, tt.y)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("FindAt(%v, %v) = %s, want nil", tt.x, tt.y, got.Label())
			case tt.want != "" && got == nil:
				t.Errorf("FindAt(%v, %v) = nil, want %s", tt.x, tt.y, tt.want)
			case tt.want != "" && got.Label() != tt.want:
				t.Errorf("FindAt(%v, %v) = %s, want %s", tt.x, tt.y, got.Label(), tt.want)
			}
		})
	}
}
