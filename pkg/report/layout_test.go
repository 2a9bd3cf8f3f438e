package report

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Koranir/dumap/pkg/treemap"
)

func sampleLayout() *treemap.Layout {
	return treemap.Build(sampleTree(), treemap.Rect{W: 400, H: 300}, treemap.Options{LabelHeight: 12, MinArea: 1})
}

func TestExportLayout(t *testing.T) {
	l := sampleLayout()
	out := ExportLayout(l, "fixed-id")

	if out.ID != "fixed-id" {
		t.Errorf("ID = %q, want %q", out.ID, "fixed-id")
	}
	if out.Root != "/r" {
		t.Errorf("Root = %q, want %q", out.Root, "/r")
	}
	if out.Width != 400 || out.Height != 300 {
		t.Errorf("dimensions = %gx%g, want 400x300", out.Width, out.Height)
	}
	if out.LabelHeight != 12 {
		t.Errorf("LabelHeight = %g, want 12", out.LabelHeight)
	}
	if len(out.Boxes) != len(l.Boxes) {
		t.Fatalf("len(Boxes) = %d, want %d", len(out.Boxes), len(l.Boxes))
	}
	for i, b := range out.Boxes {
		src := l.Boxes[i]
		if b.ID != src.ID || b.Label != src.Label() || b.Depth != src.Depth {
			t.Errorf("Boxes[%d] = %+v does not match source box", i, b)
		}
		if b.Path == "" {
			t.Errorf("Boxes[%d].Path is empty", i)
		}
	}
}

func TestExportLayout_AssignsID(t *testing.T) {
	if ExportLayout(sampleLayout(), "").ID == "" {
		t.Error("ExportLayout() with empty ID assigned none")
	}
}

func TestLayoutFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	out := ExportLayout(sampleLayout(), "")

	if err := WriteLayoutFile(out, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, out) {
		t.Errorf("round trip changed the layout:\ngot  %+v\nwant %+v", got, out)
	}
}

func TestLayout_Treemap(t *testing.T) {
	src := sampleLayout()
	got := ExportLayout(src, "id").Treemap()

	if got.Bounds != src.Bounds {
		t.Errorf("Bounds = %+v, want %+v", got.Bounds, src.Bounds)
	}
	if got.LabelHeight != src.LabelHeight {
		t.Errorf("LabelHeight = %g, want %g", got.LabelHeight, src.LabelHeight)
	}
	if len(got.Boxes) != len(src.Boxes) {
		t.Fatalf("len(Boxes) = %d, want %d", len(got.Boxes), len(src.Boxes))
	}
	for i, b := range got.Boxes {
		want := src.Boxes[i]
		if b.Rect != want.Rect || b.Size != want.Size || b.Depth != want.Depth {
			t.Errorf("Boxes[%d] = %+v, want geometry of %+v", i, b, want)
		}
		if b.Label() != want.Label() {
			t.Errorf("Boxes[%d].Label() = %q, want %q", i, b.Label(), want.Label())
		}
		if b.Aggregate() != want.Aggregate() {
			t.Errorf("Boxes[%d].Aggregate() = %v, want %v", i, b.Aggregate(), want.Aggregate())
		}
	}
}

func TestUnmarshalLayout_RejectsBadDimensions(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"report_id": "x", "width": 0, "height": 100}`)); err == nil {
		t.Error("UnmarshalLayout() accepted zero width")
	}
}
