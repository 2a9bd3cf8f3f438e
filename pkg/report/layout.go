package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Koranir/dumap/pkg/scan"
	"github.com/Koranir/dumap/pkg/treemap"
)

// =============================================================================
// Layout - Treemap Serialization
// =============================================================================

// Layout is the serialization format for a computed treemap. It
// carries everything a renderer needs to draw the boxes without
// re-running the layout algorithm.
type Layout struct {
	// ID links the layout to the report it was computed from, or a
	// fresh UUID when the layout was built straight from a scan.
	ID string `json:"report_id"`

	Root        string  `json:"root"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	LabelHeight float64 `json:"label_height"`

	Boxes []Box `json:"boxes"`
}

// Box is one positioned rectangle. Boxes appear in draw order, parents
// before their children.
type Box struct {
	ID        int     `json:"id"`
	Path      string  `json:"path"`
	Label     string  `json:"label"`
	Kind      string  `json:"kind,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Size      int64   `json:"size"`
	Depth     int     `json:"depth"`
	Aggregate bool    `json:"aggregate,omitempty"`
}

// ExportLayout flattens a computed treemap into its wire format. The
// reportID may be empty, in which case a fresh UUID is assigned.
func ExportLayout(l *treemap.Layout, reportID string) Layout {
	if reportID == "" {
		reportID = uuid.NewString()
	}
	out := Layout{
		ID:          reportID,
		Width:       l.Bounds.W,
		Height:      l.Bounds.H,
		LabelHeight: l.LabelHeight,
		Boxes:       make([]Box, len(l.Boxes)),
	}
	if l.Root != nil {
		out.Root = l.Root.Path
	}
	for i, b := range l.Boxes {
		box := Box{
			ID:        b.ID,
			Label:     b.Label(),
			X:         b.Rect.X,
			Y:         b.Rect.Y,
			W:         b.Rect.W,
			H:         b.Rect.H,
			Size:      b.Size,
			Depth:     b.Depth,
			Aggregate: b.Aggregate(),
		}
		if b.Node != nil {
			box.Path = b.Node.Path
			box.Kind = b.Node.Kind.String()
		} else {
			box.Path = b.Dir.Path
		}
		out.Boxes[i] = box
	}
	return out
}

// Treemap rebuilds a drawable layout from the wire format. Geometry,
// captions, and colors survive the round trip; the reconstructed boxes
// reference synthetic nodes carrying only path, kind, and size.
func (l Layout) Treemap() *treemap.Layout {
	out := &treemap.Layout{
		Bounds:      treemap.Rect{W: l.Width, H: l.Height},
		LabelHeight: l.LabelHeight,
		Boxes:       make([]treemap.Box, len(l.Boxes)),
	}
	for i, b := range l.Boxes {
		box := treemap.Box{
			ID:    b.ID,
			Rect:  treemap.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H},
			Size:  b.Size,
			Depth: b.Depth,
		}
		if b.Aggregate {
			box.Dir = &scan.Node{Path: b.Path, Kind: scan.KindDir}
		} else {
			box.Node = &scan.Node{Path: b.Path, Size: b.Size, Kind: parseKind(b.Kind)}
		}
		out.Boxes[i] = box
	}
	return out
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the frame dimensions are positive.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have positive dimensions, got %gx%g", l.Width, l.Height)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
