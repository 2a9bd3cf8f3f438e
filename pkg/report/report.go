package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Koranir/dumap/pkg/scan"
)

// =============================================================================
// Report - Scan Result Serialization
// =============================================================================

// Report is the canonical serialization format for a completed scan.
// Used for files, API responses, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// scan → export → re-import yields an identical tree.
type Report struct {
	// ID is a random UUID assigned when the report is created, telling
	// repeated scans of the same directory apart.
	ID string `json:"report_id"`

	GeneratedAt time.Time `json:"generated_at"`

	// Root is the absolute path the scan started from.
	Root string `json:"root"`

	TotalSize  int64  `json:"total_size"`
	TotalHuman string `json:"total_human"`
	Files      int64  `json:"files"`
	Dirs       int64  `json:"dirs"`
	Symlinks   int64  `json:"symlinks"`

	Tree *Entry `json:"tree"`
}

// Entry is one serialized tree node. Paths are not stored; they are
// reconstructed from the root path and nesting on import.
type Entry struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Size     int64    `json:"size"`
	Nlink    uint64   `json:"nlink,omitempty"`
	Target   string   `json:"target,omitempty"`
	Children []*Entry `json:"children,omitempty"`
}

// New builds a Report for a scanned tree, stamping it with a fresh
// UUID and the current time.
func New(root *scan.Node) Report {
	rep := Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
	if root == nil {
		return rep
	}
	rep.Root = root.Path
	rep.TotalSize = root.Size
	rep.TotalHuman = humanize.IBytes(uint64(max(root.Size, 0)))
	rep.Files = root.Files
	rep.Dirs = root.Dirs
	rep.Symlinks = root.Symlinks
	rep.Tree = FromNode(root)
	return rep
}

// FromNode converts a scanned node and everything below it to the
// serialization format.
func FromNode(n *scan.Node) *Entry {
	if n == nil {
		return nil
	}
	e := &Entry{
		Name:   n.Name(),
		Kind:   n.Kind.String(),
		Size:   n.Size,
		Nlink:  n.Nlink,
		Target: n.Target,
	}
	if len(n.Children) > 0 {
		e.Children = make([]*Entry, len(n.Children))
		for i, c := range n.Children {
			e.Children[i] = FromNode(c)
		}
	}
	return e
}

// Node rebuilds the scan tree rooted at path from a serialized entry.
// The inverse of [FromNode]: sizes, kinds, link counts, and child
// order all survive the round trip.
func (e *Entry) Node(path string) *scan.Node {
	n := &scan.Node{
		Path:   path,
		Size:   e.Size,
		Kind:   parseKind(e.Kind),
		Nlink:  e.Nlink,
		Target: e.Target,
	}
	if len(e.Children) > 0 {
		n.Children = make([]*scan.Node, len(e.Children))
		for i, c := range e.Children {
			child := c.Node(filepath.Join(path, c.Name))
			n.Children[i] = child
			if child.IsDir() {
				n.Dirs += child.Dirs + 1
				n.Files += child.Files
				n.Symlinks += child.Symlinks
			} else {
				n.Files++
				if child.Kind == scan.KindSymlink {
					n.Symlinks++
				}
			}
		}
	}
	return n
}

func parseKind(s string) scan.Kind {
	switch s {
	case "dir":
		return scan.KindDir
	case "symlink":
		return scan.KindSymlink
	default:
		return scan.KindFile
	}
}

// =============================================================================
// Report Serialization API
// =============================================================================

// MarshalReport serializes a Report to pretty-printed JSON bytes.
func MarshalReport(rep Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeReportTo(rep, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalReport deserializes JSON bytes into a Report.
// Returns an error when the tree is missing.
func UnmarshalReport(data []byte) (Report, error) {
	return readReportFrom(bytes.NewReader(data))
}

// WriteReportFile writes a Report to a JSON file.
// The file is created with 0644 permissions.
func WriteReportFile(rep Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeReportTo(rep, f)
}

// ReadReportFile reads a JSON file and returns the decoded Report.
func ReadReportFile(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readReportFrom(f)
}

// WriteReport writes a Report as JSON to an io.Writer.
func WriteReport(rep Report, w io.Writer) error {
	return writeReportTo(rep, w)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeReportTo(rep Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readReportFrom(r io.Reader) (Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("decode: %w", err)
	}
	if rep.Tree == nil {
		return Report{}, fmt.Errorf("report must contain a tree")
	}
	return rep, nil
}
