// Package pkg provides the core libraries for dumap disk usage visualization.
//
// # Overview
//
// Dumap walks directory trees, measures the disk space every entry actually
// occupies, and turns the result into squarified treemaps. The pkg directory
// is organized into five areas:
//
//  1. [scan] - Filesystem walking and disk usage measurement
//  2. [treemap] - Squarified treemap partitioning and layout
//  3. [render] - Output formats (SVG, PNG, PDF, Graphviz DOT)
//  4. [report] - Serialization types for usage reports and layouts
//  5. [errors] - Structured errors with codes and input validation
//
// # Architecture
//
// The typical data flow through dumap:
//
//	Directory tree
//	         ↓
//	    [scan] package (walk + measure disk usage)
//	         ↓
//	    [treemap] package (partition + squarified layout)
//	         ↓
//	    [render] package (SVG / PNG / PDF / DOT)
//	         ↓
//	    files, HTTP responses, terminal tiles
//
// # Quick Start
//
// Scan a directory and render a treemap:
//
//	import (
//	    "github.com/Koranir/dumap/pkg/scan"
//	    "github.com/Koranir/dumap/pkg/treemap"
//	    "github.com/Koranir/dumap/pkg/render"
//	)
//
//	// 1. Walk the tree
//	root, _ := scan.Scan("/var/log", scan.Options{})
//
//	// 2. Compute the layout
//	l := treemap.Build(root, treemap.Rect{W: 1024, H: 768}, treemap.Options{})
//
//	// 3. Render to SVG
//	svg := render.RenderSVG(l, render.WithHover())
//
// # Main Packages
//
// [scan] - Depth-first filesystem walker. Sizes are allocated blocks, not
// logical lengths, and files with multiple hard links are apportioned across
// their links so totals never double count. Symbolic links are recorded but
// never followed.
//
// [treemap] - Squarified treemap layout. [treemap.Partition] folds a
// directory's smallest entries into a single aggregate slot, [treemap.Squarify]
// tiles weighted elements into near-square rectangles, and [treemap.Build]
// applies both recursively with a caption strip reserved at every level.
//
// [render] - Renderers over a computed layout: standalone SVG documents with
// per-extension colors and gradients, PNG and PDF conversion via rsvg-convert,
// and Graphviz DOT diagrams of the directory tree.
//
// [report] - Serialization types for usage reports (usage.json) and computed
// layouts (layout.json). Reports round-trip back into scan trees so layouts
// can be recomputed without rescanning.
//
// [errors] - Error codes shared by the CLI and HTTP server, plus validation
// for scan roots, output formats, and frame dimensions.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/treemap/...  # Specific package
//
// [scan]: https://pkg.go.dev/github.com/Koranir/dumap/pkg/scan
// [treemap]: https://pkg.go.dev/github.com/Koranir/dumap/pkg/treemap
// [render]: https://pkg.go.dev/github.com/Koranir/dumap/pkg/render
// [report]: https://pkg.go.dev/github.com/Koranir/dumap/pkg/report
// [errors]: https://pkg.go.dev/github.com/Koranir/dumap/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/Koranir/dumap/pkg/buildinfo
package pkg
