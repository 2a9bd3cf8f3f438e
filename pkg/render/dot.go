package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-graphviz"

	"github.com/Koranir/dumap/pkg/scan"
)

// DOTOptions configures directory-tree diagram generation.
type DOTOptions struct {
	// MaxDepth limits how far below the root directories are included.
	// Zero means unbounded.
	MaxDepth int

	// IncludeFiles adds leaf nodes for regular files and symlinks.
	// When false only directories appear, which keeps diagrams of real
	// filesystems readable.
	IncludeFiles bool
}

// ToDOT converts a scanned tree to Graphviz DOT format, one node per
// directory labeled with its name and total size. The resulting string
// can be rendered with [RenderDOT].
func ToDOT(root *scan.Node, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph usage {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if root != nil {
		writeDOTNode(&buf, root, 0, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, n *scan.Node, depth int, opts DOTOptions) {
	fmt.Fprintf(buf, "  %q [label=%q];\n", n.Path, dotLabel(n))
	if opts.MaxDepth > 0 && depth+1 > opts.MaxDepth {
		return
	}
	for _, c := range n.Children {
		if !c.IsDir() && !opts.IncludeFiles {
			continue
		}
		if c.IsDir() {
			writeDOTNode(buf, c, depth+1, opts)
		} else {
			attrs := []string{fmt.Sprintf("label=%q", dotLabel(c))}
			if c.Kind == scan.KindSymlink {
				attrs = append(attrs, `style="rounded,filled,dashed"`, "fillcolor=lightgrey")
			}
			fmt.Fprintf(buf, "  %q [%s];\n", c.Path, strings.Join(attrs, ", "))
		}
		fmt.Fprintf(buf, "  %q -> %q;\n", n.Path, c.Path)
	}
}

func dotLabel(n *scan.Node) string {
	return n.Name() + "\n" + humanize.IBytes(uint64(max(n.Size, 0)))
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
// Returns SVG bytes ready for display or conversion with [ToPDF] or [ToPNG].
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg tag to an origin-anchored
// viewBox with explicit pixel dimensions, so converters and browsers
// agree on the canvas size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
