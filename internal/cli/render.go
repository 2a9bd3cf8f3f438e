package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	duerr "github.com/Koranir/dumap/pkg/errors"
	"github.com/Koranir/dumap/pkg/render"
	"github.com/Koranir/dumap/pkg/report"
	"github.com/Koranir/dumap/pkg/scan"
	"github.com/Koranir/dumap/pkg/treemap"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: "svg", "png", "pdf", "json", "dot"
	layout   layoutOpts
	hover    bool    // embed hover CSS in SVG output
	scale    float64 // PNG resolution multiplier
	dotFiles bool    // include file leaves in DOT output
	dotDepth int     // directory depth limit for DOT output
}

// renderCommand creates the render command for generating treemap images.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		layout: c.defaultLayoutOpts(),
		hover:  c.Config.Hover,
		scale:  2.0,
	}

	cmd := &cobra.Command{
		Use:   "render [dir | usage.json | layout.json]",
		Short: "Render a treemap to SVG, PNG, PDF, JSON, or DOT",
		Long: `Render a treemap to SVG, PNG, PDF, JSON, or DOT.

The input can be a directory (scanned on the fly), a usage.json report from
'scan', or a layout.json file from 'layout'. PNG and PDF are produced by
converting the SVG with rsvg-convert; DOT emits a Graphviz diagram of the
directory tree instead of a treemap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.Format)
			for _, f := range opts.formats {
				if err := duerr.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	opts.layout.register(cmd)
	cmd.Flags().BoolVar(&opts.hover, "hover", opts.hover, "embed hover highlighting CSS in SVG output")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.dotFiles, "dot-files", false, "include file leaves in DOT output")
	cmd.Flags().IntVar(&opts.dotDepth, "dot-depth", 0, "directory depth limit for DOT output (0 = unbounded)")

	return cmd
}

// renderInput is the resolved render source: a treemap to draw and,
// when the input carried one, the scanned tree behind it.
type renderInput struct {
	layout   *treemap.Layout
	tree     *scan.Node // nil when rendering a serialized layout
	reportID string
}

// runRender resolves the input, then renders every requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	c.Logger.Info("rendering", "input", input)

	src, err := c.resolveRenderInput(ctx, input, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, format := range opts.formats {
		data, err := c.renderFormat(src, format, opts)
		if err != nil {
			return duerr.Wrap(duerr.ErrCodeRenderFailed, err, "render %s", format)
		}

		out := opts.output
		if out == "" || len(opts.formats) > 1 {
			out = renderBasePath(opts.output, input) + "." + format
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", out, err)
		}
		printSuccess("Generated %s", format)
		printFile(out)
	}

	return nil
}

// resolveRenderInput turns the input argument into a treemap layout.
// Directories are scanned, usage reports are laid out, and serialized
// layouts are used as-is (ignoring the frame flags).
func (c *CLI) resolveRenderInput(ctx context.Context, input string, opts *renderOpts) (renderInput, error) {
	if err := duerr.ValidateDimensions(opts.layout.width, opts.layout.height); err != nil {
		return renderInput{}, err
	}
	bounds := treemap.Rect{W: opts.layout.width, H: opts.layout.height}

	info, err := os.Stat(input)
	if err == nil && info.IsDir() {
		spinner := newSpinner(ctx, fmt.Sprintf("Scanning %s...", input))
		spinner.Start()
		node, err := scan.Scan(input, scan.Options{Logger: c.Logger})
		if err != nil {
			spinner.StopWithError("Scan failed")
			return renderInput{}, duerr.Wrap(duerr.ErrCodeScanFailed, err, "cannot scan %s", input)
		}
		spinner.Stop()
		return renderInput{
			layout: treemap.Build(node, bounds, opts.layout.treemapOptions()),
			tree:   node,
		}, nil
	}

	if rep, err := report.ReadReportFile(input); err == nil {
		node := rep.Tree.Node(rep.Root)
		return renderInput{
			layout:   treemap.Build(node, bounds, opts.layout.treemapOptions()),
			tree:     node,
			reportID: rep.ID,
		}, nil
	}

	wire, err := report.ReadLayoutFile(input)
	if err != nil {
		return renderInput{}, duerr.Wrap(duerr.ErrCodeInvalidInput, err, "%s is neither a directory, usage report, nor layout", input)
	}
	return renderInput{layout: wire.Treemap(), reportID: wire.ID}, nil
}

// renderFormat produces the bytes for one output format.
func (c *CLI) renderFormat(src renderInput, format string, opts *renderOpts) ([]byte, error) {
	svgOpts := []render.SVGOption{}
	if opts.hover {
		svgOpts = append(svgOpts, render.WithHover())
	}

	switch format {
	case "svg":
		return render.RenderSVG(src.layout, svgOpts...), nil
	case "png":
		return render.ToPNG(render.RenderSVG(src.layout, svgOpts...), opts.scale)
	case "pdf":
		return render.ToPDF(render.RenderSVG(src.layout, svgOpts...))
	case "json":
		return report.MarshalLayout(report.ExportLayout(src.layout, src.reportID))
	case "dot":
		if src.tree == nil {
			return nil, duerr.New(duerr.ErrCodeUnsupported, "dot output needs a directory or usage report input")
		}
		dot := render.ToDOT(src.tree, render.DOTOptions{
			MaxDepth:     opts.dotDepth,
			IncludeFiles: opts.dotFiles,
		})
		return []byte(dot), nil
	default:
		return nil, duerr.New(duerr.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// renderBasePath derives the base output path from the output flag and
// input path, stripping any known format extension.
func renderBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, f := range duerr.ValidFormats {
		if ext == f {
			return strings.TrimSuffix(output, "."+ext)
		}
	}
	return output
}
