package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	duerr "github.com/Koranir/dumap/pkg/errors"
	"github.com/Koranir/dumap/pkg/report"
	"github.com/Koranir/dumap/pkg/treemap"
)

// layoutCommand creates the layout command for computing treemaps.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		opts   layoutOpts
	)
	opts = c.defaultLayoutOpts()

	cmd := &cobra.Command{
		Use:   "layout [usage.json]",
		Short: "Compute a treemap layout from a usage report",
		Long: `Compute a treemap layout from a usage report.

The layout command takes a usage.json file (produced by 'scan') and computes
the squarified treemap for a target frame. The output is a layout.json file
(same format as 'render -f json') listing every box with its position, size,
and depth, ready for rendering by dumap or any other tool.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	opts.register(cmd)

	return cmd
}

// layoutOpts holds the treemap flags shared by layout and render.
type layoutOpts struct {
	width       float64
	height      float64
	labelHeight float64
	minArea     float64
	maxDepth    int
}

func (c *CLI) defaultLayoutOpts() layoutOpts {
	return layoutOpts{
		width:       c.Config.Width,
		height:      c.Config.Height,
		labelHeight: c.Config.LabelHeight,
		minArea:     c.Config.MinArea,
	}
}

func (o *layoutOpts) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.width, "width", o.width, "frame width")
	cmd.Flags().Float64Var(&o.height, "height", o.height, "frame height")
	cmd.Flags().Float64Var(&o.labelHeight, "label-height", o.labelHeight, "caption text size")
	cmd.Flags().Float64Var(&o.minArea, "min-area", o.minArea, "smallest box area drawn individually")
	cmd.Flags().IntVar(&o.maxDepth, "max-depth", o.maxDepth, "limit nesting depth (0 = unbounded)")
}

func (o layoutOpts) treemapOptions() treemap.Options {
	return treemap.Options{
		LabelHeight: o.labelHeight,
		MinArea:     o.minArea,
		MaxDepth:    o.maxDepth,
	}
}

// runLayout loads the report, computes the treemap, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts layoutOpts, output string) error {
	if err := duerr.ValidateDimensions(opts.width, opts.height); err != nil {
		return err
	}

	rep, err := report.ReadReportFile(input)
	if err != nil {
		return fmt.Errorf("load report %s: %w", input, err)
	}
	node := rep.Tree.Node(rep.Root)

	spinner := newSpinner(ctx, "Computing treemap layout...")
	spinner.Start()
	l := treemap.Build(node, treemap.Rect{W: opts.width, H: opts.height}, opts.treemapOptions())
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(output, input, "layout.json")
	if err := report.WriteLayoutFile(report.ExportLayout(l, rep.ID), out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete")
	printFile(out)
	printDetail("%d boxes at %gx%g", len(l.Boxes), opts.width, opts.height)
	printNewline()
	printNextStep("Render", "dumap render "+out)

	return nil
}
