package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	duerr "github.com/Koranir/dumap/pkg/errors"
	"github.com/Koranir/dumap/pkg/report"
	"github.com/Koranir/dumap/pkg/scan"
)

// scanCommand creates the scan command for walking directory trees.
func (c *CLI) scanCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a directory tree and write a usage report",
		Long: `Scan a directory tree and write a usage report.

The scan walks the tree depth-first, attributing each file the disk space it
actually occupies (allocated blocks divided across hard links). Symbolic links
are recorded but never followed. Entries that cannot be read are skipped with
a warning.

The output is a usage.json report consumed by 'layout', 'render', and 'serve'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dir>.usage.json)")

	return cmd
}

// runScan walks the tree and writes the report.
func (c *CLI) runScan(ctx context.Context, root, output string) error {
	if err := duerr.ValidateScanRoot(root); err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Scanning %s...", root))
	spinner.Start()

	node, err := scan.Scan(root, scan.Options{Logger: c.Logger})
	if err != nil {
		spinner.StopWithError("Scan failed")
		return duerr.Wrap(duerr.ErrCodeScanFailed, err, "cannot scan %s", root)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	rep := report.New(node)

	out := output
	if out == "" {
		base := filepath.Base(node.Path)
		if base == "/" || base == "." {
			base = "usage"
		}
		out = base + ".usage.json"
	}
	if err := report.WriteReportFile(rep, out); err != nil {
		return fmt.Errorf("write report %s: %w", out, err)
	}

	printSuccess("Scan complete")
	printFile(out)
	printScanStats(rep.Files, rep.Dirs, rep.TotalHuman)
	printNewline()
	printNextStep("Render", "dumap render "+out)

	return nil
}
