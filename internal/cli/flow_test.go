package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// seedTree writes a small directory tree worth scanning.
func seedTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "big.log"), bytes.Repeat([]byte("x"), 8192), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "small.txt"), bytes.Repeat([]byte("y"), 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	return dir
}

func runCommand(t *testing.T, c *CLI, args ...string) {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("dumap %s: %v", strings.Join(args, " "), err)
	}
}

func TestScanLayoutRenderFlow(t *testing.T) {
	c := newTestCLI(t)
	dir := seedTree(t)
	t.Chdir(t.TempDir())

	runCommand(t, c, "scan", dir, "-o", "tree.usage.json")
	if _, err := os.Stat("tree.usage.json"); err != nil {
		t.Fatalf("scan wrote no report: %v", err)
	}

	runCommand(t, c, "layout", "tree.usage.json")
	if _, err := os.Stat("tree.usage.layout.json"); err != nil {
		t.Fatalf("layout wrote no layout: %v", err)
	}

	runCommand(t, c, "render", "tree.usage.json", "-f", "svg", "-o", "map.svg")
	svg, err := os.ReadFile("map.svg")
	if err != nil {
		t.Fatalf("render wrote no svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg output missing <svg element")
	}
	if !strings.Contains(string(svg), "big.log") {
		t.Error("svg output missing the largest file's caption")
	}

	// A serialized layout renders without the original report.
	runCommand(t, c, "render", "tree.usage.layout.json", "-f", "svg", "-o", "roundtrip.svg")
	if _, err := os.Stat("roundtrip.svg"); err != nil {
		t.Fatalf("render from layout failed: %v", err)
	}
}

func TestRenderDirectoryToDOT(t *testing.T) {
	c := newTestCLI(t)
	dir := seedTree(t)
	t.Chdir(t.TempDir())

	runCommand(t, c, "render", dir, "-f", "dot", "-o", "tree.dot")

	dot, err := os.ReadFile("tree.dot")
	if err != nil {
		t.Fatalf("render wrote no dot: %v", err)
	}
	if !strings.Contains(string(dot), "digraph") {
		t.Error("dot output missing digraph header")
	}
	if !strings.Contains(string(dot), "sub") {
		t.Error("dot output missing subdirectory")
	}
}

func TestRenderMultipleFormats(t *testing.T) {
	c := newTestCLI(t)
	dir := seedTree(t)
	t.Chdir(t.TempDir())

	runCommand(t, c, "scan", dir, "-o", "tree.usage.json")
	runCommand(t, c, "render", "tree.usage.json", "-f", "svg,json", "-o", "out")

	for _, name := range []string{"out.svg", "out.json"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	c := newTestCLI(t)
	dir := seedTree(t)
	t.Chdir(t.TempDir())

	root := c.RootCommand()
	root.SetArgs([]string{"render", dir, "-f", "bmp"})
	if err := root.Execute(); err == nil {
		t.Error("unknown format should fail")
	}
}
