package cli

import (
	"io"
	"testing"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     []string
	}{
		{"empty uses fallback", "", "svg", []string{"svg"}},
		{"empty with png fallback", "", "png", []string{"png"}},
		{"single format", "svg", "png", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", "svg", []string{"svg", "pdf", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, tt.fallback)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		ext    string
		want   string
	}{
		{"explicit output wins", "out.json", "in.usage.json", "layout.json", "out.json"},
		{"derived from input", "", "in.json", "layout.json", "in.layout.json"},
		{"input without extension", "", "report", "layout.json", "report.layout.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.input, tt.ext)
			if got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.ext, got, tt.want)
			}
		})
	}
}

func TestRenderBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output derives from input", "", "tree.usage.json", "tree.usage"},
		{"output with format ext stripped", "map.svg", "tree.usage.json", "map"},
		{"output with png ext stripped", "map.png", "tree.usage.json", "map"},
		{"output with other ext kept", "map.v2", "tree.usage.json", "map.v2"},
		{"bare output kept", "map", "tree.usage.json", "map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBasePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("renderBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()

	want := []string{"scan", "layout", "render", "browse", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()

	if root.Use != "dumap" {
		t.Errorf("Use = %q, want %q", root.Use, "dumap")
	}
	if root.Version == "" {
		t.Error("root command has no version")
	}
}
