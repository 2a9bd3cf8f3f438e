package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("empty path should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
width = 800
height = 600
format = "png"
hover = false
addr = "0.0.0.0:9000"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("frame = %gx%g, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Format != "png" {
		t.Errorf("Format = %q, want %q", cfg.Format, "png")
	}
	if cfg.Hover {
		t.Error("Hover = true, want false")
	}
	if cfg.Addr != "0.0.0.0:9000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, "0.0.0.0:9000")
	}

	// Fields the file omits keep their defaults.
	if cfg.LabelHeight != DefaultConfig().LabelHeight {
		t.Errorf("LabelHeight = %g, want default %g", cfg.LabelHeight, DefaultConfig().LabelHeight)
	}
	if cfg.MinArea != DefaultConfig().MinArea {
		t.Errorf("MinArea = %g, want default %g", cfg.MinArea, DefaultConfig().MinArea)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "width = [not toml")
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed config should error")
	}
}

func TestLoadConfig_BadDimensions(t *testing.T) {
	path := writeConfig(t, "width = -5.0")
	if _, err := LoadConfig(path); err == nil {
		t.Error("non-positive width should error")
	}
}
