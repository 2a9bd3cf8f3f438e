package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from config.toml. Every field
// has a working default so the file is entirely optional.
type Config struct {
	// Width and Height are the default render frame in layout units.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// LabelHeight is the caption text size passed to the layout.
	LabelHeight float64 `toml:"label_height"`

	// MinArea is the smallest box area drawn individually; smaller
	// entries collapse into an aggregate box.
	MinArea float64 `toml:"min_area"`

	// Format is the default render output format.
	Format string `toml:"format"`

	// Hover embeds hover CSS in SVG output.
	Hover bool `toml:"hover"`

	// Addr is the default listen address for the serve command.
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in defaults used when no config file
// exists.
func DefaultConfig() Config {
	return Config{
		Width:       1024,
		Height:      768,
		LabelHeight: 12,
		MinArea:     64,
		Format:      "svg",
		Hover:       true,
		Addr:        "localhost:8817",
	}
}

// LoadConfig reads a TOML config file and applies it on top of
// [DefaultConfig]. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return DefaultConfig(), fmt.Errorf("%s: width and height must be positive", path)
	}
	return cfg, nil
}
