package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
)

const converter = "rsvg-convert"

// ToPDF converts a rendered treemap SVG to PDF via rsvg-convert.
// Requires librsvg (brew install librsvg / apt install librsvg2-bin).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts a rendered treemap SVG to PNG via rsvg-convert. The
// scale multiplies the layout frame, so 2.0 doubles the pixel size;
// values <= 0 fall back to 1.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

func convert(svg []byte, format string, extra ...string) ([]byte, error) {
	if _, err := exec.LookPath(converter); err != nil {
		return nil, fmt.Errorf("%s output requires %s (brew install librsvg / apt install librsvg2-bin)", format, converter)
	}

	cmd := exec.Command(converter, append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s -f %s: %w: %s", converter, format, err, stderr.String())
	}
	return out.Bytes(), nil
}
