package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Koranir/dumap/pkg/treemap"
)

// goldenRatioConjugate steps the hue wheel so that successive
// extensions land as far apart as possible no matter how many there
// turn out to be.
const goldenRatioConjugate = 0.6180339887498949

// Palette assigns fill colors to treemap boxes. Directories and
// aggregate boxes use fixed muted colors; every file extension gets a
// stable saturated hue in order of first appearance.
//
// A Palette is stateful and not safe for concurrent use. Feeding the
// same layout through the same Palette always yields the same colors.
type Palette struct {
	byExt map[string]colorful.Color
	next  int

	dir       colorful.Color
	aggregate colorful.Color
}

// NewPalette returns an empty palette with the default directory and
// aggregate colors.
func NewPalette() *Palette {
	return &Palette{
		byExt:     make(map[string]colorful.Color),
		dir:       colorful.Hsv(215, 0.30, 0.42),
		aggregate: colorful.Hsv(0, 0, 0.52),
	}
}

// Extension returns the color for a file extension, assigning a new
// hue on first sight. The empty extension is a valid key and covers
// extensionless files.
func (p *Palette) Extension(ext string) colorful.Color {
	if c, ok := p.byExt[ext]; ok {
		return c
	}
	hue := math.Mod(float64(p.next)*goldenRatioConjugate, 1) * 360
	c := colorful.Hsv(hue, 0.55, 0.80)
	p.byExt[ext] = c
	p.next++
	return c
}

// For picks the fill color for a box.
func (p *Palette) For(b treemap.Box) colorful.Color {
	switch {
	case b.Aggregate():
		return p.aggregate
	case b.Node.IsDir():
		return p.dir
	default:
		return p.Extension(b.Node.Ext())
	}
}

// Darken halves a color's value channel, giving the bottom stop of the
// gradient fills.
func Darken(c colorful.Color) colorful.Color {
	h, s, v := c.Hsv()
	return colorful.Hsv(h, s, v*0.5)
}
