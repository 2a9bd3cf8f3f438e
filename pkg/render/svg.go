package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Koranir/dumap/pkg/treemap"
)

const boxInteractionCSS = `
    .box rect { transition: opacity 0.15s ease, stroke-width 0.15s ease; }
    .box:hover > rect { opacity: 0.82; stroke-width: 2; }
    .box text { pointer-events: none; }`

// charWidthRatio estimates caption width as a fraction of the font
// size per character, used to decide whether a caption fits its box.
const charWidthRatio = 0.62

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette *Palette
	hover   bool
}

// WithSVGPalette substitutes the palette used for box fills. Reusing
// one palette across renders keeps extension colors consistent between
// outputs of the same scan.
func WithSVGPalette(p *Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithHover embeds CSS that highlights the box under the cursor. Only
// useful for SVGs viewed in a browser; converters ignore it.
func WithHover() SVGOption { return func(r *svgRenderer) { r.hover = true } }

// RenderSVG renders the layout as a standalone SVG document.
//
// Each box becomes a group holding a gradient-filled rectangle, a
// tooltip with the full path and human-readable size, and, when the
// box is large enough, a caption of the form "name - 1.2 MiB".
func RenderSVG(l *treemap.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{palette: NewPalette()}
	for _, opt := range opts {
		opt(&r)
	}

	fills := assignGradients(l, r.palette)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Bounds.X, l.Bounds.Y, l.Bounds.W, l.Bounds.H, l.Bounds.W, l.Bounds.H)

	renderDefs(&buf, l, fills, r.palette)
	if r.hover {
		fmt.Fprintf(&buf, "<style>%s\n</style>\n", boxInteractionCSS)
	}

	for _, b := range l.Boxes {
		renderBox(&buf, l, b, fills[fillKey(b)])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// fillKey groups boxes that share a gradient.
func fillKey(b treemap.Box) string {
	switch {
	case b.Aggregate():
		return "agg"
	case b.Node.IsDir():
		return "dir"
	default:
		return "ext:" + b.Node.Ext()
	}
}

// assignGradients walks the boxes in draw order and hands out gradient
// IDs on first use, so identical layouts produce identical documents.
func assignGradients(l *treemap.Layout, p *Palette) map[string]string {
	fills := make(map[string]string)
	for _, b := range l.Boxes {
		key := fillKey(b)
		if _, ok := fills[key]; !ok {
			fills[key] = fmt.Sprintf("fill%d", len(fills))
			p.For(b)
		}
	}
	return fills
}

func renderDefs(buf *bytes.Buffer, l *treemap.Layout, fills map[string]string, p *Palette) {
	buf.WriteString("<defs>\n")
	emitted := make(map[string]bool, len(fills))
	for _, b := range l.Boxes {
		key := fillKey(b)
		if emitted[key] {
			continue
		}
		emitted[key] = true
		id := fills[key]

		top := p.For(b)
		fmt.Fprintf(buf, `<linearGradient id=%q x1="0" y1="0" x2="0" y2="1">`+"\n", id)
		fmt.Fprintf(buf, `  <stop offset="0%%" stop-color=%q/>`+"\n", top.Hex())
		fmt.Fprintf(buf, `  <stop offset="100%%" stop-color=%q/>`+"\n", Darken(top).Hex())
		buf.WriteString("</linearGradient>\n")
	}
	buf.WriteString("</defs>\n")
}

func renderBox(buf *bytes.Buffer, l *treemap.Layout, b treemap.Box, fillID string) {
	buf.WriteString(`<g class="box">` + "\n")
	fmt.Fprintf(buf, "  <title>%s</title>\n", svgEscape(tooltip(b)))
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#%s)" stroke="#141414" stroke-width="1"/>`+"\n",
		b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, fillID)

	if caption := fitCaption(l, b); caption != "" {
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="#f2f2f2">%s</text>`+"\n",
			b.Rect.X+2, b.Rect.Y+l.LabelHeight*1.1, l.LabelHeight, svgEscape(caption))
	}
	buf.WriteString("</g>\n")
}

func tooltip(b treemap.Box) string {
	size := humanize.IBytes(uint64(max(b.Size, 0)))
	if b.Aggregate() {
		return fmt.Sprintf("%s: small entries - %s", b.Dir.Path, size)
	}
	return fmt.Sprintf("%s - %s", b.Node.Path, size)
}

// fitCaption returns the caption to draw, shortened or dropped when
// the box is too small for it.
func fitCaption(l *treemap.Layout, b treemap.Box) string {
	if b.Rect.H < l.LabelHeight*1.4 {
		return ""
	}
	charWidth := l.LabelHeight * charWidthRatio

	full := fmt.Sprintf("%s - %s", b.Label(), humanize.IBytes(uint64(max(b.Size, 0))))
	if float64(len(full))*charWidth <= b.Rect.W-4 {
		return full
	}
	if name := b.Label(); float64(len(name))*charWidth <= b.Rect.W-4 {
		return name
	}
	return ""
}

var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func svgEscape(s string) string {
	return svgEscaper.Replace(s)
}
