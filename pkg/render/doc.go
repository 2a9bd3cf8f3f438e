// Package render draws treemap layouts.
//
// # Overview
//
// This package turns a [treemap.Layout] into visual outputs:
//
//   - SVG documents via [RenderSVG], with per-extension gradient fills
//     and optional hover styling
//   - Graphviz node-link diagrams of the directory tree via [ToDOT] and
//     [RenderDOT]
//   - Generic format conversion (SVG to PDF/PNG) via [ToPDF] and [ToPNG]
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the
// external rsvg-convert tool (from librsvg):
//
//	svg := render.RenderSVG(layout, render.WithHover())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Colors
//
// Fill colors come from a [Palette], which assigns every file extension
// a stable hue by walking the color wheel in golden-ratio steps so that
// extensions encountered in sequence stay visually distinct.
package render
