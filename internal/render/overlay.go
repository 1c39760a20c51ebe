// Package render composites detection results onto the original image.
// Edge pixels and detected segments are painted in fixed marker colors,
// each behind its own visibility toggle.
package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"linescope/internal/detection"
	"linescope/internal/imaging"
)

// Palette holds the marker colors and stroke width used when compositing.
type Palette struct {
	// Edge is the color painted over edge-map pixels.
	Edge color.NRGBA

	// Line is the color used to stroke detected segments.
	Line color.NRGBA

	// LineWidth is the stroke width for segments, in pixels.
	LineWidth int
}

// DefaultPalette returns the fixed marker scheme: red edge pixels and
// green 2-pixel segment strokes.
func DefaultPalette() Palette {
	return Palette{
		Edge:      color.NRGBA{R: 255, A: 255},
		Line:      color.NRGBA{G: 255, A: 255},
		LineWidth: 2,
	}
}

// PaletteFromHex builds a Palette from "#RRGGBB" marker colors. The hex
// strings are validated and converted through the colorful package; a
// non-positive width falls back to the default stroke width.
func PaletteFromHex(edgeHex, lineHex string, lineWidth int) (Palette, error) {
	pal := DefaultPalette()

	edge, err := colorful.Hex(edgeHex)
	if err != nil {
		return pal, fmt.Errorf("invalid edge marker color %q: %w", edgeHex, err)
	}
	line, err := colorful.Hex(lineHex)
	if err != nil {
		return pal, fmt.Errorf("invalid line marker color %q: %w", lineHex, err)
	}

	er, eg, eb := edge.RGB255()
	lr, lg, lb := line.RGB255()
	pal.Edge = color.NRGBA{R: er, G: eg, B: eb, A: 255}
	pal.Line = color.NRGBA{R: lr, G: lg, B: lb, A: 255}
	if lineWidth > 0 {
		pal.LineWidth = lineWidth
	}
	return pal, nil
}

// Overlay composites the edge map and detected segments onto a copy of
// the source buffer.
//
// With showEdges set, every edge-map pixel is recolored to the edge
// marker, overwriting the original sample. With showLines set, every
// segment is stroked with the line marker at the palette's stroke width.
// Lines are drawn after edges so strokes are never obscured by edge
// markers. With neither flag set the result is a plain copy,
// byte-identical to the input.
func Overlay(src *imaging.Buffer, edges *imaging.EdgeMap, segments []detection.Segment, showEdges, showLines bool, pal Palette) *imaging.Buffer {
	out := src.Clone()

	if showEdges && edges != nil {
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				if edges.At(x, y) {
					out.SetNRGBA(x, y, pal.Edge)
				}
			}
		}
	}

	if showLines {
		for _, seg := range segments {
			strokeSegment(out, seg, pal.Line, pal.LineWidth)
		}
	}

	return out
}

// strokeSegment draws a segment with the given stroke width using
// Bresenham stepping, stamping a width x width block at each step.
func strokeSegment(buf *imaging.Buffer, seg detection.Segment, c color.NRGBA, width int) {
	if width < 1 {
		width = 1
	}
	half := (width - 1) / 2

	x0, y0 := seg.X1, seg.Y1
	x1, y1 := seg.X2, seg.Y2

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		stamp(buf, x0-half, y0-half, width, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// stamp fills a size x size block anchored at (x, y), clipped to the
// buffer bounds.
func stamp(buf *imaging.Buffer, x, y, size int, c color.NRGBA) {
	for dy := 0; dy < size; dy++ {
		py := y + dy
		if py < 0 || py >= buf.Height {
			continue
		}
		for dx := 0; dx < size; dx++ {
			px := x + dx
			if px < 0 || px >= buf.Width {
				continue
			}
			buf.SetNRGBA(px, py, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
