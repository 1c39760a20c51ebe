package render

import (
	"bytes"
	"image/color"
	"testing"

	"linescope/internal/detection"
	"linescope/internal/imaging"
)

func testBuffer(width, height int) *imaging.Buffer {
	buf := imaging.NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	return buf
}

func TestOverlay_PassThrough(t *testing.T) {
	src := testBuffer(32, 24)
	edges := imaging.NewEdgeMap(32, 24)
	edges.Set(5, 5)
	segments := []detection.Segment{{X1: 1, Y1: 1, X2: 20, Y2: 1}}

	out := Overlay(src, edges, segments, false, false, DefaultPalette())

	if out == src {
		t.Fatal("Overlay returned its input instead of a copy")
	}
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Error("with both toggles off, output must be byte-identical to input")
	}
}

func TestOverlay_EdgeMarkers(t *testing.T) {
	src := testBuffer(16, 16)
	edges := imaging.NewEdgeMap(16, 16)
	edges.Set(3, 4)
	edges.Set(10, 2)

	pal := DefaultPalette()
	out := Overlay(src, edges, nil, true, false, pal)

	for _, p := range [][2]int{{3, 4}, {10, 2}} {
		if got := out.NRGBAAt(p[0], p[1]); got != pal.Edge {
			t.Errorf("edge pixel (%d,%d): got %+v, want %+v", p[0], p[1], got, pal.Edge)
		}
	}
	if got, want := out.NRGBAAt(8, 8), src.NRGBAAt(8, 8); got != want {
		t.Errorf("non-edge pixel changed: got %+v, want %+v", got, want)
	}
}

func TestOverlay_LineStroke(t *testing.T) {
	src := testBuffer(32, 16)
	segments := []detection.Segment{{X1: 2, Y1: 5, X2: 28, Y2: 5}}

	pal := DefaultPalette()
	out := Overlay(src, imaging.NewEdgeMap(32, 16), segments, false, true, pal)

	// The 2-pixel stroke covers the segment row and the row below.
	for x := 2; x <= 28; x++ {
		if got := out.NRGBAAt(x, 5); got != pal.Line {
			t.Errorf("stroke pixel (%d,5): got %+v, want %+v", x, got, pal.Line)
		}
		if got := out.NRGBAAt(x, 6); got != pal.Line {
			t.Errorf("stroke pixel (%d,6): got %+v, want %+v", x, got, pal.Line)
		}
	}
	if got, want := out.NRGBAAt(15, 10), src.NRGBAAt(15, 10); got != want {
		t.Errorf("pixel away from stroke changed: got %+v, want %+v", got, want)
	}
}

func TestOverlay_LinesDrawnOverEdges(t *testing.T) {
	src := testBuffer(16, 16)
	edges := imaging.NewEdgeMap(16, 16)
	edges.Set(8, 8)
	segments := []detection.Segment{{X1: 4, Y1: 8, X2: 12, Y2: 8}}

	pal := DefaultPalette()
	out := Overlay(src, edges, segments, true, true, pal)

	if got := out.NRGBAAt(8, 8); got != pal.Line {
		t.Errorf("pixel under both markers: got %+v, want line color %+v", got, pal.Line)
	}
}

func TestOverlay_ClipsStrokes(t *testing.T) {
	src := testBuffer(10, 10)
	segments := []detection.Segment{{X1: 0, Y1: 0, X2: 9, Y2: 9}}

	// Must not panic stamping near the borders.
	out := Overlay(src, imaging.NewEdgeMap(10, 10), segments, false, true, DefaultPalette())
	if got := out.NRGBAAt(0, 0); got != DefaultPalette().Line {
		t.Errorf("origin pixel: got %+v, want line color", got)
	}
}

func TestOverlay_AllSegmentsRendered(t *testing.T) {
	src := testBuffer(40, 40)
	segments := []detection.Segment{
		{X1: 0, Y1: 2, X2: 39, Y2: 2},
		{X1: 0, Y1: 20, X2: 39, Y2: 20},
		{X1: 0, Y1: 36, X2: 39, Y2: 36},
	}

	pal := DefaultPalette()
	out := Overlay(src, imaging.NewEdgeMap(40, 40), segments, false, true, pal)

	for _, seg := range segments {
		if got := out.NRGBAAt(20, seg.Y1); got != pal.Line {
			t.Errorf("segment at y=%d not rendered", seg.Y1)
		}
	}
}

func TestPaletteFromHex(t *testing.T) {
	pal, err := PaletteFromHex("#ff0000", "#00ff00", 2)
	if err != nil {
		t.Fatalf("PaletteFromHex failed: %v", err)
	}
	if pal.Edge != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("Edge: got %+v", pal.Edge)
	}
	if pal.Line != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("Line: got %+v", pal.Line)
	}
	if pal.LineWidth != 2 {
		t.Errorf("LineWidth: got %d, want 2", pal.LineWidth)
	}
}

func TestPaletteFromHex_Invalid(t *testing.T) {
	if _, err := PaletteFromHex("red", "#00ff00", 2); err == nil {
		t.Error("invalid edge hex accepted")
	}
	if _, err := PaletteFromHex("#ff0000", "zzz", 2); err == nil {
		t.Error("invalid line hex accepted")
	}
}

func TestPaletteFromHex_WidthFallback(t *testing.T) {
	pal, err := PaletteFromHex("#102030", "#405060", 0)
	if err != nil {
		t.Fatalf("PaletteFromHex failed: %v", err)
	}
	if pal.LineWidth != DefaultPalette().LineWidth {
		t.Errorf("LineWidth: got %d, want default %d", pal.LineWidth, DefaultPalette().LineWidth)
	}
}
