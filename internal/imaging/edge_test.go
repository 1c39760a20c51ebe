package imaging

import (
	"image"
	"image/color"
	"testing"
)

// stepImage returns a width x height buffer that is black on the left
// half and white on the right half.
func stepImage(width, height int) *Buffer {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA{A: 255}
			if x >= width/2 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return FromImage(img)
}

func solidBuffer(width, height int, c color.NRGBA) *Buffer {
	buf := NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetNRGBA(x, y, c)
		}
	}
	return buf
}

func edgesEqual(a, b *EdgeMap) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for i := range a.Bits {
		if a.Bits[i] != b.Bits[i] {
			return false
		}
	}
	return true
}

func TestDetectEdges_ShapeInvariant(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {7, 3}, {100, 100}, {64, 128}}
	for _, size := range sizes {
		buf := solidBuffer(size.w, size.h, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		edges := DetectEdges(buf, 50, 150, 3)
		if edges.Width != size.w || edges.Height != size.h {
			t.Errorf("size %dx%d: edge map %dx%d", size.w, size.h, edges.Width, edges.Height)
		}
		if len(edges.Bits) != size.w*size.h {
			t.Errorf("size %dx%d: Bits length %d", size.w, size.h, len(edges.Bits))
		}
	}
}

func TestDetectEdges_UniformImageHasNoEdges(t *testing.T) {
	buf := solidBuffer(80, 60, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	edges := DetectEdges(buf, 50, 150, 3)
	if got := edges.Count(); got != 0 {
		t.Errorf("uniform image: got %d edge pixels, want 0", got)
	}
}

func TestDetectEdges_AllBlackScene(t *testing.T) {
	// A fully black frame must produce an all-false edge map at any
	// threshold setting.
	buf := solidBuffer(1280, 1024, color.NRGBA{A: 255})
	for _, th := range []struct{ low, high int }{{0, 1}, {50, 150}, {500, 900}} {
		edges := DetectEdges(buf, th.low, th.high, 3)
		if got := edges.Count(); got != 0 {
			t.Errorf("thresholds (%d,%d): got %d edge pixels, want 0", th.low, th.high, got)
		}
	}
}

func TestDetectEdges_StepEdgeLocated(t *testing.T) {
	buf := stepImage(100, 100)
	edges := DetectEdges(buf, 50, 150, 3)

	if edges.Count() == 0 {
		t.Fatal("step image produced no edges")
	}

	// All responses must sit near the x=50 boundary.
	for y := 0; y < edges.Height; y++ {
		for x := 0; x < edges.Width; x++ {
			if edges.At(x, y) && (x < 42 || x > 58) {
				t.Fatalf("edge pixel far from boundary at (%d,%d)", x, y)
			}
		}
	}
}

func TestDetectEdges_Deterministic(t *testing.T) {
	buf := stepImage(64, 64)
	first := DetectEdges(buf, 50, 150, 3)
	second := DetectEdges(buf, 50, 150, 3)
	if !edgesEqual(first, second) {
		t.Error("repeated calls produced different edge maps")
	}
}

func TestDetectEdges_SwappedThresholds(t *testing.T) {
	buf := stepImage(64, 64)
	normal := DetectEdges(buf, 50, 150, 3)
	swapped := DetectEdges(buf, 150, 50, 3)
	if !edgesEqual(normal, swapped) {
		t.Error("low > high should behave as if the thresholds were swapped")
	}
}

func TestDetectEdges_ApertureNormalization(t *testing.T) {
	buf := stepImage(64, 64)

	// Below the minimum rounds up to 3; even sizes round up to odd.
	tiny := DetectEdges(buf, 50, 150, 0)
	three := DetectEdges(buf, 50, 150, 3)
	if !edgesEqual(tiny, three) {
		t.Error("aperture 0 should behave as aperture 3")
	}

	four := DetectEdges(buf, 50, 150, 4)
	five := DetectEdges(buf, 50, 150, 5)
	if !edgesEqual(four, five) {
		t.Error("aperture 4 should behave as aperture 5")
	}
}

func TestSobelKernels_ClassicPair(t *testing.T) {
	kx, ky := sobelKernels(3)

	wantX := [][]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	wantY := [][]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			if kx[j][i] != wantX[j][i] {
				t.Errorf("kx[%d][%d]: got %v, want %v", j, i, kx[j][i], wantX[j][i])
			}
			if ky[j][i] != wantY[j][i] {
				t.Errorf("ky[%d][%d]: got %v, want %v", j, i, ky[j][i], wantY[j][i])
			}
		}
	}
}

func TestDiffRow_Size5(t *testing.T) {
	got := diffRow(5)
	want := []float64{-1, -2, 0, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diffRow(5)[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}
