package imaging

import (
	"math"

	"github.com/disintegration/imaging"
)

// Default viewport bounds for the composite display area.
const (
	DefaultViewportWidth  = 896
	DefaultViewportHeight = 716
)

// FitViewport scales a buffer to fit within maxWidth x maxHeight while
// preserving aspect ratio, using Lanczos resampling for anti-aliasing.
//
// The scale factor is ratio = max(width/maxWidth, height/maxHeight). A
// degenerate viewport (either bound <= 0) returns the input unscaled.
// Otherwise the output is (floor(width/ratio), floor(height/ratio)),
// clamped so neither dimension ever exceeds its bound.
func FitViewport(src *Buffer, maxWidth, maxHeight int) *Buffer {
	if maxWidth <= 0 || maxHeight <= 0 {
		return src
	}
	ratio := math.Max(float64(src.Width)/float64(maxWidth), float64(src.Height)/float64(maxHeight))
	if ratio <= 0 {
		return src
	}

	width := int(float64(src.Width) / ratio)
	height := int(float64(src.Height) / ratio)
	if width > maxWidth {
		width = maxWidth
	}
	if height > maxHeight {
		height = maxHeight
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == src.Width && height == src.Height {
		return src.Clone()
	}

	resized := imaging.Resize(src.ToImage(), width, height, imaging.Lanczos)
	return FromImage(resized)
}
