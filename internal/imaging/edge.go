package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// blurSigma is the radius of the Gaussian noise-reduction pass applied
// before gradient computation.
const blurSigma = 1.4

// EdgeMap is a binary per-pixel classification of "belongs to an object
// boundary". Its dimensions always equal those of the Buffer it was
// derived from.
type EdgeMap struct {
	Width  int
	Height int

	// Bits holds one entry per pixel in row-major order.
	Bits []bool
}

// NewEdgeMap allocates an all-false edge map of the given size.
func NewEdgeMap(width, height int) *EdgeMap {
	return &EdgeMap{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) is an edge.
func (m *EdgeMap) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Set marks the pixel at (x, y) as an edge.
func (m *EdgeMap) Set(x, y int) {
	m.Bits[y*m.Width+x] = true
}

// Count returns the number of edge pixels.
func (m *EdgeMap) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// DetectEdges computes a binary edge map from an image using
// gradient-threshold edge detection with hysteresis.
//
// Parameters:
//   - src: Source buffer (color or grayscale content).
//   - low: Low hysteresis threshold on gradient magnitude. Weak edges at or
//     above it are kept only when connected to a strong edge.
//   - high: High hysteresis threshold. Pixels at or above it are always edges.
//   - aperture: Size of the square gradient kernel. Normalized to an odd
//     value of at least 3, so aperture 3 uses the classic 3x3 Sobel pair.
//
// If low > high the two are swapped before use; out-of-order thresholds
// are never an error. The call is deterministic: identical input and
// parameters produce an identical EdgeMap.
//
// # Algorithm
//
//  1. Grayscale conversion: RGB -> luminance using ITU-R BT.601 weights
//     (0.299*R + 0.587*G + 0.114*B), after a light Gaussian blur to
//     reduce noise.
//
//  2. Gradient computation: Sobel-style derivative kernels of the
//     requested aperture (binomial smoothing vector times difference
//     vector), giving per-pixel magnitude and direction.
//
//  3. Non-maximum suppression: thin responses to 1-pixel width by keeping
//     only local maxima along the quantized gradient direction.
//
//  4. Hysteresis: pixels >= high are strong edges; pixels >= low are kept
//     only if connected, through any chain of 8-neighbors, to a strong
//     edge.
//
// # Threshold Selection
//
// Thresholds compare against gradient magnitude on a 0..255 luminance
// scale; a hard black-to-white step under a 3x3 kernel peaks slightly
// above 1000, which is why the tuning sliders run 0..1000. Lower
// thresholds detect more edges but admit more noise.
func DetectEdges(src *Buffer, low, high, aperture int) *EdgeMap {
	if low > high {
		low, high = high, low
	}
	aperture = normalizeAperture(aperture)

	width := src.Width
	height := src.Height
	out := NewEdgeMap(width, height)
	if width == 0 || height == 0 {
		return out
	}

	gray := grayscale(blur.Gaussian(src.ToImage(), blurSigma))

	kx, ky := sobelKernels(aperture)
	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := convolveAt(gray, width, height, x, y, kx)
			gy := convolveAt(gray, width, height, x, y, ky)
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	suppressed := suppressNonMaxima(magnitude, direction, width, height)
	hysteresis(suppressed, float64(low), float64(high), out)
	return out
}

// normalizeAperture forces the kernel size to an odd value of at least 3.
// The tuning slider allows values down to 0, but a gradient kernel cannot
// be smaller than 3x3; even sizes round up to the next odd size.
func normalizeAperture(aperture int) int {
	if aperture < 3 {
		return 3
	}
	if aperture%2 == 0 {
		return aperture + 1
	}
	return aperture
}

// grayscale converts an RGBA image to BT.601 luminance on a 0..255 scale.
func grayscale(img *image.RGBA) []float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	gray := make([]float64, width*height)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			r := float64(row[x*4])
			g := float64(row[x*4+1])
			b := float64(row[x*4+2])
			gray[y*width+x] = 0.299*r + 0.587*g + 0.114*b
		}
	}
	return gray
}

// sobelKernels builds the horizontal and vertical derivative kernels for
// the given odd aperture size. Each kernel is the outer product of a
// binomial smoothing vector and a central-difference vector, which for
// aperture 3 reproduces the classic Sobel pair:
//
//	-1  0  1        -1 -2 -1
//	-2  0  2   and   0  0  0
//	-1  0  1         1  2  1
func sobelKernels(aperture int) (kx, ky [][]float64) {
	smooth := pascalRow(aperture)
	diff := diffRow(aperture)

	kx = make([][]float64, aperture)
	ky = make([][]float64, aperture)
	for j := 0; j < aperture; j++ {
		kx[j] = make([]float64, aperture)
		ky[j] = make([]float64, aperture)
		for i := 0; i < aperture; i++ {
			kx[j][i] = smooth[j] * diff[i]
			ky[j][i] = diff[j] * smooth[i]
		}
	}
	return kx, ky
}

// pascalRow returns the n binomial coefficients C(n-1, 0..n-1).
func pascalRow(n int) []float64 {
	row := make([]float64, n)
	row[0] = 1
	for i := 1; i < n; i++ {
		row[i] = row[i-1] * float64(n-i) / float64(i)
	}
	return row
}

// diffRow returns the length-n central-difference vector, the discrete
// derivative of the binomial row one order lower. For n=3 this is
// [-1, 0, 1]; for n=5, [-1, -2, 0, 2, 1].
func diffRow(n int) []float64 {
	prev := pascalRow(n - 1)
	row := make([]float64, n)
	for i := 0; i < n; i++ {
		var left, right float64
		if i-1 >= 0 && i-1 < len(prev) {
			left = prev[i-1]
		}
		if i < len(prev) {
			right = prev[i]
		}
		row[i] = left - right
	}
	return row
}

// convolveAt applies a square kernel centered on (x, y), replicating
// border pixels.
func convolveAt(gray []float64, width, height, x, y int, kernel [][]float64) float64 {
	n := len(kernel)
	half := n / 2
	var sum float64
	for ky := 0; ky < n; ky++ {
		py := clamp(y+ky-half, 0, height-1)
		for kx := 0; kx < n; kx++ {
			px := clamp(x+kx-half, 0, width-1)
			sum += gray[py*width+px] * kernel[ky][kx]
		}
	}
	return sum
}

// suppressNonMaxima keeps only pixels that are local maxima along their
// quantized gradient direction. Border pixels are zeroed.
func suppressNonMaxima(magnitude, direction []float64, width, height int) []float64 {
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y*width+x]
			mag := magnitude[y*width+x]

			// Determine neighbors to compare based on gradient direction
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y*width+x-1]
				n2 = magnitude[y*width+x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[(y-1)*width+x+1]
				n2 = magnitude[(y+1)*width+x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[(y-1)*width+x]
				n2 = magnitude[(y+1)*width+x]
			} else {
				n1 = magnitude[(y-1)*width+x-1]
				n2 = magnitude[(y+1)*width+x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y*width+x] = mag
			}
		}
	}
	return suppressed
}

// hysteresis classifies suppressed magnitudes by double threshold. Strong
// pixels (>= high) seed a flood fill that promotes weak pixels (>= low)
// reachable through any chain of 8-neighbors.
func hysteresis(suppressed []float64, low, high float64, out *EdgeMap) {
	width := out.Width
	height := out.Height

	queue := make([]int, 0, width)
	for i, mag := range suppressed {
		if mag >= high {
			out.Bits[i] = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x := i % width
		y := i / width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				px := x + dx
				py := y + dy
				if px < 0 || px >= width || py < 0 || py >= height {
					continue
				}
				j := py*width + px
				if !out.Bits[j] && suppressed[j] >= low {
					out.Bits[j] = true
					queue = append(queue, j)
				}
			}
		}
	}
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
