package imaging

import (
	"image"
	"image/color"
)

// Buffer is a decoded raster image: width, height, channel count and
// row-major 8-bit samples with an explicit stride. All pipeline stages
// consume and produce Buffers; a stage never mutates its input, it
// returns a new Buffer instead.
//
// Buffers are always 4-channel (NRGBA order). Carrying the channel count
// and stride explicitly keeps layout assumptions at the boundary: code
// indexing Pix goes through Offset rather than recomputing row math.
type Buffer struct {
	// Width and Height are the pixel dimensions.
	Width  int
	Height int

	// Channels is the number of interleaved samples per pixel.
	Channels int

	// Stride is the byte distance between vertically adjacent pixels.
	Stride int

	// Pix holds the samples in row-major order,
	// Pix[Offset(x,y) : Offset(x,y)+Channels] being the pixel at (x, y).
	Pix []uint8
}

// NewBuffer allocates a zeroed 4-channel buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: 4,
		Stride:   width * 4,
		Pix:      make([]uint8, width*height*4),
	}
}

// FromImage converts any image.Image into a Buffer, normalizing to
// 4-channel 8-bit NRGBA samples.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy())

	// Fast path for the representation the decoders usually hand back.
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < buf.Height; y++ {
			row := src.Pix[(y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride+(bounds.Min.X-src.Rect.Min.X)*4:]
			copy(buf.Pix[y*buf.Stride:y*buf.Stride+buf.Stride], row[:buf.Stride])
		}
		return buf
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			i := buf.Offset(x, y)
			buf.Pix[i] = c.R
			buf.Pix[i+1] = c.G
			buf.Pix[i+2] = c.B
			buf.Pix[i+3] = c.A
		}
	}
	return buf
}

// ToImage returns the buffer as an *image.NRGBA sharing no storage with
// the receiver.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+b.Width*4], b.Pix[y*b.Stride:y*b.Stride+b.Width*4])
	}
	return img
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Stride:   b.Stride,
		Pix:      make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// Offset returns the index of the first sample of the pixel at (x, y).
func (b *Buffer) Offset(x, y int) int {
	return y*b.Stride + x*b.Channels
}

// NRGBAAt returns the pixel at (x, y). Coordinates must be in bounds.
func (b *Buffer) NRGBAAt(x, y int) color.NRGBA {
	i := b.Offset(x, y)
	return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// SetNRGBA overwrites the pixel at (x, y). Coordinates must be in bounds.
func (b *Buffer) SetNRGBA(x, y int, c color.NRGBA) {
	i := b.Offset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}
