package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
)

// ErrDecode reports that encoded image bytes were malformed or in an
// unsupported format. Use errors.Is to test for it.
var ErrDecode = errors.New("image decode failed")

// Decode turns raw encoded bytes (PNG, JPEG or GIF) into a Buffer.
// Failures wrap ErrDecode and carry the underlying codec error.
func Decode(data []byte) (*Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromImage(img), nil
}
