package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	jpegMagic = []byte{0xff, 0xd8}
	riffMagic = []byte{'R', 'I', 'F', 'F'}
	webpMagic = []byte{'W', 'E', 'B', 'P'}
)

// Sniff returns the format of b based on its magic bytes
func Sniff(b []byte) Format {
	switch {
	case bytes.HasPrefix(b, pngMagic):
		return PNG
	case bytes.HasPrefix(b, jpegMagic):
		return JPEG
	case len(b) >= 12 && bytes.Equal(b[0:4], riffMagic) && bytes.Equal(b[8:12], webpMagic):
		return WebP
	default:
		return Unknown
	}
}

func decode(f Format, b []byte) (image.Image, error) {
	r := bytes.NewReader(b)
	switch f {
	case PNG:
		return png.Decode(r)
	case JPEG:
		return jpeg.Decode(r)
	case WebP:
		return webp.Decode(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Decode sniffs and decodes b, returning the image as NRGBA along with the
// detected format.
func Decode(b []byte) (*image.NRGBA, Format, error) {
	f := Sniff(b)
	if f == Unknown {
		return nil, f, ErrUnsupportedFormat
	}

	m, err := decode(f, b)
	if err != nil {
		return nil, f, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, f, err)
	}

	return ToNRGBA(m), f, nil
}

// DecodeConfig returns the dimensions of b without decoding the entire image
func DecodeConfig(b []byte) (image.Config, Format, error) {
	f := Sniff(b)

	var (
		c   image.Config
		err error
	)

	r := bytes.NewReader(b)
	switch f {
	case PNG:
		c, err = png.DecodeConfig(r)
	case JPEG:
		c, err = jpeg.DecodeConfig(r)
	case WebP:
		c, err = webp.DecodeConfig(r)
	default:
		return image.Config{}, f, ErrUnsupportedFormat
	}
	if err != nil {
		return image.Config{}, f, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, f, err)
	}

	return c, f, nil
}

// ToNRGBA returns m as an NRGBA image with its top-left corner at (0, 0),
// converting it if necessary
func ToNRGBA(m image.Image) *image.NRGBA {
	b := m.Bounds()
	if nm, ok := m.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return nm
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	return dst
}

// Resize scales m to the given size using nearest neighbour sampling. A zero
// size, or the current size, returns m unmodified.
func Resize(m *image.NRGBA, size image.Point) *image.NRGBA {
	if size.X <= 0 || size.Y <= 0 || size == m.Bounds().Size() {
		return m
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, m.Bounds(), draw.Src, nil)
	return dst
}
