package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

const jpegQuality = 95

// Encode writes m in the given format. Only PNG and JPEG can be written.
func Encode(m image.Image, f Format) ([]byte, error) {
	b := new(bytes.Buffer)

	var err error
	switch f {
	case PNG:
		e := png.Encoder{CompressionLevel: png.BestSpeed}
		err = e.Encode(b, m)
	case JPEG:
		err = jpeg.Encode(b, m, &jpeg.Options{Quality: jpegQuality})
	default:
		return nil, fmt.Errorf("%w: no encoder for %s", ErrEncodeFailure, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailure, err)
	}

	return b.Bytes(), nil
}
