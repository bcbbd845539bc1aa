/*
Package codec implements sniffing, decoding and encoding of the raster formats
exchanged with the canvas.

Source images may be PNG, JPEG or WebP and are always decoded into a
non-premultiplied *image.NRGBA so that pixels can be compared byte for byte.
Output can only be written as PNG or JPEG.
*/
package codec

import "errors"

// Format identifies an encoded image format
type Format int

// Supported formats
const (
	Unknown Format = iota
	PNG
	JPEG
	WebP
)

var formatNames = map[Format]string{
	Unknown: "unknown",
	PNG:     "png",
	JPEG:    "jpeg",
	WebP:    "webp",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return formatNames[Unknown]
}

var (
	// ErrUnsupportedFormat is returned when the magic bytes aren't recognised
	ErrUnsupportedFormat = errors.New("codec: unsupported image format")
	// ErrDecodeFailure is returned when the image data is corrupt
	ErrDecodeFailure = errors.New("codec: unable to decode image")
	// ErrEncodeFailure is returned when an image can't be written
	ErrEncodeFailure = errors.New("codec: unable to encode image")
)
