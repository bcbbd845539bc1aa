/*
Package state implements the persisted snapshot of the overlay image.

A snapshot holds the original uploaded image bytes rather than the reduced
raster so that the image can be reduced again whenever the configuration
changes. It is written as a small little-endian binary structure:

	magic    [4]byte "TAS1"
	flags    uint8   placement, lock aspect ratio, dithering
	tile     [2]int32
	local    [2]int32
	width    uint32
	height   uint32
	colors   uint16 count, then per color a uint8 length and the name
	raster   uint32 length, then the zstd compressed image bytes

The encoded snapshot may not exceed MaxSize bytes.
*/
package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/tileassist/tile"
	"github.com/klauspost/compress/zstd"
)

const (
	// MaxSize is the largest encoded snapshot that will be accepted
	MaxSize = 2 << (10 * 2)

	maxColors = 1 << 8
)

const (
	flagPlacement = 1 << iota
	flagLockAspectRatio
	flagDithering
)

var magic = [4]byte{'T', 'A', 'S', '1'}

var (
	// ErrSizeLimitExceeded is returned when a snapshot is larger than MaxSize
	ErrSizeLimitExceeded = errors.New("state: size limit exceeded")
	// ErrInvalidSnapshot is returned when a snapshot can't be parsed
	ErrInvalidSnapshot = errors.New("state: invalid snapshot")
)

// Snapshot is the persisted overlay image and its configuration. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Snapshot struct {
	Raster          []byte
	Placement       *tile.Placement
	Width, Height   int
	LockAspectRatio bool
	Colors          []string
	Dithering       bool
}

type header struct {
	Magic  [4]byte
	Flags  uint8
	Tile   [2]int32
	Local  [2]int32
	Width  uint32
	Height uint32
}

func compress(b []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc, err := zstd.NewWriter(buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(b); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(b), zstd.WithDecoderMaxMemory(MaxSize))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	plain, err := io.ReadAll(io.LimitReader(dec, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(plain) > MaxSize {
		return nil, ErrSizeLimitExceeded
	}
	return plain, nil
}

// MarshalBinary encodes the snapshot into binary form and returns the result
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	if len(s.Colors) >= maxColors {
		return nil, fmt.Errorf("state: more than %d colors", maxColors-1)
	}

	h := header{
		Magic:  magic,
		Width:  uint32(s.Width),
		Height: uint32(s.Height),
	}
	if s.Placement != nil {
		h.Flags |= flagPlacement
		h.Tile = [2]int32{int32(s.Placement.TileX), int32(s.Placement.TileY)}
		h.Local = [2]int32{int32(s.Placement.LocalX), int32(s.Placement.LocalY)}
	}
	if s.LockAspectRatio {
		h.Flags |= flagLockAspectRatio
	}
	if s.Dithering {
		h.Flags |= flagDithering
	}

	b := new(bytes.Buffer)

	if err := binary.Write(b, binary.LittleEndian, &h); err != nil {
		return nil, err
	}

	// Write out color names
	if err := binary.Write(b, binary.LittleEndian, uint16(len(s.Colors))); err != nil {
		return nil, err
	}
	for _, c := range s.Colors {
		if len(c) >= 1<<8 {
			return nil, fmt.Errorf("state: color name %q too long", c)
		}
		b.WriteByte(byte(len(c)))
		b.WriteString(c)
	}

	// Write out the compressed raster
	raster, err := compress(s.Raster)
	if err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.LittleEndian, uint32(len(raster))); err != nil {
		return nil, err
	}
	b.Write(raster)

	if b.Len() > MaxSize {
		return nil, ErrSizeLimitExceeded
	}

	return b.Bytes(), nil
}

func invalid(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: truncated", ErrInvalidSnapshot)
	}
	return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
}

// UnmarshalBinary decodes the snapshot from binary form
func (s *Snapshot) UnmarshalBinary(b []byte) error {
	if len(b) > MaxSize {
		return ErrSizeLimitExceeded
	}

	r := bytes.NewReader(b)

	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return invalid(err)
	}
	if h.Magic != magic {
		return fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}

	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return invalid(err)
	}
	colors := make([]string, 0, n)
	for i := 0; i < int(n); i++ {
		l, err := r.ReadByte()
		if err != nil {
			return invalid(err)
		}
		name := make([]byte, l)
		if _, err := io.ReadFull(r, name); err != nil {
			return invalid(err)
		}
		colors = append(colors, string(name))
	}

	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return invalid(err)
	}
	if int64(length) != int64(r.Len()) {
		return fmt.Errorf("%w: raster length mismatch", ErrInvalidSnapshot)
	}
	compressed := make([]byte, length)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return invalid(err)
	}
	raster, err := decompress(compressed)
	if err != nil {
		if errors.Is(err, ErrSizeLimitExceeded) {
			return err
		}
		return invalid(err)
	}

	*s = Snapshot{
		Raster:          raster,
		Width:           int(h.Width),
		Height:          int(h.Height),
		LockAspectRatio: h.Flags&flagLockAspectRatio != 0,
		Colors:          colors,
		Dithering:       h.Flags&flagDithering != 0,
	}
	if h.Flags&flagPlacement != 0 {
		s.Placement = &tile.Placement{
			TileX:  int(h.Tile[0]),
			TileY:  int(h.Tile[1]),
			LocalX: int(h.Local[0]),
			LocalY: int(h.Local[1]),
		}
	}

	return nil
}
