package reduce

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/bodgit/tileassist/codec"
	"github.com/bodgit/tileassist/palette"
)

// Floyd-Steinberg weights, in sixteenths
const (
	weightRight      = 7.0 / 16
	weightBelowLeft  = 3.0 / 16
	weightBelow      = 5.0 / 16
	weightBelowRight = 1.0 / 16
)

// Result is a palette reduced image along with its color usage
type Result struct {
	Image     *image.NRGBA
	Histogram Histogram
}

func flatten(v, a float64) uint8 {
	return uint8(math.Round(v*a + 255*(1-a)))
}

// Flatten returns a copy of src where every partially transparent pixel has
// been composited onto white and made opaque. Fully transparent pixels are
// left as (0, 0, 0, 0).
func Flatten(src image.Image) *image.NRGBA {
	n := codec.ToNRGBA(src)
	b := n.Bounds()
	m := image.NewNRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		copy(m.Pix[y*m.Stride:y*m.Stride+b.Dx()*4], n.Pix[y*n.Stride:y*n.Stride+b.Dx()*4])
	}

	for i := 0; i < len(m.Pix); i += 4 {
		switch a := m.Pix[i+3]; a {
		case 0:
			m.Pix[i], m.Pix[i+1], m.Pix[i+2] = 0, 0, 0
		case 0xff:
		default:
			f := float64(a) / 0xff
			m.Pix[i] = flatten(float64(m.Pix[i]), f)
			m.Pix[i+1] = flatten(float64(m.Pix[i+1]), f)
			m.Pix[i+2] = flatten(float64(m.Pix[i+2]), f)
			m.Pix[i+3] = 0xff
		}
	}

	return m
}

func setPixel(pix []byte, i int, c color.NRGBA) {
	pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
}

// Reduce maps every pixel of src onto the colors enabled by cfg. The only
// error returned for a valid configuration is from ctx being cancelled.
func Reduce(ctx context.Context, p *palette.Palette, src image.Image, cfg Config) (*Result, error) {
	colors, err := p.Colors(cfg.Colors)
	if err != nil {
		return nil, err
	}

	m := Flatten(src)
	if cfg.Dithering {
		err = dither(ctx, m, colors)
	} else {
		err = nearest(ctx, m, colors)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:     m,
		Histogram: count(p, m),
	}, nil
}

func nearest(ctx context.Context, m *image.NRGBA, colors []color.NRGBA) error {
	b := m.Bounds()
	for y := 0; y < b.Dy(); y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < b.Dx(); x++ {
			i := y*m.Stride + x*4
			if m.Pix[i+3] == 0 {
				continue
			}
			c := color.NRGBA{m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]}
			setPixel(m.Pix, i, palette.Nearest(c, colors))
		}
	}
	return nil
}

// diffuser carries the floating point working buffer used while dithering
type diffuser struct {
	m      *image.NRGBA
	w, h   int
	weight []float64
}

func newDiffuser(m *image.NRGBA) *diffuser {
	d := &diffuser{
		m:      m,
		w:      m.Bounds().Dx(),
		h:      m.Bounds().Dy(),
		weight: make([]float64, len(m.Pix)),
	}
	for i, v := range m.Pix {
		d.weight[i] = float64(v)
	}
	return d
}

// spread adds a share of the error to the pixel at (x, y). Writes outside of
// the image or to transparent pixels are dropped.
func (d *diffuser) spread(x, y int, er, eg, eb, factor float64) {
	if x < 0 || x >= d.w || y < 0 || y >= d.h {
		return
	}
	i := y*d.m.Stride + x*4
	if d.m.Pix[i+3] == 0 {
		return
	}
	d.weight[i] += er * factor
	d.weight[i+1] += eg * factor
	d.weight[i+2] += eb * factor
}

func dither(ctx context.Context, m *image.NRGBA, colors []color.NRGBA) error {
	d := newDiffuser(m)
	for y := 0; y < d.h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < d.w; x++ {
			i := y*m.Stride + x*4
			if m.Pix[i+3] == 0 {
				continue
			}

			r, g, b := d.weight[i], d.weight[i+1], d.weight[i+2]
			c := palette.NearestFloat(r, g, b, 0xff, colors)
			setPixel(m.Pix, i, c)

			er, eg, eb := r-float64(c.R), g-float64(c.G), b-float64(c.B)
			d.spread(x+1, y, er, eg, eb, weightRight)
			d.spread(x-1, y+1, er, eg, eb, weightBelowLeft)
			d.spread(x, y+1, er, eg, eb, weightBelow)
			d.spread(x+1, y+1, er, eg, eb, weightBelowRight)
		}
	}
	return nil
}
