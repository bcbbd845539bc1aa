package reduce

import (
	"image"
	"image/color"
	"sort"

	"github.com/bodgit/tileassist/palette"
	"github.com/ericpauley/go-quantize/quantize"
)

// Suggest picks up to n palette colors that best represent src. The image is
// first reduced to n colors with a median cut, each of those is mapped to
// its nearest opaque palette entry and the distinct names are returned most
// used first.
func Suggest(p *palette.Palette, src image.Image, n int) []string {
	if n <= 0 {
		return nil
	}

	m := Flatten(src)

	q := quantize.MedianCutQuantizer{}
	cut := q.Quantize(make(color.Palette, 0, n), m)
	if len(cut) == 0 {
		return nil
	}

	var candidates []color.NRGBA
	var entries []palette.Entry
	for _, e := range p.Entries() {
		if e.RGBA.A != 0 {
			candidates = append(candidates, e.RGBA)
			entries = append(entries, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Map each median cut color to a palette name
	names := make([]string, len(cut))
	for i, c := range cut {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		nc.A = 0xff
		match := palette.Nearest(nc, candidates)
		for _, e := range entries {
			if e.RGBA == match {
				names[i] = e.Name
				break
			}
		}
	}

	weights := make(map[string]int)
	b := m.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := m.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			weights[names[cut.Index(c)]]++
		}
	}

	suggested := make([]string, 0, len(weights))
	for name := range weights {
		suggested = append(suggested, name)
	}
	sort.Slice(suggested, func(i, j int) bool {
		if weights[suggested[i]] != weights[suggested[j]] {
			return weights[suggested[i]] > weights[suggested[j]]
		}
		return suggested[i] < suggested[j]
	})

	return suggested
}
