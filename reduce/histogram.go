package reduce

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/bodgit/tileassist/palette"
)

// Count is the number of pixels using a single color
type Count struct {
	Name  string
	Count int
}

// Histogram lists color usage in descending order of count
type Histogram []Count

// Map returns the histogram keyed by color name
func (h Histogram) Map() map[string]int {
	m := make(map[string]int, len(h))
	for _, c := range h {
		m[c.Name] = c.Count
	}
	return m
}

// Total returns the number of pixels counted
func (h Histogram) Total() (n int) {
	for _, c := range h {
		n += c.Count
	}
	return
}

func count(p *palette.Palette, m *image.NRGBA) Histogram {
	hashes := make(map[uint32]int)
	b := m.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := y*m.Stride + x*4
			hashes[palette.Hash(color.NRGBA{m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]})]++
		}
	}

	names := make(map[string]int, len(hashes))
	for h, n := range hashes {
		name := fmt.Sprintf("#%08x", h)
		if e, ok := p.Lookup(h); ok {
			name = e.Name
		}
		names[name] += n
	}

	hist := make(Histogram, 0, len(names))
	for name, n := range names {
		hist = append(hist, Count{name, n})
	}
	sort.Slice(hist, func(i, j int) bool {
		if hist[i].Count != hist[j].Count {
			return hist[i].Count > hist[j].Count
		}
		return hist[i].Name < hist[j].Name
	})

	return hist
}
