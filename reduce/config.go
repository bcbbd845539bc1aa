/*
Package reduce maps arbitrary images onto a palette.

Each pixel is replaced by the nearest enabled palette color, optionally with
Floyd-Steinberg error diffusion. Partially transparent pixels are first
flattened against white; fully transparent pixels always stay transparent.
*/
package reduce

import (
	"sort"
	"strings"
)

// Config selects the colors an image is reduced to and whether dithering is
// applied
type Config struct {
	Colors    []string
	Dithering bool
}

func (c Config) sorted() []string {
	names := append([]string(nil), c.Colors...)
	sort.Strings(names)
	j := 0
	for i, n := range names {
		if i > 0 && n == names[j-1] {
			continue
		}
		names[j] = n
		j++
	}
	return names[:j]
}

// Key returns a string identifying the configuration by value. The order of
// colors is not significant.
func (c Config) Key() string {
	var b strings.Builder
	if c.Dithering {
		b.WriteString("dither")
	} else {
		b.WriteString("plain")
	}
	for _, n := range c.sorted() {
		b.WriteByte('\n')
		b.WriteString(n)
	}
	return b.String()
}

// Equal reports whether two configurations select the same set of colors
// with the same dithering
func (c Config) Equal(o Config) bool {
	return c.Key() == o.Key()
}
