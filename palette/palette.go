/*
Package palette implements the fixed table of colors that may be placed on
the canvas along with a perceptual nearest color search.

Colors are identified by a packed 32-bit hash laid out as r<<24 | g<<16 |
a<<8 | b. The hash is the key used to resolve a color back to its name so the
same layout must be used everywhere a color is looked up.
*/
package palette

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrUnknownColor is returned when a color name isn't in the palette
var ErrUnknownColor = errors.New("palette: unknown color")

// Entry is a single named palette color
type Entry struct {
	Name  string
	Index uint8
	RGBA  color.NRGBA
	Paid  bool
}

// Palette is an immutable, ordered set of entries
type Palette struct {
	entries []Entry
	byName  map[string]int
	byHash  map[uint32]int
}

// New returns a palette built from the given entries. Where two entries
// share the same color, the first one owns the hash.
func New(entries []Entry) (*Palette, error) {
	p := &Palette{
		entries: append(entries[:0:0], entries...),
		byName:  make(map[string]int, len(entries)),
		byHash:  make(map[uint32]int, len(entries)),
	}
	for i, e := range p.entries {
		if _, ok := p.byName[e.Name]; ok {
			return nil, fmt.Errorf("palette: duplicate color %q", e.Name)
		}
		p.byName[e.Name] = i
		h := Hash(e.RGBA)
		if _, ok := p.byHash[h]; !ok {
			p.byHash[h] = i
		}
	}
	return p, nil
}

// Default returns the canvas palette
func Default() *Palette {
	p, err := New(defaultEntries)
	if err != nil {
		panic(err)
	}
	return p
}

// Hash packs a color into its lookup key
func Hash(c color.NRGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.A)<<8 | uint32(c.B)
}

// Entries returns a copy of every entry in table order
func (p *Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Names returns every color name in table order
func (p *Palette) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.Name
	}
	return names
}

// Free returns the names of all colors that aren't paid for
func (p *Palette) Free() []string {
	var names []string
	for _, e := range p.entries {
		if !e.Paid {
			names = append(names, e.Name)
		}
	}
	return names
}

// Paid returns the names of all paid colors
func (p *Palette) Paid() []string {
	var names []string
	for _, e := range p.entries {
		if e.Paid {
			names = append(names, e.Name)
		}
	}
	return names
}

// Entry returns the entry with the given name
func (p *Palette) Entry(name string) (Entry, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Lookup resolves a packed color hash back to its entry
func (p *Palette) Lookup(hash uint32) (Entry, bool) {
	i, ok := p.byHash[hash]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Colors returns the colors for the given names, preserving their order
func (p *Palette) Colors(names []string) ([]color.NRGBA, error) {
	colors := make([]color.NRGBA, 0, len(names))
	for _, name := range names {
		e, ok := p.Entry(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		colors = append(colors, e.RGBA)
	}
	return colors, nil
}

// ContainsFree reports whether any of the named colors is free. Unknown
// names are ignored.
func (p *Palette) ContainsFree(names []string) bool {
	for _, name := range names {
		if e, ok := p.Entry(name); ok && !e.Paid {
			return true
		}
	}
	return false
}

// ContainsPaid reports whether any of the named colors is paid for
func (p *Palette) ContainsPaid(names []string) bool {
	for _, name := range names {
		if e, ok := p.Entry(name); ok && e.Paid {
			return true
		}
	}
	return false
}
