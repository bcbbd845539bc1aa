package palette

import (
	"image/color"
	"math"
)

var black = color.NRGBA{0, 0, 0, 0xff}

// distance returns the squared redmean distance between a sample and a
// candidate. The sample is float64 so that dithering can carry accumulated
// error through unclamped.
func distance(r, g, b float64, c color.NRGBA) float64 {
	rMean := (r + float64(c.R)) / 2
	dr := r - float64(c.R)
	dg := g - float64(c.G)
	db := b - float64(c.B)
	return ((512+rMean)*dr*dr)/256 + 4*dg*dg + ((767-rMean)*db*db)/256
}

// Distance returns the perceptual distance between two colors
func Distance(x, y color.NRGBA) float64 {
	return math.Sqrt(distance(float64(x.R), float64(x.G), float64(x.B), y))
}

// Nearest returns the candidate closest to sample. A fully transparent
// sample matches a fully transparent candidate if there is one, and
// transparent candidates never match anything else. An empty candidate list
// yields opaque black.
func Nearest(sample color.NRGBA, candidates []color.NRGBA) color.NRGBA {
	return NearestFloat(float64(sample.R), float64(sample.G), float64(sample.B), sample.A, candidates)
}

// NearestFloat is Nearest for a sample whose color channels may lie outside
// of 0-255.
func NearestFloat(r, g, b float64, a uint8, candidates []color.NRGBA) color.NRGBA {
	if len(candidates) == 0 {
		return black
	}

	best, found := black, false
	bestDistance := math.Inf(1)
	for _, c := range candidates {
		if c.A == 0 {
			if a == 0 {
				return c
			}
			continue
		}
		if d := distance(r, g, b, c); d < bestDistance {
			best, bestDistance, found = c, d, true
		}
	}
	if !found {
		// Only transparent candidates and an opaque sample
		return black
	}
	return best
}
