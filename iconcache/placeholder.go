package iconcache

import (
	"image"
	"image/color"
	"math"
)

// Placeholder draws the default link icon: a grey rounded tile with a
// lighter inner square, size x size pixels.
func Placeholder(size int) image.Image {
	if size < 8 {
		size = 8
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	tile := color.RGBA{R: 72, G: 72, B: 80, A: 255}
	inner := color.RGBA{R: 140, G: 140, B: 150, A: 255}

	s := float64(size)
	radius := s / 5
	innerLo, innerHi := s*0.3, s*0.7

	for y := range size {
		for x := range size {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !insideRounded(fx, fy, s, radius) {
				continue
			}
			if fx >= innerLo && fx <= innerHi && fy >= innerLo && fy <= innerHi {
				img.Set(x, y, inner)
			} else {
				img.Set(x, y, tile)
			}
		}
	}
	return img
}

func insideRounded(x, y, size, r float64) bool {
	cx := math.Min(math.Max(x, r), size-r)
	cy := math.Min(math.Max(y, r), size-r)
	return math.Hypot(x-cx, y-cy) <= r
}
