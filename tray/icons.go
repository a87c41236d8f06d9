package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"
)

var (
	iconOnce sync.Once
	iconIdle []byte
	iconWarn []byte
)

// Icon returns the tray icon PNG for the current state.
func Icon() []byte {
	iconOnce.Do(func() {
		iconIdle = renderIcon(44, nil)
		iconWarn = renderIcon(44, &color.RGBA{R: 255, G: 204, B: 0, A: 255})
	})
	if Warning() {
		return iconWarn
	}
	return iconIdle
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("encodePNG: " + err.Error())
	}
	return buf.Bytes()
}

// renderIcon draws a dark disc holding a 2x2 grid of tiles, the launcher
// grid in miniature. badge, when set, colours the bottom-right tile.
func renderIcon(size int, badge *color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	c := s / 2
	r := c - 1

	tile := color.RGBA{R: 235, G: 235, B: 235, A: 255}
	half := s * 0.13
	gap := s * 0.16
	centers := [4][2]float64{{c - gap, c - gap}, {c + gap, c - gap}, {c - gap, c + gap}, {c + gap, c + gap}}

	for y := range size {
		for x := range size {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if math.Hypot(fx-c, fy-c) > r {
				continue
			}
			img.Set(x, y, color.Black)
			for i, ct := range centers {
				if math.Abs(fx-ct[0]) <= half && math.Abs(fy-ct[1]) <= half {
					if i == 3 && badge != nil {
						img.Set(x, y, badge)
					} else {
						img.Set(x, y, tile)
					}
				}
			}
		}
	}
	return encodePNG(img)
}
