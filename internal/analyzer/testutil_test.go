package analyzer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ivlev/dotfinder/internal/config"
)

var (
	red     = color.NRGBA{R: 255, A: 255}
	magenta = color.NRGBA{R: 255, B: 60, A: 255}
	black   = color.NRGBA{A: 255}
)

// newCanvas returns a w x h black image.
func newCanvas(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: black}, image.Point{}, draw.Src)
	return img
}

// fillDisk paints every pixel within radius r of (cx, cy).
func fillDisk(img draw.Image, cx, cy, r int, c color.Color) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}

func fillRect(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func color3(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func defaultConfig() config.Detector {
	return config.DefaultDetector()
}
