package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	markColor  = color.RGBA{G: 255, A: 255}
	labelColor = color.RGBA{R: 255, G: 255, A: 255}
)

// crossArm is the half length of the marker cross in pixels
const crossArm = 6

// Annotate returns an RGBA copy of img with a cross and a 1-based index at
// each marker. Marker coordinates are relative to img.Bounds().Min.
func Annotate(img image.Image, markers []image.Point) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}

	for i, m := range markers {
		drawCross(out, m)
		d.Dot = fixed.P(m.X+crossArm+2, m.Y-crossArm)
		d.DrawString(fmt.Sprintf("%d", i+1))
	}
	return out
}

func drawCross(img *image.RGBA, c image.Point) {
	for k := -crossArm; k <= crossArm; k++ {
		setIn(img, c.X+k, c.Y)
		setIn(img, c.X, c.Y+k)
	}
}

func setIn(img *image.RGBA, x, y int) {
	if (image.Point{X: x, Y: y}).In(img.Rect) {
		img.SetRGBA(x, y, markColor)
	}
}

// Save writes img as PNG, creating parent directories.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
