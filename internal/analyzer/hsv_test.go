package analyzer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/dotfinder/internal/config"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		h, s, v uint8
	}{
		{"red", 255, 0, 0, 0, 255, 255},
		{"green", 0, 255, 0, 60, 255, 255},
		{"blue", 0, 0, 255, 120, 255, 255},
		{"yellow", 255, 255, 0, 30, 255, 255},
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 255},
		{"gray", 128, 128, 128, 0, 0, 128},
		{"pink wraps around", 255, 0, 128, 165, 255, 255},
		{"orange", 255, 128, 0, 15, 255, 255},
		{"dark red", 90, 0, 0, 0, 255, 90},
		{"pale red", 255, 200, 200, 0, 55, 255},
		{"fixed-point hue below band B", 101, 0, 69, 159, 255, 101},
		{"fixed-point hue at band A edge", 200, 70, 0, 10, 255, 200},
		{"fixed-point saturation", 201, 71, 1, 10, 254, 201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
			assert.Equal(t, [3]uint8{tt.h, tt.s, tt.v}, [3]uint8{h, s, v})
		})
	}
}

func TestToHSVMatchesGenericPath(t *testing.T) {
	nrgba := newCanvas(8, 4)
	rgba := image.NewRGBA(image.Rect(0, 0, 8, 4))
	colors := []color.NRGBA{red, magenta, black, {R: 10, G: 200, B: 30, A: 255}}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			c := colors[(x+y)%len(colors)]
			nrgba.SetNRGBA(x, y, c)
			rgba.Set(x, y, c)
		}
	}

	fast := ToHSV(nrgba)
	generic := ToHSV(rgba)
	assert.Equal(t, fast.Pix, generic.Pix)
	assert.Equal(t, image.Rect(0, 0, 8, 4), fast.Rect)
}

func TestThreshold(t *testing.T) {
	cfg := config.DefaultDetector()
	pixels := []struct {
		c    color.NRGBA
		want uint8
	}{
		{red, maskOn},
		{magenta, maskOn},
		{color.NRGBA{R: 255, B: 128, A: 255}, maskOn}, // hue 165
		{color.NRGBA{R: 200, G: 40, B: 40, A: 255}, maskOn},
		{color.NRGBA{R: 200, G: 70, A: 255}, maskOn},           // hue 10
		{color.NRGBA{R: 101, B: 69, A: 255}, maskOff},          // hue 159
		{color.NRGBA{R: 255, G: 128, A: 255}, maskOff},         // hue 15
		{color.NRGBA{R: 90, A: 255}, maskOff},                  // too dark
		{color.NRGBA{R: 255, G: 200, B: 200, A: 255}, maskOff}, // too pale
		{black, maskOff},
	}

	img := newCanvas(len(pixels), 1)
	for i, p := range pixels {
		img.SetNRGBA(i, 0, p.c)
	}

	hsv := ToHSV(img)
	mask := image.NewGray(hsv.Rect)
	for i := range mask.Pix {
		mask.Pix[i] = 7
	}
	Threshold(hsv, cfg, mask)

	require.Len(t, mask.Pix, len(pixels))
	for i, p := range pixels {
		assert.Equal(t, p.want, mask.Pix[i], "pixel %d (%v)", i, p.c)
	}
}
