package analyzer

import (
	"image"
	"image/color"
	"math"
)

// HSVImage stores 8-bit HSV samples, three bytes per pixel.
// Hue is in [0,179] (degrees halved), saturation and value in [0,255].
// Rect always starts at the origin.
type HSVImage struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

func NewHSVImage(w, h int) *HSVImage {
	return &HSVImage{
		Pix:    make([]uint8, w*h*3),
		Stride: w * 3,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// HSVAt returns the sample at (x, y).
func (p *HSVImage) HSVAt(x, y int) (h, s, v uint8) {
	i := y*p.Stride + x*3
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

// ToHSV converts an image to HSV. The source is read as non-premultiplied
// 8-bit RGB; alpha is dropped.
func ToHSV(img image.Image) *HSVImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewHSVImage(w, h)

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			row := src.Pix[(y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride+(bounds.Min.X-src.Rect.Min.X)*4:]
			for x := 0; x < w; x++ {
				hh, ss, vv := RGBToHSV(row[x*4], row[x*4+1], row[x*4+2])
				i := y*out.Stride + x*3
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = hh, ss, vv
			}
		}
		return out
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			hh, ss, vv := RGBToHSV(c.R, c.G, c.B)
			i := y*out.Stride + x*3
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = hh, ss, vv
		}
	}
	return out
}

const hsvShift = 12

// Fixed-point reciprocals: sdivTable[i] = 255<<12 / i, hdivTable[i] = 180<<12 / 6i.
var sdivTable, hdivTable = func() (s, h [256]int) {
	for i := 1; i < 256; i++ {
		s[i] = int(math.Round(float64(255<<hsvShift) / float64(i)))
		h[i] = int(math.Round(float64(180<<hsvShift) / float64(6*i)))
	}
	return s, h
}()

// RGBToHSV converts one 8-bit RGB sample using the OpenCV 8-bit convention,
// including its fixed-point rounding, so band edges match cvtColor.
func RGBToHSV(r, g, b uint8) (h, s, v uint8) {
	ri, gi, bi := int(r), int(g), int(b)
	vmax := max(ri, gi, bi)
	diff := vmax - min(ri, gi, bi)

	var num int
	switch vmax {
	case ri:
		num = gi - bi
	case gi:
		num = bi - ri + 2*diff
	default:
		num = ri - gi + 4*diff
	}

	sat := (diff*sdivTable[vmax] + 1<<(hsvShift-1)) >> hsvShift
	hue := (num*hdivTable[diff] + 1<<(hsvShift-1)) >> hsvShift
	if hue < 0 {
		hue += 180
	}
	return uint8(hue), uint8(sat), uint8(vmax)
}
