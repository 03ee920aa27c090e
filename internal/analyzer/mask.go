package analyzer

import (
	"image"

	"github.com/ivlev/dotfinder/internal/config"
)

const (
	maskOff uint8 = 0
	maskOn  uint8 = 255
)

// Threshold writes the union of the two hue bands into mask.
// Every mask pixel is overwritten, so a pooled buffer can be passed in.
func Threshold(hsv *HSVImage, cfg config.Detector, mask *image.Gray) {
	w, h := hsv.Rect.Dx(), hsv.Rect.Dy()
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x++ {
			hh, s, v := hsv.HSVAt(x, y)
			if inBand(hh, s, v, cfg.HueRangeA, cfg) || inBand(hh, s, v, cfg.HueRangeB, cfg) {
				row[x] = maskOn
			} else {
				row[x] = maskOff
			}
		}
	}
}

func inBand(h, s, v uint8, hue config.HueRange, cfg config.Detector) bool {
	return hue.Contains(h) &&
		int(s) >= cfg.SaturationMin && int(s) <= cfg.SaturationMax &&
		int(v) >= cfg.ValueMin && int(v) <= cfg.ValueMax
}
