//go:build gocv

package analyzer

import (
	"fmt"
	"image"
	"image/draw"
	"runtime"

	"gocv.io/x/gocv"

	"github.com/ivlev/dotfinder/internal/config"
)

func init() {
	newOpenCVDetector = func(cfg config.Detector) (Detector, error) {
		return NewOpenCVDetector(cfg)
	}
}

// OpenCVDetector runs the same pipeline through OpenCV. Only contour
// moments are supported.
type OpenCVDetector struct {
	Config config.Detector
}

func NewOpenCVDetector(cfg config.Detector) (*OpenCVDetector, error) {
	if cfg.Moments == config.MomentsArea {
		return nil, fmt.Errorf("opencv detector supports %q moments only", config.MomentsContour)
	}
	return &OpenCVDetector{Config: cfg}, nil
}

func (d *OpenCVDetector) Detect(img image.Image) ([]image.Point, error) {
	if err := ValidateImage(img); err != nil {
		return nil, err
	}

	bgr := toBGR(img)
	src, err := gocv.NewMatFromBytes(img.Bounds().Dy(), img.Bounds().Dx(), gocv.MatTypeCV8UC3, bgr)
	if err != nil {
		return nil, fmt.Errorf("convert image to mat: %w", err)
	}
	defer src.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)
	runtime.KeepAlive(bgr)

	maskA := d.inRange(hsv, d.Config.HueRangeA)
	defer maskA.Close()
	maskB := d.inRange(hsv, d.Config.HueRangeB)
	defer maskB.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.BitwiseOr(maskA, maskB, &mask)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	points := []image.Point{}
	for i := 0; i < contours.Size(); i++ {
		if c, ok := PolygonMoments(contours.At(i).ToPoints()).Centroid(); ok {
			points = append(points, c)
		}
	}
	SortMarkers(points)
	return points, nil
}

// toBGR flattens img into origin-based, non-premultiplied BGR bytes.
// The Mat built on them shares the buffer.
func toBGR(img image.Image) []byte {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Rect, img, b.Min, draw.Src)

	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		out = append(out, nrgba.Pix[i+2], nrgba.Pix[i+1], nrgba.Pix[i])
	}
	return out
}

func (d *OpenCVDetector) inRange(hsv gocv.Mat, hue config.HueRange) gocv.Mat {
	lower := gocv.NewScalar(float64(hue.Min), float64(d.Config.SaturationMin), float64(d.Config.ValueMin), 0)
	upper := gocv.NewScalar(float64(hue.Max), float64(d.Config.SaturationMax), float64(d.Config.ValueMax), 0)
	out := gocv.NewMat()
	gocv.InRangeWithScalar(hsv, lower, upper, &out)
	return out
}
