package analyzer

import (
	"image"

	"github.com/ivlev/dotfinder/internal/config"
	"github.com/ivlev/dotfinder/internal/system"
)

// RedDetector finds red blobs with a dual hue band threshold and reports
// their centroids.
type RedDetector struct {
	Config config.Detector
}

// NewRedDetector creates a detector with the given thresholds.
func NewRedDetector(cfg config.Detector) *RedDetector {
	return &RedDetector{Config: cfg}
}

// Detect runs the pipeline: HSV conversion, thresholding, external blob
// extraction, centroids, ordering. An image without red yields an empty slice.
func (d *RedDetector) Detect(img image.Image) ([]image.Point, error) {
	if err := ValidateImage(img); err != nil {
		return nil, err
	}

	hsv := ToHSV(img)

	mask := system.GetMask(hsv.Rect)
	defer system.PutMask(mask)
	Threshold(hsv, d.Config, mask)

	blobs := FindExternalBlobs(mask)
	points := Centroids(blobs, d.Config.Moments)
	SortMarkers(points)

	return points, nil
}
