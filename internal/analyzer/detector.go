package analyzer

import (
	"fmt"
	"image"
)

// Detector is the interface for marker detection strategies.
// Detect returns marker centroids in image coordinates relative to
// img.Bounds().Min, ordered top to bottom.
type Detector interface {
	Detect(img image.Image) ([]image.Point, error)
}

// InvalidImageError reports an image that cannot enter the pipeline:
// nil, zero-sized, or without color channels.
type InvalidImageError struct {
	Reason string
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image: %s", e.Reason)
}

// ValidateImage checks an image before any processing step runs.
func ValidateImage(img image.Image) error {
	if img == nil {
		return &InvalidImageError{Reason: "nil image"}
	}
	switch img.(type) {
	case *image.Alpha, *image.Alpha16:
		return &InvalidImageError{Reason: "alpha-only image has no color channels"}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return &InvalidImageError{Reason: fmt.Sprintf("empty bounds %v", b)}
	}
	return nil
}
