package analyzer

import (
	"fmt"

	"github.com/ivlev/dotfinder/internal/config"
)

// newOpenCVDetector is set when the binary is built with the gocv tag.
var newOpenCVDetector func(cfg config.Detector) (Detector, error)

// NewDetector creates a detector based on the specified variant
func NewDetector(variant string, cfg config.Detector) (Detector, error) {
	switch variant {
	case "red", "":
		return NewRedDetector(cfg), nil
	case "opencv":
		if newOpenCVDetector == nil {
			return nil, fmt.Errorf("opencv detector not available: rebuild with -tags gocv")
		}
		return newOpenCVDetector(cfg)
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
