package report

import (
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ivlev/dotfinder/internal/config"
)

// Report is the result of one detection run
type Report struct {
	Version   string          `yaml:"version" json:"version"`
	RunID     string          `yaml:"run_id" json:"run_id"`
	CreatedAt time.Time       `yaml:"created_at" json:"created_at"`
	Detector  config.Detector `yaml:"detector" json:"detector"`
	Frames    []Frame         `yaml:"frames" json:"frames"`
}

// Frame holds the markers found in one image or PDF page
type Frame struct {
	Index   int     `yaml:"index" json:"index"`
	Input   string  `yaml:"input" json:"input"`
	Width   int     `yaml:"width" json:"width"`
	Height  int     `yaml:"height" json:"height"`
	Markers []Point `yaml:"markers" json:"markers"`
}

// Point is a marker centroid; it serializes as a flow pair [x, y].
type Point [2]int

func NewReport(det config.Detector, frameCount int) *Report {
	return &Report{
		Version:   "1.0",
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Detector:  det,
		Frames:    make([]Frame, frameCount),
	}
}

func FromPoints(points []image.Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{p.X, p.Y}
	}
	return out
}

// MarkerCount sums markers across all frames
func (r *Report) MarkerCount() int {
	n := 0
	for _, f := range r.Frames {
		n += len(f.Markers)
	}
	return n
}

// FormatPoints renders markers as a list of pairs: [[12, 5], [47, 5]].
func FormatPoints(points []Point) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range points {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "[%d, %d]", p[0], p[1])
	}
	sb.WriteByte(']')
	return sb.String()
}

// WriteText prints the markers in list-of-pairs form. A single frame is
// printed bare; several frames get one "input: list" line each.
func (r *Report) WriteText(w io.Writer) error {
	if len(r.Frames) == 1 {
		_, err := fmt.Fprintln(w, FormatPoints(r.Frames[0].Markers))
		return err
	}
	for _, f := range r.Frames {
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Input, FormatPoints(f.Markers)); err != nil {
			return err
		}
	}
	return nil
}
