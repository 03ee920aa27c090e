package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/dotfinder/internal/config"
	"github.com/ivlev/dotfinder/internal/report"
	"github.com/ivlev/dotfinder/internal/source"
)

type closeCounter struct {
	source.Source
	closed *int
}

func (c closeCounter) Close() error {
	*c.closed++
	return c.Source.Close()
}

// countCloses wraps openSource for the duration of the test.
func countCloses(t *testing.T) *int {
	closed := 0
	orig := openSource
	openSource = func(path string, dpi int) (source.Source, error) {
		src, err := orig(path, dpi)
		if err != nil {
			return nil, err
		}
		return closeCounter{Source: src, closed: &closed}, nil
	}
	t.Cleanup(func() { openSource = orig })
	return &closed
}

func writeRedDot(t *testing.T, path string) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := color.NRGBA{A: 255}
			if (x-20)*(x-20)+(y-10)*(y-10) <= 16 {
				c.R = 255
			}
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func testConfig(t *testing.T) (*config.Config, string) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.InputPath = filepath.Join(dir, "dot.png")
	writeRedDot(t, cfg.InputPath)
	return cfg, dir
}

func TestRunWritesReport(t *testing.T) {
	closed := countCloses(t)
	cfg, dir := testConfig(t)
	cfg.ReportPath = filepath.Join(dir, "out.yaml")

	require.NoError(t, run(cfg))
	assert.Equal(t, 1, *closed)

	rep, err := report.Read(cfg.ReportPath)
	require.NoError(t, err)
	require.Len(t, rep.Frames, 1)
	assert.Equal(t, []report.Point{{20, 10}}, rep.Frames[0].Markers)
}

func TestRunClosesSourceOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *config.Config, dir string)
	}{
		{"unknown detector", func(cfg *config.Config, _ string) { cfg.Detector.Variant = "infrared" }},
		{"unsupported report format", func(cfg *config.Config, dir string) { cfg.ReportPath = filepath.Join(dir, "out.txt") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := countCloses(t)
			cfg, dir := testConfig(t)
			tt.modify(cfg, dir)

			assert.Error(t, run(cfg))
			assert.Equal(t, 1, *closed)
		})
	}
}

func TestReportPathInDirectory(t *testing.T) {
	dir := t.TempDir()
	got := reportPath(dir, "slides.pdf")
	assert.Equal(t, dir, filepath.Dir(got))
	assert.Equal(t, ".yaml", filepath.Ext(got))

	file := filepath.Join(dir, "out.json")
	assert.Equal(t, file, reportPath(file, "slides.pdf"))
}
