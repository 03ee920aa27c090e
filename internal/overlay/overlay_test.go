package overlay

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateDrawsCross(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 60, 40))
	markers := []image.Point{{X: 20, Y: 20}, {X: 0, Y: 0}}

	out := Annotate(src, markers)

	assert.Equal(t, image.Rect(0, 0, 60, 40), out.Bounds())
	assert.Equal(t, markColor, out.RGBAAt(20, 20))
	assert.Equal(t, markColor, out.RGBAAt(20+crossArm, 20))
	assert.Equal(t, markColor, out.RGBAAt(20, 20-crossArm))
	assert.Equal(t, markColor, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, out.RGBAAt(40, 5))
}

func TestAnnotateKeepsSource(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	Annotate(src, []image.Point{{X: 5, Y: 5}})
	assert.Equal(t, color.NRGBA{}, src.NRGBAAt(5, 5))
}

func TestAnnotateOffsetBounds(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	sub := base.SubImage(image.Rect(10, 10, 50, 50))

	out := Annotate(sub, []image.Point{{X: 5, Y: 5}})
	assert.Equal(t, image.Rect(0, 0, 40, 40), out.Bounds())
	assert.Equal(t, markColor, out.RGBAAt(5, 5))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "overlay.png")
	require.NoError(t, Save(path, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
