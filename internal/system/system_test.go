package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskPoolReturnsRequestedSize(t *testing.T) {
	pool := NewMaskPool()
	rect := image.Rect(0, 0, 40, 30)

	m := pool.Get(rect)
	require.NotNil(t, m)
	assert.Equal(t, rect, m.Rect)
	assert.Len(t, m.Pix, 40*30)

	pool.Put(m)
	other := pool.Get(image.Rect(0, 0, 10, 10))
	assert.Equal(t, image.Rect(0, 0, 10, 10), other.Rect)
}

func TestMaskPoolIgnoresUnknownSizes(t *testing.T) {
	pool := NewMaskPool()
	pool.Put(nil)
	pool.Put(image.NewGray(image.Rect(0, 0, 3, 3)))
	assert.Empty(t, pool.pools)
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("dots.PNG"))
	assert.True(t, IsImageFile("scan.tiff"))
	assert.True(t, IsImageFile("photo.webp"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("slides.pdf"))
}

func TestFindLatestImage(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.png", "b.jpg", "c.txt", "d.pdf"}
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(path, modTime, modTime))
	}

	latest, err := FindLatestImage(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "d.pdf"), latest)

	require.NoError(t, os.Remove(filepath.Join(dir, "d.pdf")))
	latest, err = FindLatestImage(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.jpg"), latest)
}

func TestFindLatestImageEmptyDir(t *testing.T) {
	_, err := FindLatestImage(t.TempDir())
	assert.Error(t, err)
}

func TestMemoryUsage(t *testing.T) {
	rss, err := MemoryUsage()
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	assert.Greater(t, rss, uint64(0))
}
