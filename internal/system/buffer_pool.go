package system

import (
	"image"
	"sync"
)

// MaskPool reuses *image.Gray mask buffers between detections,
// one sync.Pool per mask size.
type MaskPool struct {
	pools map[image.Rectangle]*sync.Pool
	mu    sync.RWMutex
}

func NewMaskPool() *MaskPool {
	return &MaskPool{pools: make(map[image.Rectangle]*sync.Pool)}
}

var globalPool = NewMaskPool()

// GetMask returns a mask of the given bounds. Its contents are undefined;
// callers must overwrite every pixel.
func GetMask(rect image.Rectangle) *image.Gray {
	return globalPool.Get(rect)
}

// PutMask hands a mask back for reuse.
func PutMask(m *image.Gray) {
	globalPool.Put(m)
}

func (p *MaskPool) Get(rect image.Rectangle) *image.Gray {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[rect]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewGray(rect)
				},
			}
			p.pools[rect] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.Gray)
}

func (p *MaskPool) Put(m *image.Gray) {
	if m == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[m.Rect]
	p.mu.RUnlock()

	if exists {
		pool.Put(m)
	}
}
