package analyzer

import (
	"image"
)

// Blob is an 8-connected region of mask pixels whose outer border touches
// the image background. Regions nested in the hole of another region are
// never reported.
type Blob struct {
	Start   image.Point   // first pixel in raster order
	Contour []image.Point // compressed outer border
	Area    int64         // pixel count
	SumX    int64
	SumY    int64
}

// 8-neighborhood, counterclockwise on screen starting from the right.
var neighbors = [8]image.Point{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

var cross4 = [4]image.Point{{X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 1}}

// FindExternalBlobs labels the mask and returns the outermost blobs in the
// order their first pixel is met by a raster scan.
func FindExternalBlobs(mask *image.Gray) []Blob {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	on := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && mask.Pix[y*mask.Stride+x] != maskOff
	}

	outside := markOutside(w, h, on)
	visited := make([]bool, w*h)

	blobs := []Blob{}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !on(x, y) || visited[y*w+x] {
				continue
			}
			blob, external := fillBlob(x, y, w, h, on, visited, outside)
			if !external {
				continue
			}
			blob.Contour = compressChain(traceBorder(blob.Start, on))
			blobs = append(blobs, blob)
		}
	}
	return blobs
}

// markOutside flags background pixels 4-connected to the image frame.
// Background enclosed by a blob stays unflagged.
func markOutside(w, h int, on func(x, y int) bool) []bool {
	outside := make([]bool, w*h)
	stack := []image.Point{}

	push := func(x, y int) {
		if x < 0 || y < 0 || x >= w || y >= h || outside[y*w+x] || on(x, y) {
			return
		}
		outside[y*w+x] = true
		stack = append(stack, image.Point{X: x, Y: y})
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range cross4 {
			push(p.X+d.X, p.Y+d.Y)
		}
	}
	return outside
}

// fillBlob collects the 8-connected region containing (sx, sy) and reports
// whether any of its pixels borders the outside background.
func fillBlob(sx, sy, w, h int, on func(x, y int) bool, visited, outside []bool) (Blob, bool) {
	blob := Blob{Start: image.Point{X: sx, Y: sy}}
	external := false

	visited[sy*w+sx] = true
	stack := []image.Point{{X: sx, Y: sy}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		blob.Area++
		blob.SumX += int64(p.X)
		blob.SumY += int64(p.Y)

		if !external {
			for _, d := range cross4 {
				nx, ny := p.X+d.X, p.Y+d.Y
				if nx < 0 || ny < 0 || nx >= w || ny >= h || outside[ny*w+nx] {
					external = true
					break
				}
			}
		}

		for _, d := range neighbors {
			nx, ny := p.X+d.X, p.Y+d.Y
			if !on(nx, ny) || visited[ny*w+nx] {
				continue
			}
			visited[ny*w+nx] = true
			stack = append(stack, image.Point{X: nx, Y: ny})
		}
	}
	return blob, external
}

// traceBorder follows the outer border of the blob starting at its first
// raster pixel, whose left neighbor is always background. Each border pixel
// is recorded as often as the walk passes it.
func traceBorder(start image.Point, on func(x, y int) bool) []image.Point {
	first := -1
	for k := 0; k < 8; k++ {
		d := (4 - k + 8) % 8
		q := start.Add(neighbors[d])
		if on(q.X, q.Y) {
			first = d
			break
		}
	}
	if first < 0 {
		return []image.Point{start}
	}

	p1 := start.Add(neighbors[first])
	prev, cur := p1, start
	contour := []image.Point{}

	for {
		back := direction(prev.Sub(cur))
		next := prev
		for k := 1; k <= 8; k++ {
			q := cur.Add(neighbors[(back+k)%8])
			if on(q.X, q.Y) {
				next = q
				break
			}
		}

		contour = append(contour, cur)
		if next == start && cur == p1 {
			break
		}
		prev, cur = cur, next
	}
	return contour
}

func direction(d image.Point) int {
	for i, n := range neighbors {
		if n == d {
			return i
		}
	}
	return -1
}

// compressChain keeps only the vertices where the chain changes direction.
func compressChain(chain []image.Point) []image.Point {
	n := len(chain)
	if n < 3 {
		return chain
	}
	out := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		prev := chain[(i-1+n)%n]
		next := chain[(i+1)%n]
		if chain[i].Sub(prev) != next.Sub(chain[i]) {
			out = append(out, chain[i])
		}
	}
	if len(out) == 0 {
		return chain[:1]
	}
	return out
}
