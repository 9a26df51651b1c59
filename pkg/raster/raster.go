// Package raster draws into 32-bit pixel buffers (0x00RRGGBB,
// row-major): isometric voxel scenes plus the rectangle and
// bitmap-font text primitives of the immediate-mode UI surface. It
// has no display dependency; the registry pushes the finished buffer
// to whatever surface it owns.
package raster

import "sort"

// Background is the clear color of every rendered frame.
const Background uint32 = 0x0d1b2a

// Face palette: top is lightest, the right face darkest, so stacked
// cubes read as solid under the fixed light direction.
const (
	topColor   uint32 = 0x5b9bd5
	leftColor  uint32 = 0x2e6ea8
	rightColor uint32 = 0x1a4a7c
)

// Tile metrics: half-width of a voxel tile and half-height of its top
// rhombus, in pixels.
const (
	tileHalfW = 14
	tileHalfH = 7
)

// Voxel is one unit cube at integer grid coordinates. Y points up.
type Voxel struct {
	X, Y, Z int32
}

// Render rasterizes the scene into buf, which must hold width*height
// pixels. Voxels are painter-sorted back to front and drawn as three
// faces each; the buffer is cleared to Background first.
func Render(buf []uint32, width, height int, voxels []Voxel) {
	for i := range buf {
		buf[i] = Background
	}

	cx := width / 2
	cy := height * 5 / 8

	sorted := make([]Voxel, len(voxels))
	copy(sorted, voxels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return depthKey(sorted[i]) < depthKey(sorted[j])
	})

	for _, v := range sorted {
		sx := cx + int(v.X-v.Z)*tileHalfW
		sy := cy + int(v.X+v.Z)*tileHalfH - int(v.Y)*tileHalfH*2

		// Top face (rhombus)
		fillPoly(buf, width, height, [][2]int{
			{sx, sy - tileHalfH},
			{sx + tileHalfW, sy},
			{sx, sy + tileHalfH},
			{sx - tileHalfW, sy},
		}, topColor)
		// Left face
		fillPoly(buf, width, height, [][2]int{
			{sx - tileHalfW, sy},
			{sx, sy + tileHalfH},
			{sx, sy + tileHalfH*3},
			{sx - tileHalfW, sy + tileHalfH*2},
		}, leftColor)
		// Right face
		fillPoly(buf, width, height, [][2]int{
			{sx, sy + tileHalfH},
			{sx + tileHalfW, sy},
			{sx + tileHalfW, sy + tileHalfH*2},
			{sx, sy + tileHalfH*3},
		}, rightColor)
	}
}

// depthKey orders voxels back to front for the painter's algorithm.
func depthKey(v Voxel) int32 {
	return v.X - v.Y*2 + v.Z
}

// fillPoly scanline-fills a convex polygon, clipped to the buffer.
func fillPoly(buf []uint32, width, height int, pts [][2]int, color uint32) {
	if len(pts) == 0 {
		return
	}

	minY, maxY := pts[0][1], pts[0][1]
	for _, p := range pts[1:] {
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > height-1 {
		maxY = height - 1
	}
	if minY >= height {
		return
	}

	n := len(pts)
	var xs []int
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		for i := 0; i < n; i++ {
			x0, y0 := pts[i][0], pts[i][1]
			x1, y1 := pts[(i+1)%n][0], pts[(i+1)%n][1]
			lo, hi, xa, xb := y0, y1, x0, x1
			if y0 >= y1 {
				lo, hi, xa, xb = y1, y0, x1, x0
			}
			if lo <= y && y < hi && lo != hi {
				t := float32(y-lo) / float32(hi-lo)
				xs = append(xs, int(float32(xa)+t*float32(xb-xa)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0, x1 := xs[i], xs[i+1]
			if x0 < 0 {
				x0 = 0
			}
			if x1 > width-1 {
				x1 = width - 1
			}
			for x := x0; x <= x1; x++ {
				buf[y*width+x] = color
			}
		}
	}
}
