// Package detect finds opaque sprite regions on a sheet so frames can be
// sliced without drawing every rectangle by hand.
package detect

import (
	"image"
)

// DefaultAlphaThreshold treats any non-transparent pixel as part of a sprite.
const DefaultAlphaThreshold = 0

var neighbours = [8]image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// mask is a flattened opacity map of an image.
type mask struct {
	bounds image.Rectangle
	solid  []bool
}

func newMask(img image.Image, threshold uint8) mask {
	b := img.Bounds()
	m := mask{bounds: b, solid: make([]bool, b.Dx()*b.Dy())}
	limit := uint32(threshold) * 0x101
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			m.solid[m.index(x, y)] = a > limit
		}
	}
	return m
}

func (m mask) index(x, y int) int {
	return (y-m.bounds.Min.Y)*m.bounds.Dx() + (x - m.bounds.Min.X)
}

func (m mask) at(x, y int) bool {
	if !(image.Point{x, y}).In(m.bounds) {
		return false
	}
	return m.solid[m.index(x, y)]
}

// fill walks the 8-connected region containing (x, y), marking it in seen,
// and returns its bounding rectangle.
func (m mask) fill(x, y int, seen []bool) image.Rectangle {
	r := image.Rect(x, y, x+1, y+1)
	stack := []image.Point{{x, y}}
	seen[m.index(x, y)] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
		for _, d := range neighbours {
			n := p.Add(d)
			if !m.at(n.X, n.Y) {
				continue
			}
			i := m.index(n.X, n.Y)
			if seen[i] {
				continue
			}
			seen[i] = true
			stack = append(stack, n)
		}
	}
	return r
}

// RegionAt returns the bounding rectangle of the 8-connected region of
// pixels with alpha above threshold that contains (x, y). It reports false
// when (x, y) is outside the image or not opaque enough.
func RegionAt(img image.Image, x, y int, threshold uint8) (image.Rectangle, bool) {
	if img == nil {
		return image.Rectangle{}, false
	}
	m := newMask(img, threshold)
	if !m.at(x, y) {
		return image.Rectangle{}, false
	}
	return m.fill(x, y, make([]bool, len(m.solid))), true
}

// Regions returns every region in row-major order of its first pixel.
// Regions narrower or shorter than minSize are dropped.
func Regions(img image.Image, threshold uint8, minSize int) []image.Rectangle {
	if img == nil {
		return nil
	}
	m := newMask(img, threshold)
	seen := make([]bool, len(m.solid))
	var out []image.Rectangle
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for x := m.bounds.Min.X; x < m.bounds.Max.X; x++ {
			i := m.index(x, y)
			if !m.solid[i] || seen[i] {
				continue
			}
			r := m.fill(x, y, seen)
			if r.Dx() < minSize || r.Dy() < minSize {
				continue
			}
			out = append(out, r)
		}
	}
	return out
}
