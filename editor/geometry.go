package editor

import (
	"image"
	"math"

	"github.com/milk9111/spriteanim/anim"
)

// HandleSize is the side of a resize handle square in screen pixels. Hit
// tests on the canvas divide it by the zoom.
const HandleSize = 8

// Rect is an unrounded frame rectangle, as produced while dragging.
type Rect struct {
	X, Y, W, H float64
}

// RectOf converts a frame to a Rect.
func RectOf(f anim.Frame) Rect {
	return Rect{X: float64(f.X), Y: float64(f.Y), W: float64(f.Width), H: float64(f.Height)}
}

// Handle names one of the eight resize handles of a frame.
type Handle string

const (
	HandleNone Handle = ""
	HandleNW   Handle = "nw"
	HandleN    Handle = "n"
	HandleNE   Handle = "ne"
	HandleE    Handle = "e"
	HandleSE   Handle = "se"
	HandleS    Handle = "s"
	HandleSW   Handle = "sw"
	HandleW    Handle = "w"
)

// Handles lists every handle in hit-test order.
var Handles = []Handle{HandleNW, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW}

func (h Handle) north() bool { return h == HandleNW || h == HandleN || h == HandleNE }
func (h Handle) south() bool { return h == HandleSW || h == HandleS || h == HandleSE }
func (h Handle) west() bool  { return h == HandleNW || h == HandleW || h == HandleSW }
func (h Handle) east() bool  { return h == HandleNE || h == HandleE || h == HandleSE }

// HandleOrigin returns the top-left corner of handle h's square on frame f.
// Handles are centered on the frame's corners and edge midpoints.
func HandleOrigin(f anim.Frame, h Handle, size float64) (float64, float64) {
	hs := size / 2
	x, y := float64(f.X), float64(f.Y)
	w, ht := float64(f.Width), float64(f.Height)

	cx := x
	switch {
	case h.east():
		cx = x + w
	case h == HandleN || h == HandleS:
		cx = x + w/2
	}
	cy := y
	switch {
	case h.south():
		cy = y + ht
	case h == HandleE || h == HandleW:
		cy = y + ht/2
	}
	return cx - hs, cy - hs
}

// HandleAt returns the first handle of f whose square contains (x, y),
// edges included, or HandleNone.
func HandleAt(f anim.Frame, x, y, size float64) Handle {
	for _, h := range Handles {
		hx, hy := HandleOrigin(f, h, size)
		if x >= hx && x <= hx+size && y >= hy && y <= hy+size {
			return h
		}
	}
	return HandleNone
}

// Resize drags handle h of orig by (dx, dy). Width and height never drop
// below minSize; when clamped, the edge opposite the handle stays put.
func Resize(orig anim.Frame, h Handle, dx, dy, minSize float64) Rect {
	o := RectOf(orig)
	r := o
	if h.north() {
		r.Y = o.Y + dy
		r.H = o.H - dy
	}
	if h.south() {
		r.H = o.H + dy
	}
	if h.west() {
		r.X = o.X + dx
		r.W = o.W - dx
	}
	if h.east() {
		r.W = o.W + dx
	}

	if r.W < minSize {
		r.W = minSize
		if h.west() {
			r.X = o.X + o.W - minSize
		}
	}
	if r.H < minSize {
		r.H = minSize
		if h.north() {
			r.Y = o.Y + o.H - minSize
		}
	}
	return r
}

// SelectionRect normalizes a drag from (x0, y0) to (x1, y1) into a
// rectangle with rounded position and size.
func SelectionRect(x0, y0, x1, y1 float64) image.Rectangle {
	x := round(math.Min(x0, x1))
	y := round(math.Min(y0, y1))
	w := round(math.Abs(x1 - x0))
	h := round(math.Abs(y1 - y0))
	return image.Rect(x, y, x+w, y+h)
}

// round rounds half up, so -2.5 becomes -2.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
