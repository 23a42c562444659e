package anim

import "image"

// DefaultFrameRate is used when an animation is registered without a
// positive frame rate.
const DefaultFrameRate = 10.0

// Frame is one rectangular region of a sprite sheet. Duration is in
// milliseconds; zero means "use the animation's frame duration".
type Frame struct {
	X        int
	Y        int
	Width    int
	Height   int
	Duration float64
}

// Rect returns the sheet-space rectangle covered by the frame.
func (f Frame) Rect() image.Rectangle {
	return image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height)
}

// Contains reports whether the point lies inside the frame, edges included.
func (f Frame) Contains(x, y int) bool {
	return x >= f.X && x <= f.X+f.Width && y >= f.Y && y <= f.Y+f.Height
}

// EffectiveDuration returns the frame's own duration when set, otherwise
// fallback.
func (f Frame) EffectiveDuration(fallback float64) float64 {
	if f.Duration > 0 {
		return f.Duration
	}
	return fallback
}

// GridLayout describes a uniform sprite grid starting at an offset.
type GridLayout struct {
	FrameW  int
	FrameH  int
	OffsetX int
	OffsetY int
}

// GridFrames lays out count frames left-to-right on the given row,
// starting at startCol.
func GridFrames(layout GridLayout, row, startCol, count int) []Frame {
	if count <= 0 || layout.FrameW <= 0 || layout.FrameH <= 0 {
		return nil
	}
	frames := make([]Frame, count)
	for i := range frames {
		frames[i] = Frame{
			X:      layout.OffsetX + (startCol+i)*layout.FrameW,
			Y:      layout.OffsetY + row*layout.FrameH,
			Width:  layout.FrameW,
			Height: layout.FrameH,
		}
	}
	return frames
}
