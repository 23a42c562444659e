package anim

import "math"

// Animation is a named, ordered sequence of frames plus playback
// parameters. Frame order is playback order.
type Animation struct {
	Name      string
	Frames    []Frame
	FrameRate float64
	Loop      bool

	frameDuration float64
}

func newAnimation(name string, frames []Frame, frameRate float64, loop bool) *Animation {
	if frameRate <= 0 || math.IsNaN(frameRate) || math.IsInf(frameRate, 0) {
		frameRate = DefaultFrameRate
	}
	return &Animation{
		Name:          name,
		Frames:        frames,
		FrameRate:     frameRate,
		Loop:          loop,
		frameDuration: 1000 / frameRate,
	}
}

// FrameDuration is the per-frame time in milliseconds derived from the
// frame rate at registration.
func (a *Animation) FrameDuration() float64 {
	if a == nil {
		return 0
	}
	return a.frameDuration
}

// FrameCount returns the number of frames.
func (a *Animation) FrameCount() int {
	if a == nil {
		return 0
	}
	return len(a.Frames)
}

// DurationOf returns how long frame i stays current.
func (a *Animation) DurationOf(i int) float64 {
	if a == nil || i < 0 || i >= len(a.Frames) {
		return 0
	}
	return a.Frames[i].EffectiveDuration(a.frameDuration)
}

// TotalDuration is the sum of every frame's effective duration.
func (a *Animation) TotalDuration() float64 {
	var total float64
	for i := range a.Frames {
		total += a.DurationOf(i)
	}
	return total
}

// Clone returns a deep copy so callers can edit frames without touching
// the registered animation.
func (a *Animation) Clone() *Animation {
	if a == nil {
		return nil
	}
	c := *a
	c.Frames = append([]Frame(nil), a.Frames...)
	return &c
}
