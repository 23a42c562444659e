package anim

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNotFound is returned by Play when the library has no animation with
// the requested name. Player state is left unchanged.
var ErrNotFound = errors.New("animation not found")

// State is the coarse playback state of a Player.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Player advances a single frame cursor over the animations of a Library.
// It is driven by the host calling Advance once per tick; all methods must
// be called from the same goroutine.
type Player struct {
	lib *Library

	current    string
	index      int
	elapsed    float64
	playing    bool
	loop       bool
	completed  bool
	onComplete func()
}

// NewPlayer creates an idle player reading animations from lib.
func NewPlayer(lib *Library) *Player {
	return &Player{lib: lib}
}

// Library returns the library the player reads from.
func (p *Player) Library() *Library { return p.lib }

// SetLibrary swaps the library (e.g. after a document reload) and
// revalidates the cursor against it.
func (p *Player) SetLibrary(lib *Library) {
	p.lib = lib
	p.Sync()
}

// Play makes name the active animation and starts playback. The cursor is
// reset when name differs from the active animation or restart is set.
// An animation with no frames is accepted but stays inert until frames
// exist.
func (p *Player) Play(name string, restart bool) error {
	a, ok := p.lib.Get(name)
	if !ok {
		return fmt.Errorf("anim: play %q: %w", name, ErrNotFound)
	}
	if p.current != name || restart {
		p.current = name
		p.index = 0
		p.elapsed = 0
	}
	p.loop = a.Loop
	p.playing = true
	p.completed = false
	return nil
}

// Pause stops advancing without discarding position.
func (p *Player) Pause() {
	p.playing = false
}

// Resume continues playback from the current position. It does nothing
// when no animation is active. Resuming a completed once-animation starts
// a new run on its last frame, so onComplete fires again when that frame
// elapses.
func (p *Player) Resume() {
	if !p.lib.Has(p.current) {
		return
	}
	p.playing = true
	p.completed = false
}

// Stop halts playback and rewinds to the first frame.
func (p *Player) Stop() {
	p.playing = false
	p.completed = false
	p.index = 0
	p.elapsed = 0
}

// Clear deselects the active animation entirely.
func (p *Player) Clear() {
	p.Stop()
	p.current = ""
}

// SetFrame jumps to frame i of the active animation, clamped to the valid
// range, and discards accumulated time.
func (p *Player) SetFrame(i int) {
	a, ok := p.lib.Get(p.current)
	if !ok || len(a.Frames) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(a.Frames) {
		i = len(a.Frames) - 1
	}
	p.index = i
	p.elapsed = 0
}

// Renamed follows the active animation to its new name after the library
// renamed it, keeping playback position.
func (p *Player) Renamed(oldName, newName string) {
	if p.current != "" && p.current == oldName {
		p.current = newName
	}
}

// Sync revalidates the cursor after the library was edited: a removed
// animation deselects, a cursor past the last frame rewinds to 0.
func (p *Player) Sync() {
	if p.current == "" {
		return
	}
	a, ok := p.lib.Get(p.current)
	if !ok {
		p.Clear()
		return
	}
	if p.index >= len(a.Frames) {
		p.index = 0
		p.elapsed = 0
	}
}

// Advance moves the cursor forward by ms milliseconds. Negative, NaN and
// infinite deltas count as zero.
func (p *Player) Advance(ms float64) {
	if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		ms = 0
	}
	if !p.playing {
		return
	}
	a, ok := p.lib.Get(p.current)
	if !ok || len(a.Frames) == 0 {
		return
	}
	n := len(a.Frames)
	if p.index >= n {
		p.index = 0
		p.elapsed = 0
	}

	p.elapsed += ms
	if p.loop {
		// Whole cycles land back on the same frame.
		if total := a.TotalDuration(); total > 0 && p.elapsed >= total {
			p.elapsed = math.Mod(p.elapsed, total)
		}
	}

	for {
		d := a.DurationOf(p.index)
		if d <= 0 || p.elapsed < d {
			return
		}
		p.elapsed -= d
		p.index++
		if p.index < n {
			continue
		}
		if p.loop {
			p.index = 0
			continue
		}
		p.index = n - 1
		p.elapsed = 0
		p.playing = false
		p.completed = true
		if p.onComplete != nil {
			p.onComplete()
		}
		return
	}
}

// AdvanceDuration is Advance for hosts that measure ticks as time.Duration.
func (p *Player) AdvanceDuration(d time.Duration) {
	p.Advance(float64(d) / float64(time.Millisecond))
}

// SetOnComplete replaces the callback fired when a non-looping animation
// reaches its last frame. Passing nil removes it.
func (p *Player) SetOnComplete(fn func()) {
	p.onComplete = fn
}

// CurrentAnimation returns the active animation name, or "" when none.
func (p *Player) CurrentAnimation() string { return p.current }

// CurrentFrameIndex returns the cursor position.
func (p *Player) CurrentFrameIndex() int { return p.index }

// Elapsed returns the milliseconds accumulated toward the next frame.
func (p *Player) Elapsed() float64 { return p.elapsed }

// Looping reports the loop flag captured at the last Play.
func (p *Player) Looping() bool { return p.loop }

// IsPlaying reports whether Advance will move the cursor: playback is on
// and the active animation has frames.
func (p *Player) IsPlaying() bool {
	if !p.playing {
		return false
	}
	a, ok := p.lib.Get(p.current)
	return ok && len(a.Frames) > 0
}

// State summarises the player for display.
func (p *Player) State() State {
	switch {
	case p.IsPlaying():
		return StatePlaying
	case p.completed:
		return StateCompleted
	default:
		return StateIdle
	}
}

// Animation returns the active animation.
func (p *Player) Animation() (*Animation, bool) {
	return p.lib.Get(p.current)
}

// CurrentFrame returns the frame under the cursor.
func (p *Player) CurrentFrame() (Frame, bool) {
	a, ok := p.lib.Get(p.current)
	if !ok || p.index < 0 || p.index >= len(a.Frames) {
		return Frame{}, false
	}
	return a.Frames[p.index], true
}
