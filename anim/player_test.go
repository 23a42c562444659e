package anim

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newWalkPlayer(loop bool) (*Player, *int) {
	lib := NewLibrary()
	lib.Register("walk", frames(4), 8, loop)
	p := NewPlayer(lib)
	calls := 0
	p.SetOnComplete(func() { calls++ })
	return p, &calls
}

func TestPlayerWalkScenarioLooping(t *testing.T) {
	p, calls := newWalkPlayer(true)
	if err := p.Play("walk", false); err != nil {
		t.Fatalf("play: %v", err)
	}

	p.Advance(130)
	if p.CurrentFrameIndex() != 1 || p.Elapsed() != 5 {
		t.Fatalf("after 130ms expected frame 1 leftover 5, got frame %d leftover %v", p.CurrentFrameIndex(), p.Elapsed())
	}

	p.Advance(500)
	if p.CurrentFrameIndex() != 1 || p.Elapsed() != 5 {
		t.Fatalf("after a full cycle expected frame 1 leftover 5, got frame %d leftover %v", p.CurrentFrameIndex(), p.Elapsed())
	}
	if !p.IsPlaying() || *calls != 0 {
		t.Fatalf("looping animation should keep playing without completing (playing=%v calls=%d)", p.IsPlaying(), *calls)
	}
}

func TestPlayerWalkScenarioOnce(t *testing.T) {
	cases := []struct {
		name   string
		deltas []float64
	}{
		{"single_tick", []float64{500}},
		{"split_ticks", []float64{130, 370}},
		{"many_small_ticks", []float64{100, 100, 100, 100, 100}},
		{"overshoot", []float64{1000}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, calls := newWalkPlayer(false)
			if err := p.Play("walk", false); err != nil {
				t.Fatalf("play: %v", err)
			}
			for _, d := range c.deltas {
				p.Advance(d)
			}
			if p.CurrentFrameIndex() != 3 {
				t.Fatalf("expected last frame 3, got %d", p.CurrentFrameIndex())
			}
			if p.IsPlaying() {
				t.Fatalf("expected playback to stop after completion")
			}
			if p.State() != StateCompleted {
				t.Fatalf("expected Completed state, got %v", p.State())
			}
			for i := 0; i < 5; i++ {
				p.Advance(1000)
			}
			if *calls != 1 {
				t.Fatalf("expected completion callback exactly once, got %d", *calls)
			}
			if p.CurrentFrameIndex() != 3 {
				t.Fatalf("completed cursor moved to %d", p.CurrentFrameIndex())
			}
		})
	}
}

func TestPlayerLargeDeltaCatchUp(t *testing.T) {
	lib := NewLibrary()
	lib.Register("spin", frames(3), 8, true)
	p := NewPlayer(lib)
	_ = p.Play("spin", false)

	d := 125.0
	p.Advance(3.5 * d)
	if p.CurrentFrameIndex() != 0 {
		t.Fatalf("expected wrap to frame 0, got %d", p.CurrentFrameIndex())
	}
	if p.Elapsed() != 0.5*d {
		t.Fatalf("expected leftover %v, got %v", 0.5*d, p.Elapsed())
	}

	p.Advance(2.25 * d)
	if p.CurrentFrameIndex() != 2 || p.Elapsed() != 0.75*d {
		t.Fatalf("expected frame 2 leftover %v, got frame %d leftover %v", 0.75*d, p.CurrentFrameIndex(), p.Elapsed())
	}
}

func TestPlayerLoopConservation(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		lib := NewLibrary()
		lib.Register("cycle", frames(n), 12, true)
		p := NewPlayer(lib)
		_ = p.Play("cycle", false)
		a, _ := lib.Get("cycle")
		d := a.FrameDuration()

		p.Advance(d)
		start := p.CurrentFrameIndex()
		for i := 0; i < n; i++ {
			p.Advance(d)
			if idx := p.CurrentFrameIndex(); idx < 0 || idx >= n {
				t.Fatalf("n=%d: index %d out of range", n, idx)
			}
		}
		if p.CurrentFrameIndex() != start {
			t.Fatalf("n=%d: expected to return to %d after a cycle, got %d", n, start, p.CurrentFrameIndex())
		}
	}
}

func TestPlayerPerFrameDurations(t *testing.T) {
	lib := NewLibrary()
	fs := frames(3)
	fs[0].Duration = 50
	fs[2].Duration = 300
	lib.Register("attack", fs, 10, false)
	p := NewPlayer(lib)
	_ = p.Play("attack", false)

	steps := []struct {
		delta     float64
		wantIndex int
		playing   bool
	}{
		{49, 0, true},
		{1, 1, true},
		{99, 1, true},
		{1, 2, true},
		{299, 2, true},
		{1, 2, false},
	}
	for i, s := range steps {
		p.Advance(s.delta)
		if p.CurrentFrameIndex() != s.wantIndex || p.IsPlaying() != s.playing {
			t.Fatalf("step %d: expected frame %d playing=%v, got frame %d playing=%v", i, s.wantIndex, s.playing, p.CurrentFrameIndex(), p.IsPlaying())
		}
	}
}

func TestPlayerPlayMissingIsNonFatal(t *testing.T) {
	p, _ := newWalkPlayer(true)
	_ = p.Play("walk", false)
	p.Advance(130)

	err := p.Play("run", false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if p.CurrentAnimation() != "walk" || p.CurrentFrameIndex() != 1 || !p.IsPlaying() {
		t.Fatalf("state changed after missing play: anim=%q frame=%d playing=%v", p.CurrentAnimation(), p.CurrentFrameIndex(), p.IsPlaying())
	}
}

func TestPlayerRestartAndSwitchReset(t *testing.T) {
	lib := NewLibrary()
	lib.Register("walk", frames(4), 8, true)
	lib.Register("idle", frames(2), 8, true)
	p := NewPlayer(lib)

	_ = p.Play("walk", false)
	p.Advance(260)
	_ = p.Play("walk", false)
	if p.CurrentFrameIndex() != 2 {
		t.Fatalf("replaying the same animation without restart should keep position, got %d", p.CurrentFrameIndex())
	}

	_ = p.Play("walk", true)
	if p.CurrentFrameIndex() != 0 || p.Elapsed() != 0 {
		t.Fatalf("restart should reset cursor, got frame %d elapsed %v", p.CurrentFrameIndex(), p.Elapsed())
	}

	p.Advance(260)
	_ = p.Play("idle", false)
	p.Advance(10)
	_ = p.Play("walk", false)
	if p.CurrentFrameIndex() != 0 || p.Elapsed() != 0 {
		t.Fatalf("switching back should not resume old progress, got frame %d elapsed %v", p.CurrentFrameIndex(), p.Elapsed())
	}
}

func TestPlayerPauseResumeStop(t *testing.T) {
	p, _ := newWalkPlayer(true)
	_ = p.Play("walk", false)
	p.Advance(130)

	p.Pause()
	p.Pause()
	if p.IsPlaying() || p.CurrentFrameIndex() != 1 || p.Elapsed() != 5 {
		t.Fatalf("pause should keep position: playing=%v frame=%d elapsed=%v", p.IsPlaying(), p.CurrentFrameIndex(), p.Elapsed())
	}
	p.Advance(1000)
	if p.CurrentFrameIndex() != 1 {
		t.Fatalf("paused player advanced to %d", p.CurrentFrameIndex())
	}

	p.Resume()
	p.Advance(120)
	if p.CurrentFrameIndex() != 2 || p.Elapsed() != 0 {
		t.Fatalf("resume should continue from position, got frame %d elapsed %v", p.CurrentFrameIndex(), p.Elapsed())
	}

	p.Stop()
	first := *p
	p.Stop()
	if p.IsPlaying() || p.CurrentFrameIndex() != 0 || p.Elapsed() != 0 || p.CurrentAnimation() != first.CurrentAnimation() {
		t.Fatalf("stop should rewind and stay idempotent")
	}
}

func TestPlayerResumeAfterCompletion(t *testing.T) {
	cases := []struct {
		name      string
		advance   float64
		wantCalls int
		wantState State
	}{
		{"mid_last_frame", 60, 1, StatePlaying},
		{"last_frame_elapsed", 125, 2, StateCompleted},
		{"overshoot", 1000, 2, StateCompleted},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, calls := newWalkPlayer(false)
			_ = p.Play("walk", false)
			p.Advance(500)
			if *calls != 1 {
				t.Fatalf("expected first run to complete once, got %d", *calls)
			}

			p.Resume()
			if p.State() != StatePlaying || p.CurrentFrameIndex() != 3 {
				t.Fatalf("resume should rearm on the last frame, got state %v frame %d", p.State(), p.CurrentFrameIndex())
			}
			p.Advance(c.advance)
			if *calls != c.wantCalls || p.State() != c.wantState {
				t.Fatalf("calls=%d state=%v, want calls=%d state=%v", *calls, p.State(), c.wantCalls, c.wantState)
			}
		})
	}
}

func TestPlayerResumeWithoutAnimation(t *testing.T) {
	p := NewPlayer(NewLibrary())
	p.Resume()
	p.Advance(100)
	if p.IsPlaying() || p.CurrentAnimation() != "" || p.State() != StateIdle {
		t.Fatalf("resume with no animation must be a no-op")
	}
}

func TestPlayerInvalidDeltas(t *testing.T) {
	for _, d := range []float64{-50, math.NaN(), math.Inf(1), math.Inf(-1)} {
		p, _ := newWalkPlayer(true)
		_ = p.Play("walk", false)
		p.Advance(60)
		p.Advance(d)
		if p.CurrentFrameIndex() != 0 || p.Elapsed() != 60 {
			t.Fatalf("delta %v should count as zero, got frame %d elapsed %v", d, p.CurrentFrameIndex(), p.Elapsed())
		}
	}
}

func TestPlayerEmptyAnimationIsInert(t *testing.T) {
	lib := NewLibrary()
	lib.Register("empty", nil, 10, true)
	p := NewPlayer(lib)

	if err := p.Play("empty", false); err != nil {
		t.Fatalf("playing an empty animation should not fail: %v", err)
	}
	p.Advance(1000)
	if p.IsPlaying() || p.CurrentFrameIndex() != 0 {
		t.Fatalf("empty animation should stay inert")
	}
	if _, ok := p.CurrentFrame(); ok {
		t.Fatalf("empty animation has no current frame")
	}

	// Frames added later start playing without another Play call.
	lib.AppendFrame("empty", Frame{Width: 8, Height: 8})
	lib.AppendFrame("empty", Frame{X: 8, Width: 8, Height: 8})
	if !p.IsPlaying() {
		t.Fatalf("animation should be playing once frames exist")
	}
	p.Advance(100)
	if p.CurrentFrameIndex() != 1 {
		t.Fatalf("expected frame 1, got %d", p.CurrentFrameIndex())
	}
}

func TestPlayerSyncAfterEdits(t *testing.T) {
	lib := NewLibrary()
	lib.Register("walk", frames(4), 8, true)
	p := NewPlayer(lib)
	_ = p.Play("walk", false)
	p.Advance(3 * 125)

	lib.RemoveFrame("walk", 3)
	lib.RemoveFrame("walk", 2)
	p.Sync()
	if p.CurrentFrameIndex() != 0 || p.Elapsed() != 0 {
		t.Fatalf("cursor past the end should rewind, got %d", p.CurrentFrameIndex())
	}

	lib.Delete("walk")
	p.Sync()
	if p.CurrentAnimation() != "" || p.IsPlaying() {
		t.Fatalf("deleted animation should be deselected")
	}
}

func TestPlayerAdvanceRewindsStaleCursor(t *testing.T) {
	lib := NewLibrary()
	lib.Register("walk", frames(4), 8, true)
	p := NewPlayer(lib)
	_ = p.Play("walk", false)
	p.Advance(3 * 125)
	lib.RemoveFrame("walk", 3)

	p.Advance(10)
	if idx := p.CurrentFrameIndex(); idx != 0 {
		t.Fatalf("expected stale cursor to rewind to 0, got %d", idx)
	}
}

func TestPlayerSetOnCompleteLastWriteWins(t *testing.T) {
	p, first := newWalkPlayer(false)
	second := 0
	p.SetOnComplete(func() { second++ })
	_ = p.Play("walk", false)
	p.Advance(500)
	if *first != 0 || second != 1 {
		t.Fatalf("only the latest callback should fire: first=%d second=%d", *first, second)
	}

	_ = p.Play("walk", true)
	p.SetOnComplete(nil)
	p.Advance(500)
	if second != 1 {
		t.Fatalf("cleared callback should not fire")
	}
}

func TestPlayerCompletionCallbackCanChain(t *testing.T) {
	lib := NewLibrary()
	lib.Register("attack", frames(2), 10, false)
	lib.Register("idle", frames(2), 10, true)
	p := NewPlayer(lib)
	p.SetOnComplete(func() { _ = p.Play("idle", false) })

	_ = p.Play("attack", false)
	p.Advance(250)
	if p.CurrentAnimation() != "idle" || !p.IsPlaying() || p.CurrentFrameIndex() != 0 {
		t.Fatalf("expected chained idle playback, got %q frame %d playing=%v", p.CurrentAnimation(), p.CurrentFrameIndex(), p.IsPlaying())
	}
}

func TestPlayerAdvanceDuration(t *testing.T) {
	p, _ := newWalkPlayer(true)
	_ = p.Play("walk", false)
	p.AdvanceDuration(130 * time.Millisecond)
	if p.CurrentFrameIndex() != 1 || p.Elapsed() != 5 {
		t.Fatalf("expected frame 1 leftover 5, got %d %v", p.CurrentFrameIndex(), p.Elapsed())
	}
}

func TestPlayerSetFrameClamps(t *testing.T) {
	p, _ := newWalkPlayer(true)
	_ = p.Play("walk", false)
	p.Advance(60)

	p.SetFrame(9)
	if p.CurrentFrameIndex() != 3 || p.Elapsed() != 0 {
		t.Fatalf("expected clamp to 3, got %d", p.CurrentFrameIndex())
	}
	p.SetFrame(-2)
	if p.CurrentFrameIndex() != 0 {
		t.Fatalf("expected clamp to 0, got %d", p.CurrentFrameIndex())
	}
}

func TestPlayerRenamedKeepsPosition(t *testing.T) {
	p, _ := newWalkPlayer(true)
	_ = p.Play("walk", false)
	p.Advance(130)

	p.Library().Rename("walk", "run")
	p.Renamed("walk", "run")
	p.Sync()

	if p.CurrentAnimation() != "run" || p.CurrentFrameIndex() != 1 || p.Elapsed() != 5 || !p.IsPlaying() {
		t.Fatalf("expected run frame 1 leftover 5 playing, got %q %d %v %v", p.CurrentAnimation(), p.CurrentFrameIndex(), p.Elapsed(), p.IsPlaying())
	}

	p.Renamed("other", "x")
	if p.CurrentAnimation() != "run" {
		t.Fatalf("unrelated rename changed current to %q", p.CurrentAnimation())
	}
}
