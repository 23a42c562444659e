package editor

import (
	"errors"
	"image"
	"testing"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/document"
)

func newTestSession(t *testing.T) (*Session, *int) {
	t.Helper()
	s := NewSession(Options{})
	changes := 0
	s.OnChange = func() { changes++ }
	return s, &changes
}

// withFrames creates name and adds n 10x10 frames side by side.
func withFrames(t *testing.T, s *Session, name string, n int) {
	t.Helper()
	if err := s.CreateAnimation(name); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	for i := 0; i < n; i++ {
		if err := s.AddFrame(image.Rect(i*10, 0, i*10+10, 10)); err != nil {
			t.Fatalf("add frame %d: %v", i, err)
		}
	}
}

func TestCreateAnimation(t *testing.T) {
	s, changes := newTestSession(t)

	if err := s.CreateAnimation("walk"); err != nil {
		t.Fatalf("create: %v", err)
	}
	a, ok := s.CurrentAnimation()
	if !ok || a.Name != "walk" || a.FrameRate != anim.DefaultFrameRate || !a.Loop || len(a.Frames) != 0 {
		t.Fatalf("current = %+v %v", a, ok)
	}
	if *changes != 1 {
		t.Fatalf("changes = %d", *changes)
	}

	if err := s.CreateAnimation("walk"); !errors.Is(err, ErrAnimationExists) {
		t.Fatalf("duplicate err = %v", err)
	}
	if err := s.CreateAnimation(""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("empty err = %v", err)
	}
	if *changes != 1 {
		t.Fatalf("failed creates should not report changes, got %d", *changes)
	}
}

func TestAddFrame(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.AddFrame(image.Rect(0, 0, 10, 10)); !errors.Is(err, ErrNoAnimation) {
		t.Fatalf("err = %v, want ErrNoAnimation", err)
	}

	if err := s.CreateAnimation("walk"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.UpdateConfig(8, true); err != nil {
		t.Fatalf("config: %v", err)
	}

	tests := []struct {
		name string
		r    image.Rectangle
		err  error
	}{
		{name: "ok", r: image.Rect(2, 3, 34, 35)},
		{name: "exactly min", r: image.Rect(0, 0, 5, 20), err: ErrFrameTooSmall},
		{name: "flat", r: image.Rect(0, 0, 20, 3), err: ErrFrameTooSmall},
		{name: "just over", r: image.Rect(0, 0, 6, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddFrame(tt.r)
			if tt.err == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
		})
	}

	a, _ := s.CurrentAnimation()
	if len(a.Frames) != 2 {
		t.Fatalf("frames = %d", len(a.Frames))
	}
	want := anim.Frame{X: 2, Y: 3, Width: 32, Height: 32, Duration: 125}
	if a.Frames[0] != want {
		t.Fatalf("frame = %+v, want %+v", a.Frames[0], want)
	}
}

func TestEmptyAnimationStartsPreviewOnFirstFrame(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.CreateAnimation("walk"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.Preview().IsPlaying() || s.PreviewInfo() != "" {
		t.Fatalf("empty animation should not preview")
	}
	if err := s.AddFrame(image.Rect(0, 0, 10, 10)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !s.Preview().IsPlaying() {
		t.Fatalf("preview should run once frames exist")
	}
	if got := s.PreviewInfo(); got != "Frame 1/1 | 10 FPS | Loop | Playing" {
		t.Fatalf("info = %q", got)
	}
}

func TestSelectAnimation(t *testing.T) {
	s, _ := newTestSession(t)
	withFrames(t, s, "walk", 3)
	withFrames(t, s, "jump", 2)

	if err := s.SelectFrame(1); err != nil {
		t.Fatalf("select frame: %v", err)
	}
	s.StopPreview()

	if err := s.SelectAnimation("walk"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if s.Current() != "walk" || s.Selected() != -1 {
		t.Fatalf("current=%q selected=%d", s.Current(), s.Selected())
	}
	if !s.Preview().IsPlaying() || s.Preview().CurrentAnimation() != "walk" || s.Preview().CurrentFrameIndex() != 0 {
		t.Fatalf("preview not restarted")
	}

	if err := s.SelectAnimation("nope"); !errors.Is(err, anim.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if s.Current() != "walk" {
		t.Fatalf("failed select changed current to %q", s.Current())
	}
}

func TestDeleteAnimation(t *testing.T) {
	s, _ := newTestSession(t)
	withFrames(t, s, "walk", 2)
	withFrames(t, s, "jump", 2)

	if err := s.DeleteAnimation("walk"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Current() != "jump" {
		t.Fatalf("deleting another animation changed current to %q", s.Current())
	}
	if err := s.DeleteAnimation("jump"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Current() != "" || s.Preview().CurrentAnimation() != "" {
		t.Fatalf("current=%q preview=%q", s.Current(), s.Preview().CurrentAnimation())
	}
	if err := s.DeleteAnimation("jump"); !errors.Is(err, anim.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestRenameAnimation(t *testing.T) {
	s, changes := newTestSession(t)
	withFrames(t, s, "walk", 2)
	withFrames(t, s, "jump", 2)
	if err := s.SelectAnimation("walk"); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.Tick(150)
	before := *changes

	for _, name := range []string{"", "walk", "jump"} {
		if s.RenameAnimation(name) {
			t.Fatalf("rename to %q should be ignored", name)
		}
	}
	if *changes != before {
		t.Fatalf("ignored renames reported changes")
	}

	if !s.RenameAnimation("run") {
		t.Fatalf("rename failed")
	}
	if s.Current() != "run" || s.Library().Has("walk") {
		t.Fatalf("current=%q", s.Current())
	}
	if names := s.Library().Names(); names[0] != "run" || names[1] != "jump" {
		t.Fatalf("names = %v", names)
	}
	if s.Preview().CurrentAnimation() != "run" || s.Preview().CurrentFrameIndex() != 1 {
		t.Fatalf("preview lost position: %q %d", s.Preview().CurrentAnimation(), s.Preview().CurrentFrameIndex())
	}
}

func TestUpdateConfig(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.UpdateConfig(12, false); !errors.Is(err, ErrNoAnimation) {
		t.Fatalf("err = %v", err)
	}
	withFrames(t, s, "walk", 3)
	s.Tick(150)
	s.StopPreview()

	if err := s.UpdateConfig(-4, false); err != nil {
		t.Fatalf("config: %v", err)
	}
	a, _ := s.CurrentAnimation()
	if a.FrameRate != anim.DefaultFrameRate || a.Loop {
		t.Fatalf("config = %v %v", a.FrameRate, a.Loop)
	}
	if len(a.Frames) != 3 {
		t.Fatalf("frames lost: %d", len(a.Frames))
	}
	if !s.Preview().IsPlaying() || s.Preview().CurrentFrameIndex() != 0 || s.Preview().Looping() {
		t.Fatalf("preview not restarted with new loop flag")
	}
}

func TestDeleteFrame(t *testing.T) {
	tests := []struct {
		name         string
		selected     int
		previewAt    int
		del          int
		wantSelected int
		wantPreview  int
	}{
		{name: "selected deleted", selected: 2, previewAt: 1, del: 2, wantSelected: -1, wantPreview: 1},
		{name: "selection shifts", selected: 3, previewAt: 0, del: 1, wantSelected: 2, wantPreview: 0},
		{name: "selection before", selected: 0, previewAt: 3, del: 2, wantSelected: 0, wantPreview: 0},
		{name: "preview on deleted", selected: -1, previewAt: 2, del: 2, wantSelected: -1, wantPreview: 0},
		{name: "preview before", selected: -1, previewAt: 1, del: 3, wantSelected: -1, wantPreview: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			withFrames(t, s, "walk", 4)
			if err := s.SelectFrame(tt.selected); err != nil {
				t.Fatalf("select: %v", err)
			}
			s.Preview().SetFrame(tt.previewAt)

			if err := s.DeleteFrame(tt.del); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if s.Selected() != tt.wantSelected {
				t.Fatalf("selected = %d, want %d", s.Selected(), tt.wantSelected)
			}
			if s.Preview().CurrentFrameIndex() != tt.wantPreview {
				t.Fatalf("preview = %d, want %d", s.Preview().CurrentFrameIndex(), tt.wantPreview)
			}
			a, _ := s.CurrentAnimation()
			if len(a.Frames) != 3 {
				t.Fatalf("frames = %d", len(a.Frames))
			}
		})
	}

	s, _ := newTestSession(t)
	withFrames(t, s, "walk", 1)
	if err := s.DeleteFrame(5); !errors.Is(err, ErrFrameIndex) {
		t.Fatalf("err = %v", err)
	}
}

func TestMoveFrame(t *testing.T) {
	tests := []struct {
		name         string
		selected     int
		from, to     int
		wantSelected int
	}{
		{name: "moved frame", selected: 1, from: 1, to: 3, wantSelected: 3},
		{name: "shift down", selected: 2, from: 0, to: 3, wantSelected: 1},
		{name: "shift up", selected: 1, from: 3, to: 0, wantSelected: 2},
		{name: "outside range", selected: 0, from: 2, to: 3, wantSelected: 0},
		{name: "no selection", selected: -1, from: 0, to: 2, wantSelected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			withFrames(t, s, "walk", 4)
			if err := s.SelectFrame(tt.selected); err != nil {
				t.Fatalf("select: %v", err)
			}
			a, _ := s.CurrentAnimation()
			moved := a.Frames[tt.from]

			if err := s.MoveFrame(tt.from, tt.to); err != nil {
				t.Fatalf("move: %v", err)
			}
			if s.Selected() != tt.wantSelected {
				t.Fatalf("selected = %d, want %d", s.Selected(), tt.wantSelected)
			}
			a, _ = s.CurrentAnimation()
			if a.Frames[tt.to] != moved {
				t.Fatalf("frame at %d = %+v, want %+v", tt.to, a.Frames[tt.to], moved)
			}
		})
	}
}

func TestFrameEdits(t *testing.T) {
	s, _ := newTestSession(t)
	withFrames(t, s, "walk", 2)

	if err := s.SetFrameDuration(1, 250); err != nil {
		t.Fatalf("duration: %v", err)
	}
	if err := s.UpdateFrame(1, Rect{X: 10.4, Y: 0.5, W: 20.6, H: 9.49}); err != nil {
		t.Fatalf("update: %v", err)
	}
	a, _ := s.CurrentAnimation()
	want := anim.Frame{X: 10, Y: 1, Width: 21, Height: 9, Duration: 250}
	if a.Frames[1] != want {
		t.Fatalf("frame = %+v, want %+v", a.Frames[1], want)
	}

	if err := s.ResizeFrame(1, a.Frames[1], HandleW, 30, 0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	a, _ = s.CurrentAnimation()
	if got := a.Frames[1]; got.X != 26 || got.Width != 5 {
		t.Fatalf("resized = %+v", got)
	}

	if err := s.SetFrameDuration(9, 1); !errors.Is(err, ErrFrameIndex) {
		t.Fatalf("err = %v", err)
	}
	if err := s.SelectFrame(2); !errors.Is(err, ErrFrameIndex) {
		t.Fatalf("err = %v", err)
	}
}

func TestFrameAtPrefersTopmost(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.CreateAnimation("walk"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = s.AddFrame(image.Rect(0, 0, 20, 20))
	_ = s.AddFrame(image.Rect(10, 10, 30, 30))

	tests := []struct {
		x, y float64
		want int
	}{
		{5, 5, 0},
		{15, 15, 1},
		{20, 20, 1},
		{30, 30, 1},
		{31, 5, -1},
	}
	for _, tt := range tests {
		if got := s.FrameAt(tt.x, tt.y); got != tt.want {
			t.Errorf("FrameAt(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPreviewControls(t *testing.T) {
	s, _ := newTestSession(t)
	withFrames(t, s, "attack", 3)
	if err := s.UpdateConfig(10, false); err != nil {
		t.Fatalf("config: %v", err)
	}

	s.Tick(150)
	if got := s.PreviewInfo(); got != "Frame 2/3 | 10 FPS | Once | Playing" {
		t.Fatalf("info = %q", got)
	}
	s.TogglePreview()
	s.Tick(500)
	if got := s.PreviewInfo(); got != "Frame 2/3 | 10 FPS | Once | Paused" {
		t.Fatalf("info = %q", got)
	}
	s.TogglePreview()
	s.Tick(500)
	if got := s.PreviewInfo(); got != "Frame 3/3 | 10 FPS | Once | Paused" {
		t.Fatalf("info = %q", got)
	}
	if s.Preview().State() != anim.StateCompleted {
		t.Fatalf("state = %v", s.Preview().State())
	}

	s.ReloadPreview()
	if got := s.PreviewInfo(); got != "Frame 1/3 | 10 FPS | Once | Playing" {
		t.Fatalf("info = %q", got)
	}
	s.Tick(120)
	s.StopPreview()
	if got := s.PreviewInfo(); got != "Frame 1/3 | 10 FPS | Once | Paused" {
		t.Fatalf("info = %q", got)
	}
}

func TestGridFrames(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.AddGridFrames(anim.GridLayout{FrameW: 16, FrameH: 16}, 0, 0, 2); !errors.Is(err, ErrNoAnimation) {
		t.Fatalf("err = %v", err)
	}
	if err := s.CreateAnimation("run"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.AddGridFrames(anim.GridLayout{FrameW: 16, FrameH: 16, OffsetX: 4}, 1, 2, 3); err != nil {
		t.Fatalf("grid: %v", err)
	}
	a, _ := s.CurrentAnimation()
	if len(a.Frames) != 3 {
		t.Fatalf("frames = %d", len(a.Frames))
	}
	want := anim.Frame{X: 4 + 3*16, Y: 16, Width: 16, Height: 16, Duration: 100}
	if a.Frames[1] != want {
		t.Fatalf("frame = %+v, want %+v", a.Frames[1], want)
	}
	if err := s.AddGridFrames(anim.GridLayout{}, 0, 0, 1); err == nil {
		t.Fatalf("expected error for empty grid")
	}
}

func TestExportImport(t *testing.T) {
	s, changes := newTestSession(t)
	s.SetSheet("hero.png")
	withFrames(t, s, "walk", 2)
	withFrames(t, s, "idle", 1)

	doc := s.Export()
	if doc.Sheet() != "hero.png" {
		t.Fatalf("sheet = %q", doc.Sheet())
	}
	if names := doc.Animations.Names(); len(names) != 2 || names[0] != "walk" {
		t.Fatalf("names = %v", names)
	}
	rec, _ := doc.Animations.Get("walk")
	if rec.FPS != 10 || !rec.Loop || len(rec.Frames) != 2 || rec.Frames[0].Duration != 100 {
		t.Fatalf("walk = %+v", rec)
	}

	other, _ := newTestSession(t)
	before := *changes
	if err := other.Import(doc); err != nil {
		t.Fatalf("import: %v", err)
	}
	if other.Current() != "" || other.Sheet() != "hero.png" || other.Library().Len() != 2 {
		t.Fatalf("import state: current=%q sheet=%q len=%d", other.Current(), other.Sheet(), other.Library().Len())
	}
	if *changes != before {
		t.Fatalf("import into another session touched this one")
	}

	bad := document.New()
	bad.Animations.Set("x", document.AnimationRecord{Name: "y", FPS: 10})
	if err := s.Import(bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if !s.Library().Has("x") || s.Current() != "" || s.Preview().CurrentAnimation() != "" {
		t.Fatalf("import should still replace the catalog")
	}
}
