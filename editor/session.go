// Package editor is the window-independent model behind the animation
// editor: the animation catalog being edited, the selection, and the
// live preview player.
package editor

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/document"
)

var (
	ErrAnimationExists = errors.New("animation already exists")
	ErrNoAnimation     = errors.New("no animation selected")
	ErrFrameTooSmall   = errors.New("frame too small")
	ErrFrameIndex      = errors.New("frame index out of range")
	ErrEmptyName       = errors.New("empty animation name")
)

// Options tunes a Session.
type Options struct {
	// DefaultFPS is used for new animations and replaces invalid rates.
	DefaultFPS float64
	// MinFrameSize is the smallest width and height a resize may produce.
	// Dragged selections must be strictly larger.
	MinFrameSize int
}

// Session holds everything being edited.
type Session struct {
	lib      *anim.Library
	preview  *anim.Player
	current  string
	selected int
	sheet    string
	opts     Options

	// OnChange runs after every edit to the catalog or sheet reference.
	OnChange func()
}

// NewSession returns an empty session.
func NewSession(opts Options) *Session {
	if opts.DefaultFPS <= 0 || math.IsNaN(opts.DefaultFPS) || math.IsInf(opts.DefaultFPS, 0) {
		opts.DefaultFPS = anim.DefaultFrameRate
	}
	if opts.MinFrameSize < 1 {
		opts.MinFrameSize = 5
	}
	lib := anim.NewLibrary()
	return &Session{
		lib:      lib,
		preview:  anim.NewPlayer(lib),
		selected: -1,
		opts:     opts,
	}
}

func (s *Session) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

// Library returns the catalog being edited.
func (s *Session) Library() *anim.Library { return s.lib }

// Preview returns the preview player.
func (s *Session) Preview() *anim.Player { return s.preview }

// Options returns the session options after defaults were applied.
func (s *Session) Options() Options { return s.opts }

// Current returns the name of the animation being edited, or "".
func (s *Session) Current() string { return s.current }

// CurrentAnimation returns the animation being edited.
func (s *Session) CurrentAnimation() (*anim.Animation, bool) {
	if s.current == "" {
		return nil, false
	}
	return s.lib.Get(s.current)
}

// Selected returns the selected frame index, or -1.
func (s *Session) Selected() int { return s.selected }

// SelectedFrame returns the selected frame of the current animation.
func (s *Session) SelectedFrame() (anim.Frame, bool) {
	a, ok := s.CurrentAnimation()
	if !ok || s.selected < 0 || s.selected >= len(a.Frames) {
		return anim.Frame{}, false
	}
	return a.Frames[s.selected], true
}

// Sheet returns the sprite sheet reference.
func (s *Session) Sheet() string { return s.sheet }

// SetSheet records the sprite sheet being sliced.
func (s *Session) SetSheet(ref string) {
	if s.sheet == ref {
		return
	}
	s.sheet = ref
	s.changed()
}

// CreateAnimation adds an empty animation at the default rate, looping,
// and makes it current.
func (s *Session) CreateAnimation(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if s.lib.Has(name) {
		return fmt.Errorf("editor: create %q: %w", name, ErrAnimationExists)
	}
	s.lib.Register(name, nil, s.opts.DefaultFPS, true)
	s.current = name
	s.selected = -1
	_ = s.preview.Play(name, true)
	s.changed()
	return nil
}

// SelectAnimation makes name current, clears the frame selection and
// restarts the preview.
func (s *Session) SelectAnimation(name string) error {
	if err := s.preview.Play(name, true); err != nil {
		return fmt.Errorf("editor: select: %w", err)
	}
	s.current = name
	s.selected = -1
	return nil
}

// DeleteAnimation removes name from the catalog.
func (s *Session) DeleteAnimation(name string) error {
	if !s.lib.Delete(name) {
		return fmt.Errorf("editor: delete %q: %w", name, anim.ErrNotFound)
	}
	if s.current == name {
		s.current = ""
		s.selected = -1
	}
	s.preview.Sync()
	s.changed()
	return nil
}

// RenameAnimation renames the current animation. Empty, unchanged and
// taken names are ignored and reported as false.
func (s *Session) RenameAnimation(newName string) bool {
	old := s.current
	if old == "" || newName == "" || newName == old || s.lib.Has(newName) {
		return false
	}
	if !s.lib.Rename(old, newName) {
		return false
	}
	s.preview.Renamed(old, newName)
	s.current = newName
	s.changed()
	return true
}

// UpdateConfig sets the current animation's frame rate and loop flag and
// restarts the preview. Non-positive rates fall back to the default.
func (s *Session) UpdateConfig(fps float64, loop bool) error {
	if s.current == "" {
		return ErrNoAnimation
	}
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = s.opts.DefaultFPS
	}
	s.lib.Configure(s.current, fps, loop)
	_ = s.preview.Play(s.current, true)
	s.changed()
	return nil
}

// AddFrame appends r to the current animation with a duration of one
// frame at the animation's rate.
func (s *Session) AddFrame(r image.Rectangle) error {
	a, ok := s.CurrentAnimation()
	if !ok {
		return ErrNoAnimation
	}
	if r.Dx() <= s.opts.MinFrameSize || r.Dy() <= s.opts.MinFrameSize {
		return fmt.Errorf("editor: add %dx%d: %w", r.Dx(), r.Dy(), ErrFrameTooSmall)
	}
	s.lib.AppendFrame(s.current, anim.Frame{
		X:        r.Min.X,
		Y:        r.Min.Y,
		Width:    r.Dx(),
		Height:   r.Dy(),
		Duration: a.FrameDuration(),
	})
	s.preview.Sync()
	s.changed()
	return nil
}

// AddGridFrames appends count frames laid out along one row of a grid.
func (s *Session) AddGridFrames(layout anim.GridLayout, row, startCol, count int) error {
	a, ok := s.CurrentAnimation()
	if !ok {
		return ErrNoAnimation
	}
	frames := anim.GridFrames(layout, row, startCol, count)
	if len(frames) == 0 {
		return fmt.Errorf("editor: grid %dx%d: %w", layout.FrameW, layout.FrameH, ErrFrameTooSmall)
	}
	for _, f := range frames {
		f.Duration = a.FrameDuration()
		s.lib.AppendFrame(s.current, f)
	}
	s.preview.Sync()
	s.changed()
	return nil
}

func (s *Session) frameIndex(i int) (*anim.Animation, error) {
	a, ok := s.CurrentAnimation()
	if !ok {
		return nil, ErrNoAnimation
	}
	if i < 0 || i >= len(a.Frames) {
		return nil, fmt.Errorf("editor: frame %d of %d: %w", i, len(a.Frames), ErrFrameIndex)
	}
	return a, nil
}

// DeleteFrame removes frame i. The preview restarts from the first frame
// when it was showing frame i or a later one.
func (s *Session) DeleteFrame(i int) error {
	if _, err := s.frameIndex(i); err != nil {
		return err
	}
	s.lib.RemoveFrame(s.current, i)

	if s.preview.CurrentAnimation() == s.current && s.preview.CurrentFrameIndex() >= i {
		s.preview.SetFrame(0)
	}
	s.preview.Sync()

	switch {
	case s.selected == i:
		s.selected = -1
	case s.selected > i:
		s.selected--
	}
	s.changed()
	return nil
}

// MoveFrame moves frame from to position to. The selection follows the
// frame it was on.
func (s *Session) MoveFrame(from, to int) error {
	if _, err := s.frameIndex(from); err != nil {
		return err
	}
	if _, err := s.frameIndex(to); err != nil {
		return err
	}
	s.lib.MoveFrame(s.current, from, to)

	switch {
	case s.selected < 0:
	case s.selected == from:
		s.selected = to
	case s.selected > from && s.selected <= to:
		s.selected--
	case s.selected < from && s.selected >= to:
		s.selected++
	}
	s.changed()
	return nil
}

// SetFrameDuration sets an explicit duration for frame i in milliseconds.
// Zero, negative and NaN values clear it.
func (s *Session) SetFrameDuration(i int, ms float64) error {
	if _, err := s.frameIndex(i); err != nil {
		return err
	}
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		ms = 0
	}
	s.lib.SetFrameDuration(s.current, i, ms)
	s.changed()
	return nil
}

// UpdateFrame moves and resizes frame i to r, rounded to whole pixels.
// The frame keeps its duration.
func (s *Session) UpdateFrame(i int, r Rect) error {
	a, err := s.frameIndex(i)
	if err != nil {
		return err
	}
	f := a.Frames[i]
	f.X = round(r.X)
	f.Y = round(r.Y)
	f.Width = round(r.W)
	f.Height = round(r.H)
	s.lib.SetFrame(s.current, i, f)
	s.changed()
	return nil
}

// ResizeFrame drags handle h of frame i, starting from orig.
func (s *Session) ResizeFrame(i int, orig anim.Frame, h Handle, dx, dy float64) error {
	return s.UpdateFrame(i, Resize(orig, h, dx, dy, float64(s.opts.MinFrameSize)))
}

// SelectFrame selects frame i; -1 clears the selection.
func (s *Session) SelectFrame(i int) error {
	if i == -1 {
		s.selected = -1
		return nil
	}
	if _, err := s.frameIndex(i); err != nil {
		return err
	}
	s.selected = i
	return nil
}

// FrameAt returns the topmost frame of the current animation containing
// (x, y), or -1. Later frames are drawn over earlier ones.
func (s *Session) FrameAt(x, y float64) int {
	a, ok := s.CurrentAnimation()
	if !ok {
		return -1
	}
	for i := len(a.Frames) - 1; i >= 0; i-- {
		f := a.Frames[i]
		if x >= float64(f.X) && x <= float64(f.X+f.Width) &&
			y >= float64(f.Y) && y <= float64(f.Y+f.Height) {
			return i
		}
	}
	return -1
}

// Tick advances the preview by ms milliseconds.
func (s *Session) Tick(ms float64) {
	s.preview.Advance(ms)
}

// ReloadPreview restarts the preview of the current animation.
func (s *Session) ReloadPreview() {
	if s.current == "" {
		return
	}
	_ = s.preview.Play(s.current, true)
}

// TogglePreview pauses a playing preview and resumes a paused one.
func (s *Session) TogglePreview() {
	if s.preview.IsPlaying() {
		s.preview.Pause()
		return
	}
	s.preview.Resume()
}

// StopPreview halts the preview on the first frame.
func (s *Session) StopPreview() {
	s.preview.Stop()
}

// PreviewInfo describes the preview, e.g. "Frame 2/4 | 8 FPS | Loop |
// Playing". It is empty when there is nothing to preview.
func (s *Session) PreviewInfo() string {
	a, ok := s.CurrentAnimation()
	if !ok || len(a.Frames) == 0 {
		return ""
	}
	idx := s.preview.CurrentFrameIndex()
	if s.preview.CurrentAnimation() != s.current || idx >= len(a.Frames) {
		idx = 0
	}
	mode := "Once"
	if a.Loop {
		mode = "Loop"
	}
	status := "Paused"
	if s.preview.IsPlaying() {
		status = "Playing"
	}
	return fmt.Sprintf("Frame %d/%d | %s FPS | %s | %s",
		idx+1, len(a.Frames), strconv.FormatFloat(a.FrameRate, 'f', -1, 64), mode, status)
}

// Export snapshots the catalog as a document.
func (s *Session) Export() *document.Document {
	return document.FromLibrary(s.lib, s.sheet)
}

// Import replaces the catalog and sheet reference with doc and clears the
// current animation. The catalog is replaced even when doc has malformed
// records; those are described by the returned error.
func (s *Session) Import(doc *document.Document) error {
	if doc == nil {
		doc = document.New()
	}
	s.lib = document.ToLibrary(doc)
	s.sheet = doc.Sheet()
	s.current = ""
	s.selected = -1
	s.preview.Clear()
	s.preview.SetLibrary(s.lib)
	s.changed()
	return document.Validate(doc)
}
