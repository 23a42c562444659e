package main

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/milk9111/spriteanim/detect"
	"github.com/milk9111/spriteanim/editor"
)

func (g *Editor) setStatus(msg string) {
	g.status = msg
	if msg != "" {
		log.Println(msg)
	}
}

func (g *Editor) selectAnimation(name string) {
	if err := g.session.SelectAnimation(name); err != nil {
		g.setStatus(err.Error())
	}
	g.refresh()
}

func (g *Editor) promptNewAnimation() {
	g.nameDialog.Open("New animation", "", func(name string) {
		name = strings.TrimSpace(name)
		err := g.session.CreateAnimation(name)
		switch {
		case err == nil:
			g.setStatus("Created " + name)
		case errors.Is(err, editor.ErrAnimationExists):
			g.setStatus("Animation " + name + " already exists")
			g.promptNewAnimation()
		case errors.Is(err, editor.ErrEmptyName):
		default:
			g.setStatus(err.Error())
		}
		g.refresh()
	})
}

func (g *Editor) openRename() {
	if g.session.Current() == "" {
		return
	}
	g.nameDialog.Open("Rename animation", g.session.Current(), g.renameCurrent)
}

func (g *Editor) renameCurrent(newName string) {
	old := g.session.Current()
	if !g.session.RenameAnimation(strings.TrimSpace(newName)) {
		g.setStatus("Cannot rename " + old + " to " + newName)
		return
	}
	g.setStatus("Renamed " + old + " to " + g.session.Current())
	g.refresh()
}

func (g *Editor) deleteCurrentAnimation() {
	name := g.session.Current()
	if name == "" {
		return
	}
	if err := g.session.DeleteAnimation(name); err != nil {
		g.setStatus(err.Error())
	}
	g.refresh()
}

func (g *Editor) currentFPS() float64 {
	if a, ok := g.session.CurrentAnimation(); ok {
		return a.FrameRate
	}
	return g.session.Options().DefaultFPS
}

func (g *Editor) currentLoop() bool {
	if a, ok := g.session.CurrentAnimation(); ok {
		return a.Loop
	}
	return true
}

func (g *Editor) updateConfig(fps float64, loop bool) {
	if err := g.session.UpdateConfig(fps, loop); err != nil {
		g.setStatus(err.Error())
	}
	g.refresh()
}

func (g *Editor) selectFrame(i int) {
	if err := g.session.SelectFrame(i); err != nil {
		g.setStatus(err.Error())
	}
	g.refreshFrames()
}

func (g *Editor) moveSelectedFrame(delta int) {
	i := g.session.Selected()
	if i < 0 {
		return
	}
	if err := g.session.MoveFrame(i, i+delta); err != nil && !errors.Is(err, editor.ErrFrameIndex) {
		g.setStatus(err.Error())
	}
	g.refreshFrames()
}

func (g *Editor) deleteSelectedFrame() {
	i := g.session.Selected()
	if i < 0 {
		return
	}
	if err := g.session.DeleteFrame(i); err != nil {
		g.setStatus(err.Error())
	}
	g.refresh()
}

func (g *Editor) setSelectedDuration(ms float64) {
	i := g.session.Selected()
	if i < 0 {
		return
	}
	if err := g.session.SetFrameDuration(i, ms); err != nil {
		g.setStatus(err.Error())
	}
	g.refreshFrames()
}

func (g *Editor) togglePreview() { g.session.TogglePreview() }

func (g *Editor) reloadPreview() { g.session.ReloadPreview() }

func (g *Editor) stopPreview() { g.session.StopPreview() }

// detectUnderCursor adds the opaque region under the mouse as a frame.
func (g *Editor) detectUnderCursor() {
	p, ok := g.sheet.pixelAt(g.cursorWorld())
	if !ok {
		return
	}
	r, ok := detect.RegionAt(g.sheet.src, p.X, p.Y, uint8(g.cfg.AlphaThreshold))
	if !ok {
		g.setStatus("No sprite under cursor")
		return
	}
	if err := g.session.AddFrame(r.Sub(g.sheet.src.Bounds().Min)); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.refresh()
}

// refresh rebuilds every widget that mirrors session state.
func (g *Editor) refresh() {
	names := g.session.Library().Names()
	entries := make([]any, len(names))
	selected := -1
	for i, name := range names {
		a, _ := g.session.Library().Get(name)
		entries[i] = animationEntry{Name: name, Frames: len(a.Frames)}
		if name == g.session.Current() {
			selected = i
		}
	}
	g.animPanel.SetEntries(entries)
	g.animPanel.SetSelected(selected)

	if g.fpsInput != nil && !g.fpsInput.IsFocused() {
		g.fpsInput.SetText(strconv.FormatFloat(g.currentFPS(), 'f', -1, 64))
	}
	g.refreshFrames()
}

func (g *Editor) refreshFrames() {
	entries := []any{}
	if a, ok := g.session.CurrentAnimation(); ok {
		entries = make([]any, len(a.Frames))
		for i, f := range a.Frames {
			entries[i] = frameEntry{Index: i, Frame: f}
		}
	}
	g.framePanel.SetEntries(entries)
	g.framePanel.SetSelected(g.session.Selected())

	if g.durationInput != nil && !g.durationInput.IsFocused() {
		text := ""
		if f, ok := g.session.SelectedFrame(); ok && f.Duration > 0 {
			text = strconv.FormatFloat(f.Duration, 'f', -1, 64)
		}
		g.durationInput.SetText(text)
	}
}

// updateLabels refreshes labels that change without an edit, such as
// the preview position.
func (g *Editor) updateLabels() {
	g.previewInfo.Label = g.session.PreviewInfo()
	play := "Play"
	if g.session.Preview().IsPlaying() {
		play = "Pause"
	}
	if text := g.playBtn.Text(); text != nil {
		text.Label = play
	}
	loop := "Once"
	if g.currentLoop() {
		loop = "Loop"
	}
	if text := g.loopBtn.Text(); text != nil {
		text.Label = loop
	}
}
