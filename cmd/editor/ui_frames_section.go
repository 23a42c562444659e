package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/spriteanim/anim"
)

// frameEntry is one row of the frame list.
type frameEntry struct {
	Index int
	Frame anim.Frame
}

func (e frameEntry) String() string {
	f := e.Frame
	s := fmt.Sprintf("%d. %d,%d %dx%d", e.Index+1, f.X, f.Y, f.Width, f.Height)
	if f.Duration > 0 {
		s += " " + strconv.FormatFloat(f.Duration, 'f', -1, 64) + "ms"
	}
	return s
}

func (g *Editor) addFramesSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Frames", fontFace, labelColor)))

	g.framePanel = &listPanel{}
	frameList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(frameEntry); ok {
				return entry.String()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if g.framePanel.suppressEvents {
				return
			}
			if entry, ok := args.Entry.(frameEntry); ok {
				g.selectFrame(entry.Index)
			}
		}),
	)
	frameList.GetWidget().MinHeight = 260
	parent.AddChild(frameList)
	g.framePanel.list = frameList

	buttons := newRow()
	buttons.AddChild(newButton(theme, fontFace, "Up", func() { g.moveSelectedFrame(-1) }))
	buttons.AddChild(newButton(theme, fontFace, "Down", func() { g.moveSelectedFrame(1) }))
	buttons.AddChild(newButton(theme, fontFace, "Delete", g.deleteSelectedFrame))
	parent.AddChild(buttons)

	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Duration (ms)", fontFace, labelColor)))
	g.durationInput = newTextInput(fontFace, 120, func(s string) {
		ms, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			ms = 0
		}
		g.setSelectedDuration(ms)
	})
	parent.AddChild(g.durationInput)
}
