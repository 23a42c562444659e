package main

import (
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// animationEntry is one row of the animation list.
type animationEntry struct {
	Name   string
	Frames int
}

func (g *Editor) addAnimationsSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Animations", fontFace, labelColor)))

	g.animPanel = &listPanel{}
	animList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(animationEntry); ok {
				return entry.Name + " (" + strconv.Itoa(entry.Frames) + ")"
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if g.animPanel.suppressEvents {
				return
			}
			if entry, ok := args.Entry.(animationEntry); ok {
				g.selectAnimation(entry.Name)
			}
		}),
	)
	animList.GetWidget().MinHeight = 220
	parent.AddChild(animList)
	g.animPanel.list = animList

	buttons := newRow()
	buttons.AddChild(newButton(theme, fontFace, "New", g.promptNewAnimation))
	buttons.AddChild(newButton(theme, fontFace, "Rename", g.openRename))
	buttons.AddChild(newButton(theme, fontFace, "Delete", g.deleteCurrentAnimation))
	parent.AddChild(buttons)

	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("FPS", fontFace, labelColor)))
	config := newRow()
	g.fpsInput = newTextInput(fontFace, 80, func(s string) {
		fps, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			fps = 0
		}
		g.updateConfig(fps, g.currentLoop())
	})
	g.loopBtn = newButton(theme, fontFace, "Loop", func() {
		g.updateConfig(g.currentFPS(), !g.currentLoop())
	})
	config.AddChild(g.fpsInput)
	config.AddChild(g.loopBtn)
	parent.AddChild(config)
}
