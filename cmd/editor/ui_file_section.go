package main

import (
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func (g *Editor) addFileSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Sprite sheet", fontFace, labelColor)))
	g.sheetInput = newTextInput(fontFace, 220, func(s string) {
		g.openSheet(strings.TrimSpace(s))
	})
	parent.AddChild(g.sheetInput)

	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Document", fontFace, labelColor)))
	g.docInput = newTextInput(fontFace, 220, nil)
	parent.AddChild(g.docInput)

	buttons := newRow()
	buttons.AddChild(newButton(theme, fontFace, "Open sheet", func() {
		g.openSheet(strings.TrimSpace(g.sheetInput.GetText()))
	}))
	buttons.AddChild(newButton(theme, fontFace, "Export", g.exportDocument))
	buttons.AddChild(newButton(theme, fontFace, "Import", g.importDocument))
	parent.AddChild(buttons)
}
