package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	previewWidth  = 280
	previewHeight = 220
)

func (g *Editor) addPreviewSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Preview", fontFace, labelColor)))

	// The preview is drawn over this placeholder after the UI.
	g.previewBox = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(previewWidth, previewHeight),
		),
	)
	parent.AddChild(g.previewBox)

	g.previewInfo = widget.NewText(widget.TextOpts.Text("", fontFace, color.White))
	parent.AddChild(g.previewInfo)

	transport := newRow()
	g.playBtn = newButton(theme, fontFace, "Pause", g.togglePreview)
	transport.AddChild(g.playBtn)
	transport.AddChild(newButton(theme, fontFace, "Reload", g.reloadPreview))
	transport.AddChild(newButton(theme, fontFace, "Stop", g.stopPreview))
	parent.AddChild(transport)
}
