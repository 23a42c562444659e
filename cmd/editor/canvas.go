package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/editor"
	"github.com/milk9111/spriteanim/render"
	"golang.org/x/image/colornames"
)

var (
	canvasBackground = color.RGBA{24, 24, 28, 255}
	frameColor       = color.RGBA{R: 255, G: 215, A: 255}
	selectedColor    = colornames.Cyan
	selectionColor   = colornames.Lime
	handleColor      = colornames.White
)

func (g *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(canvasBackground)
	g.drawCanvas(screen)
	g.ui.Draw(screen)
	g.drawPreview(screen)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, leftPanelWidth+8, g.screenH-20)
	}
}

// toScreen maps a sheet-space point to the screen.
func (g *Editor) toScreen(wx, wy float64) (float32, float32) {
	sx, sy := g.camera.WorldToScreen(wx, wy)
	return float32(sx + leftPanelWidth), float32(sy)
}

func (g *Editor) drawCanvas(screen *ebiten.Image) {
	canvas := screen.SubImage(g.canvasBounds()).(*ebiten.Image)
	if g.sheet.img == nil {
		ebitenutil.DebugPrintAt(canvas, "Enter a sprite sheet path and press Open sheet", leftPanelWidth+16, 16)
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.camera.Zoom, g.camera.Zoom)
	op.GeoM.Translate(g.camera.PanX+leftPanelWidth, g.camera.PanY)
	canvas.DrawImage(g.sheet.img, op)

	a, ok := g.session.CurrentAnimation()
	if ok {
		for i, f := range a.Frames {
			c := color.Color(frameColor)
			if i == g.session.Selected() {
				c = selectedColor
			}
			g.strokeFrame(canvas, f, c)
		}
	}
	if f, ok := g.session.SelectedFrame(); ok {
		g.drawHandles(canvas, f)
	}

	if g.selecting {
		r := editor.SelectionRect(g.selStartX, g.selStartY, g.selEndX, g.selEndY)
		x0, y0 := g.toScreen(float64(r.Min.X), float64(r.Min.Y))
		x1, y1 := g.toScreen(float64(r.Max.X), float64(r.Max.Y))
		vector.StrokeRect(canvas, x0, y0, x1-x0, y1-y0, 1, selectionColor, false)
	}
}

func (g *Editor) strokeFrame(dst *ebiten.Image, f anim.Frame, c color.Color) {
	x0, y0 := g.toScreen(float64(f.X), float64(f.Y))
	x1, y1 := g.toScreen(float64(f.X+f.Width), float64(f.Y+f.Height))
	vector.StrokeRect(dst, x0, y0, x1-x0, y1-y0, 2, c, false)
}

// drawHandles draws the resize handles at a constant screen size.
func (g *Editor) drawHandles(dst *ebiten.Image, f anim.Frame) {
	size := editor.HandleSize / g.camera.Zoom
	for _, h := range editor.Handles {
		hx, hy := editor.HandleOrigin(f, h, size)
		x, y := g.toScreen(hx, hy)
		vector.FillRect(dst, x, y, editor.HandleSize, editor.HandleSize, handleColor, false)
	}
}

// drawPreview renders the preview player into the placeholder reserved
// by the preview section.
func (g *Editor) drawPreview(screen *ebiten.Image) {
	if g.previewBox == nil {
		return
	}
	box := g.previewBox.GetWidget().Rect
	if box.Empty() {
		return
	}
	vector.FillRect(screen, float32(box.Min.X), float32(box.Min.Y), float32(box.Dx()), float32(box.Dy()), color.Black, false)
	if g.sheet.img == nil {
		return
	}
	sprite := render.NewSprite(g.session.Preview(), g.sheet.img)
	sprite.DrawFit(screen, float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()), g.cfg.PreviewMaxScale)
}
