package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteanim/anim"
)

// Rect is a destination rectangle in screen space.
type Rect struct {
	X, Y, W, H float64
}

// FitRect centers a frameW×frameH frame inside a boxW×boxH box, scaled by
// min(boxW/frameW, boxH/frameH, maxScale). maxScale <= 0 means no cap.
func FitRect(frameW, frameH int, boxW, boxH, maxScale float64) Rect {
	if frameW <= 0 || frameH <= 0 || boxW <= 0 || boxH <= 0 {
		return Rect{}
	}
	scale := math.Min(boxW/float64(frameW), boxH/float64(frameH))
	if maxScale > 0 {
		scale = math.Min(scale, maxScale)
	}
	w := float64(frameW) * scale
	h := float64(frameH) * scale
	return Rect{X: (boxW - w) / 2, Y: (boxH - h) / 2, W: w, H: h}
}

// DrawFrame draws the sheet region of frame into dst, stretched to r.
func DrawFrame(dst, sheet *ebiten.Image, frame anim.Frame, r Rect) {
	if dst == nil || sheet == nil || frame.Width <= 0 || frame.Height <= 0 {
		return
	}
	src := frame.Rect().Intersect(sheet.Bounds())
	if src.Empty() {
		return
	}
	sub, ok := sheet.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(frame.Width), r.H/float64(frame.Height))
	op.GeoM.Translate(r.X, r.Y)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(sub, op)
}

// Sprite draws whatever a player is currently showing from one sheet.
type Sprite struct {
	Player *anim.Player
	Sheet  *ebiten.Image
}

// NewSprite pairs a player with a sheet.
func NewSprite(p *anim.Player, sheet *ebiten.Image) *Sprite {
	return &Sprite{Player: p, Sheet: sheet}
}

// Draw renders the current frame into r. Nothing is drawn when no
// animation is current or it has no frames.
func (s *Sprite) Draw(dst *ebiten.Image, r Rect) {
	if s == nil || s.Player == nil {
		return
	}
	f, ok := s.Player.CurrentFrame()
	if !ok {
		return
	}
	DrawFrame(dst, s.Sheet, f, r)
}

// DrawFit renders the current frame centered in a box of the given size,
// offset by (x, y).
func (s *Sprite) DrawFit(dst *ebiten.Image, x, y, boxW, boxH, maxScale float64) {
	if s == nil || s.Player == nil {
		return
	}
	f, ok := s.Player.CurrentFrame()
	if !ok {
		return
	}
	r := FitRect(f.Width, f.Height, boxW, boxH, maxScale)
	r.X += x
	r.Y += y
	DrawFrame(dst, s.Sheet, f, r)
}
