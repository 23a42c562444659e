package main

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// sheetView is the opened sprite sheet. img is drawn, src is scanned by
// region detection.
type sheetView struct {
	img *ebiten.Image
	src image.Image
}

func (s *sheetView) set(src image.Image, img *ebiten.Image) {
	s.src = src
	s.img = img
}

func (s *sheetView) clear() {
	s.src = nil
	s.img = nil
}

func (s *sheetView) loaded() bool { return s.src != nil }

// pixelAt maps a sheet-space position to the source pixel containing it.
// Positions left of or above the sheet floor to negative pixels.
func (s *sheetView) pixelAt(wx, wy float64) (image.Point, bool) {
	if s.src == nil {
		return image.Point{}, false
	}
	o := s.src.Bounds().Min
	return image.Pt(o.X+int(math.Floor(wx)), o.Y+int(math.Floor(wy))), true
}
