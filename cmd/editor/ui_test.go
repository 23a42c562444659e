package main

import (
	"image"
	"testing"

	"github.com/milk9111/spriteanim/anim"
)

func TestFrameEntryString(t *testing.T) {
	tests := []struct {
		entry frameEntry
		want  string
	}{
		{frameEntry{Index: 0, Frame: anim.Frame{X: 1, Y: 2, Width: 3, Height: 4}}, "1. 1,2 3x4"},
		{frameEntry{Index: 4, Frame: anim.Frame{Width: 16, Height: 8, Duration: 120}}, "5. 0,0 16x8 120ms"},
		{frameEntry{Index: 1, Frame: anim.Frame{Width: 16, Height: 8, Duration: 62.5}}, "2. 0,0 16x8 62.5ms"},
	}
	for _, tt := range tests {
		if got := tt.entry.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSheetViewPixelAt(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 10, 10))
	tests := []struct {
		name   string
		wx, wy float64
		want   image.Point
	}{
		{"origin", 0, 0, image.Pt(2, 3)},
		{"inside", 4.9, 2.2, image.Pt(6, 5)},
		{"just_left", -0.6, 1, image.Pt(1, 4)},
		{"just_above", 1, -0.1, image.Pt(3, 2)},
	}
	s := sheetView{}
	s.set(src, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.pixelAt(tt.wx, tt.wy)
			if !ok || got != tt.want {
				t.Fatalf("pixelAt(%v, %v) = %v, %v; want %v", tt.wx, tt.wy, got, ok, tt.want)
			}
			if tt.wx < 0 || tt.wy < 0 {
				if got.In(src.Bounds()) {
					t.Fatalf("pixelAt(%v, %v) = %v lands inside the sheet", tt.wx, tt.wy, got)
				}
			}
		})
	}
}

func TestSheetViewClear(t *testing.T) {
	s := sheetView{}
	if _, ok := s.pixelAt(1, 1); ok || s.loaded() {
		t.Fatalf("empty sheet should not resolve pixels")
	}
	s.set(image.NewRGBA(image.Rect(0, 0, 4, 4)), nil)
	if !s.loaded() {
		t.Fatalf("set should load the sheet")
	}
	s.clear()
	if s.loaded() || s.img != nil {
		t.Fatalf("clear should drop both images")
	}
	if _, ok := s.pixelAt(1, 1); ok {
		t.Fatalf("cleared sheet should not resolve pixels")
	}
}
