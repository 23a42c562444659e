package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestFitRect(t *testing.T) {
	tests := []struct {
		name               string
		fw, fh             int
		boxW, boxH, maxScl float64
		want               Rect
	}{
		{name: "capped at max scale", fw: 32, fh: 32, boxW: 300, boxH: 200, maxScl: 2, want: Rect{X: 118, Y: 68, W: 64, H: 64}},
		{name: "limited by height", fw: 100, fh: 200, boxW: 300, boxH: 100, maxScl: 2, want: Rect{X: 125, Y: 0, W: 50, H: 100}},
		{name: "limited by width", fw: 200, fh: 50, boxW: 100, boxH: 100, maxScl: 2, want: Rect{X: 0, Y: 37.5, W: 100, H: 25}},
		{name: "no cap", fw: 10, fh: 10, boxW: 100, boxH: 50, maxScl: 0, want: Rect{X: 25, Y: 0, W: 50, H: 50}},
		{name: "empty frame", fw: 0, fh: 10, boxW: 100, boxH: 100, maxScl: 2, want: Rect{}},
		{name: "empty box", fw: 10, fh: 10, boxW: 0, boxH: 100, maxScl: 2, want: Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitRect(tt.fw, tt.fh, tt.boxW, tt.boxH, tt.maxScl)
			if !rectNear(got, tt.want) {
				t.Fatalf("FitRect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func rectNear(a, b Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.png")

	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	src.Set(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	im, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if im.Bounds().Dx() != 4 || im.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", im.Bounds())
	}
	if _, _, _, a := im.At(1, 1).RGBA(); a == 0 {
		t.Fatalf("pixel lost")
	}

	if _, err := DecodeFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := DecodeFile(""); err == nil {
		t.Fatalf("expected error for empty path")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := DecodeFile(bad); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDecodeDataURL(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 5))
	src.Set(2, 4, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	if !IsDataURL(ref) {
		t.Fatalf("IsDataURL = false")
	}
	im, err := DecodeFile(ref)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if im.Bounds().Dx() != 3 || im.Bounds().Dy() != 5 {
		t.Fatalf("bounds = %v", im.Bounds())
	}
	if _, g, _, a := im.At(2, 4).RGBA(); g == 0 || a == 0 {
		t.Fatalf("pixel lost")
	}

	tests := []string{
		"data:image/png;base64",
		"data:image/png;base64,!!!",
		"data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image")),
	}
	for _, bad := range tests {
		if _, err := DecodeFile(bad); err == nil {
			t.Errorf("DecodeFile(%q) expected error", bad)
		}
	}
}

func TestDecodeFileURLScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	im, err := DecodeFile("file://" + path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if im.Bounds().Dx() != 2 {
		t.Fatalf("bounds = %v", im.Bounds())
	}
	if IsDataURL(path) {
		t.Fatalf("path reported as data url")
	}
}
