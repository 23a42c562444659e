package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// SheetExtensions lists the sprite sheet formats that can be opened.
var SheetExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// DecodeFile decodes a sprite sheet reference. Inline data URLs
// ("data:image/png;base64,...") are decoded directly and a file:// scheme
// is stripped. A file path is tried as given, then under assets/, then by
// its base name.
func DecodeFile(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("render: empty image path")
	}
	if IsDataURL(path) {
		return decodeDataURL(path)
	}
	path = strings.TrimPrefix(path, "file://")
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	var lastErr error
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			lastErr = err
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", p, err)
		}
		return im, nil
	}
	return nil, fmt.Errorf("render: load %s: %w", path, lastErr)
}

// IsDataURL reports whether ref is an inline data URL rather than a path.
func IsDataURL(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

func decodeDataURL(ref string) (image.Image, error) {
	header, payload, ok := strings.Cut(ref, ",")
	if !ok {
		return nil, fmt.Errorf("render: data url: missing payload")
	}
	var data []byte
	if strings.HasSuffix(header, ";base64") {
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			return nil, fmt.Errorf("render: data url: %w", err)
		}
		data = b
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("render: data url: %w", err)
		}
		data = []byte(unescaped)
	}
	im, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("render: decode data url: %w", err)
	}
	return im, nil
}

// LoadImage loads an image from the filesystem and caches it by key.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	im, err := DecodeFile(key)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(im)
	RegisterImage(key, img)
	return img, nil
}
