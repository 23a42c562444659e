package document

import (
	"errors"
	"fmt"

	"github.com/milk9111/spriteanim/anim"
)

// ToLibrary registers every animation of doc into a new library, keyed by
// the document key and in document order.
func ToLibrary(doc *Document) *anim.Library {
	lib := anim.NewLibrary()
	if doc == nil {
		return lib
	}
	for _, name := range doc.Animations.Names() {
		rec, _ := doc.Animations.Get(name)
		frames := make([]anim.Frame, len(rec.Frames))
		for i, fr := range rec.Frames {
			frames[i] = anim.Frame{X: fr.X, Y: fr.Y, Width: fr.Width, Height: fr.Height, Duration: fr.Duration}
		}
		lib.Register(name, frames, rec.FPS, rec.Loop)
	}
	return lib
}

// FromLibrary walks lib back into a document referencing sheet.
func FromLibrary(lib *anim.Library, sheet string) *Document {
	doc := New()
	doc.SetSheet(sheet)
	for _, name := range lib.Names() {
		a, _ := lib.Get(name)
		doc.Animations.Set(name, RecordOf(a))
	}
	return doc
}

// RecordOf converts one animation into its document record.
func RecordOf(a *anim.Animation) AnimationRecord {
	rec := AnimationRecord{
		Name:   a.Name,
		Frames: make([]FrameRecord, len(a.Frames)),
		FPS:    a.FrameRate,
		Loop:   a.Loop,
	}
	for i, f := range a.Frames {
		rec.Frames[i] = FrameRecord{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height, Duration: f.Duration}
	}
	return rec
}

// Validate reports every malformed record in doc. A nil result means the
// document is well formed.
func Validate(doc *Document) error {
	if doc == nil {
		return nil
	}
	var errs []error
	for _, name := range doc.Animations.Names() {
		rec, _ := doc.Animations.Get(name)
		if name == "" {
			errs = append(errs, errors.New("animation with empty name"))
		}
		if rec.Name != "" && rec.Name != name {
			errs = append(errs, fmt.Errorf("animation %q: name field is %q", name, rec.Name))
		}
		if rec.FPS <= 0 {
			errs = append(errs, fmt.Errorf("animation %q: fps %v must be positive", name, rec.FPS))
		}
		for i, fr := range rec.Frames {
			if fr.Width <= 0 || fr.Height <= 0 {
				errs = append(errs, fmt.Errorf("animation %q frame %d: size %dx%d must be positive", name, i, fr.Width, fr.Height))
			}
			if fr.X < 0 || fr.Y < 0 {
				errs = append(errs, fmt.Errorf("animation %q frame %d: offset (%d,%d) must be non-negative", name, i, fr.X, fr.Y))
			}
			if fr.Duration < 0 {
				errs = append(errs, fmt.Errorf("animation %q frame %d: duration %v must not be negative", name, i, fr.Duration))
			}
		}
	}
	return errors.Join(errs...)
}
