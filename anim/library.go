package anim

// Library stores animations by name. Names are unique; Names lists them in
// first-registration order so UIs list deterministically.
type Library struct {
	anims map[string]*Animation
	order []string
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{anims: make(map[string]*Animation)}
}

// Register inserts or overwrites the animation at name. A non-positive
// frameRate falls back to DefaultFrameRate. Overwriting keeps the name's
// listing position.
func (l *Library) Register(name string, frames []Frame, frameRate float64, loop bool) {
	if l == nil || name == "" {
		return
	}
	if l.anims == nil {
		l.anims = make(map[string]*Animation)
	}
	if _, ok := l.anims[name]; !ok {
		l.order = append(l.order, name)
	}
	l.anims[name] = newAnimation(name, frames, frameRate, loop)
}

// RegisterGrid registers an animation whose frames come from a uniform grid.
func (l *Library) RegisterGrid(name string, layout GridLayout, row, startCol, count int, frameRate float64, loop bool) {
	l.Register(name, GridFrames(layout, row, startCol, count), frameRate, loop)
}

// Get returns the animation registered at name.
func (l *Library) Get(name string) (*Animation, bool) {
	if l == nil || name == "" {
		return nil, false
	}
	a, ok := l.anims[name]
	return a, ok
}

// Has reports whether name is registered.
func (l *Library) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Len returns the number of registered animations.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.order)
}

// Names returns registered names in listing order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.order...)
}

// Delete removes name. It returns false if name was not registered.
func (l *Library) Delete(name string) bool {
	if _, ok := l.Get(name); !ok {
		return false
	}
	delete(l.anims, name)
	for i, n := range l.order {
		if n == name {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Rename moves the animation at oldName to newName, keeping its listing
// position. It fails if oldName is missing or newName is empty or taken.
func (l *Library) Rename(oldName, newName string) bool {
	a, ok := l.Get(oldName)
	if !ok || newName == "" || l.Has(newName) {
		return false
	}
	delete(l.anims, oldName)
	a.Name = newName
	l.anims[newName] = a
	for i, n := range l.order {
		if n == oldName {
			l.order[i] = newName
			break
		}
	}
	return true
}

// Configure re-registers name with a new frame rate and loop flag, keeping
// its frames.
func (l *Library) Configure(name string, frameRate float64, loop bool) bool {
	a, ok := l.Get(name)
	if !ok {
		return false
	}
	l.Register(name, a.Frames, frameRate, loop)
	return true
}

// AppendFrame adds f to the end of name's frames.
func (l *Library) AppendFrame(name string, f Frame) bool {
	a, ok := l.Get(name)
	if !ok {
		return false
	}
	a.Frames = append(a.Frames, f)
	return true
}

// RemoveFrame deletes frame i of name.
func (l *Library) RemoveFrame(name string, i int) bool {
	a, ok := l.Get(name)
	if !ok || i < 0 || i >= len(a.Frames) {
		return false
	}
	a.Frames = append(a.Frames[:i], a.Frames[i+1:]...)
	return true
}

// MoveFrame moves frame from to position to, shifting the frames between.
func (l *Library) MoveFrame(name string, from, to int) bool {
	a, ok := l.Get(name)
	if !ok || from < 0 || from >= len(a.Frames) || to < 0 || to >= len(a.Frames) {
		return false
	}
	if from == to {
		return true
	}
	f := a.Frames[from]
	a.Frames = append(a.Frames[:from], a.Frames[from+1:]...)
	a.Frames = append(a.Frames[:to], append([]Frame{f}, a.Frames[to:]...)...)
	return true
}

// SetFrame replaces frame i of name.
func (l *Library) SetFrame(name string, i int, f Frame) bool {
	a, ok := l.Get(name)
	if !ok || i < 0 || i >= len(a.Frames) {
		return false
	}
	a.Frames[i] = f
	return true
}

// SetFrameDuration sets the explicit duration of frame i; ms <= 0 clears
// it so the frame falls back to the animation's frame duration.
func (l *Library) SetFrameDuration(name string, i int, ms float64) bool {
	a, ok := l.Get(name)
	if !ok || i < 0 || i >= len(a.Frames) {
		return false
	}
	if ms < 0 {
		ms = 0
	}
	a.Frames[i].Duration = ms
	return true
}
