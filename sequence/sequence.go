// Package sequence drives a player from a tengo script. A script may define
//
//	on_start := func(engine) { ... }
//	on_complete := func(engine, name) { ... }
//
// and uses the engine map to switch animations as others finish.
package sequence

import (
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/spriteanim/anim"
)

const (
	hookStart    = "on_start"
	hookComplete = "on_complete"
)

// Runner owns one compiled script and the player it steers.
type Runner struct {
	compiled    *tengo.Compiled
	state       *tengo.Map
	hasStart    bool
	hasComplete bool
	player      *anim.Player

	// OnError receives script failures raised from the completion
	// callback, where there is no caller to return them to.
	OnError func(error)
}

// LoadFile reads and compiles a script from disk.
func LoadFile(path string) (*Runner, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sequence: load %s: %w", path, err)
	}
	r, err := Load(src)
	if err != nil {
		return nil, fmt.Errorf("sequence: load %s: %w", path, err)
	}
	return r, nil
}

// Load compiles src. Either hook may be left out.
func Load(src []byte) (*Runner, error) {
	scout, err := compile(string(src))
	if err != nil {
		return nil, err
	}
	if err := scout.Run(); err != nil {
		return nil, err
	}
	r := &Runner{
		state:       &tengo.Map{Value: map[string]tengo.Object{}},
		hasStart:    scout.IsDefined(hookStart),
		hasComplete: scout.IsDefined(hookComplete),
	}

	r.compiled, err = compile(string(src) + "\n" + dispatchScript(r.hasStart, r.hasComplete))
	if err != nil {
		return nil, err
	}
	return r, nil
}

func compile(src string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__name", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func dispatchScript(start, complete bool) string {
	var b strings.Builder
	if start {
		b.WriteString("if __phase == \"start\" {\n\t" + hookStart + "(__engine)\n}\n")
	}
	if complete {
		b.WriteString("if __phase == \"complete\" {\n\t" + hookComplete + "(__engine, __name)\n}\n")
	}
	return b.String()
}

// HasStart reports whether the script defines on_start.
func (r *Runner) HasStart() bool { return r != nil && r.hasStart }

// HasComplete reports whether the script defines on_complete.
func (r *Runner) HasComplete() bool { return r != nil && r.hasComplete }

// Attach binds the runner to p and installs it as p's completion callback,
// replacing any callback registered before.
func (r *Runner) Attach(p *anim.Player) {
	if r == nil || p == nil {
		return
	}
	r.player = p
	p.SetOnComplete(func() {
		if err := r.Complete(p.CurrentAnimation()); err != nil && r.OnError != nil {
			r.OnError(err)
		}
	})
}

// Start runs on_start, if defined.
func (r *Runner) Start() error {
	if r == nil || !r.hasStart {
		return nil
	}
	return r.run("start", "")
}

// Complete runs on_complete for the animation that just finished.
func (r *Runner) Complete(name string) error {
	if r == nil || !r.hasComplete {
		return nil
	}
	return r.run("complete", name)
}

func (r *Runner) run(phase, name string) error {
	if r.player == nil {
		return fmt.Errorf("sequence: %s: runner not attached", phase)
	}
	if err := r.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := r.compiled.Set("__engine", r.engine()); err != nil {
		return err
	}
	if err := r.compiled.Set("__name", name); err != nil {
		return err
	}
	if err := r.compiled.Run(); err != nil {
		return fmt.Errorf("sequence: %s: %w", phase, err)
	}
	return nil
}

func (r *Runner) engine() *tengo.ImmutableMap {
	p := r.player
	values := map[string]tengo.Object{}

	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		restart := false
		if len(args) > 1 {
			restart = !args[1].IsFalsy()
		}
		if err := p.Play(objectAsString(args[0]), restart); err != nil {
			if r.OnError != nil {
				r.OnError(err)
			}
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["pause"] = &tengo.UserFunction{Name: "pause", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p.Pause()
		return tengo.UndefinedValue, nil
	}}

	values["resume"] = &tengo.UserFunction{Name: "resume", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p.Resume()
		return tengo.UndefinedValue, nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p.Stop()
		return tengo.UndefinedValue, nil
	}}

	values["current"] = &tengo.UserFunction{Name: "current", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: p.CurrentAnimation()}, nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(p.CurrentFrameIndex())}, nil
	}}

	values["playing"] = &tengo.UserFunction{Name: "playing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if p.IsPlaying() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["names"] = &tengo.UserFunction{Name: "names", Value: func(args ...tengo.Object) (tengo.Object, error) {
		names := p.Library().Names()
		out := make([]tengo.Object, len(names))
		for i, n := range names {
			out[i] = &tengo.String{Value: n}
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["state"] = r.state

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
