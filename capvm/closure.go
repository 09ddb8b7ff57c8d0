package capvm

import (
	"fmt"
	"io"
)

type Binding struct {
	Name string
	Mode Mode
	Slot *Slot
}

type Closure struct {
	Fun    *Function
	Spec   CaptureSpec
	Stdout io.Writer

	bindings []Binding
	// aligned with Fun.Free; captured names point to binding slots, globals to the global slot
	free []*Slot
}

// Construct resolves the capture list against scope and returns a closure
// whose bindings are fixed for its whole lifetime.
func Construct(spec CaptureSpec, fn *Function, scope *Env) (*Closure, error) {
	if scope == nil {
		scope = NewGlobals()
	}

	explicit := make(map[string]bool)
	for _, c := range spec.Explicit {
		if explicit[c.Name] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrRedundantCapture, c.Name)
		}
		if c.ByReference && spec.Default == DefaultReference ||
			!c.ByReference && spec.Default == DefaultValue {
			return nil, fmt.Errorf("%w: %s repeats the default capture", ErrRedundantCapture, c)
		}
		explicit[c.Name] = true
	}

	closure := &Closure{
		Fun:    fn,
		Spec:   spec,
		Stdout: scope.Output(),
		free:   make([]*Slot, len(fn.Free)),
	}

	bind := func(name string, byRef bool) (*Slot, error) {
		slot, env := scope.Lookup(name)
		if slot == nil {
			return nil, fmt.Errorf("%w: %s", ErrUndefined, name)
		}
		if env.IsGlobal() {
			return nil, fmt.Errorf("%w: %s is global", ErrNotCapturable, name)
		}
		binding := Binding{
			Name: name,
		}
		if byRef {
			binding.Mode = ByReference
			binding.Slot = slot
		} else {
			binding.Mode = spec.valueMode()
			binding.Slot = slot.clone()
		}
		closure.bindings = append(closure.bindings, binding)
		return binding.Slot, nil
	}

	// explicit captures bind even when unused
	for _, c := range spec.Explicit {
		slot, err := bind(c.Name, c.ByReference)
		if err != nil {
			return nil, err
		}
		if i := fn.freeIndex(c.Name); i >= 0 {
			closure.free[i] = slot
		}
	}

	// default capture binds referenced names only
	for i, name := range fn.Free {
		if closure.free[i] != nil {
			continue
		}
		slot, env := scope.Lookup(name)
		switch {
		case slot == nil:
			v, ok := fn.Predeclared[name]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUndefined, name)
			}
			closure.free[i] = &Slot{
				Value: v,
			}
		case env.IsGlobal():
			closure.free[i] = slot
		case spec.Default == DefaultNone:
			return nil, fmt.Errorf("%w: %s in %s", ErrNotCaptured, name, spec)
		default:
			slot, err := bind(name, spec.Default == DefaultReference)
			if err != nil {
				return nil, err
			}
			closure.free[i] = slot
		}
	}

	for _, name := range fn.Written {
		if binding, ok := closure.Binding(name); ok && binding.Mode == ByValue {
			return nil, &ViolationError{
				Closure: closure.name(),
				Name:    name,
				Mode:    binding.Mode,
			}
		}
	}

	return closure, nil
}

func (c *Closure) name() string {
	if c.Fun.Name != "" {
		return c.Fun.Name
	}
	return "lambda"
}

func (c *Closure) String() string {
	return fmt.Sprintf("<%s %s>", c.name(), c.Spec)
}

func (c *Closure) Bindings() []Binding {
	return append([]Binding(nil), c.bindings...)
}

func (c *Closure) Binding(name string) (Binding, bool) {
	for _, b := range c.bindings {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

// Snapshot returns the values currently seen through the bindings.
func (c *Closure) Snapshot() map[string]any {
	ret := make(map[string]any, len(c.bindings))
	for _, b := range c.bindings {
		ret[b.Name] = b.Slot.Value
	}
	return ret
}

// Copy returns an independent closure: value bindings are duplicated,
// reference bindings keep aliasing the same variables.
func (c *Closure) Copy() *Closure {
	ret := &Closure{
		Fun:      c.Fun,
		Spec:     c.Spec,
		Stdout:   c.Stdout,
		bindings: make([]Binding, len(c.bindings)),
		free:     make([]*Slot, len(c.free)),
	}
	replaced := make(map[*Slot]*Slot)
	for i, b := range c.bindings {
		if b.Mode != ByReference {
			slot := b.Slot.clone()
			replaced[b.Slot] = slot
			b.Slot = slot
		}
		ret.bindings[i] = b
	}
	for i, slot := range c.free {
		if s, ok := replaced[slot]; ok {
			slot = s
		}
		ret.free[i] = slot
	}
	return ret
}
