package capvm

import (
	"io"
	"os"
)

// Env is a scope of variables. The root env holds globals, every descendant
// is an enclosing local scope.
type Env struct {
	Parent *Env
	Vars   map[string]*Slot
	Stdout io.Writer // if nil, inherited from parent, default to os.Stdout
}

func NewGlobals() *Env {
	return &Env{}
}

func (e *Env) Lookup(name string) (*Slot, *Env) {
	if s, ok := e.Vars[name]; ok {
		return s, e
	}
	if e.Parent != nil {
		return e.Parent.Lookup(name)
	}
	return nil, nil
}

func (e *Env) Get(name string) (any, bool) {
	slot, _ := e.Lookup(name)
	if slot == nil {
		return nil, false
	}
	return slot.Value, true
}

func (e *Env) Def(name string, val any) *Slot {
	if e.Vars == nil {
		e.Vars = make(map[string]*Slot)
	}
	slot := &Slot{
		Value: val,
	}
	e.Vars[name] = slot
	return slot
}

func (e *Env) Set(name string, val any) bool {
	slot, _ := e.Lookup(name)
	if slot == nil {
		return false
	}
	slot.Value = val
	return true
}

func (e *Env) IsGlobal() bool {
	return e.Parent == nil
}

func (e *Env) NewChild() *Env {
	return &Env{
		Parent: e,
	}
}

func (e *Env) Output() io.Writer {
	for env := e; env != nil; env = env.Parent {
		if env.Stdout != nil {
			return env.Stdout
		}
	}
	return os.Stdout
}
