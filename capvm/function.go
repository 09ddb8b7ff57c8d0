package capvm

// Function is a compiled lambda body.
//
// Slot layout of a frame: parameters, then Free in order, then NumLocals
// body-local variables.
//
// Predeclared values are used for free names the enclosing scope does not
// define.
type Function struct {
	Name        string
	Spec        CaptureSpec
	Params      []Param
	Free        []string
	Written     []string
	NumLocals   int
	Code        []OpCode
	Constants   []any
	Predeclared map[string]any
	Source      string
}

func (f *Function) NumSlots() int {
	return len(f.Params) + len(f.Free) + f.NumLocals
}

func (f *Function) freeIndex(name string) int {
	for i, n := range f.Free {
		if n == name {
			return i
		}
	}
	return -1
}
