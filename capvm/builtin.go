package capvm

import "io"

// Builtin is a function provided by the host, called with the output writer
// of the invoking closure.
type Builtin struct {
	Name string
	Func func(out io.Writer, args []any) (any, error)
}
