package caplang

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reusee/lambdas/capvm"
	"github.com/reusee/lambdas/people"
)

var builtins = map[string]capvm.Builtin{

	"print": {
		Name: "print",
		Func: func(out io.Writer, args []any) (any, error) {
			buf := new(strings.Builder)
			for _, arg := range args {
				buf.WriteString(Format(arg))
			}
			buf.WriteString("\n")
			_, err := io.WriteString(out, buf.String())
			return nil, err
		},
	},

	"Person": {
		Name: "Person",
		Func: func(out io.Writer, args []any) (any, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("Person: expecting name and age, got %d arguments", len(args))
			}
			name, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("Person: bad name %T", args[0])
			}
			age, ok := args[1].(int)
			if !ok {
				return nil, fmt.Errorf("Person: bad age %T", args[1])
			}
			return people.Person{
				Name: name,
				Age:  age,
			}, nil
		},
	},
}

// Format renders a value the way the transcript prints it.
func Format(v any) string {
	switch v := v.(type) {
	case *capvm.Slot:
		return Format(v.Value)
	case nil:
		return "nil"
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}
