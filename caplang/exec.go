package caplang

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"github.com/reusee/lambdas/capvm"
)

// Exec runs one line against scope.
//
//	name := [captures](params) { body }   defines a closure variable
//	name := expr                          defines a variable
//	[captures](params) { body }           constructs a closure and returns it
//	[captures](params) { body }(args)     constructs a closure and calls it
//	expr                                  evaluates and returns expr
//	statement                             runs as [&] { statement }
//
// A name can be defined once per scope.
func Exec(scope *capvm.Env, line string) (any, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	if name, rhs, ok := splitDefine(line); ok {
		if _, ok := scope.Vars[name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrRedefined, name)
		}
		var value any
		if lambda, args, ok := splitCall(rhs); ok {
			v, err := invoke(scope, lambda, args)
			if err != nil {
				return nil, err
			}
			value = capvm.CopyValue(v)
		} else if strings.HasPrefix(rhs, "[") {
			fn, err := Compile(rhs)
			if err != nil {
				return nil, err
			}
			fn.Name = name
			closure, err := capvm.Construct(fn.Spec, fn, scope)
			if err != nil {
				return nil, err
			}
			value = closure
		} else {
			v, err := run(scope, "return "+rhs)
			if err != nil {
				return nil, err
			}
			// defining from another variable copies it
			value = capvm.CopyValue(v)
		}
		scope.Def(name, value)
		return value, nil
	}

	if lambda, args, ok := splitCall(line); ok {
		return invoke(scope, lambda, args)
	}

	if strings.HasPrefix(line, "[") {
		return Eval(line, scope)
	}

	if _, err := parser.ParseExpr(line); err == nil {
		return run(scope, "return "+line)
	}
	return run(scope, line)
}

func splitDefine(line string) (name string, rhs string, ok bool) {
	name, rhs, ok = strings.Cut(line, ":=")
	if !ok {
		return
	}
	name = strings.TrimSpace(name)
	if !token.IsIdentifier(name) {
		return "", "", false
	}
	return name, strings.TrimSpace(rhs), true
}

// splitCall splits `[..](..) { .. }(args)` into the lambda and the call suffix.
func splitCall(src string) (lambda string, args string, ok bool) {
	if !strings.HasPrefix(src, "[") {
		return
	}
	h, err := parseHeader(src)
	if err != nil {
		return
	}
	args = strings.TrimSpace(src[h.bodyEnd:])
	if !strings.HasPrefix(args, "(") {
		return "", "", false
	}
	return src[:h.bodyEnd], args, true
}

// the closure being called in an immediate invocation
const immediateName = "λ"

func invoke(scope *capvm.Env, lambda string, args string) (any, error) {
	closure, err := Eval(lambda, scope)
	if err != nil {
		return nil, err
	}
	call := scope.NewChild()
	call.Def(immediateName, closure)
	return run(call, "return "+immediateName+args)
}

func run(scope *capvm.Env, body string) (any, error) {
	fn, err := Compile("[&] {\n" + body + "\n}")
	if err != nil {
		return nil, err
	}
	fn.Name = "exec"
	closure, err := capvm.Construct(fn.Spec, fn, scope)
	if err != nil {
		return nil, err
	}
	return closure.Invoke()
}
