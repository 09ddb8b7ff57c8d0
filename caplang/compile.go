package caplang

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/reusee/lambdas/capvm"
)

var (
	ErrSyntax      = errors.New("syntax error")
	ErrUnsupported = errors.New("unsupported")
	ErrConstParam  = errors.New("cannot assign to const reference parameter")
	ErrRedefined   = errors.New("variable already defined in this scope")
)

// Compile compiles a lambda expression of the form
//
//	[captures](params) mutable { body }
//
// The parameter list and mutable are optional. The body uses Go statement syntax.
func Compile(src string) (*capvm.Function, error) {
	h, err := parseHeader(src)
	if err != nil {
		return nil, err
	}

	if rest := strings.TrimSpace(src[h.bodyEnd:]); rest != "" {
		return nil, fmt.Errorf("%w: unexpected %q after body", ErrSyntax, rest)
	}

	expr, err := parser.ParseExpr("func()" + src[h.bodyOffset:h.bodyEnd])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	lit, ok := expr.(*ast.FuncLit)
	if !ok {
		return nil, fmt.Errorf("%w: bad body", ErrSyntax)
	}

	c := &compiler{
		params: h.params,
	}
	if err := c.compileStmts(lit.Body.List); err != nil {
		return nil, err
	}

	return c.getFunction("", h.spec, strings.TrimSpace(src)), nil
}

// ParseSpec parses a bare capture list like `[=, &y] mutable`.
func ParseSpec(src string) (capvm.CaptureSpec, error) {
	s := newTokenStream(src)
	spec, err := parseCaptures(s)
	if err != nil {
		return spec, err
	}
	if s.tok == token.IDENT && s.lit == "mutable" {
		spec.Mutable = true
		s.next()
	}
	if s.tok != token.EOF {
		return spec, s.errorf("unexpected %s", s.describe())
	}
	if len(s.errs) > 0 {
		return spec, fmt.Errorf("%w: %v", ErrSyntax, s.errs.Err())
	}
	return spec, nil
}

// Eval compiles src and constructs the closure against scope.
func Eval(src string, scope *capvm.Env) (*capvm.Closure, error) {
	fn, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return capvm.Construct(fn.Spec, fn, scope)
}
