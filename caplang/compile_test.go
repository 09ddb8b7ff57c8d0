package caplang

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/lambdas/capvm"
	"github.com/reusee/lambdas/people"
)

func TestParseSpec(t *testing.T) {
	for src, expected := range map[string]string{
		"[]":               "[]",
		"[x]":              "[x]",
		"[=]":              "[=]",
		"[&]":              "[&]",
		"[=, &y] mutable":  "[=, &y] mutable",
		"[&, x, z]":        "[&, x, z]",
		"[ &x , y ]":       "[&x, y]",
		"[=,&a,&b]mutable": "[=, &a, &b] mutable",
	} {
		spec, err := ParseSpec(src)
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		if str := spec.String(); str != expected {
			t.Fatalf("%s: got %s", src, str)
		}
	}

	for _, src := range []string{
		"[",
		"[x,",
		"[x, =]",
		"[x, &]",
		"[1]",
		"[x] foo",
		"x",
	} {
		if _, err := ParseSpec(src); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%s: got %v", src, err)
		}
	}
}

func TestCompile(t *testing.T) {
	fn, err := Compile(`[=, &y](a, &b, const &c) mutable {
		x += a
		y++
		n := x + b
		print(n, c.Name)
	}`)
	if err != nil {
		t.Fatal(err)
	}
	if str := fn.Spec.String(); str != "[=, &y] mutable" {
		t.Fatalf("got %s", str)
	}
	if len(fn.Params) != 3 ||
		fn.Params[1].Kind != capvm.ParamReference ||
		fn.Params[2].Kind != capvm.ParamConstReference {
		t.Fatalf("got %v", fn.Params)
	}
	if strings.Join(fn.Free, ",") != "x,y,print" {
		t.Fatalf("got %v", fn.Free)
	}
	if strings.Join(fn.Written, ",") != "x,y" {
		t.Fatalf("got %v", fn.Written)
	}
	if fn.NumLocals != 1 {
		t.Fatalf("got %v", fn.NumLocals)
	}
	if _, ok := fn.Predeclared["print"]; !ok || len(fn.Predeclared) != 1 {
		t.Fatalf("got %v", fn.Predeclared)
	}
}

func TestCompileErrors(t *testing.T) {
	for src, expected := range map[string]error{
		"[] {":                        ErrSyntax,
		"[] x":                        ErrSyntax,
		"[](x y) {}":                  ErrSyntax,
		"[](const x) {}":              ErrSyntax,
		"[](const &p) { p.Age = 1 }":  ErrConstParam,
		"[](const &p) { p = 1 }":      ErrConstParam,
		"[] { if true {} }":           ErrUnsupported,
		"[] { x == 1 }":               ErrUnsupported,
		"[] { return 1, 2 }":          ErrUnsupported,
		"[](x) { x := 1 }":            ErrUnsupported,
		"[] { a.b.c = 1 }":            ErrUnsupported,
		"[] { 1.5 }":                  ErrUnsupported,
		"[] { x := 1; y := &x.Name }": ErrUnsupported,
		"[] { x, y := 1 }":            ErrUnsupported,
		"[] {} x":                     ErrSyntax,
		"[](x) { print(x) }(1)":       ErrSyntax,
		"[] { x := \"}\" }}":          ErrSyntax,
	} {
		_, err := Compile(src)
		if !errors.Is(err, expected) {
			t.Fatalf("%s: got %v", src, err)
		}
	}
}

func newScope() (*capvm.Env, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	globals := capvm.NewGlobals()
	globals.Stdout = buf
	return globals.NewChild(), buf
}

func TestEvalCaptureModes(t *testing.T) {
	scope, buf := newScope()
	scope.Def("x", 100)
	scope.Def("y", 200)
	scope.Def("z", 300)

	l, err := Eval(`[=, &y] mutable {
		x += 100
		y += 100
		z += 100
		print(x)
		print(y)
		print(z)
	}`, scope)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Invoke(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "200\n300\n400\n" {
		t.Fatalf("got %q", buf.String())
	}
	for name, expected := range map[string]int{
		"x": 100,
		"y": 300,
		"z": 300,
	} {
		if v, _ := scope.Get(name); v != expected {
			t.Fatalf("%s: got %v", name, v)
		}
	}

	_, err = Eval(`[x] { x += 1 }`, scope)
	if !errors.Is(err, capvm.ErrCaptureViolation) {
		t.Fatalf("got %v", err)
	}
}

func TestEvalUnusedNotCaptured(t *testing.T) {
	scope, _ := newScope()
	scope.Def("x", 100)
	scope.Def("z", 300)
	l, err := Eval(`[=] { return x }`, scope)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.Binding("z"); ok {
		t.Fatal("z captured")
	}
	if len(l.Bindings()) != 1 {
		t.Fatalf("got %v", l.Bindings())
	}
}

func TestParamPassing(t *testing.T) {
	scope, buf := newScope()
	num1 := scope.Def("num1", 100)
	num2 := scope.Def("num2", 100)
	l, err := Eval(`[](&x, y) {
		print("x: ", x, " y: ", y)
		x = 1000
		y = 2000
	}`, scope)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Invoke(num1, num2); err != nil {
		t.Fatal(err)
	}
	if num1.Value != 1000 || num2.Value != 100 {
		t.Fatalf("got %v %v", num1.Value, num2.Value)
	}
	if buf.String() != "x: 100 y: 100\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPersonFields(t *testing.T) {
	scope, buf := newScope()
	stooge := scope.Def("stooge", people.Person{Name: "Larry", Age: 18})
	byValue, err := Eval(`[](p) { p.Name = "Moe"; print(p) }`, scope)
	if err != nil {
		t.Fatal(err)
	}
	byRef, err := Eval(`[](&p) { p.Name = "Frank"; p.Age += 7; print(p) }`, scope)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := byValue.Invoke(stooge); err != nil {
		t.Fatal(err)
	}
	if _, err := byRef.Invoke(stooge); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[Person: Moe : 18]\n[Person: Frank : 25]\n" {
		t.Fatalf("got %q", buf.String())
	}
	if stooge.Value != (people.Person{Name: "Frank", Age: 25}) {
		t.Fatalf("got %v", stooge.Value)
	}
}

func TestFormat(t *testing.T) {
	for expected, v := range map[string]any{
		"42":                   42,
		"hi":                   "hi",
		"nil":                  nil,
		"[Person: Larry : 18]": people.Person{Name: "Larry", Age: 18},
		"7":                    &capvm.Slot{Value: 7},
		"true":                 true,
	} {
		if str := Format(v); str != expected {
			t.Fatalf("got %s", str)
		}
	}
}
