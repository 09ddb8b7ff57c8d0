package caplang

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"

	"github.com/reusee/lambdas/capvm"
	"github.com/samber/lo"
)

type slotKind uint8

const (
	slotParam slotKind = iota
	slotFree
	slotLocal
)

type slotRef struct {
	kind  slotKind
	index int
}

// fixup patches a slot operand once the number of free names is known.
type fixup struct {
	pc  int
	ref slotRef
}

type compiler struct {
	params    []capvm.Param
	free      []string
	written   []string
	locals    map[string]int
	code      []capvm.OpCode
	constants []any
	fixups    []fixup

	predeclared map[string]any
}

func (c *compiler) getFunction(name string, spec capvm.CaptureSpec, source string) *capvm.Function {
	numParams := len(c.params)
	numFree := len(c.free)
	for _, f := range c.fixups {
		index := f.ref.index
		switch f.ref.kind {
		case slotFree:
			index += numParams
		case slotLocal:
			index += numParams + numFree
		}
		c.code[f.pc] = c.code[f.pc].Op().With(index)
	}
	return &capvm.Function{
		Name:      name,
		Spec:      spec,
		Params:    c.params,
		Free:      c.free,
		Written:   c.written,
		NumLocals: len(c.locals),
		Code:      c.code,
		Constants: c.constants,
		Source:    source,

		Predeclared: c.predeclared,
	}
}

func (c *compiler) emit(op capvm.OpCode) {
	c.code = append(c.code, op)
}

func (c *compiler) emitSlot(op capvm.OpCode, ref slotRef) {
	c.fixups = append(c.fixups, fixup{
		pc:  len(c.code),
		ref: ref,
	})
	c.emit(op)
}

func (c *compiler) addConst(val any) int {
	switch val.(type) {
	case nil, bool, int, string:
		for i, v := range c.constants {
			switch v.(type) {
			case nil, bool, int, string:
				if v == val {
					return i
				}
			}
		}
	}
	c.constants = append(c.constants, val)
	return len(c.constants) - 1
}

func (c *compiler) loadConst(val any) {
	idx := c.addConst(val)
	c.emit(capvm.OpLoadConst.With(idx))
}

func (c *compiler) resolve(name string) slotRef {
	for i, param := range c.params {
		if param.Name == name {
			return slotRef{slotParam, i}
		}
	}
	if i, ok := c.locals[name]; ok {
		return slotRef{slotLocal, i}
	}
	i := lo.IndexOf(c.free, name)
	if i < 0 {
		c.free = append(c.free, name)
		i = len(c.free) - 1
	}
	return slotRef{slotFree, i}
}

// markWritten resolves name as an assignment target.
func (c *compiler) markWritten(name string) (slotRef, error) {
	ref := c.resolve(name)
	switch ref.kind {
	case slotParam:
		if c.params[ref.index].Kind == capvm.ParamConstReference {
			return ref, fmt.Errorf("%w: %s", ErrConstParam, name)
		}
	case slotFree:
		if !lo.Contains(c.written, name) {
			c.written = append(c.written, name)
		}
	}
	return ref, nil
}

func (c *compiler) compileStmts(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := c.compileStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) compileStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {

	case *ast.ExprStmt:
		if err := c.compileExpr(s.X); err != nil {
			return err
		}
		c.emit(capvm.OpPop)
		return nil

	case *ast.ReturnStmt:
		return c.compileReturnStmt(s)

	case *ast.AssignStmt:
		return c.compileAssignStmt(s)

	case *ast.IncDecStmt:
		op := capvm.OpAdd
		if s.Tok == token.DEC {
			op = capvm.OpSub
		}
		return c.compileUpdate(s.X, op, &ast.BasicLit{
			Kind:  token.INT,
			Value: "1",
		})

	case *ast.EmptyStmt:
		return nil

	default:
		return fmt.Errorf("%w: statement %T", ErrUnsupported, stmt)
	}
}

func (c *compiler) compileReturnStmt(stmt *ast.ReturnStmt) error {
	switch len(stmt.Results) {
	case 0:
		c.loadConst(nil)
	case 1:
		if err := c.compileExpr(stmt.Results[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: multiple return values", ErrUnsupported)
	}
	c.emit(capvm.OpReturn)
	return nil
}

var assignOps = map[token.Token]capvm.OpCode{
	token.ADD_ASSIGN: capvm.OpAdd,
	token.SUB_ASSIGN: capvm.OpSub,
	token.MUL_ASSIGN: capvm.OpMul,
	token.QUO_ASSIGN: capvm.OpDiv,
	token.REM_ASSIGN: capvm.OpMod,
}

func (c *compiler) compileAssignStmt(stmt *ast.AssignStmt) error {
	if len(stmt.Lhs) != len(stmt.Rhs) {
		return fmt.Errorf("%w: assignment count mismatch", ErrUnsupported)
	}

	if op, ok := assignOps[stmt.Tok]; ok {
		return c.compileUpdate(stmt.Lhs[0], op, stmt.Rhs[0])
	}

	switch stmt.Tok {

	case token.DEFINE:
		for i, lhs := range stmt.Lhs {
			ident, ok := lhs.(*ast.Ident)
			if !ok {
				return fmt.Errorf("%w: non-name on left side of :=", ErrUnsupported)
			}
			if lo.ContainsBy(c.params, func(p capvm.Param) bool {
				return p.Name == ident.Name
			}) {
				return fmt.Errorf("%w: parameter %s redeclared", ErrUnsupported, ident.Name)
			}
			if err := c.compileExpr(stmt.Rhs[i]); err != nil {
				return err
			}
			if c.locals == nil {
				c.locals = make(map[string]int)
			}
			idx, ok := c.locals[ident.Name]
			if !ok {
				idx = len(c.locals)
				c.locals[ident.Name] = idx
			}
			c.emitSlot(capvm.OpStoreSlot, slotRef{slotLocal, idx})
		}
		return nil

	case token.ASSIGN:
		for i, lhs := range stmt.Lhs {
			if err := c.compileStore(lhs, stmt.Rhs[i]); err != nil {
				return err
			}
		}
		return nil

	}

	return fmt.Errorf("%w: assignment %s", ErrUnsupported, stmt.Tok)
}

// compileStore emits target = value.
func (c *compiler) compileStore(target ast.Expr, value ast.Expr) error {
	switch t := target.(type) {

	case *ast.Ident:
		ref, err := c.markWritten(t.Name)
		if err != nil {
			return err
		}
		if err := c.compileExpr(value); err != nil {
			return err
		}
		c.emitSlot(capvm.OpStoreSlot, ref)
		return nil

	case *ast.SelectorExpr:
		ident, ok := t.X.(*ast.Ident)
		if !ok {
			return fmt.Errorf("%w: nested field assignment", ErrUnsupported)
		}
		ref, err := c.markWritten(ident.Name)
		if err != nil {
			return err
		}
		c.emitSlot(capvm.OpAddrOf, ref)
		if err := c.compileExpr(value); err != nil {
			return err
		}
		c.emit(capvm.OpSetField.With(c.addConst(t.Sel.Name)))
		return nil

	case *ast.ParenExpr:
		return c.compileStore(t.X, value)

	}
	return fmt.Errorf("%w: assignment to %T", ErrUnsupported, target)
}

// compileUpdate emits target = target op value.
func (c *compiler) compileUpdate(target ast.Expr, op capvm.OpCode, value ast.Expr) error {
	return c.compileStore(target, &binaryOp{
		x:  target,
		op: op,
		y:  value,
	})
}

// binaryOp is an expression node carrying an already resolved operator.
type binaryOp struct {
	ast.Expr
	x  ast.Expr
	op capvm.OpCode
	y  ast.Expr
}

func (c *compiler) compileExpr(expr ast.Expr) error {
	switch e := expr.(type) {

	case *ast.BasicLit:
		return c.compileBasicLiteral(e)

	case *ast.Ident:
		return c.compileIdentifier(e)

	case *ast.BinaryExpr:
		op, ok := binaryOps[e.Op]
		if !ok {
			return fmt.Errorf("%w: operator %s", ErrUnsupported, e.Op)
		}
		return c.compileExpr(&binaryOp{
			x:  e.X,
			op: op,
			y:  e.Y,
		})

	case *binaryOp:
		if err := c.compileExpr(e.x); err != nil {
			return err
		}
		if err := c.compileExpr(e.y); err != nil {
			return err
		}
		c.emit(e.op)
		return nil

	case *ast.UnaryExpr:
		return c.compileUnaryExpr(e)

	case *ast.ParenExpr:
		return c.compileExpr(e.X)

	case *ast.SelectorExpr:
		if err := c.compileExpr(e.X); err != nil {
			return err
		}
		c.emit(capvm.OpGetField.With(c.addConst(e.Sel.Name)))
		return nil

	case *ast.CallExpr:
		if err := c.compileExpr(e.Fun); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := c.compileExpr(arg); err != nil {
				return err
			}
		}
		c.emit(capvm.OpCall.With(len(e.Args)))
		return nil

	}
	return fmt.Errorf("%w: expression %T", ErrUnsupported, expr)
}

var binaryOps = map[token.Token]capvm.OpCode{
	token.ADD: capvm.OpAdd,
	token.SUB: capvm.OpSub,
	token.MUL: capvm.OpMul,
	token.QUO: capvm.OpDiv,
	token.REM: capvm.OpMod,
}

func (c *compiler) compileBasicLiteral(expr *ast.BasicLit) error {
	switch expr.Kind {

	case token.INT:
		v, err := strconv.ParseInt(expr.Value, 0, 64)
		if err != nil {
			return err
		}
		c.loadConst(int(v))

	case token.STRING:
		v, err := strconv.Unquote(expr.Value)
		if err != nil {
			return err
		}
		c.loadConst(v)

	default:
		return fmt.Errorf("%w: literal %s", ErrUnsupported, expr.Kind)
	}

	return nil
}

func (c *compiler) compileIdentifier(expr *ast.Ident) error {
	switch expr.Name {
	case "true":
		c.loadConst(true)
		return nil
	case "false":
		c.loadConst(false)
		return nil
	case "nil":
		c.loadConst(nil)
		return nil
	}
	ref := c.resolve(expr.Name)
	if builtin, ok := builtins[expr.Name]; ok && ref.kind == slotFree {
		// enclosing variables shadow builtins, resolved at construction
		if c.predeclared == nil {
			c.predeclared = make(map[string]any)
		}
		c.predeclared[expr.Name] = builtin
	}
	c.emitSlot(capvm.OpLoadSlot, ref)
	return nil
}

func (c *compiler) compileUnaryExpr(expr *ast.UnaryExpr) error {
	switch expr.Op {

	case token.SUB:
		return c.compileExpr(&binaryOp{
			x: &ast.BasicLit{
				Kind:  token.INT,
				Value: "0",
			},
			op: capvm.OpSub,
			y:  expr.X,
		})

	case token.ADD:
		return c.compileExpr(expr.X)

	case token.AND:
		ident, ok := expr.X.(*ast.Ident)
		if !ok {
			return fmt.Errorf("%w: reference to %T", ErrUnsupported, expr.X)
		}
		// a reference may be written through
		ref, err := c.markWritten(ident.Name)
		if err != nil {
			return err
		}
		c.emitSlot(capvm.OpAddrOf, ref)
		return nil

	}
	return fmt.Errorf("%w: operator %s", ErrUnsupported, expr.Op)
}
