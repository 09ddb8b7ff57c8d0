package capvm

import (
	"fmt"
	"reflect"
)

func (c *Closure) Invoke(args ...any) (any, error) {
	fn := c.Fun
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, c.name(), len(fn.Params), len(args))
	}

	slots := make([]*Slot, fn.NumSlots())
	for i, param := range fn.Params {
		arg := args[i]
		switch param.Kind {
		case ParamValue:
			if s, ok := arg.(*Slot); ok {
				slots[i] = s.clone()
			} else {
				slots[i] = &Slot{
					Value: CopyValue(arg),
				}
			}
		default:
			s, ok := arg.(*Slot)
			if !ok {
				return nil, fmt.Errorf("%w: parameter %s of %s", ErrNotAddressable, param, c.name())
			}
			slots[i] = s
		}
	}
	copy(slots[len(fn.Params):], c.free)
	for i := len(fn.Params) + len(fn.Free); i < len(slots); i++ {
		slots[i] = new(Slot)
	}

	ret, err := c.run(slots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name(), err)
	}
	return ret, nil
}

func (c *Closure) run(slots []*Slot) (any, error) {
	code := c.Fun.Code
	constants := c.Fun.Constants
	var stack []any

	pop := func() any {
		if len(stack) == 0 {
			return nil
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	for ip := 0; ip < len(code); ip++ {
		inst := code[ip]
		switch op := inst.Op(); op {

		case OpLoadConst:
			stack = append(stack, constants[inst.Arg()])

		case OpLoadSlot:
			stack = append(stack, slots[inst.Arg()].Value)

		case OpStoreSlot:
			slots[inst.Arg()].Value = CopyValue(pop())

		case OpAddrOf:
			stack = append(stack, slots[inst.Arg()])

		case OpGetField:
			name := constants[inst.Arg()].(string)
			v, err := getField(pop(), name)
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)

		case OpSetField:
			name := constants[inst.Arg()].(string)
			value := pop()
			slot, ok := pop().(*Slot)
			if !ok {
				return nil, fmt.Errorf("field %s: target not addressable", name)
			}
			v, err := withField(slot.Value, name, value)
			if err != nil {
				return nil, err
			}
			slot.Value = v

		case OpAdd, OpSub, OpMul, OpDiv, OpMod:
			b := pop()
			a := pop()
			res, err := arith(op, a, b)
			if err != nil {
				return nil, err
			}
			stack = append(stack, res)

		case OpCall:
			n := inst.Arg()
			if len(stack) < n+1 {
				return nil, fmt.Errorf("stack underflow during call")
			}
			args := append([]any(nil), stack[len(stack)-n:]...)
			callee := stack[len(stack)-n-1]
			stack = stack[:len(stack)-n-1]
			res, err := c.call(callee, args)
			if err != nil {
				return nil, err
			}
			stack = append(stack, res)

		case OpPop:
			pop()

		case OpReturn:
			return pop(), nil

		default:
			return nil, fmt.Errorf("unknown op code: %d", op)
		}
	}

	return nil, nil
}

func (c *Closure) call(callee any, args []any) (any, error) {
	switch fn := callee.(type) {
	case Builtin:
		for i, arg := range args {
			if s, ok := arg.(*Slot); ok {
				args[i] = s.Value
			}
		}
		return fn.Func(c.Stdout, args)
	case *Closure:
		return fn.Invoke(args...)
	}
	return nil, fmt.Errorf("%w: %T", ErrNotCallable, callee)
}

func arith(op OpCode, a, b any) (any, error) {
	if op == OpAdd {
		s1, ok1 := a.(string)
		s2, ok2 := b.(string)
		if ok1 && ok2 {
			return s1 + s2, nil
		}
	}

	i1, ok1 := a.(int)
	i2, ok2 := b.(int)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("math operands must be int, got %T and %T", a, b)
	}

	switch op {
	case OpAdd:
		return i1 + i2, nil
	case OpSub:
		return i1 - i2, nil
	case OpMul:
		return i1 * i2, nil
	case OpDiv, OpMod:
		if i2 == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		if op == OpDiv {
			return i1 / i2, nil
		}
		return i1 % i2, nil
	}
	return nil, fmt.Errorf("unknown math op: %d", op)
}

func getField(v any, name string) (any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("field %s of non-struct %T", name, v)
	}
	field := rv.FieldByName(name)
	if !field.IsValid() || !field.CanInterface() {
		return nil, fmt.Errorf("no field %s in %T", name, v)
	}
	return field.Interface(), nil
}

// withField returns v with the field set. Struct values are copied first so
// other holders of the old value are unaffected.
func withField(v any, name string, value any) (any, error) {
	rv := reflect.ValueOf(v)
	var target reflect.Value
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("field %s of %T", name, v)
		}
		target = rv.Elem()
	case reflect.Struct:
		target = reflect.New(rv.Type()).Elem()
		target.Set(rv)
	default:
		return nil, fmt.Errorf("field %s of non-struct %T", name, v)
	}

	field := target.FieldByName(name)
	if !field.IsValid() || !field.CanSet() {
		return nil, fmt.Errorf("no field %s in %T", name, v)
	}
	val := reflect.ValueOf(value)
	if !val.IsValid() {
		field.SetZero()
	} else if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
	} else if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String && field.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
	} else {
		return nil, fmt.Errorf("cannot assign %T to field %s of %T", value, name, v)
	}

	if rv.Kind() == reflect.Pointer {
		return v, nil
	}
	return target.Interface(), nil
}
