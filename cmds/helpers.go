package cmds

// Var defines a flag taking one value, and name+"." resetting it.
func Var[T any](name string, desc string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Desc(desc).Args("value"))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}).Desc("reset " + name))
	return &value
}

// Switch defines a boolean flag, "!"+name turns it off.
func Switch(name string, desc string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}).Desc(desc))
	Define("!"+name, Func(func() {
		value = false
	}).Desc("unset " + name))
	return &value
}

// Collect defines a flag that may be repeated, values accumulate in order.
// name+"." drops the values given so far.
func Collect[T any](name string, desc string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(desc).Args("value"))
	Define(name+".", Func(func() {
		value = nil
	}).Desc("clear " + name))
	return &value
}
