package capvm

// Slot is the storage of one variable. Aliases share the same *Slot.
type Slot struct {
	Value any
}

func (s *Slot) clone() *Slot {
	return &Slot{
		Value: CopyValue(s.Value),
	}
}

// CopyValue returns v as a by-value copy sees it. Closures carry state, so
// a copy gets its own value bindings.
func CopyValue(v any) any {
	if c, ok := v.(*Closure); ok && c != nil {
		return c.Copy()
	}
	return v
}
