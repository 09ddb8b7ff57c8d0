package capvm

import (
	"errors"
	"fmt"
)

var (
	ErrCaptureViolation = errors.New("capture violation")
	ErrNotCaptured      = errors.New("variable not captured")
	ErrNotCapturable    = errors.New("variable cannot be captured")
	ErrRedundantCapture = errors.New("redundant capture")
	ErrUndefined        = errors.New("undefined variable")
	ErrArity            = errors.New("wrong number of arguments")
	ErrNotAddressable   = errors.New("argument not addressable")
	ErrNotCallable      = errors.New("value not callable")
)

// ViolationError reports a write to a binding that does not permit it.
type ViolationError struct {
	Closure string
	Name    string
	Mode    Mode
}

func (v *ViolationError) Error() string {
	return fmt.Sprintf("%s: cannot assign to %s capture %s in %s", ErrCaptureViolation, v.Mode, v.Name, v.Closure)
}

func (v *ViolationError) Unwrap() error {
	return ErrCaptureViolation
}
