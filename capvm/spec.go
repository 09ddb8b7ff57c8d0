package capvm

import "strings"

type Capture struct {
	Name        string
	ByReference bool
}

func (c Capture) String() string {
	if c.ByReference {
		return "&" + c.Name
	}
	return c.Name
}

type CaptureSpec struct {
	Default  Default
	Explicit []Capture
	Mutable  bool
}

func (s CaptureSpec) String() string {
	var parts []string
	switch s.Default {
	case DefaultValue:
		parts = append(parts, "=")
	case DefaultReference:
		parts = append(parts, "&")
	}
	for _, c := range s.Explicit {
		parts = append(parts, c.String())
	}
	ret := "[" + strings.Join(parts, ", ") + "]"
	if s.Mutable {
		ret += " mutable"
	}
	return ret
}

// valueMode is the mode of a by-value capture under this spec.
func (s CaptureSpec) valueMode() Mode {
	if s.Mutable {
		return ByValueMutable
	}
	return ByValue
}
