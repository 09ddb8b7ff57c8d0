package capvm

type Mode uint8

const (
	ByValue Mode = iota + 1
	ByValueMutable
	ByReference
)

func (m Mode) String() string {
	switch m {
	case ByValue:
		return "by-value"
	case ByValueMutable:
		return "by-value-mutable"
	case ByReference:
		return "by-reference"
	}
	return "invalid"
}

// Default is the capture-default of a capture list: none, [=] or [&].
type Default uint8

const (
	DefaultNone Default = iota
	DefaultValue
	DefaultReference
)

type ParamKind uint8

const (
	ParamValue ParamKind = iota
	ParamReference
	ParamConstReference
)

type Param struct {
	Name string
	Kind ParamKind
}

func (p Param) String() string {
	switch p.Kind {
	case ParamReference:
		return "&" + p.Name
	case ParamConstReference:
		return "const &" + p.Name
	}
	return p.Name
}
