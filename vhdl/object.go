// Package vhdl provides the object model for declarations extracted from
// VHDL source: packages, types, subtypes, constants, subprograms and
// components, plus their parameters.
//
// Objects are immutable once constructed. The variant set is closed:
// every Object is one of the concrete types in this package, so a type
// switch over them can be exhaustive.
package vhdl

import (
	"maps"
	"slices"
)

// Kind identifies a declaration variant.
type Kind int

const (
	KindPackage Kind = iota
	KindType
	KindSubtype
	KindConstant
	KindFunction
	KindProcedure
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindType:
		return "type"
	case KindSubtype:
		return "subtype"
	case KindConstant:
		return "constant"
	case KindFunction:
		return "function"
	case KindProcedure:
		return "procedure"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// TypeClass classifies a type declaration.
type TypeClass int

const (
	ClassArray TypeClass = iota
	ClassFile
	ClassAccess
	ClassRecord
	ClassRange
	ClassEnum
	ClassIncomplete
)

func (c TypeClass) String() string {
	switch c {
	case ClassArray:
		return "array"
	case ClassFile:
		return "file"
	case ClassAccess:
		return "access"
	case ClassRecord:
		return "record"
	case ClassRange:
		return "range"
	case ClassEnum:
		return "enum"
	case ClassIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// Mode is a parameter direction. The zero value means the source declared
// no explicit mode; that absence is preserved, not defaulted to "in".
type Mode string

const (
	ModeUnspecified Mode = ""
	ModeIn          Mode = "in"
	ModeOut         Mode = "out"
	ModeInout       Mode = "inout"
	ModeBuffer      Mode = "buffer"
)

// Parameter is a generic, port, or subprogram parameter.
type Parameter struct {
	Name     string
	Mode     Mode
	DataType string // may carry a trailing array-range suffix, e.g. "(7 downto 0)"
	Default  string // optional default value; empty means none
	Desc     string // optional metacomment
}

// Object is a declaration extracted from VHDL source.
type Object interface {
	// Name returns the declared name. Quoted operator names keep their
	// quotes (e.g. `"+"`).
	Name() string
	// Kind identifies the concrete variant.
	Kind() Kind
	// Desc returns the metacomment lines attached to the declaration.
	Desc() []string

	isObject()
}

// decl holds the fields common to every object variant.
type decl struct {
	name string
	desc []string
}

func (d *decl) Name() string   { return d.name }
func (d *decl) Desc() []string { return slices.Clone(d.desc) }
func (d *decl) isObject()      {}

// Package is a package declaration.
type Package struct {
	decl
}

// NewPackage creates a package object.
func NewPackage(name string, desc []string) *Package {
	return &Package{decl{name: name, desc: desc}}
}

func (*Package) Kind() Kind { return KindPackage }

// Type is a type declaration with its classification.
type Type struct {
	decl
	class TypeClass
}

// NewType creates a type object.
func NewType(name string, class TypeClass, desc []string) *Type {
	return &Type{decl: decl{name: name, desc: desc}, class: class}
}

func (*Type) Kind() Kind { return KindType }

// Class returns the type classification.
func (t *Type) Class() TypeClass { return t.class }

// Subtype is a subtype declaration naming the type it refines.
type Subtype struct {
	decl
	baseType string
}

// NewSubtype creates a subtype object.
func NewSubtype(name, baseType string, desc []string) *Subtype {
	return &Subtype{decl: decl{name: name, desc: desc}, baseType: baseType}
}

func (*Subtype) Kind() Kind { return KindSubtype }

// BaseType returns the name of the refined type.
func (s *Subtype) BaseType() string { return s.baseType }

// Constant is a constant declaration.
type Constant struct {
	decl
	baseType string
}

// NewConstant creates a constant object.
func NewConstant(name, baseType string, desc []string) *Constant {
	return &Constant{decl: decl{name: name, desc: desc}, baseType: baseType}
}

func (*Constant) Kind() Kind { return KindConstant }

// BaseType returns the constant's declared type.
func (c *Constant) BaseType() string { return c.baseType }

// Function is a function declaration.
type Function struct {
	decl
	params     []Parameter
	returnType string
}

// NewFunction creates a function object.
func NewFunction(name string, params []Parameter, returnType string, desc []string) *Function {
	return &Function{decl: decl{name: name, desc: desc}, params: params, returnType: returnType}
}

func (*Function) Kind() Kind { return KindFunction }

// Parameters returns the declared parameters in order.
func (f *Function) Parameters() []Parameter { return slices.Clone(f.params) }

// ReturnType returns the declared return type.
func (f *Function) ReturnType() string { return f.returnType }

// Procedure is a procedure declaration.
type Procedure struct {
	decl
	params []Parameter
}

// NewProcedure creates a procedure object.
func NewProcedure(name string, params []Parameter, desc []string) *Procedure {
	return &Procedure{decl: decl{name: name, desc: desc}, params: params}
}

func (*Procedure) Kind() Kind { return KindProcedure }

// Parameters returns the declared parameters in order.
func (p *Procedure) Parameters() []Parameter { return slices.Clone(p.params) }

// Component is a component declaration with its generics and ports.
type Component struct {
	decl
	generics []Parameter
	ports    []Parameter
	sections map[int]string
}

// NewComponent creates a component object. Section labels are keyed by
// the number of ports declared before the marker appeared.
func NewComponent(name string, generics, ports []Parameter, sections map[int]string, desc []string) *Component {
	return &Component{
		decl:     decl{name: name, desc: desc},
		generics: generics,
		ports:    ports,
		sections: sections,
	}
}

func (*Component) Kind() Kind { return KindComponent }

// Generics returns the component's generics in order.
func (c *Component) Generics() []Parameter { return slices.Clone(c.generics) }

// Ports returns the component's ports in order.
func (c *Component) Ports() []Parameter { return slices.Clone(c.ports) }

// Sections returns the documentation section labels keyed by port index.
func (c *Component) Sections() map[int]string { return maps.Clone(c.sections) }
