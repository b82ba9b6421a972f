// Package govhdl extracts documentation metadata from VHDL source files.
package govhdl

import "github.com/hdldoc/govhdl/vhdl"

// Type aliases for public API - all model types come from the vhdl subpackage.

// Object is a declaration extracted from VHDL source.
type Object = vhdl.Object

// Package is a package declaration.
type Package = vhdl.Package

// Type is a type declaration with its classification.
type Type = vhdl.Type

// Subtype is a subtype declaration naming the type it refines.
type Subtype = vhdl.Subtype

// Constant is a constant declaration.
type Constant = vhdl.Constant

// Function is a function declaration.
type Function = vhdl.Function

// Procedure is a procedure declaration.
type Procedure = vhdl.Procedure

// Component is a component declaration with its generics and ports.
type Component = vhdl.Component

// Parameter is a generic, port, or subprogram parameter.
type Parameter = vhdl.Parameter

// Kind identifies a declaration variant.
type Kind = vhdl.Kind

// TypeClass classifies a type declaration.
type TypeClass = vhdl.TypeClass

// Mode is a parameter direction.
type Mode = vhdl.Mode

// Kind constants.
const (
	KindPackage   = vhdl.KindPackage
	KindType      = vhdl.KindType
	KindSubtype   = vhdl.KindSubtype
	KindConstant  = vhdl.KindConstant
	KindFunction  = vhdl.KindFunction
	KindProcedure = vhdl.KindProcedure
	KindComponent = vhdl.KindComponent
)

// TypeClass constants.
const (
	ClassArray      = vhdl.ClassArray
	ClassFile       = vhdl.ClassFile
	ClassAccess     = vhdl.ClassAccess
	ClassRecord     = vhdl.ClassRecord
	ClassRange      = vhdl.ClassRange
	ClassEnum       = vhdl.ClassEnum
	ClassIncomplete = vhdl.ClassIncomplete
)

// Mode constants.
const (
	ModeUnspecified = vhdl.ModeUnspecified
	ModeIn          = vhdl.ModeIn
	ModeOut         = vhdl.ModeOut
	ModeInout       = vhdl.ModeInout
	ModeBuffer      = vhdl.ModeBuffer
)
