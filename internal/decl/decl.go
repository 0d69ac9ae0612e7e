// Package decl defines the closed set of named, checkable declarations the
// namespace stores. Declarations reference types only via TypeId handles;
// specializing a generic declaration copies it through SubstTypes and never
// mutates the original.
package decl

import (
	"github.com/FuelLabs/sway-sub007/internal/ast"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

type Visibility int

const (
	Private Visibility = iota
	Public
)

// Declaration is any named, checkable item living in a symbol table. The
// set is closed: every component switches exhaustively over it.
type Declaration interface {
	declNode()
	DeclName() string
	DeclSpan() span.Span
}

// Variable is a local `let` binding.
type Variable struct {
	Name      string
	Type      typesystem.TypeId
	IsMutable bool
	Value     ast.Expression
	Span      span.Span
}

// FunctionParameter is one checked parameter of a function declaration.
type FunctionParameter struct {
	Name   string
	IsSelf bool
	Type   typesystem.TypeId
	Span   span.Span
}

// Function is a free function, a trait method or an impl method.
type Function struct {
	Name           string
	Visibility     Visibility
	TypeParameters []typesystem.TypeParameter
	Parameters     []FunctionParameter
	ReturnType     typesystem.TypeId
	Body           *ast.CodeBlock
	Span           span.Span
}

// StructField is one checked field of a struct declaration.
type StructField struct {
	Name string
	Type typesystem.TypeId
	Span span.Span
}

// Struct is a struct declaration. TypeID is the interned descriptor of the
// declaration's own (possibly generic) type.
type Struct struct {
	Name           string
	Visibility     Visibility
	TypeParameters []typesystem.TypeParameter
	Fields         []StructField
	TypeID         typesystem.TypeId
	Span           span.Span
}

// EnumVariant is one checked variant of an enum declaration.
type EnumVariant struct {
	Name string
	Type typesystem.TypeId
	Tag  uint64
	Span span.Span
}

// Enum is an enum declaration. TypeID mirrors Struct.TypeID.
type Enum struct {
	Name           string
	Visibility     Visibility
	TypeParameters []typesystem.TypeParameter
	Variants       []EnumVariant
	TypeID         typesystem.TypeId
	Span           span.Span
}

// Trait is a trait declaration: required surface plus provided methods.
type Trait struct {
	Name           string
	Visibility     Visibility
	TypeParameters []typesystem.TypeParameter
	Interface      []*Function
	Methods        []*Function
	Span           span.Span
}

// ImplTrait records a checked implementation block. TraitName is empty for
// inherent impls.
type ImplTrait struct {
	TraitName        string
	TraitTypeArgs    []typesystem.TypeId
	TypeParameters   []typesystem.TypeParameter
	ImplementingType typesystem.TypeId
	Methods          []*Function
	Span             span.Span
}

// Constant is a named constant.
type Constant struct {
	Name       string
	Visibility Visibility
	Type       typesystem.TypeId
	Value      ast.Expression
	Span       span.Span
}

// StorageField is one checked field of the storage block.
type StorageField struct {
	Name string
	Type typesystem.TypeId
	Span span.Span
}

// Storage is the contract storage declaration.
type Storage struct {
	Fields []StorageField
	Span   span.Span
}

// Abi is a contract ability surface.
type Abi struct {
	Name      string
	Interface []*Function
	Methods   []*Function
	Span      span.Span
}

// TypeAlias binds a name to an existing type.
type TypeAlias struct {
	Name       string
	Visibility Visibility
	Type       typesystem.TypeId
	Span       span.Span
}

// GenericTypeForFunctionScope brings a generic parameter into scope as a
// resolvable name inside its declaring function or impl block.
type GenericTypeForFunctionScope struct {
	Name   string
	TypeID typesystem.TypeId
	Span   span.Span
}

// ErrorRecovery stands in for a declaration that failed to check, so later
// lookups of the same name do not re-raise.
type ErrorRecovery struct {
	Span span.Span
}

func (*Variable) declNode()                    {}
func (*Function) declNode()                    {}
func (*Struct) declNode()                      {}
func (*Enum) declNode()                        {}
func (*Trait) declNode()                       {}
func (*ImplTrait) declNode()                   {}
func (*Constant) declNode()                    {}
func (*Storage) declNode()                     {}
func (*Abi) declNode()                         {}
func (*TypeAlias) declNode()                   {}
func (*GenericTypeForFunctionScope) declNode() {}
func (*ErrorRecovery) declNode()               {}

func (d *Variable) DeclName() string                    { return d.Name }
func (d *Function) DeclName() string                    { return d.Name }
func (d *Struct) DeclName() string                      { return d.Name }
func (d *Enum) DeclName() string                        { return d.Name }
func (d *Trait) DeclName() string                       { return d.Name }
func (d *ImplTrait) DeclName() string                   { return d.TraitName }
func (d *Constant) DeclName() string                    { return d.Name }
func (d *Storage) DeclName() string                     { return "storage" }
func (d *Abi) DeclName() string                         { return d.Name }
func (d *TypeAlias) DeclName() string                   { return d.Name }
func (d *GenericTypeForFunctionScope) DeclName() string { return d.Name }
func (d *ErrorRecovery) DeclName() string               { return "{error}" }

func (d *Variable) DeclSpan() span.Span                    { return d.Span }
func (d *Function) DeclSpan() span.Span                    { return d.Span }
func (d *Struct) DeclSpan() span.Span                      { return d.Span }
func (d *Enum) DeclSpan() span.Span                        { return d.Span }
func (d *Trait) DeclSpan() span.Span                       { return d.Span }
func (d *ImplTrait) DeclSpan() span.Span                   { return d.Span }
func (d *Constant) DeclSpan() span.Span                    { return d.Span }
func (d *Storage) DeclSpan() span.Span                     { return d.Span }
func (d *Abi) DeclSpan() span.Span                         { return d.Span }
func (d *TypeAlias) DeclSpan() span.Span                   { return d.Span }
func (d *GenericTypeForFunctionScope) DeclSpan() span.Span { return d.Span }
func (d *ErrorRecovery) DeclSpan() span.Span               { return d.Span }

// IsTypeLike reports whether the declaration introduces a type name.
// Two type-like declarations sharing a name always conflict.
func IsTypeLike(d Declaration) bool {
	switch d.(type) {
	case *Struct, *Enum, *Trait, *Abi, *TypeAlias:
		return true
	}
	return false
}

// IsPublic reports the declaration's visibility; declarations without a
// visibility notion (variables, storage, recovery markers) are private.
func IsPublic(d Declaration) bool {
	switch d := d.(type) {
	case *Function:
		return d.Visibility == Public
	case *Struct:
		return d.Visibility == Public
	case *Enum:
		return d.Visibility == Public
	case *Trait:
		return d.Visibility == Public
	case *Constant:
		return d.Visibility == Public
	case *TypeAlias:
		return d.Visibility == Public
	case *Abi:
		return true
	}
	return false
}

// TypeOf returns the TypeId a value-level use of the declaration carries,
// with ok=false for declarations that are not value-typed.
func TypeOf(d Declaration) (typesystem.TypeId, bool) {
	switch d := d.(type) {
	case *Variable:
		return d.Type, true
	case *Constant:
		return d.Type, true
	case *Struct:
		return d.TypeID, true
	case *Enum:
		return d.TypeID, true
	case *TypeAlias:
		return d.Type, true
	case *GenericTypeForFunctionScope:
		return d.TypeID, true
	case *ErrorRecovery:
		return typesystem.ErrorRecoveryId, true
	}
	return 0, false
}
