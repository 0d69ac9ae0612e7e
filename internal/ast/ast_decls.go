package ast

import "github.com/FuelLabs/sway-sub007/internal/span"

// StructDeclaration declares a struct with optional generic parameters.
type StructDeclaration struct {
	Span           span.Span
	Name           string
	Visibility     Visibility
	TypeParameters []*TypeParameter
	Fields         []*StructField
}

type StructField struct {
	Span span.Span
	Name string
	Type TypeExpression
}

func (d *StructDeclaration) GetSpan() span.Span { return d.Span }
func (d *StructDeclaration) DeclName() string   { return d.Name }
func (*StructDeclaration) declarationNode()     {}

// EnumDeclaration declares an enum with optional generic parameters.
type EnumDeclaration struct {
	Span           span.Span
	Name           string
	Visibility     Visibility
	TypeParameters []*TypeParameter
	Variants       []*EnumVariant
}

type EnumVariant struct {
	Span span.Span
	Name string
	Type TypeExpression // unit tuple for payload-free variants
}

func (d *EnumDeclaration) GetSpan() span.Span { return d.Span }
func (d *EnumDeclaration) DeclName() string   { return d.Name }
func (*EnumDeclaration) declarationNode()     {}

// FunctionParameter is one declared parameter. IsSelf marks the method
// receiver, whose type is the enclosing implementation's self type.
type FunctionParameter struct {
	Span   span.Span
	Name   string
	IsSelf bool
	Type   TypeExpression // nil for self parameters
}

// FunctionDeclaration declares a free function or method.
type FunctionDeclaration struct {
	Span           span.Span
	Name           string
	Visibility     Visibility
	TypeParameters []*TypeParameter
	Parameters     []*FunctionParameter
	ReturnType     TypeExpression // nil means unit
	Body           *CodeBlock
}

func (d *FunctionDeclaration) GetSpan() span.Span { return d.Span }
func (d *FunctionDeclaration) DeclName() string   { return d.Name }
func (*FunctionDeclaration) declarationNode()     {}

// TraitDeclaration declares an interface contract: a surface of required
// method signatures plus optional provided methods with bodies.
type TraitDeclaration struct {
	Span           span.Span
	Name           string
	Visibility     Visibility
	TypeParameters []*TypeParameter
	Interface      []*FunctionDeclaration // signatures, Body nil
	Methods        []*FunctionDeclaration // provided defaults
}

func (d *TraitDeclaration) GetSpan() span.Span { return d.Span }
func (d *TraitDeclaration) DeclName() string   { return d.Name }
func (*TraitDeclaration) declarationNode()     {}

// AbiDeclaration declares a contract ability surface.
type AbiDeclaration struct {
	Span      span.Span
	Name      string
	Interface []*FunctionDeclaration
	Methods   []*FunctionDeclaration
}

func (d *AbiDeclaration) GetSpan() span.Span { return d.Span }
func (d *AbiDeclaration) DeclName() string   { return d.Name }
func (*AbiDeclaration) declarationNode()     {}

// ImplDeclaration is an implementation block: `impl<T> Trait for Type` when
// TraitName is set, or an inherent `impl<T> Type` when it is empty.
type ImplDeclaration struct {
	Span           span.Span
	TraitPath      []string
	TraitName      string // empty for inherent impls
	TraitTypeArgs  []TypeExpression
	TypeParameters []*TypeParameter
	Type           TypeExpression
	Methods        []*FunctionDeclaration
}

func (d *ImplDeclaration) GetSpan() span.Span { return d.Span }
func (d *ImplDeclaration) DeclName() string   { return d.TraitName }
func (*ImplDeclaration) declarationNode()     {}

// ConstantDeclaration declares a named constant.
type ConstantDeclaration struct {
	Span       span.Span
	Name       string
	Visibility Visibility
	Type       TypeExpression
	Value      Expression
}

func (d *ConstantDeclaration) GetSpan() span.Span { return d.Span }
func (d *ConstantDeclaration) DeclName() string   { return d.Name }
func (*ConstantDeclaration) declarationNode()     {}
func (*ConstantDeclaration) statementNode()       {}

// StorageDeclaration declares the contract storage block.
type StorageDeclaration struct {
	Span   span.Span
	Fields []*StorageField
}

type StorageField struct {
	Span  span.Span
	Name  string
	Type  TypeExpression
	Value Expression
}

func (d *StorageDeclaration) GetSpan() span.Span { return d.Span }
func (d *StorageDeclaration) DeclName() string   { return "storage" }
func (*StorageDeclaration) declarationNode()     {}

// TypeAliasDeclaration binds a name to an existing type.
type TypeAliasDeclaration struct {
	Span       span.Span
	Name       string
	Visibility Visibility
	Type       TypeExpression
}

func (d *TypeAliasDeclaration) GetSpan() span.Span { return d.Span }
func (d *TypeAliasDeclaration) DeclName() string   { return d.Name }
func (*TypeAliasDeclaration) declarationNode()     {}

// VariableDeclaration is a `let` binding inside a code block.
type VariableDeclaration struct {
	Span      span.Span
	Name      string
	IsMutable bool
	Type      TypeExpression // nil when inferred
	Value     Expression
}

func (d *VariableDeclaration) GetSpan() span.Span { return d.Span }
func (d *VariableDeclaration) DeclName() string   { return d.Name }
func (*VariableDeclaration) declarationNode()     {}
func (*VariableDeclaration) statementNode()       {}
