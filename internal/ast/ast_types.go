package ast

import "github.com/FuelLabs/sway-sub007/internal/span"

// TypeExpression is written type syntax. The resolver turns these into
// interned TypeIds; the parser never resolves names, so a TypeName may
// denote a primitive, a declared type or a generic parameter.
type TypeExpression interface {
	Node
	typeExpressionNode()
}

// TypeName is a possibly-qualified, possibly-generic named type reference:
// `u64`, `Data<u8, bool>`, `lib::Order`.
type TypeName struct {
	Span     span.Span
	Prefixes []string // module qualifiers, may be empty
	Name     string
	TypeArgs []TypeExpression // nil when no argument list was written
}

func (t *TypeName) GetSpan() span.Span { return t.Span }
func (*TypeName) typeExpressionNode() {}

// TupleType is `(T1, T2, ...)`. The empty tuple is the unit type.
type TupleType struct {
	Span  span.Span
	Elems []TypeExpression
}

func (t *TupleType) GetSpan() span.Span { return t.Span }
func (*TupleType) typeExpressionNode() {}

// ArrayType is `[T; N]`.
type ArrayType struct {
	Span span.Span
	Elem TypeExpression
	Len  uint64
}

func (t *ArrayType) GetSpan() span.Span { return t.Span }
func (*ArrayType) typeExpressionNode() {}

// StrType is the fixed-length string `str[N]`.
type StrType struct {
	Span span.Span
	Len  uint64
}

func (t *StrType) GetSpan() span.Span { return t.Span }
func (*StrType) typeExpressionNode() {}

// TraitBound is one `Trait` or `Trait<Args>` constraint on a generic
// parameter.
type TraitBound struct {
	Span     span.Span
	Path     []string
	Name     string
	TypeArgs []TypeExpression
}

func (t *TraitBound) GetSpan() span.Span { return t.Span }

// TypeParameter is one declared generic parameter with optional bounds.
type TypeParameter struct {
	Span   span.Span
	Name   string
	Bounds []*TraitBound
}

func (t *TypeParameter) GetSpan() span.Span { return t.Span }
