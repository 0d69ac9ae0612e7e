package ast

import (
	"math/big"

	"github.com/FuelLabs/sway-sub007/internal/span"
)

// IntLiteral is an integer literal; its width is settled by coercion at the
// first use against a concrete integer type.
type IntLiteral struct {
	Span  span.Span
	Value *big.Int
}

func (e *IntLiteral) GetSpan() span.Span { return e.Span }
func (*IntLiteral) expressionNode()      {}

type BoolLiteral struct {
	Span  span.Span
	Value bool
}

func (e *BoolLiteral) GetSpan() span.Span { return e.Span }
func (*BoolLiteral) expressionNode()      {}

// StringLiteral has the fixed-length string type str[len].
type StringLiteral struct {
	Span  span.Span
	Value string
}

func (e *StringLiteral) GetSpan() span.Span { return e.Span }
func (*StringLiteral) expressionNode()      {}

// Identifier references a variable, constant or function by bare name.
type Identifier struct {
	Span span.Span
	Name string
}

func (e *Identifier) GetSpan() span.Span { return e.Span }
func (*Identifier) expressionNode()      {}

// FieldAccess projects a struct field: `target.field`.
type FieldAccess struct {
	Span   span.Span
	Target Expression
	Field  string
}

func (e *FieldAccess) GetSpan() span.Span { return e.Span }
func (*FieldAccess) expressionNode()      {}

// MethodCall invokes a method on a receiver: `target.method(args...)`.
type MethodCall struct {
	Span   span.Span
	Target Expression
	Method string
	Args   []Expression
}

func (e *MethodCall) GetSpan() span.Span { return e.Span }
func (*MethodCall) expressionNode()      {}

// FunctionCall invokes a free function by possibly-qualified path.
type FunctionCall struct {
	Span span.Span
	Path []string
	Name string
	Args []Expression
}

func (e *FunctionCall) GetSpan() span.Span { return e.Span }
func (*FunctionCall) expressionNode()      {}

// StructExpression instantiates a struct: `Data::<u8, u8> { x: 1, y: 2 }`.
type StructExpression struct {
	Span     span.Span
	Path     []string
	Name     string
	TypeArgs []TypeExpression
	Fields   []*StructExpressionField
}

type StructExpressionField struct {
	Span  span.Span
	Name  string
	Value Expression
}

func (e *StructExpression) GetSpan() span.Span { return e.Span }
func (*StructExpression) expressionNode()      {}

// TupleExpression builds a tuple value.
type TupleExpression struct {
	Span  span.Span
	Elems []Expression
}

func (e *TupleExpression) GetSpan() span.Span { return e.Span }
func (*TupleExpression) expressionNode()      {}

// ExpressionStatement is an expression evaluated for effect.
type ExpressionStatement struct {
	Span  span.Span
	Value Expression
}

func (s *ExpressionStatement) GetSpan() span.Span { return s.Span }
func (*ExpressionStatement) statementNode()       {}

// ReturnStatement returns from the enclosing function.
type ReturnStatement struct {
	Span  span.Span
	Value Expression // nil for bare return
}

func (s *ReturnStatement) GetSpan() span.Span { return s.Span }
func (*ReturnStatement) statementNode()       {}
