// Package ast defines the untyped syntax tree handed to the semantic core
// by the parser. The core never constructs source text; it only walks these
// nodes, so every node carries the span needed for diagnostics.
package ast

import "github.com/FuelLabs/sway-sub007/internal/span"

// Node is the base interface for all AST nodes.
type Node interface {
	GetSpan() span.Span
}

// Declaration is a named top-level or block-level item.
type Declaration interface {
	Node
	declarationNode()
	DeclName() string
}

// Statement is a node that may appear inside a code block.
type Statement interface {
	Node
	statementNode()
}

// Expression is a value-producing node.
type Expression interface {
	Node
	expressionNode()
}

// Visibility of a declaration relative to its defining module.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Module is one module of a program: a named scope with items and nested
// submodules. The parser produces one per source file or library.
type Module struct {
	Name       string
	Span       span.Span
	Uses       []*UseStatement
	Items      []Declaration
	Submodules []*Module
}

func (m *Module) GetSpan() span.Span { return m.Span }

// UseStatement is an import: either a glob (`use a::b::*`) or a single item
// with an optional alias (`use a::b::Item as Alias`). Path segments are
// module names from the program root.
type UseStatement struct {
	Span  span.Span
	Path  []string
	Star  bool
	Item  string // empty for glob imports
	Alias string // optional, item imports only
}

func (u *UseStatement) GetSpan() span.Span { return u.Span }

// CodeBlock is a brace-delimited statement list with its own scope.
type CodeBlock struct {
	Span       span.Span
	Statements []Statement
}

func (cb *CodeBlock) GetSpan() span.Span { return cb.Span }
