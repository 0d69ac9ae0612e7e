// Package namespace implements the hierarchical module tree of a program:
// per-module symbol tables with shadowing rules, glob and item imports, and
// the scoped trait-implementation registry with its subset-based dispatch.
package namespace

import (
	"strings"

	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/span"
)

// Module is one lexical module scope: a symbol table, import tables, a
// local trait-implementation map and exclusively-owned submodules. A module
// never outlives its parent.
type Module struct {
	name           string
	span           span.Span
	items          *Items
	submodules     map[string]*Module
	submoduleOrder []string
}

func NewModule(name string, sp span.Span) *Module {
	return &Module{
		name:       name,
		span:       sp,
		items:      NewItems(),
		submodules: make(map[string]*Module),
	}
}

func (m *Module) Name() string { return m.name }

// Items exposes the module's symbol and import tables.
func (m *Module) Items() *Items { return m.items }

// InsertSubmodule attaches a child module, replacing any previous child of
// the same name.
func (m *Module) InsertSubmodule(name string, child *Module) {
	if _, ok := m.submodules[name]; !ok {
		m.submoduleOrder = append(m.submoduleOrder, name)
	}
	m.submodules[name] = child
}

// Submodules returns the children in insertion order.
func (m *Module) Submodules() []*Module {
	out := make([]*Module, 0, len(m.submoduleOrder))
	for _, name := range m.submoduleOrder {
		out = append(out, m.submodules[name])
	}
	return out
}

// LookupSubmodule walks a relative path of nested module names. It fails
// with a "module not found" diagnostic naming the first missing segment.
func (m *Module) LookupSubmodule(path []string, sp span.Span) (*Module, *diagnostics.Diagnostic) {
	cur := m
	for i, seg := range path {
		next, ok := cur.submodules[seg]
		if !ok {
			return nil, diagnostics.ModuleNotFound(strings.Join(path[:i+1], "::"), sp)
		}
		cur = next
	}
	return cur, nil
}
