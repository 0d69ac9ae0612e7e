package namespace

import (
	"strings"

	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/span"
)

// CallPath is a possibly-qualified reference: `a::b::item` has prefixes
// [a, b] and suffix item. A bare name has no prefixes.
type CallPath struct {
	Prefixes []string
	Suffix   string
}

func (cp CallPath) String() string {
	if len(cp.Prefixes) == 0 {
		return cp.Suffix
	}
	return strings.Join(cp.Prefixes, "::") + "::" + cp.Suffix
}

// Root owns the whole module tree of a program. All module paths taken by
// Root methods are absolute, from the program root.
type Root struct {
	module *Module
}

func NewRoot(module *Module) *Root {
	return &Root{module: module}
}

func (r *Root) Module() *Module { return r.module }

// ResolveSymbol finds the declaration a name denotes inside the module at
// modPath: item-import aliases first, then the import path recorded for the
// name (an empty recorded path means the local scope), then the local
// symbol table.
func (r *Root) ResolveSymbol(modPath []string, name string, sp span.Span) (decl.Declaration, []*diagnostics.Diagnostic) {
	mod, diag := r.module.LookupSubmodule(modPath, sp)
	if diag != nil {
		return &decl.ErrorRecovery{Span: sp}, []*diagnostics.Diagnostic{diag}
	}

	if binding, ok := mod.items.useItemSynonyms[name]; ok {
		return r.followBinding(binding.Path, bindingName(binding, name), binding.Decl, sp)
	}
	if bindings := mod.items.useGlobSynonyms[name]; len(bindings) > 0 {
		b := bindings[0]
		return r.followBinding(b.Path, name, b.Decl, sp)
	}

	d, diag := mod.items.GetSymbol(name, sp)
	if diag != nil {
		return d, []*diagnostics.Diagnostic{diag}
	}
	return d, nil
}

// followBinding re-resolves an imported name in its source module, falling
// back to the declaration captured at import time if the module moved.
func (r *Root) followBinding(path []string, name string, captured decl.Declaration, sp span.Span) (decl.Declaration, []*diagnostics.Diagnostic) {
	if len(path) == 0 {
		return captured, nil
	}
	src, diag := r.module.LookupSubmodule(path, sp)
	if diag != nil {
		return captured, nil
	}
	if d, ok := src.items.symbols[name]; ok {
		return d, nil
	}
	return captured, nil
}

func bindingName(b ItemBinding, alias string) string {
	if b.OriginalName != "" {
		return b.OriginalName
	}
	return alias
}

// ResolveCallPath resolves a fully- or partially-qualified path from the
// module at modPath. A path without prefixes goes through ResolveSymbol so
// that recorded import paths apply; otherwise the prefixes are walked as
// nested module names from the root.
func (r *Root) ResolveCallPath(modPath []string, cp CallPath, sp span.Span) (decl.Declaration, []*diagnostics.Diagnostic) {
	if len(cp.Prefixes) == 0 {
		return r.ResolveSymbol(modPath, cp.Suffix, sp)
	}
	mod, diag := r.module.LookupSubmodule(cp.Prefixes, sp)
	if diag != nil {
		return &decl.ErrorRecovery{Span: sp}, []*diagnostics.Diagnostic{diag}
	}
	d, diag := mod.items.GetSymbol(cp.Suffix, sp)
	if diag != nil {
		return d, []*diagnostics.Diagnostic{diag}
	}
	return d, nil
}

// Namespace is a view of the tree from one module: the root plus the
// absolute path of the current scope. Checking threads one of these
// through every call rather than using ambient global state.
type Namespace struct {
	root    *Root
	modPath []string
}

func NewNamespace(root *Root, modPath []string) *Namespace {
	return &Namespace{root: root, modPath: modPath}
}

func (ns *Namespace) Root() *Root       { return ns.root }
func (ns *Namespace) ModPath() []string { return ns.modPath }

// Module returns the current scope's module.
func (ns *Namespace) Module() *Module {
	mod, _ := ns.root.module.LookupSubmodule(ns.modPath, span.Span{})
	return mod
}

// EnterSubmodule returns a namespace whose current scope is the named
// child.
func (ns *Namespace) EnterSubmodule(name string) *Namespace {
	path := make([]string, 0, len(ns.modPath)+1)
	path = append(path, ns.modPath...)
	path = append(path, name)
	return &Namespace{root: ns.root, modPath: path}
}

// ResolveSymbol resolves a bare name from the current scope.
func (ns *Namespace) ResolveSymbol(name string, sp span.Span) (decl.Declaration, []*diagnostics.Diagnostic) {
	return ns.root.ResolveSymbol(ns.modPath, name, sp)
}

// ResolveCallPath resolves a qualified path from the current scope.
func (ns *Namespace) ResolveCallPath(cp CallPath, sp span.Span) (decl.Declaration, []*diagnostics.Diagnostic) {
	return ns.root.ResolveCallPath(ns.modPath, cp, sp)
}
