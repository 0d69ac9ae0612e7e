package resolve

import (
	"github.com/FuelLabs/sway-sub007/internal/ast"
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/namespace"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// pendingType is a named type reference that could not be resolved during
// declaration collection, typically because it names a symbol that only an
// import makes visible. Collection interns a placeholder for it; ResolveTypes
// re-targets the placeholder once imports are applied. Type arguments were
// resolvable at collection time (generic parameters are in scope there), so
// only the name is re-resolved.
type pendingType struct {
	id       typesystem.TypeId
	prefixes []string
	name     string
	args     []typesystem.TypeId // nil when no argument list was written
	span     span.Span
	modPath  []string
}

// internPending interns a placeholder for a not-yet-resolvable type name and
// queues it for the post-import resolution pass.
func (c *Checker) internPending(te *ast.TypeName) typesystem.TypeId {
	args := c.resolveArgs(te.TypeArgs, true)
	id := c.engine.Insert(typesystem.TCustom{Name: te.Name, TypeArgs: args})
	c.pending = append(c.pending, pendingType{
		id:       id,
		prefixes: te.Prefixes,
		name:     te.Name,
		args:     args,
		span:     te.Span,
		modPath:  c.ns.ModPath(),
	})
	return id
}

// ResolveTypes re-resolves the type names interned as placeholders during
// collection, now that imports are applied. Each placeholder slot is
// re-targeted in place, so every field, variant and signature that captured
// it heals without a second declaration walk. Names that still do not
// resolve are reported and re-targeted to the recovery type.
func (c *Checker) ResolveTypes() {
	for _, p := range c.pending {
		c.enterModule(p.modPath)
		c.engine.Replace(p.id, typesystem.TRef{Target: c.resolvePendingTarget(p)})
	}
	c.pending = nil
}

func (c *Checker) resolvePendingTarget(p pendingType) typesystem.TypeId {
	var d decl.Declaration
	var diags []*diagnostics.Diagnostic
	if len(p.prefixes) == 0 {
		d, diags = c.ns.ResolveSymbol(p.name, p.span)
	} else {
		d, diags = c.ns.ResolveCallPath(namespace.CallPath{Prefixes: p.prefixes, Suffix: p.name}, p.span)
	}
	if len(diags) > 0 {
		c.handler.Append(diagnostics.UnknownType(p.name, p.span))
		return typesystem.ErrorRecoveryId
	}

	switch d := d.(type) {
	case *decl.Struct:
		return c.instantiatePending(p, d.TypeID, d.TypeParameters)
	case *decl.Enum:
		return c.instantiatePending(p, d.TypeID, d.TypeParameters)
	case *decl.TypeAlias:
		return d.Type
	case *decl.GenericTypeForFunctionScope:
		return d.TypeID
	case *decl.ErrorRecovery:
		return typesystem.ErrorRecoveryId
	default:
		c.handler.Append(diagnostics.UnknownType(p.name, p.span))
		return typesystem.ErrorRecoveryId
	}
}

func (c *Checker) instantiatePending(p pendingType, declType typesystem.TypeId, params []typesystem.TypeParameter) typesystem.TypeId {
	if p.args == nil {
		return declType
	}
	if len(p.args) != len(params) {
		c.handler.Append(diagnostics.WrongTypeArgumentCount(p.name, len(params), len(p.args), p.span))
		return typesystem.ErrorRecoveryId
	}
	return typesystem.FromTypeParameters(params, p.args).ApplyToType(c.engine, declType)
}
