package resolve

import (
	"github.com/FuelLabs/sway-sub007/internal/ast"
	"github.com/FuelLabs/sway-sub007/internal/config"
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/namespace"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// ResolveType interns the type a written type expression denotes, resolving
// names against the current scope. Unresolvable names are reported and
// replaced by the error-recovery type.
func (c *Checker) ResolveType(te ast.TypeExpression) typesystem.TypeId {
	return c.resolveType(te, false)
}

// resolveTypeLenient interns a type expression during declaration
// collection, before imports have been applied: a name that does not resolve
// yet is kept as an unresolved named reference instead of a diagnostic.
func (c *Checker) resolveTypeLenient(te ast.TypeExpression) typesystem.TypeId {
	return c.resolveType(te, true)
}

func (c *Checker) resolveType(te ast.TypeExpression, lenient bool) typesystem.TypeId {
	switch te := te.(type) {
	case *ast.TypeName:
		return c.resolveTypeName(te, lenient)
	case *ast.TupleType:
		fields := make([]typesystem.TypeId, len(te.Elems))
		for i, el := range te.Elems {
			fields[i] = c.resolveType(el, lenient)
		}
		return c.engine.Insert(typesystem.TTuple{Fields: fields})
	case *ast.ArrayType:
		return c.engine.Insert(typesystem.TArray{Elem: c.resolveType(te.Elem, lenient), Len: te.Len})
	case *ast.StrType:
		return c.engine.Insert(typesystem.TStrArray{Len: te.Len})
	case nil:
		// Omitted return type is unit.
		return c.engine.Insert(typesystem.TTuple{})
	default:
		c.handler.Append(diagnostics.UnknownType("<type>", te.GetSpan()))
		return typesystem.ErrorRecoveryId
	}
}

func (c *Checker) resolveTypeName(te *ast.TypeName, lenient bool) typesystem.TypeId {
	if len(te.Prefixes) == 0 && te.TypeArgs == nil {
		if id, ok := c.builtinType(te.Name); ok {
			return id
		}
	}

	d, diags := c.lookupTypeName(te)
	if len(diags) > 0 {
		if lenient {
			return c.internPending(te)
		}
		c.handler.Append(diagnostics.UnknownType(te.Name, te.Span))
		return typesystem.ErrorRecoveryId
	}

	switch d := d.(type) {
	case *decl.Struct:
		return c.instantiate(te, d.TypeID, d.TypeParameters, lenient)
	case *decl.Enum:
		return c.instantiate(te, d.TypeID, d.TypeParameters, lenient)
	case *decl.TypeAlias:
		return d.Type
	case *decl.GenericTypeForFunctionScope:
		return d.TypeID
	case *decl.ErrorRecovery:
		return typesystem.ErrorRecoveryId
	default:
		if lenient {
			return c.internPending(te)
		}
		c.handler.Append(diagnostics.UnknownType(te.Name, te.Span))
		return typesystem.ErrorRecoveryId
	}
}

func (c *Checker) lookupTypeName(te *ast.TypeName) (decl.Declaration, []*diagnostics.Diagnostic) {
	if len(te.Prefixes) == 0 {
		return c.lookup(te.Name, te.Span)
	}
	return c.ns.ResolveCallPath(namespace.CallPath{Prefixes: te.Prefixes, Suffix: te.Name}, te.Span)
}

func (c *Checker) resolveArgs(args []ast.TypeExpression, lenient bool) []typesystem.TypeId {
	if args == nil {
		return nil
	}
	out := make([]typesystem.TypeId, len(args))
	for i, a := range args {
		out[i] = c.resolveType(a, lenient)
	}
	return out
}

// instantiate resolves a reference to a declared struct or enum. A written
// argument list monomorphizes the declaration's generic descriptor through a
// TypeMapping; the implementations registered for the generic type in its
// declaring module are then specialized for the instantiation and merged
// into the current scope, so methods follow the type to its uses.
func (c *Checker) instantiate(te *ast.TypeName, declType typesystem.TypeId, params []typesystem.TypeParameter, lenient bool) typesystem.TypeId {
	if te.TypeArgs == nil {
		return declType
	}
	if len(te.TypeArgs) != len(params) {
		c.handler.Append(diagnostics.WrongTypeArgumentCount(te.Name, len(params), len(te.TypeArgs), te.Span))
		return typesystem.ErrorRecoveryId
	}

	args := c.resolveArgs(te.TypeArgs, lenient)
	mapping := typesystem.FromTypeParameters(params, args)
	instantiated := mapping.ApplyToType(c.engine, declType)

	if !lenient {
		c.extendWithImpls(declType, instantiated)
	}
	return instantiated
}

// extendWithImpls copies the implementations applicable to an instantiated
// type from the declaring module's trait map into the current scope, so the
// instantiation carries its methods wherever it is used.
func (c *Checker) extendWithImpls(declType, instantiated typesystem.TypeId) {
	mod, diag := c.root.Module().LookupSubmodule(c.declPathOf(declType), span.Span{})
	if diag != nil || mod == nil {
		return
	}
	specialized := mod.Items().ImplementedTraits().FilterByType(c.engine, instantiated)
	c.ns.Module().Items().ImplementedTraits().Extend(specialized)
}

func (c *Checker) builtinType(name string) (typesystem.TypeId, bool) {
	switch name {
	case config.BoolTypeName:
		return c.engine.Insert(typesystem.TBoolean{}), true
	case config.U8TypeName:
		return c.engine.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight}), true
	case config.U16TypeName:
		return c.engine.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Sixteen}), true
	case config.U32TypeName:
		return c.engine.Insert(typesystem.TUnsignedInteger{Bits: typesystem.ThirtyTwo}), true
	case config.U64TypeName:
		return c.engine.Insert(typesystem.TUnsignedInteger{Bits: typesystem.SixtyFour}), true
	case config.ByteTypeName:
		return c.engine.Insert(typesystem.TByte{}), true
	case config.B256TypeName:
		return c.engine.Insert(typesystem.TB256{}), true
	case config.StringTypeName:
		return c.engine.Insert(typesystem.TStrSlice{}), true
	case config.ContractTypeName:
		return c.engine.Insert(typesystem.TContract{}), true
	case config.UnderscoreName:
		return c.engine.Insert(typesystem.TPlaceholder{}), true
	case config.SelfTypeName:
		if c.selfType != typesystem.ErrorRecoveryId {
			return c.selfType, true
		}
		return c.engine.Insert(typesystem.TSelfType{}), true
	}
	return 0, false
}
