package namespace

import (
	"sort"

	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// FindMethodForType locates the named method on a receiver type. The local
// scope's trait map is searched first; when the receiver was declared in
// another module (declPath non-empty and different from the current scope),
// that module's map is consulted as a fallback, so qualified types keep
// their methods without a glob import. When the first argument already
// failed to check, the "method not found" report is suppressed: one broken
// receiver expression should surface one diagnostic, not a cascade.
func (ns *Namespace) FindMethodForType(e *typesystem.TypeEngine, typ typesystem.TypeId, method string, declPath []string, selfType typesystem.TypeId, args []typesystem.TypeId, sp span.Span) (*decl.Function, []*diagnostics.Diagnostic) {
	resolved, _ := e.Resolve(typ)
	if resolved == typesystem.ErrorRecoveryId {
		return nil, nil
	}
	if len(args) > 0 {
		if first, _ := e.Resolve(args[0]); first == typesystem.ErrorRecoveryId {
			return nil, nil
		}
	}

	// The receiver may still be the bare `Self` of a trait or impl body.
	query := resolved
	if _, isSelf := e.LookUp(resolved).(typesystem.TSelfType); isSelf && selfType != typesystem.ErrorRecoveryId {
		query, _ = e.Resolve(selfType)
	}

	if f := methodInModule(e, ns.Module(), query, method); f != nil {
		return f, nil
	}
	if len(declPath) > 0 && !samePath(declPath, ns.modPath) {
		if declMod, diag := ns.root.module.LookupSubmodule(declPath, sp); diag == nil {
			if f := methodInModule(e, declMod, query, method); f != nil {
				return f, nil
			}
		}
	}

	return nil, []*diagnostics.Diagnostic{diagnostics.MethodNotFound(method, e.String(query), sp)}
}

func methodInModule(e *typesystem.TypeEngine, mod *Module, query typesystem.TypeId, method string) *decl.Function {
	if mod == nil {
		return nil
	}
	var found *decl.Function
	for _, f := range mod.items.implementedTraits.GetMethodsForType(e, query) {
		if f.Name == method {
			found = f
		}
	}
	if found != nil {
		return found
	}
	// No equal-typed entry provided the method. Specialize applicable
	// generic entries against the query type and retry, so methods of
	// not-yet-instantiated implementations are still reachable.
	for _, f := range mod.items.implementedTraits.FilterByType(e, query).GetMethodsForType(e, query) {
		if f.Name == method {
			found = f
		}
	}
	return found
}

// FindSubfieldType walks a dotted projection (`point.inner.x`) from the
// current scope. The head must name a value in scope; each later segment
// must be a field of the struct the walk has reached. The walk stops at the
// first failure and reports only that failure.
func (ns *Namespace) FindSubfieldType(e *typesystem.TypeEngine, head string, fields []string, sp span.Span) (typesystem.TypeId, []*diagnostics.Diagnostic) {
	d, diags := ns.ResolveSymbol(head, sp)
	if len(diags) > 0 {
		return typesystem.ErrorRecoveryId, []*diagnostics.Diagnostic{diagnostics.UnknownVariable(head, sp)}
	}
	cur, ok := decl.TypeOf(d)
	if !ok {
		return typesystem.ErrorRecoveryId, []*diagnostics.Diagnostic{diagnostics.UnknownVariable(head, sp)}
	}

	for _, field := range fields {
		next, fdiags := ProjectField(e, cur, field, sp)
		if len(fdiags) > 0 {
			return typesystem.ErrorRecoveryId, fdiags
		}
		cur = next
	}
	return cur, nil
}

// ProjectField returns the type of one field of a struct type. Projecting
// out of an already-failed type silently yields the recovery marker;
// projecting out of a non-struct or a struct lacking the field is reported,
// the latter listing the fields the struct does have.
func ProjectField(e *typesystem.TypeEngine, typ typesystem.TypeId, field string, sp span.Span) (typesystem.TypeId, []*diagnostics.Diagnostic) {
	resolved, info := e.Resolve(typ)
	if resolved == typesystem.ErrorRecoveryId {
		return typesystem.ErrorRecoveryId, nil
	}

	st, ok := info.(typesystem.TStruct)
	if !ok {
		return typesystem.ErrorRecoveryId, []*diagnostics.Diagnostic{diagnostics.NotAStruct(e.String(resolved), sp)}
	}
	for _, f := range st.Fields {
		if f.Name == field {
			return f.Type, nil
		}
	}

	available := make([]string, 0, len(st.Fields))
	for _, f := range st.Fields {
		available = append(available, f.Name)
	}
	sort.Strings(available)
	return typesystem.ErrorRecoveryId, []*diagnostics.Diagnostic{
		diagnostics.FieldNotFound(field, st.Name, available, sp),
	}
}

func samePath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
