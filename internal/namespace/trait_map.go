package namespace

import (
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// TraitKey identifies which trait (with which type arguments) an entry
// implements. Name is empty for inherent implementation blocks.
type TraitKey struct {
	Name     string
	TypeArgs []typesystem.TypeId
}

// TraitEntry is one registered implementation: a trait key against an
// implementing type, carrying the methods the implementation provides.
type TraitEntry struct {
	Key         TraitKey
	Type        typesystem.TypeId
	Span        span.Span
	methods     map[string]*decl.Function
	methodOrder []string
}

// Methods returns the entry's methods in declaration order.
func (te *TraitEntry) Methods() []*decl.Function {
	out := make([]*decl.Function, 0, len(te.methodOrder))
	for _, name := range te.methodOrder {
		out = append(out, te.methods[name])
	}
	return out
}

// Method returns the named method, if the entry provides it.
func (te *TraitEntry) Method(name string) (*decl.Function, bool) {
	f, ok := te.methods[name]
	return f, ok
}

// TraitMap is the scoped registry of trait implementations. It only grows:
// insert, merge and filter, no removal within a compilation run.
type TraitMap struct {
	entries []*TraitEntry
}

func NewTraitMap() *TraitMap {
	return &TraitMap{}
}

// Entries returns the registered implementations in insertion order.
func (tm *TraitMap) Entries() []*TraitEntry {
	out := make([]*TraitEntry, len(tm.entries))
	copy(out, tm.entries)
	return out
}

// Insert registers an implementation of (traitName, traitTypeArgs) for
// implType. When an existing entry is more general than or equal to the new
// one, an overriding-implementation diagnostic carrying both spans is
// reported, but the new entry is inserted regardless, so downstream
// checking proceeds with the most recent implementation.
func (tm *TraitMap) Insert(e *typesystem.TypeEngine, traitName string, traitTypeArgs []typesystem.TypeId, implType typesystem.TypeId, methods []*decl.Function, sp span.Span) []*diagnostics.Diagnostic {
	var diags []*diagnostics.Diagnostic

	for _, existing := range tm.entries {
		if existing.Key.Name != traitName {
			continue
		}
		if !typesystem.CheckMultiple(e, traitTypeArgs, existing.Key.TypeArgs, typesystem.ConstraintSubset) {
			continue
		}
		if !typesystem.Check(e, implType, existing.Type, typesystem.ConstraintSubset) {
			continue
		}
		if traitName == "" && !sharesMethodName(existing, methods) {
			// Inherent impls for the same type are fine as long as their
			// method sets do not collide.
			continue
		}
		diags = append(diags, diagnostics.OverridingTraitImplementation(
			displayTraitName(traitName), e.String(implType), sp, existing.Span))
		break
	}

	entry := &TraitEntry{
		Key:     TraitKey{Name: traitName, TypeArgs: traitTypeArgs},
		Type:    implType,
		Span:    sp,
		methods: make(map[string]*decl.Function, len(methods)),
	}
	for _, m := range methods {
		if _, ok := entry.methods[m.Name]; !ok {
			entry.methodOrder = append(entry.methodOrder, m.Name)
		}
		entry.methods[m.Name] = m
	}
	tm.entries = append(tm.entries, entry)

	return diags
}

// Extend merges another map's entries into this one, preserving their
// relative insertion order. Entries are copied shallowly: method
// declarations are immutable and safely shared.
func (tm *TraitMap) Extend(other *TraitMap) {
	for _, entry := range other.entries {
		cp := *entry
		tm.entries = append(tm.entries, &cp)
	}
}

// FilterByType produces a new map of implementations applicable to a
// concrete query type: exact entries are copied verbatim, and every generic
// entry the query type could instantiate is copied with its key type
// replaced by the query type through a freshly computed TypeMapping (and a
// fresh self-type so nested self-references stay consistent). The source
// map is never mutated.
func (tm *TraitMap) FilterByType(e *typesystem.TypeEngine, query typesystem.TypeId) *TraitMap {
	out := NewTraitMap()

	for _, entry := range tm.entries {
		if !isSpecializable(e, entry.Type, 0) {
			if typesystem.Check(e, query, entry.Type, typesystem.NonDynamicEquality) {
				cp := *entry
				out.entries = append(out.entries, &cp)
			}
			continue
		}
		if !typesystem.Check(e, query, entry.Type, typesystem.ConstraintSubset) {
			continue
		}

		mapping := typesystem.FromSupersetAndSubset(e, entry.Type, query)
		mapping.WithSelf(e.Insert(typesystem.TSelfType{}))

		specialized := &TraitEntry{
			Key: TraitKey{
				Name:     entry.Key.Name,
				TypeArgs: applyAll(e, mapping, entry.Key.TypeArgs),
			},
			Type:    query,
			Span:    entry.Span,
			methods: make(map[string]*decl.Function, len(entry.methods)),
		}
		for _, name := range entry.methodOrder {
			specialized.methodOrder = append(specialized.methodOrder, name)
			specialized.methods[name] = decl.SubstFunction(entry.methods[name], e, mapping)
		}
		out.entries = append(out.entries, specialized)
	}

	return out
}

// filterByTypeItemImport selects the entries that travel with a single-item
// import of a declaration of the given type. Entries are copied verbatim,
// without specialization: a generic entry keyed on a narrower instantiation
// of the item's type (say, an implementation restricted to equal type
// arguments) still travels, and is specialized later when the importer
// instantiates the type concretely.
func (tm *TraitMap) filterByTypeItemImport(e *typesystem.TypeEngine, itemType typesystem.TypeId) *TraitMap {
	out := NewTraitMap()
	for _, entry := range tm.entries {
		if typesystem.Check(e, itemType, entry.Type, typesystem.ConstraintSubset) ||
			typesystem.Check(e, entry.Type, itemType, typesystem.ConstraintSubset) {
			cp := *entry
			out.entries = append(out.entries, &cp)
		}
	}
	return out
}

// GetMethodsForType returns every method of every entry whose key type is
// equal to the query type modulo dynamic placeholders. Later entries win on
// method-name collisions, matching the later-wins insertion policy.
func (tm *TraitMap) GetMethodsForType(e *typesystem.TypeEngine, query typesystem.TypeId) []*decl.Function {
	byName := make(map[string]*decl.Function)
	var order []string

	for _, entry := range tm.entries {
		if !typesystem.Check(e, query, entry.Type, typesystem.NonDynamicEquality) {
			continue
		}
		for _, name := range entry.methodOrder {
			if _, ok := byName[name]; !ok {
				order = append(order, name)
			}
			byName[name] = entry.methods[name]
		}
	}

	out := make([]*decl.Function, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

// GetImplsForType returns the entries whose key type matches the query type
// exactly or could be instantiated to it.
func (tm *TraitMap) GetImplsForType(e *typesystem.TypeEngine, query typesystem.TypeId) []*TraitEntry {
	var out []*TraitEntry
	for _, entry := range tm.entries {
		if typesystem.Check(e, query, entry.Type, typesystem.NonDynamicEquality) ||
			typesystem.Check(e, query, entry.Type, typesystem.ConstraintSubset) {
			out = append(out, entry)
		}
	}
	return out
}

// isSpecializable reports whether the type still contains generic holes a
// concrete instantiation could fill.
func isSpecializable(e *typesystem.TypeEngine, id typesystem.TypeId, depth int) bool {
	if depth > 32 {
		return false
	}
	switch info := e.LookUp(id).(type) {
	case typesystem.TUnknownGeneric, typesystem.TSelfType, typesystem.TPlaceholder, typesystem.TUnknown:
		return true
	case typesystem.TRef:
		return isSpecializable(e, info.Target, depth+1)
	case typesystem.TTuple:
		for _, f := range info.Fields {
			if isSpecializable(e, f, depth+1) {
				return true
			}
		}
	case typesystem.TArray:
		return isSpecializable(e, info.Elem, depth+1)
	case typesystem.TCustom:
		for _, a := range info.TypeArgs {
			if isSpecializable(e, a, depth+1) {
				return true
			}
		}
	case typesystem.TStruct:
		for _, p := range info.TypeParameters {
			if isSpecializable(e, p.TypeID, depth+1) {
				return true
			}
		}
		for _, f := range info.Fields {
			if isSpecializable(e, f.Type, depth+1) {
				return true
			}
		}
	case typesystem.TEnum:
		for _, p := range info.TypeParameters {
			if isSpecializable(e, p.TypeID, depth+1) {
				return true
			}
		}
		for _, v := range info.Variants {
			if isSpecializable(e, v.Type, depth+1) {
				return true
			}
		}
	}
	return false
}

func sharesMethodName(entry *TraitEntry, methods []*decl.Function) bool {
	for _, m := range methods {
		if _, ok := entry.methods[m.Name]; ok {
			return true
		}
	}
	return false
}

func applyAll(e *typesystem.TypeEngine, m *typesystem.TypeMapping, ids []typesystem.TypeId) []typesystem.TypeId {
	out := make([]typesystem.TypeId, len(ids))
	for i, id := range ids {
		out[i] = m.ApplyToType(e, id)
	}
	return out
}

func displayTraitName(name string) string {
	if name == "" {
		return "<inherent>"
	}
	return name
}
