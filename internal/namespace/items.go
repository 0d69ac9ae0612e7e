package namespace

import (
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/span"
)

// ConstShadowingMode selects whether a constant may shadow an earlier
// constant of the same name.
type ConstShadowingMode int

const (
	// Sequential shadowing is block-local, later-wins: a new `const x`
	// after an earlier `const x` in the same block is fine.
	Sequential ConstShadowingMode = iota
	// ItemStyle shadowing rejects two same-scope top-level constants with
	// the same name, in either declaration order.
	ItemStyle
)

// GenericShadowingMode selects whether a generic type parameter may shadow
// another generic parameter already in scope.
type GenericShadowingMode int

const (
	AllowGenericShadowing GenericShadowingMode = iota
	DisallowGenericShadowing
)

// GlobBinding is one name brought in by a star import. Several bindings may
// legally share a name when two glob imports bind it to equivalent
// declarations.
type GlobBinding struct {
	Path []string
	Decl decl.Declaration
}

// ItemBinding is a single-item import, possibly aliased. OriginalName is
// set only when an alias renamed the item, for diagnostics.
type ItemBinding struct {
	OriginalName string
	Path         []string
	Decl         decl.Declaration
}

// Items owns everything a module scope declares or imports.
type Items struct {
	symbols     map[string]decl.Declaration
	symbolOrder []string

	useGlobSynonyms map[string][]GlobBinding
	useItemSynonyms map[string]ItemBinding

	implementedTraits *TraitMap
}

func NewItems() *Items {
	return &Items{
		symbols:         make(map[string]decl.Declaration),
		useGlobSynonyms: make(map[string][]GlobBinding),
		useItemSynonyms: make(map[string]ItemBinding),

		implementedTraits: NewTraitMap(),
	}
}

// ImplementedTraits is the trait-implementation registry scoped to this
// module.
func (it *Items) ImplementedTraits() *TraitMap { return it.implementedTraits }

// Symbols returns declared names in insertion order, for deterministic
// diagnostics and star imports.
func (it *Items) Symbols() []string {
	out := make([]string, len(it.symbolOrder))
	copy(out, it.symbolOrder)
	return out
}

// InsertSymbol adds a declaration under name, applying the shadowing policy
// and reporting violations. The insertion itself still happens (later
// wins), so checking can continue with best-effort information.
func (it *Items) InsertSymbol(name string, d decl.Declaration, constMode ConstShadowingMode, genericMode GenericShadowingMode) []*diagnostics.Diagnostic {
	var diags []*diagnostics.Diagnostic

	if prev, ok := it.symbols[name]; ok {
		diags = append(diags, shadowingViolation(name, prev, d, constMode, genericMode))
	}

	if _, ok := it.symbols[name]; !ok {
		it.symbolOrder = append(it.symbolOrder, name)
	}
	it.symbols[name] = d

	return compactDiags(diags)
}

// shadowingViolation applies the policy table to an (existing, incoming)
// declaration pair; nil means the shadowing is permitted.
func shadowingViolation(name string, prev, next decl.Declaration, constMode ConstShadowingMode, genericMode GenericShadowingMode) *diagnostics.Diagnostic {
	sp := next.DeclSpan()

	switch next := next.(type) {
	case *decl.Variable:
		if _, ok := prev.(*decl.Constant); ok {
			return diagnostics.VariableShadowsConstant(name, sp)
		}
		// A variable may shadow a variable or anything value-like.
		return nil

	case *decl.Constant:
		switch prev.(type) {
		case *decl.Variable:
			return diagnostics.ConstantShadowsVariable(name, sp)
		case *decl.Constant:
			if constMode == ItemStyle {
				return diagnostics.MultipleDefinitions(name, sp, prev.DeclSpan())
			}
			return nil
		}
		return nil

	case *decl.GenericTypeForFunctionScope:
		if _, ok := prev.(*decl.GenericTypeForFunctionScope); ok && genericMode == DisallowGenericShadowing {
			return diagnostics.GenericShadowsGeneric(name, sp)
		}
		return nil

	default:
		if decl.IsTypeLike(next) && decl.IsTypeLike(prev) {
			return diagnostics.MultipleDefinitions(name, sp, prev.DeclSpan())
		}
		if _, a := next.(*decl.Function); a {
			if _, b := prev.(*decl.Function); b {
				return diagnostics.MultipleDefinitions(name, sp, prev.DeclSpan())
			}
		}
		return nil
	}
}

// GetSymbol looks a name up in this scope only.
func (it *Items) GetSymbol(name string, sp span.Span) (decl.Declaration, *diagnostics.Diagnostic) {
	if d, ok := it.symbols[name]; ok {
		return d, nil
	}
	return &decl.ErrorRecovery{Span: sp}, diagnostics.SymbolNotFound(name, sp)
}

// HasSymbol reports whether the scope declares the name locally.
func (it *Items) HasSymbol(name string) bool {
	_, ok := it.symbols[name]
	return ok
}

func compactDiags(diags []*diagnostics.Diagnostic) []*diagnostics.Diagnostic {
	out := diags[:0]
	for _, d := range diags {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}
