package typesystem

import "github.com/FuelLabs/sway-sub007/internal/span"

// TraitConstraint is one required trait bound on a generic type variable,
// e.g. the `Ord` in `T: Ord` or `Convert<u64>` with type arguments.
type TraitConstraint struct {
	Trait         string
	TypeArguments []TypeId
}

// TypeParameter is one declared generic parameter of a struct, enum,
// function or implementation block. TypeID points at the TUnknownGeneric
// descriptor created for the parameter (or at its concrete replacement
// after specialization).
type TypeParameter struct {
	TypeID TypeId
	Name   string
	Span   span.Span
}

// constraintsSubset reports whether every constraint required by sub is
// provided by super: same trait name, same type-argument arity, and
// pairwise-checked type arguments under the given mode.
func constraintsSubset(e *TypeEngine, super, sub []TraitConstraint, mode UnifyMode) bool {
	for _, need := range sub {
		if !hasConstraint(e, super, need, mode) {
			return false
		}
	}
	return true
}

func hasConstraint(e *TypeEngine, set []TraitConstraint, need TraitConstraint, mode UnifyMode) bool {
	for _, have := range set {
		if have.Trait != need.Trait {
			continue
		}
		if len(have.TypeArguments) != len(need.TypeArguments) {
			continue
		}
		ok := true
		for i := range have.TypeArguments {
			if !Check(e, have.TypeArguments[i], need.TypeArguments[i], mode) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
