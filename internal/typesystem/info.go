// Package typesystem owns the type representation of the compiler: the
// append-only TypeEngine that hands out TypeId handles, the closed TypeInfo
// variant set behind those handles, generic-parameter substitution via
// TypeMapping, and the four-mode unification checker.
//
// Types reference each other only through TypeId handles, never by
// embedding, so substitution and aliasing stay cheap and structural sharing
// is safe. Handle equality is a fast-path short-circuit only; all real
// equality and coercion questions go through Check.
package typesystem

import (
	"fmt"
	"strings"

	"github.com/FuelLabs/sway-sub007/internal/config"
	"github.com/FuelLabs/sway-sub007/internal/span"
)

// IntegerBits is the width of an unsigned integer type.
type IntegerBits int

const (
	Eight     IntegerBits = 8
	Sixteen   IntegerBits = 16
	ThirtyTwo IntegerBits = 32
	SixtyFour IntegerBits = 64
)

// TypeInfo is the closed set of type descriptors stored in the TypeEngine.
// Adding a variant requires revisiting every exhaustive switch in this
// package, which is intentional.
type TypeInfo interface {
	typeInfo()
}

// TUnknown is a type that has not been determined yet. It unifies with
// anything under coercion but is never equal to another Unknown under
// NonDynamicEquality, because the two may still resolve differently.
type TUnknown struct{}

// TUnknownGeneric is a generic type variable, optionally bounded by trait
// constraints it must satisfy.
type TUnknownGeneric struct {
	Name        string
	Constraints []TraitConstraint
}

// TPlaceholder is the wildcard written `_`; it unifies with any type.
type TPlaceholder struct{}

// TStrArray is a fixed-length string.
type TStrArray struct {
	Len uint64
}

// TStrSlice is a dynamically sized string.
type TStrSlice struct{}

// TUnsignedInteger is a fixed-width unsigned integer.
type TUnsignedInteger struct {
	Bits IntegerBits
}

// TNumeric is the type of an integer literal whose width has not been
// settled yet. It is mutually coercible with every unsigned integer width.
type TNumeric struct{}

type TBoolean struct{}

// TByte is a single byte.
type TByte struct{}

// TB256 is a 256-bit word.
type TB256 struct{}

// TTuple is an anonymous product of types.
type TTuple struct {
	Fields []TypeId
}

// TArray is a fixed-size array.
type TArray struct {
	Elem TypeId
	Len  uint64
}

// StructField is one named field of a struct or storage descriptor.
type StructField struct {
	Name string
	Type TypeId
	Span span.Span
}

// TStruct is a struct type by declaration reference: the descriptor carries
// the declaration's name, span and shape. DeclSpan is the identity of the
// declaration site; ConstraintSubset requires it to match so that two
// structs that merely share a name in different modules never unify.
type TStruct struct {
	Name           string
	Fields         []StructField
	TypeParameters []TypeParameter
	DeclSpan       span.Span
}

// EnumVariant is one variant of an enum descriptor.
type EnumVariant struct {
	Name string
	Type TypeId
	Tag  uint64
	Span span.Span
}

// TEnum is an enum type by declaration reference. An enum with no variants
// is the bottom type: it coerces into anything.
type TEnum struct {
	Name           string
	Variants       []EnumVariant
	TypeParameters []TypeParameter
	DeclSpan       span.Span
}

// TCustom is a named but not yet resolved type reference, produced by the
// parser before name resolution runs. TypeArgs is nil when no argument list
// was written.
type TCustom struct {
	Name     string
	TypeArgs []TypeId
}

// TSelfType is the `Self` placeholder; it is resolved per context against
// the enclosing implementation's type.
type TSelfType struct{}

// TContract is the type of the contract being compiled.
type TContract struct{}

// TStorage is the declared storage block of a contract.
type TStorage struct {
	Fields []StructField
}

// TRef is an indirection to an already-resolved type, so a second textual
// use of a resolved name reuses the first resolution without a structural
// copy.
type TRef struct {
	Target TypeId
}

// TErrorRecovery is the terminal error marker. It absorbs into every
// comparison so one earlier failure does not cascade into spurious later
// diagnostics.
type TErrorRecovery struct{}

func (TUnknown) typeInfo()         {}
func (TUnknownGeneric) typeInfo()  {}
func (TPlaceholder) typeInfo()     {}
func (TStrArray) typeInfo()        {}
func (TStrSlice) typeInfo()        {}
func (TUnsignedInteger) typeInfo() {}
func (TNumeric) typeInfo()         {}
func (TBoolean) typeInfo()         {}
func (TByte) typeInfo()            {}
func (TB256) typeInfo()            {}
func (TTuple) typeInfo()           {}
func (TArray) typeInfo()           {}
func (TStruct) typeInfo()          {}
func (TEnum) typeInfo()            {}
func (TCustom) typeInfo()          {}
func (TSelfType) typeInfo()        {}
func (TContract) typeInfo()        {}
func (TStorage) typeInfo()         {}
func (TRef) typeInfo()             {}
func (TErrorRecovery) typeInfo()   {}

// String renders the friendly name of the type behind id, the form used in
// diagnostics.
func (e *TypeEngine) String(id TypeId) string {
	return e.stringDepth(id, 0)
}

func (e *TypeEngine) stringDepth(id TypeId, depth int) string {
	if depth > maxRenderDepth {
		return "..."
	}
	switch info := e.LookUp(id).(type) {
	case TUnknown:
		return "{unknown}"
	case TUnknownGeneric:
		return info.Name
	case TPlaceholder:
		return "_"
	case TStrArray:
		return fmt.Sprintf("%s[%d]", config.StrTypeName, info.Len)
	case TStrSlice:
		return "string"
	case TUnsignedInteger:
		return fmt.Sprintf("u%d", info.Bits)
	case TNumeric:
		return "numeric"
	case TBoolean:
		return "bool"
	case TByte:
		return "byte"
	case TB256:
		return "b256"
	case TTuple:
		parts := make([]string, len(info.Fields))
		for i, f := range info.Fields {
			parts[i] = e.stringDepth(f, depth+1)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TArray:
		return fmt.Sprintf("[%s; %d]", e.stringDepth(info.Elem, depth+1), info.Len)
	case TStruct:
		return e.renderNamed(info.Name, info.TypeParameters, depth)
	case TEnum:
		return e.renderNamed(info.Name, info.TypeParameters, depth)
	case TCustom:
		if info.TypeArgs == nil {
			return info.Name
		}
		parts := make([]string, len(info.TypeArgs))
		for i, a := range info.TypeArgs {
			parts[i] = e.stringDepth(a, depth+1)
		}
		return info.Name + "<" + strings.Join(parts, ", ") + ">"
	case TSelfType:
		return "Self"
	case TContract:
		return "Contract"
	case TStorage:
		return "storage"
	case TRef:
		return e.stringDepth(info.Target, depth+1)
	case TErrorRecovery:
		return "{error}"
	default:
		return "{unknown}"
	}
}

func (e *TypeEngine) renderNamed(name string, params []TypeParameter, depth int) string {
	if len(params) == 0 {
		return name
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = e.stringDepth(p.TypeID, depth+1)
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}

const maxRenderDepth = 16
