package diagnostics

import (
	"fmt"
	"strings"

	"github.com/FuelLabs/sway-sub007/internal/span"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic codes. The code participates in deduplication, so two distinct
// problems reported at the same position must use distinct codes.
const (
	CodeSymbolNotFound      = "SEM001"
	CodeModuleNotFound      = "SEM002"
	CodePrivateImport       = "SEM003"
	CodeUnknownVariable     = "SEM004"
	CodeConstShadowsVar     = "SEM010"
	CodeVarShadowsConst     = "SEM011"
	CodeMultipleDefinitions = "SEM012"
	CodeGenericShadowing    = "SEM013"
	CodeOverlappingImpl     = "SEM020"
	CodeFieldNotFound       = "SEM030"
	CodeNotAStruct          = "SEM031"
	CodeMethodNotFound      = "SEM032"
	CodeVariantNotFound     = "SEM033"
	CodeWrongArgCount       = "SEM034"
	CodeTypeMismatch        = "SEM040"
	CodeUnknownType         = "SEM041"
	CodeWrongTypeArgCount   = "SEM042"
	CodeNotInTraitSurface   = "SEM043"
)

// Diagnostic is a semantic problem reported as a value. The core never
// panics and never unwinds on user errors; it appends one of these and
// continues with a recovery placeholder.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Span     span.Span
	Hints    []string // secondary notes, e.g. the span of a conflicting item
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s [%s]", d.Severity, d.Message, d.Code)
	if !d.Span.IsZero() {
		fmt.Fprintf(&b, " at %s", d.Span)
	}
	return b.String()
}

func newError(code string, sp span.Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Severity: SeverityError, Message: fmt.Sprintf(format, args...), Span: sp}
}

func newWarning(code string, sp span.Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Span: sp}
}

func SymbolNotFound(name string, sp span.Span) *Diagnostic {
	return newError(CodeSymbolNotFound, sp, "symbol %q not found", name)
}

func ModuleNotFound(path string, sp span.Span) *Diagnostic {
	return newError(CodeModuleNotFound, sp, "module %q not found", path)
}

func ImportPrivateSymbol(name string, sp span.Span) *Diagnostic {
	return newError(CodePrivateImport, sp, "symbol %q is private and cannot be imported", name)
}

func UnknownVariable(name string, sp span.Span) *Diagnostic {
	return newError(CodeUnknownVariable, sp, "unknown variable %q", name)
}

func ConstantShadowsVariable(name string, sp span.Span) *Diagnostic {
	return newError(CodeConstShadowsVar, sp, "constant %q shadows an existing variable", name)
}

func VariableShadowsConstant(name string, sp span.Span) *Diagnostic {
	return newError(CodeVarShadowsConst, sp, "variable %q shadows an existing constant", name)
}

func MultipleDefinitions(name string, sp, previous span.Span) *Diagnostic {
	d := newError(CodeMultipleDefinitions, sp, "multiple definitions of %q", name)
	if !previous.IsZero() {
		d.Hints = append(d.Hints, fmt.Sprintf("previous definition at %s", previous))
	}
	return d
}

func GenericShadowsGeneric(name string, sp span.Span) *Diagnostic {
	return newError(CodeGenericShadowing, sp, "generic type parameter %q shadows another generic parameter in the same scope", name)
}

func OverridingTraitImplementation(trait, typeName string, sp, previous span.Span) *Diagnostic {
	d := newWarning(CodeOverlappingImpl, sp, "trait %q is already implemented for type %q; the most recent implementation overrides it", trait, typeName)
	if !previous.IsZero() {
		d.Hints = append(d.Hints, fmt.Sprintf("conflicting implementation at %s", previous))
	}
	return d
}

func FieldNotFound(field, structName string, available []string, sp span.Span) *Diagnostic {
	return newError(CodeFieldNotFound, sp, "field %q not found on struct %q, available fields: %s",
		field, structName, strings.Join(available, ", "))
}

func NotAStruct(typeName string, sp span.Span) *Diagnostic {
	return newError(CodeNotAStruct, sp, "%q is not a struct; only structs have fields", typeName)
}

func MethodNotFound(method, typeName string, sp span.Span) *Diagnostic {
	return newError(CodeMethodNotFound, sp, "method %q not found for type %q", method, typeName)
}

func WrongArgumentCount(name string, want, got int, sp span.Span) *Diagnostic {
	return newError(CodeWrongArgCount, sp, "%q expects %d arguments, found %d", name, want, got)
}

func TypeMismatch(expected, found string, sp span.Span) *Diagnostic {
	return newError(CodeTypeMismatch, sp, "mismatched types: expected %q, found %q", expected, found)
}

func UnknownType(name string, sp span.Span) *Diagnostic {
	return newError(CodeUnknownType, sp, "unknown type %q", name)
}

func WrongTypeArgumentCount(name string, want, got int, sp span.Span) *Diagnostic {
	return newError(CodeWrongTypeArgCount, sp, "type %q expects %d type arguments, found %d", name, want, got)
}

func MethodNotInTrait(method, trait string, sp span.Span) *Diagnostic {
	return newError(CodeNotInTraitSurface, sp, "method %q is not declared by trait %q", method, trait)
}
