package span

import "fmt"

// Span identifies a region of source text. Declarations carry the span of
// their defining site; two declarations are the same declaration only if
// their spans match exactly, which is how accidental name collisions across
// modules are told apart.
type Span struct {
	File      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// New builds a single-position span.
func New(file string, line, column int) Span {
	return Span{File: file, Line: line, Column: column, EndLine: line, EndColumn: column}
}

// IsZero reports whether the span carries no position at all.
func (s Span) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}
