package diagnostics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Handler accumulates diagnostics for one compilation run. Fallible
// operations return best-effort values plus diagnostics; the handler is
// where those diagnostics land. It deduplicates by position and code so a
// declaration re-checked through two paths reports each problem once, and
// it is safe for use from concurrently checked modules.
type Handler struct {
	mu        sync.Mutex
	seen      map[string]*Diagnostic // "file:line:col:code"
	diags     []*Diagnostic
	maxErrors int
	log       zerolog.Logger
}

func NewHandler(maxErrors int, log zerolog.Logger) *Handler {
	return &Handler{
		seen:      make(map[string]*Diagnostic),
		maxErrors: maxErrors,
		log:       log,
	}
}

// Append records a diagnostic, deduplicating by position and code.
func (h *Handler) Append(d *Diagnostic) {
	if d == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	key := fmt.Sprintf("%s:%d:%d:%s", d.Span.File, d.Span.Line, d.Span.Column, d.Code)
	if _, ok := h.seen[key]; ok {
		return
	}
	if d.Severity == SeverityError && h.maxErrors > 0 && h.errorCountLocked() >= h.maxErrors {
		return
	}
	h.seen[key] = d
	h.diags = append(h.diags, d)
	h.log.Debug().Str("code", d.Code).Stringer("severity", d.Severity).Str("span", d.Span.String()).Msg(d.Message)
}

// AppendAll records every diagnostic in the slice.
func (h *Handler) AppendAll(ds []*Diagnostic) {
	for _, d := range ds {
		h.Append(d)
	}
}

func (h *Handler) errorCountLocked() int {
	n := 0
	for _, d := range h.diags {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// All returns every recorded diagnostic sorted by file, line and column.
func (h *Handler) All() []*Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*Diagnostic, len(h.diags))
	copy(out, h.diags)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Span, out[j].Span
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return out
}

// Errors returns the recorded hard errors, sorted.
func (h *Handler) Errors() []*Diagnostic {
	return h.filter(SeverityError)
}

// Warnings returns the recorded warnings, sorted.
func (h *Handler) Warnings() []*Diagnostic {
	return h.filter(SeverityWarning)
}

func (h *Handler) filter(sev Severity) []*Diagnostic {
	out := []*Diagnostic{}
	for _, d := range h.All() {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any hard error has been recorded. Code
// generation must not run when this is true.
func (h *Handler) HasErrors() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errorCountLocked() > 0
}
