package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
)

// Render writes diagnostics in source order to w. Color is applied only
// when both requested and w is the process stdout/stderr attached to a
// terminal.
func Render(w io.Writer, diags []*Diagnostic, color bool) {
	useColor := color && writerIsTerminal(w)
	for _, d := range diags {
		prefix := d.Severity.String()
		if useColor {
			c := ansiYellow
			if d.Severity == SeverityError {
				c = ansiRed
			}
			prefix = c + prefix + ansiReset
		}
		if d.Span.IsZero() {
			fmt.Fprintf(w, "%s[%s]: %s\n", prefix, d.Code, d.Message)
		} else {
			fmt.Fprintf(w, "%s[%s]: %s\n  --> %s\n", prefix, d.Code, d.Message, d.Span)
		}
		for _, hint := range d.Hints {
			fmt.Fprintf(w, "  note: %s\n", hint)
		}
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
