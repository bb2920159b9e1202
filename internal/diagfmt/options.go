package diagfmt

import (
	"io"
	"os"

	"golang.org/x/term"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// ShowCaret draws the offset marker under the offending line.
	ShowCaret bool
}

// DetectColor reports whether w is a terminal that can take color.
func DetectColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
