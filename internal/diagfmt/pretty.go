// Package diagfmt renders diagnostics, token streams, trees and compiled
// units for the CLI. Formatting only; nothing here mutates pipeline state.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"adder/internal/diag"
)

var (
	categoryColor = color.New(color.FgRed, color.Bold)
	locationColor = color.New(color.FgCyan)
)

// Pretty writes one diagnostic in the interpreter's traceback shape:
// file/line header, offending line, caret, category and message.
func Pretty(w io.Writer, d *diag.Diagnostic, opts PrettyOpts) {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}

	if d.HasPosition() {
		loc := fmt.Sprintf("  File %q, line %d", d.Filename, d.Line)
		fmt.Fprintln(w, paint(locationColor, loc))
		if d.Text != "" {
			line := strings.TrimRight(d.Text, "\n")
			fmt.Fprintf(w, "    %s\n", line)
			if opts.ShowCaret {
				fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", caretPad(line, d.Offset)))
			}
		}
	}
	fmt.Fprintf(w, "%s: %s\n", paint(categoryColor, d.Category.String()), d.Msg)
}

// caretPad converts a column in runes into a display width, so the caret
// stays aligned under wide characters.
func caretPad(line string, col int) int {
	pad := 0
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		pad += runewidth.RuneWidth(r)
	}
	return pad
}
