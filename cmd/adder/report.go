package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"adder/internal/diag"
	"adder/internal/diagfmt"
)

// errSilent signals a failure already printed as a diagnostic; main exits
// nonzero without cobra repeating the message.
var errSilent = errors.New("")

// reportDiagnostic pretty-prints one diagnostic to stderr.
func reportDiagnostic(cmd *cobra.Command, d *diag.Diagnostic) {
	diagfmt.Pretty(os.Stderr, d, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowCaret: true,
	})
}
