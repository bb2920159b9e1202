package diagfmt

import (
	"encoding/json"
	"io"

	"adder/internal/diag"
)

// DiagnosticJSON is the wire shape of one diagnostic.
type DiagnosticJSON struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Text     string `json:"text,omitempty"`
}

// ToJSON converts a diagnostic into its serializable form.
func ToJSON(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Category: d.Category.String(),
		Message:  d.Msg,
		Filename: d.Filename,
		Text:     d.Text,
	}
	if d.HasPosition() {
		out.Line = d.Line
		out.Column = d.Offset
	}
	return out
}

// WriteJSON writes one diagnostic as an indented JSON document.
func WriteJSON(w io.Writer, d *diag.Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToJSON(d))
}
