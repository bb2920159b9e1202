package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"adder/internal/source"
	"adder/internal/token"
)

// TokenOutput is the wire shape of one token.
type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
	EndLn uint32 `json:"end_line"`
	EndCl uint32 `json:"end_col"`
}

// FormatTokensPretty writes one token per line with kind, lexeme and span.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
	}
}

// FormatTokensJSON writes the token stream as one JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		output[i] = TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Line:  start.Line,
			Col:   start.Col,
			EndLn: end.Line,
			EndCl: end.Col,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
