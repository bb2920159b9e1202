package parser

import (
	"adder/internal/diag"
	"adder/internal/grammar"
	"adder/internal/lexer"
	"adder/internal/source"
	"adder/internal/token"
)

// ParseSource tokenizes a file and drives the automaton to completion for
// the given start rule.
func ParseSource(file *source.File, start grammar.Symbol, opts Options) (*Tree, *diag.Detail) {
	lx := lexer.New(file, lexer.Options{DontImplyDedent: opts.DontImplyDedent})
	ps := New(file, start, opts)
	for {
		tok, det := lx.Next()
		if det != nil {
			return nil, det
		}
		if det := ps.AddToken(tok); det != nil {
			return nil, det
		}
		if ps.Done() {
			if start == grammar.NtSingleInput {
				if det := singleLeftover(file, lx.Offset()); det != nil {
					return nil, det
				}
			}
			return ps.Tree(), nil
		}
		if tok.Kind == token.EndMarker {
			return nil, ps.detailFor(diag.KindEOF, tok)
		}
	}
}

// singleLeftover checks that nothing but whitespace and comments follows a
// completed single-input parse.
func singleLeftover(file *source.File, off uint32) *diag.Detail {
	content := file.Content
	for i := int(off); i < len(content); i++ {
		switch content[i] {
		case ' ', '\t', '\f', '\n':
		case '#':
			for i < len(content) && content[i] != '\n' {
				i++
			}
		default:
			pos := file.Pos(uint32(i))
			return &diag.Detail{
				Kind:     diag.KindBadSingle,
				Line:     int(pos.Line),
				Offset:   int(pos.Col - 1),
				Text:     file.GetLine(pos.Line),
				Filename: file.Path,
			}
		}
	}
	return nil
}
