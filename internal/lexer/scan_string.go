package lexer

import (
	"adder/internal/diag"
	"adder/internal/token"
)

// scanString scans a string literal. start marks the first byte of the whole
// literal, including any r/b/u/f prefix already consumed by scanName.
func (lx *Lexer) scanString(start uint32) (token.Token, *diag.Detail) {
	quote := lx.cursor.Peek()
	lx.cursor.Bump()

	quoteLen := 1
	if lx.cursor.Peek() == quote {
		lx.cursor.Bump()
		if lx.cursor.Peek() == quote {
			lx.cursor.Bump()
			quoteLen = 3
		} else {
			// Empty literal.
			return lx.stringToken(start), nil
		}
	}

	run := 0
	for {
		if lx.cursor.EOF() {
			if quoteLen == 3 {
				return lx.fail(lx.detailAt(diag.KindEOFString, start))
			}
			return lx.fail(lx.detailAt(diag.KindEOLString, start))
		}
		ch := lx.cursor.Peek()
		if ch == '\n' && quoteLen == 1 {
			return lx.fail(lx.detailAt(diag.KindEOLString, start))
		}
		lx.cursor.Bump()
		switch ch {
		case '\\':
			// Backslash escapes the next byte, newline included. Raw
			// strings differ only in value, not in extent.
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			run = 0
		case quote:
			run++
			if run == quoteLen {
				return lx.stringToken(start), nil
			}
		default:
			run = 0
		}
	}
}

func (lx *Lexer) stringToken(start uint32) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.String, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
