package lexer

import (
	"unicode"
	"unicode/utf8"

	"adder/internal/diag"
	"adder/internal/token"
)

// scanName scans an identifier or keyword. A short run of prefix letters
// immediately followed by a quote restarts as a string literal.
func (lx *Lexer) scanName() (token.Token, *diag.Detail) {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinue(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= 0x80 {
			r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
			if r == utf8.RuneError || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return lx.fail(lx.detailAt(diag.KindIdentifier, lx.cursor.Off))
			}
			for i := 0; i < size; i++ {
				lx.cursor.Bump()
			}
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	b := lx.cursor.Peek()
	if (b == '"' || b == '\'') && isStringPrefix(text) {
		return lx.scanString(start)
	}
	return token.Token{Kind: token.LookupKeyword(text), Span: sp, Text: text}, nil
}
