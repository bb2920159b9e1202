package lexer

import (
	"adder/internal/diag"
	"adder/internal/token"
)

// scanNumber scans an integer or floating point literal. Malformed literals
// become ERRORTOKEN; the parser reports them as "invalid token".
func (lx *Lexer) scanNumber() (token.Token, *diag.Detail) {
	start := lx.cursor.Mark()

	consumed, ok := lx.radixLiteral()
	if !consumed {
		intSeen, intOK := lx.digits(isDigit)
		ok = intOK
		fracSeen := false
		if lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
			var fracOK bool
			fracSeen, fracOK = lx.digits(isDigit)
			ok = ok && fracOK && (intSeen || fracSeen)
		}
		if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			expSeen, expOK := lx.digits(isDigit)
			ok = ok && expSeen && expOK
		}
	}

	// A literal running straight into identifier characters is malformed.
	if isIdentContinue(lx.cursor.Peek()) {
		ok = false
		for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	kind := token.Number
	if !ok {
		kind = token.ErrorToken
	}
	return token.Token{Kind: kind, Span: sp, Text: text}, nil
}

// radixLiteral consumes 0x/0o/0b literals. consumed is false when the input
// is not a radix literal at all; ok reports digit validity.
func (lx *Lexer) radixLiteral() (consumed, ok bool) {
	if lx.cursor.Peek() != '0' {
		return false, false
	}
	var digit func(byte) bool
	switch lx.cursor.PeekAt(1) {
	case 'x', 'X':
		digit = isHexDigit
	case 'o', 'O':
		digit = isOctDigit
	case 'b', 'B':
		digit = isBinDigit
	default:
		return false, false
	}
	lx.cursor.Bump() // 0
	lx.cursor.Bump() // radix letter
	seen, wellFormed := lx.digits(digit)
	return true, seen && wellFormed
}

// digits consumes a run of digits with optional underscore separators.
// seen reports whether any digit was consumed; wellFormed is false when a
// separator leads or dangles.
func (lx *Lexer) digits(digit func(byte) bool) (seen, wellFormed bool) {
	wellFormed = true
	lastWasSep := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			seen = true
			lastWasSep = false
			lx.cursor.Bump()
		case b == '_':
			if !seen || lastWasSep {
				lx.cursor.Bump()
				return seen, false
			}
			lastWasSep = true
			lx.cursor.Bump()
		default:
			return seen, wellFormed && !lastWasSep
		}
	}
	return seen, wellFormed && !lastWasSep
}
