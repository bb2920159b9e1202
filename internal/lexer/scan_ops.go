package lexer

import (
	"adder/internal/diag"
	"adder/internal/token"
)

// scanOperator scans punctuation and operator tokens. Both "!=" and the
// legacy "<>" map to NotEq; the parser decides which spelling is legal
// from the token text.
func (lx *Lexer) scanOperator() (token.Token, *diag.Detail) {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case '+':
		kind = lx.withAssign(token.Plus, token.PlusAssign)
	case '-':
		kind = lx.withAssign(token.Minus, token.MinusAssign)
	case '*':
		if lx.cursor.Peek() == '*' {
			lx.cursor.Bump()
			kind = lx.withAssign(token.DoubleStar, token.DoubleStarAssign)
		} else {
			kind = lx.withAssign(token.Star, token.StarAssign)
		}
	case '/':
		if lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			kind = lx.withAssign(token.DoubleSlash, token.DoubleSlashAssign)
		} else {
			kind = lx.withAssign(token.Slash, token.SlashAssign)
		}
	case '%':
		kind = lx.withAssign(token.Percent, token.PercentAssign)
	case '<':
		switch lx.cursor.Peek() {
		case '=':
			lx.cursor.Bump()
			kind = token.LtEq
		case '>':
			lx.cursor.Bump()
			kind = token.NotEq
		default:
			kind = token.Lt
		}
	case '>':
		kind = lx.withAssign(token.Gt, token.GtEq)
	case '=':
		kind = lx.withAssign(token.Assign, token.EqEq)
	case '!':
		if lx.cursor.Peek() != '=' {
			return lx.errorLexeme(start)
		}
		lx.cursor.Bump()
		kind = token.NotEq
	case '(':
		lx.parenDepth++
		kind = token.LParen
	case ')':
		if lx.parenDepth > 0 {
			lx.parenDepth--
		}
		kind = token.RParen
	case '[':
		lx.parenDepth++
		kind = token.LBracket
	case ']':
		if lx.parenDepth > 0 {
			lx.parenDepth--
		}
		kind = token.RBracket
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	default:
		return lx.errorLexeme(start)
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}, nil
}

// withAssign returns augmented when the next byte is '=', consuming it.
func (lx *Lexer) withAssign(plain, augmented token.Kind) token.Kind {
	if lx.cursor.Peek() == '=' {
		lx.cursor.Bump()
		return augmented
	}
	return plain
}

// errorLexeme wraps an unclassifiable byte in an ERRORTOKEN. The stream
// stays alive; the parser turns it into an "invalid token" error.
func (lx *Lexer) errorLexeme(start uint32) (token.Token, *diag.Detail) {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.ErrorToken, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}, nil
}
