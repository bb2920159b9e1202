package lexer

import (
	"adder/internal/diag"
	"adder/internal/source"
	"adder/internal/token"
)

// Lexer turns one file's content into a token stream. The stream is finite
// and non-restartable: after the first error Next keeps returning the same
// detail, and after ENDMARKER it keeps returning ENDMARKER.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	pending []token.Token // queued DEDENT/NEWLINE/ENDMARKER tokens

	indents    []uint32 // indentation stack, tab = 8 columns
	altIndents []uint32 // parallel stack under the alternate tab width

	parenDepth  int
	atLineStart bool
	sawToken    bool
	finished    bool
	detail      *diag.Detail
}

// New creates a lexer over an already-normalized file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []uint32{0},
		altIndents:  []uint32{0},
		atLineStart: true,
	}
}

// Next returns the next token, or the error detail that ended the stream.
func (lx *Lexer) Next() (token.Token, *diag.Detail) {
	tok, det := lx.scan()
	if det == nil && tok.Kind != token.EndMarker {
		lx.sawToken = true
	}
	return tok, det
}

func (lx *Lexer) scan() (token.Token, *diag.Detail) {
	if lx.detail != nil {
		return token.Token{Kind: token.ErrorToken, Span: lx.emptySpan()}, lx.detail
	}
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok, nil
	}
	if lx.finished {
		return token.Token{Kind: token.EndMarker, Span: lx.emptySpan()}, nil
	}

	for {
		if lx.atLineStart && lx.parenDepth == 0 {
			tok, det, emitted := lx.lineStart()
			if det != nil {
				return lx.fail(det)
			}
			if emitted {
				return tok, nil
			}
		}

		if lx.cursor.EOF() {
			return lx.finish()
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\f':
			lx.cursor.Bump()

		case ch == '#':
			lx.skipComment()

		case ch == '\n':
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.parenDepth > 0 {
				continue
			}
			lx.atLineStart = true
			return token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"}, nil

		case ch == '\\':
			off := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() != '\n' {
				return lx.fail(lx.detailAt(diag.KindLineCont, off))
			}
			lx.cursor.Bump()

		case isIdentStart(ch) || ch >= 0x80:
			return lx.scanName()

		case isDigit(ch) || (ch == '.' && isDigit(lx.cursor.PeekAt(1))):
			return lx.scanNumber()

		case ch == '"' || ch == '\'':
			return lx.scanString(lx.cursor.Mark())

		default:
			return lx.scanOperator()
		}
	}
}

// lineStart consumes indentation (skipping blank and comment-only lines) and
// emits INDENT/DEDENT tokens or an indentation error.
func (lx *Lexer) lineStart() (token.Token, *diag.Detail, bool) {
	for {
		lineOff := lx.cursor.Mark()
		var col, altcol uint32
		for {
			switch lx.cursor.Peek() {
			case ' ':
				col++
				altcol++
			case '\t':
				col = (col/tabSize + 1) * tabSize
				altcol += altTabSize
			case '\f':
				col, altcol = 0, 0
			default:
				goto measured
			}
			lx.cursor.Bump()
		}
	measured:
		if lx.cursor.EOF() {
			// Whitespace-only final line; finish() takes over.
			return token.Token{}, nil, false
		}
		ch := lx.cursor.Peek()
		isComment := ch == '#'
		if isComment {
			lx.skipComment()
			ch = lx.cursor.Peek()
		}
		if ch == '\n' {
			// A totally empty line ends a command group in interactive
			// mode; everywhere else blank lines produce no tokens.
			blank := !isComment && col == 0 && altcol == 0
			if !blank || !lx.opts.DontImplyDedent {
				lx.cursor.Bump()
				continue
			}
		}
		if lx.cursor.EOF() {
			return token.Token{}, nil, false
		}

		lx.atLineStart = false
		top := lx.indents[len(lx.indents)-1]
		altTop := lx.altIndents[len(lx.altIndents)-1]

		switch {
		case col == top:
			if altcol != altTop {
				return token.Token{}, lx.detailAt(diag.KindTabSpace, lx.cursor.Off), false
			}
			return token.Token{}, nil, false

		case col > top:
			if altcol <= altTop {
				return token.Token{}, lx.detailAt(diag.KindTabSpace, lx.cursor.Off), false
			}
			if len(lx.indents) >= MaxIndent {
				return token.Token{}, lx.detailAt(diag.KindTooDeep, lx.cursor.Off), false
			}
			lx.indents = append(lx.indents, col)
			lx.altIndents = append(lx.altIndents, altcol)
			sp := lx.cursor.SpanFrom(lineOff)
			return token.Token{Kind: token.Indent, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}, nil, true

		default:
			count := 0
			for len(lx.indents) > 1 && col < lx.indents[len(lx.indents)-1] {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.altIndents = lx.altIndents[:len(lx.altIndents)-1]
				count++
			}
			if col != lx.indents[len(lx.indents)-1] {
				return token.Token{}, lx.detailAt(diag.KindDedent, lx.cursor.Off), false
			}
			if altcol != lx.altIndents[len(lx.altIndents)-1] {
				return token.Token{}, lx.detailAt(diag.KindTabSpace, lx.cursor.Off), false
			}
			sp := lx.cursor.SpanFrom(lineOff)
			first := token.Token{Kind: token.Dedent, Span: sp}
			for i := 1; i < count; i++ {
				lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
			}
			return first, nil, true
		}
	}
}

// finish emits the tokens implied at end of input: a synthetic NEWLINE when
// the last line had content, the DEDENTs unwinding the indentation stack, a
// closing NEWLINE when the input produced any token at all, and the terminal
// ENDMARKER.
func (lx *Lexer) finish() (token.Token, *diag.Detail) {
	lx.finished = true
	sp := lx.emptySpan()

	if !lx.opts.DontImplyDedent && lx.parenDepth == 0 {
		if !lx.atLineStart {
			lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: sp})
			lx.atLineStart = true
		}
		for len(lx.indents) > 1 {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.altIndents = lx.altIndents[:len(lx.altIndents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		}
		// After the dedents, not before: a compound statement in single
		// mode ends at DEDENT and still needs this NEWLINE to close its
		// production.
		if lx.sawToken {
			lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: sp})
		}
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EndMarker, Span: sp})

	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok, nil
}

// Offset returns the current byte position in the file's content.
func (lx *Lexer) Offset() uint32 {
	return lx.cursor.Off
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// detailAt builds an error detail pointing at the given byte offset.
func (lx *Lexer) detailAt(kind diag.Kind, off uint32) *diag.Detail {
	pos := lx.file.Pos(off)
	return &diag.Detail{
		Kind:     kind,
		Line:     int(pos.Line),
		Offset:   int(pos.Col - 1),
		Text:     lx.file.GetLine(pos.Line),
		Filename: lx.file.Path,
	}
}

func (lx *Lexer) fail(d *diag.Detail) (token.Token, *diag.Detail) {
	lx.detail = d
	return token.Token{Kind: token.ErrorToken, Span: lx.emptySpan()}, d
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
