package diag

import (
	"strings"
	"unicode/utf8"

	"adder/internal/token"
)

// FromDetail maps an internal error record to its user-facing Diagnostic.
// Pure function; the kind dispatch and message table are fixed.
func FromDetail(d *Detail) *Diagnostic {
	cat := CatSyntax
	msg := ""

	switch d.Kind {
	case KindInterrupt:
		cat = CatInterrupt
	case KindNoMemory:
		cat = CatMemory
	case KindSyntax:
		switch {
		case d.Expected == token.Indent:
			cat = CatIndentation
			msg = "expected an indented block"
		case d.Token == token.Indent:
			cat = CatIndentation
			msg = "unexpected indent"
		case d.Token == token.Dedent:
			cat = CatIndentation
			msg = "unexpected unindent"
		case d.Expected == token.NotEq:
			msg = "with Barry as BDFL, use '<>' instead of '!='"
		case d.Msg != "":
			msg = d.Msg
		default:
			msg = "invalid syntax"
		}
	case KindToken:
		msg = "invalid token"
	case KindEOFString:
		msg = "EOF while scanning triple-quoted string literal"
	case KindEOLString:
		msg = "EOL while scanning string literal"
	case KindEOF:
		msg = "unexpected EOF while parsing"
	case KindTabSpace:
		cat = CatTab
		msg = "inconsistent use of tabs and spaces in indentation"
	case KindOverflow:
		msg = "expression too long"
	case KindDedent:
		cat = CatIndentation
		msg = "unindent does not match any outer indentation level"
	case KindTooDeep:
		cat = CatIndentation
		msg = "too many levels of indentation"
	case KindDecode:
		if d.Msg != "" {
			msg = d.Msg
		} else {
			msg = "unknown decode error"
		}
	case KindLineCont:
		msg = "unexpected character after line continuation character"
	case KindIdentifier:
		msg = "invalid character in identifier"
	case KindBadSingle:
		msg = "multiple statements found while compiling a single statement"
	default:
		cat = CatInternal
		msg = "unknown parsing error"
	}

	text, offset := decodeColumn(d.Text, d.Offset)
	return &Diagnostic{
		Category: cat,
		Msg:      msg,
		Filename: d.Filename,
		Line:     d.Line,
		Offset:   offset,
		Text:     text,
	}
}

// decodeColumn re-expresses a byte offset within a raw line as a column in
// decoded characters, replacing undecodable bytes. The raw line may not be
// valid UTF-8 when the failure came out of a decoding error.
func decodeColumn(text string, byteOff int) (string, int) {
	if text == "" {
		return "", byteOff
	}
	if byteOff < 0 {
		byteOff = 0
	}
	if byteOff > len(text) {
		byteOff = len(text)
	}
	decoded := strings.ToValidUTF8(text, string(utf8.RuneError))
	prefix := strings.ToValidUTF8(text[:byteOff], string(utf8.RuneError))
	return decoded, utf8.RuneCountInString(prefix)
}
