package diag

import (
	"adder/internal/token"
)

// Kind identifies the low-level failure a pipeline stage observed.
// The set is closed; translation to a user-facing Diagnostic is a fixed
// priority-ordered match in FromDetail.
type Kind uint8

const (
	// KindNone is the zero value; a Detail never carries it.
	KindNone Kind = iota
	// KindSyntax is a generic grammar mismatch.
	KindSyntax
	// KindToken is a lexeme the tokenizer flagged as ERRORTOKEN.
	KindToken
	// KindEOFString is an unterminated triple-quoted string at end of input.
	KindEOFString
	// KindEOLString is an unterminated single-line string.
	KindEOLString
	// KindInterrupt is a user-requested cancellation observed during parsing.
	KindInterrupt
	// KindNoMemory is an allocation failure.
	KindNoMemory
	// KindEOF is end of input before the grammar completed.
	KindEOF
	// KindTabSpace is ambiguous tab/space indentation.
	KindTabSpace
	// KindOverflow is parse-tree growth past the node budget.
	KindOverflow
	// KindDedent is a dedent matching no outer indentation level.
	KindDedent
	// KindTooDeep is nesting past the depth bound.
	KindTooDeep
	// KindDecode is source bytes invalid under the declared encoding.
	KindDecode
	// KindLineCont is a stray character after a line-continuation backslash.
	KindLineCont
	// KindIdentifier is an invalid character inside an identifier.
	KindIdentifier
	// KindBadSingle is more than one statement in "single" mode.
	KindBadSingle
)

// Detail is the internal error record a failing stage produces. It carries at
// most one message source: either Msg is set (pre-rendered, e.g. from a nested
// decode failure) or the text is derived from Kind during translation.
type Detail struct {
	Kind     Kind
	Token    token.Kind // actual token at the failure, Invalid if not applicable
	Expected token.Kind // expected token, Invalid if unknown
	Line     int        // 1-based
	Offset   int        // 0-based byte offset within the offending line
	Text     string     // raw text of the offending line, "" if absent
	Msg      string     // pre-rendered message, "" to derive from Kind
	Filename string
}
