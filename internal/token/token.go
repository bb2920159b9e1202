package token

import (
	"adder/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFalse && t.Kind <= KwWhile
}

// IsOperator reports whether the token is a punctuation or operator.
func (t Token) IsOperator() bool {
	return t.Kind >= Plus && t.Kind <= Dot
}

// IsAugAssign reports whether the token is an augmented assignment operator.
func (t Token) IsAugAssign() bool {
	return t.Kind >= PlusAssign && t.Kind <= DoubleSlashAssign
}

// Terminates reports whether the token ends a token stream.
func (t Token) Terminates() bool {
	return t.Kind == EndMarker
}
