package diag

import (
	"fmt"
)

// Category is the user-facing classification of a failed compilation,
// ordered by dispatch priority (highest first).
type Category uint8

const (
	// CatInterrupt is a user-requested cancellation.
	CatInterrupt Category = iota
	// CatMemory is an allocation failure.
	CatMemory
	// CatTab is ambiguous tab/space indentation.
	CatTab
	// CatIndentation is a structural indentation error.
	CatIndentation
	// CatSyntax is every remaining lexical or grammatical error, including
	// decode failures (which carry the inner codec message).
	CatSyntax
	// CatValue is invalid input content (embedded NUL, length mismatch).
	CatValue
	// CatConfig is a bad mode, flag set, or optimize level, raised before
	// any parsing work.
	CatConfig
	// CatValidation is a structurally illegal AST.
	CatValidation
	// CatInternal is a defect in the front end itself.
	CatInternal
)

func (c Category) String() string {
	switch c {
	case CatInterrupt:
		return "KeyboardInterrupt"
	case CatMemory:
		return "MemoryError"
	case CatTab:
		return "TabError"
	case CatIndentation:
		return "IndentationError"
	case CatSyntax:
		return "SyntaxError"
	case CatValue:
		return "ValueError"
	case CatConfig:
		return "ConfigurationError"
	case CatValidation:
		return "ValidationError"
	}
	return "InternalError"
}

// Diagnostic is the terminal artifact of a failed compilation. It is
// constructed once, outlives every arena, and implements error.
type Diagnostic struct {
	Category Category
	Msg      string
	Filename string
	Line     int    // 1-based, 0 when the failure has no position
	Offset   int    // 0-based column in decoded-character units
	Text     string // offending line, decoded permissively; "" if absent
}

func (d *Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: %s (%s, line %d)", d.Category, d.Msg, d.Filename, d.Line)
	}
	return fmt.Sprintf("%s: %s", d.Category, d.Msg)
}

// HasPosition reports whether the diagnostic points at a source location.
func (d *Diagnostic) HasPosition() bool { return d.Line > 0 }

// NewConfigError builds a position-free configuration diagnostic.
func NewConfigError(msg string) *Diagnostic {
	return &Diagnostic{Category: CatConfig, Msg: msg}
}

// NewValueError builds a position-free value diagnostic.
func NewValueError(msg string) *Diagnostic {
	return &Diagnostic{Category: CatValue, Msg: msg}
}

// NewValidationError builds a position-free validation diagnostic.
func NewValidationError(msg string) *Diagnostic {
	return &Diagnostic{Category: CatValidation, Msg: msg}
}
