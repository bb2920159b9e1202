package lexer

// MaxIndent bounds the indentation stack; deeper nesting is E_TOODEEP.
const MaxIndent = 100

// tabSize is the column width of a tab for indentation accounting.
// altTabSize is the alternate interpretation used to detect ambiguous
// tab/space mixes: both interpretations must order lines identically.
const (
	tabSize    = 8
	altTabSize = 1
)

// Options configures one tokenizing run.
type Options struct {
	// DontImplyDedent suppresses the synthetic NEWLINE and DEDENT tokens
	// normally implied at end of input (interactive mode).
	DontImplyDedent bool
}
