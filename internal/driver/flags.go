package driver

import (
	"fmt"

	"adder/internal/ast"
	"adder/internal/diag"
	"adder/internal/grammar"
)

// Flags is the compile option bitset. An unrecognized bit is a configuration
// error, raised before any tokenizing.
type Flags uint32

const (
	// FlagIgnoreCookie skips the encoding-declaration sniff on byte input.
	FlagIgnoreCookie Flags = 1 << iota
	// FlagDontImplyDedent suppresses the synthetic NEWLINE and DEDENT tokens
	// implied at end of input. Interactive front ends set it while a block
	// is still open.
	FlagDontImplyDedent
	// FlagASTOnly stops the pipeline after validation and returns the tree.
	FlagASTOnly
	// FlagBarryAsBDFL swaps the spelling of the inequality operator.
	FlagBarryAsBDFL
)

const validFlags = FlagIgnoreCookie | FlagDontImplyDedent | FlagASTOnly | FlagBarryAsBDFL

// Has reports whether every bit of f2 is set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Mode selects the grammatical entry point.
type Mode uint8

const (
	// ModeExec parses a whole module.
	ModeExec Mode = iota
	// ModeEval parses one bare expression.
	ModeEval
	// ModeSingle parses one interactive statement.
	ModeSingle
)

func (m Mode) String() string {
	switch m {
	case ModeExec:
		return "exec"
	case ModeEval:
		return "eval"
	case ModeSingle:
		return "single"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode maps a mode string onto its Mode. Anything outside
// {"exec","eval","single"} is a configuration error.
func ParseMode(s string) (Mode, *diag.Diagnostic) {
	switch s {
	case "exec":
		return ModeExec, nil
	case "eval":
		return ModeEval, nil
	case "single":
		return ModeSingle, nil
	}
	return 0, diag.NewConfigError(fmt.Sprintf("compile mode must be 'exec', 'eval' or 'single', not %q", s))
}

func (m Mode) startSymbol() grammar.Symbol {
	switch m {
	case ModeEval:
		return grammar.NtEvalInput
	case ModeSingle:
		return grammar.NtSingleInput
	}
	return grammar.NtFileInput
}

func (m Mode) astMode() ast.Mode {
	switch m {
	case ModeEval:
		return ast.ExpressionMode
	case ModeSingle:
		return ast.InteractiveMode
	}
	return ast.ModuleMode
}

// Env carries ambient compiler state inherited from an enclosing execution
// context. A nil Env inherits nothing.
type Env struct {
	Flags    Flags
	Optimize int
}

// merge folds the ambient state into explicit arguments. An explicit
// optimize of -1 defers to the environment.
func (e *Env) merge(flags Flags, optimize int) (Flags, int) {
	if e == nil {
		if optimize == -1 {
			optimize = 0
		}
		return flags, optimize
	}
	if optimize == -1 {
		optimize = e.Optimize
	}
	if optimize == -1 {
		optimize = 0
	}
	return flags | e.Flags, optimize
}
