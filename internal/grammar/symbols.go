package grammar

import "adder/internal/token"

// Symbol labels an arc in a grammar automaton. Values below ntBase are
// terminals and coincide with token.Kind; values at or above ntBase are
// nonterminals.
type Symbol uint16

const ntBase Symbol = 256

const (
	NtFileInput Symbol = ntBase + iota
	NtEvalInput
	NtSingleInput
	NtStmt
	NtSimpleStmt
	NtSmallStmt
	NtExprStmt
	NtAugAssign
	NtDelStmt
	NtPassStmt
	NtFlowStmt
	NtBreakStmt
	NtContinueStmt
	NtReturnStmt
	NtGlobalStmt
	NtCompoundStmt
	NtIfStmt
	NtWhileStmt
	NtForStmt
	NtFuncDef
	NtParameters
	NtParamList
	NtClassDef
	NtSuite
	NtTest
	NtOrTest
	NtAndTest
	NtNotTest
	NtComparison
	NtCompOp
	NtArithExpr
	NtTerm
	NtFactor
	NtPower
	NtAtomExpr
	NtTrailer
	NtArgList
	NtAtom
	NtTestList
	NtExprList

	ntEnd
)

// Term wraps a token kind as an arc label.
func Term(k token.Kind) Symbol {
	return Symbol(k)
}

// IsNonterminal reports whether the symbol names a grammar rule.
func (s Symbol) IsNonterminal() bool {
	return s >= ntBase
}

// Kind returns the token kind of a terminal symbol.
func (s Symbol) Kind() token.Kind {
	return token.Kind(s)
}

var symbolNames = map[Symbol]string{
	NtFileInput:    "file_input",
	NtEvalInput:    "eval_input",
	NtSingleInput:  "single_input",
	NtStmt:         "stmt",
	NtSimpleStmt:   "simple_stmt",
	NtSmallStmt:    "small_stmt",
	NtExprStmt:     "expr_stmt",
	NtAugAssign:    "augassign",
	NtDelStmt:      "del_stmt",
	NtPassStmt:     "pass_stmt",
	NtFlowStmt:     "flow_stmt",
	NtBreakStmt:    "break_stmt",
	NtContinueStmt: "continue_stmt",
	NtReturnStmt:   "return_stmt",
	NtGlobalStmt:   "global_stmt",
	NtCompoundStmt: "compound_stmt",
	NtIfStmt:       "if_stmt",
	NtWhileStmt:    "while_stmt",
	NtForStmt:      "for_stmt",
	NtFuncDef:      "funcdef",
	NtParameters:   "parameters",
	NtParamList:    "paramlist",
	NtClassDef:     "classdef",
	NtSuite:        "suite",
	NtTest:         "test",
	NtOrTest:       "or_test",
	NtAndTest:      "and_test",
	NtNotTest:      "not_test",
	NtComparison:   "comparison",
	NtCompOp:       "comp_op",
	NtArithExpr:    "arith_expr",
	NtTerm:         "term",
	NtFactor:       "factor",
	NtPower:        "power",
	NtAtomExpr:     "atom_expr",
	NtTrailer:      "trailer",
	NtArgList:      "arglist",
	NtAtom:         "atom",
	NtTestList:     "testlist",
	NtExprList:     "exprlist",
}

func (s Symbol) String() string {
	if s.IsNonterminal() {
		if name, ok := symbolNames[s]; ok {
			return name
		}
		return "unknown_nonterminal"
	}
	return s.Kind().String()
}
