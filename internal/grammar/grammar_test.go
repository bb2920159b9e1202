package grammar_test

import (
	"testing"

	"adder/internal/grammar"
	"adder/internal/token"
)

func TestFirstSets(t *testing.T) {
	g := grammar.Tables()

	cases := []struct {
		sym  grammar.Symbol
		in   []token.Kind
		out  []token.Kind
		name string
	}{
		{
			sym:  grammar.NtStmt,
			in:   []token.Kind{token.Name, token.KwIf, token.KwPass, token.KwDel, token.Number, token.KwNot, token.Minus, token.LParen, token.KwDef, token.KwClass, token.KwGlobal, token.KwReturn},
			out:  []token.Kind{token.Newline, token.Indent, token.Dedent, token.KwElse, token.KwIn, token.Assign, token.Comma},
			name: "stmt",
		},
		{
			sym:  grammar.NtCompoundStmt,
			in:   []token.Kind{token.KwIf, token.KwWhile, token.KwFor, token.KwDef, token.KwClass},
			out:  []token.Kind{token.Name, token.KwPass, token.KwElif},
			name: "compound_stmt",
		},
		{
			sym:  grammar.NtTest,
			in:   []token.Kind{token.KwNot, token.Name, token.Number, token.String, token.KwNone, token.KwTrue, token.KwFalse, token.LParen, token.LBracket, token.Plus, token.Minus},
			out:  []token.Kind{token.KwIf, token.Assign, token.RParen, token.KwOr},
			name: "test",
		},
		{
			sym:  grammar.NtExprList,
			in:   []token.Kind{token.Name, token.LParen, token.Minus},
			out:  []token.Kind{token.KwNot},
			name: "exprlist",
		},
		{
			sym:  grammar.NtCompOp,
			in:   []token.Kind{token.Lt, token.Gt, token.EqEq, token.NotEq, token.LtEq, token.GtEq, token.KwIn, token.KwIs, token.KwNot},
			out:  []token.Kind{token.Assign, token.Name},
			name: "comp_op",
		},
		{
			sym:  grammar.NtTrailer,
			in:   []token.Kind{token.LParen, token.LBracket, token.Dot},
			out:  []token.Kind{token.Name, token.RParen},
			name: "trailer",
		},
	}

	for _, tc := range cases {
		first := g.First(tc.sym)
		for _, k := range tc.in {
			if !first.Has(k) {
				t.Errorf("%s: FIRST missing %s", tc.name, k)
			}
		}
		for _, k := range tc.out {
			if first.Has(k) {
				t.Errorf("%s: FIRST wrongly contains %s", tc.name, k)
			}
		}
	}
}

// TestStatesAreDeterministic checks that in every state, no lookahead kind
// can select two different arcs. The parser relies on this to pick arcs
// without backtracking.
func TestStatesAreDeterministic(t *testing.T) {
	g := grammar.Tables()

	allRules := []grammar.Symbol{
		grammar.NtFileInput, grammar.NtEvalInput, grammar.NtSingleInput,
		grammar.NtStmt, grammar.NtSimpleStmt, grammar.NtSmallStmt,
		grammar.NtExprStmt, grammar.NtAugAssign, grammar.NtDelStmt,
		grammar.NtPassStmt, grammar.NtFlowStmt, grammar.NtBreakStmt,
		grammar.NtContinueStmt, grammar.NtReturnStmt, grammar.NtGlobalStmt,
		grammar.NtCompoundStmt, grammar.NtIfStmt, grammar.NtWhileStmt,
		grammar.NtForStmt, grammar.NtFuncDef, grammar.NtParameters,
		grammar.NtParamList, grammar.NtClassDef, grammar.NtSuite,
		grammar.NtTest, grammar.NtOrTest, grammar.NtAndTest, grammar.NtNotTest,
		grammar.NtComparison, grammar.NtCompOp, grammar.NtArithExpr,
		grammar.NtTerm, grammar.NtFactor, grammar.NtPower, grammar.NtAtomExpr,
		grammar.NtTrailer, grammar.NtArgList, grammar.NtAtom,
		grammar.NtTestList, grammar.NtExprList,
	}

	for _, sym := range allRules {
		d := g.DFA(sym)
		if d == nil {
			t.Fatalf("no DFA for %v", sym)
		}
		for si, st := range d.States {
			var claimed [token.KindCount]bool
			for _, a := range st.Arcs {
				for k := token.Kind(1); k < token.KindCount; k++ {
					if !g.StartsWith(a.Label, k) {
						continue
					}
					if claimed[k] {
						t.Errorf("%s state %d: lookahead %s selects two arcs", d.Name, si, k)
					}
					claimed[k] = true
				}
			}
		}
	}
}

func TestStartSymbolsExist(t *testing.T) {
	g := grammar.Tables()
	for _, sym := range []grammar.Symbol{grammar.NtFileInput, grammar.NtEvalInput, grammar.NtSingleInput} {
		if g.DFA(sym) == nil {
			t.Fatalf("missing start rule %v", sym)
		}
		if g.DFA(sym).States[0].Accept {
			t.Fatalf("start rule %v accepts the empty input", sym)
		}
	}
}
