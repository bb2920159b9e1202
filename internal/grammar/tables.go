package grammar

import "adder/internal/token"

// Tables returns the shared grammar. The automata are immutable after init.
func Tables() *Grammar {
	return tables
}

var tables *Grammar

func arc(label Symbol, target uint8) Arc {
	return Arc{Label: label, Target: target}
}

func state(arcs ...Arc) State {
	return State{Arcs: arcs}
}

func accept(arcs ...Arc) State {
	return State{Arcs: arcs, Accept: true}
}

func rule(sym Symbol, states ...State) *DFA {
	return &DFA{Symbol: sym, Name: sym.String(), States: states}
}

func init() {
	t := func(k token.Kind) Symbol { return Term(k) }

	tables = newGrammar([]*DFA{
		// file_input: (NEWLINE | stmt)* ENDMARKER
		rule(NtFileInput,
			state(arc(t(token.Newline), 0), arc(NtStmt, 0), arc(t(token.EndMarker), 1)),
			accept(),
		),
		// eval_input: testlist NEWLINE* ENDMARKER
		rule(NtEvalInput,
			state(arc(NtTestList, 1)),
			state(arc(t(token.Newline), 1), arc(t(token.EndMarker), 2)),
			accept(),
		),
		// single_input: NEWLINE | simple_stmt | compound_stmt NEWLINE
		rule(NtSingleInput,
			state(arc(t(token.Newline), 1), arc(NtSimpleStmt, 1), arc(NtCompoundStmt, 2)),
			accept(),
			state(arc(t(token.Newline), 1)),
		),
		// stmt: simple_stmt | compound_stmt
		rule(NtStmt,
			state(arc(NtSimpleStmt, 1), arc(NtCompoundStmt, 1)),
			accept(),
		),
		// simple_stmt: small_stmt (';' small_stmt)* [';'] NEWLINE
		rule(NtSimpleStmt,
			state(arc(NtSmallStmt, 1)),
			state(arc(t(token.Semicolon), 2), arc(t(token.Newline), 3)),
			state(arc(NtSmallStmt, 1), arc(t(token.Newline), 3)),
			accept(),
		),
		// small_stmt: expr_stmt | del_stmt | pass_stmt | flow_stmt | global_stmt
		rule(NtSmallStmt,
			state(arc(NtExprStmt, 1), arc(NtDelStmt, 1), arc(NtPassStmt, 1),
				arc(NtFlowStmt, 1), arc(NtGlobalStmt, 1)),
			accept(),
		),
		// expr_stmt: testlist (augassign testlist | ('=' testlist)*)
		rule(NtExprStmt,
			state(arc(NtTestList, 1)),
			accept(arc(NtAugAssign, 2), arc(t(token.Assign), 3)),
			state(arc(NtTestList, 4)),
			state(arc(NtTestList, 5)),
			accept(),
			accept(arc(t(token.Assign), 3)),
		),
		// augassign: '+=' | '-=' | '*=' | '/=' | '%=' | '**=' | '//='
		rule(NtAugAssign,
			state(
				arc(t(token.PlusAssign), 1), arc(t(token.MinusAssign), 1),
				arc(t(token.StarAssign), 1), arc(t(token.SlashAssign), 1),
				arc(t(token.PercentAssign), 1), arc(t(token.DoubleStarAssign), 1),
				arc(t(token.DoubleSlashAssign), 1),
			),
			accept(),
		),
		// del_stmt: 'del' exprlist
		rule(NtDelStmt,
			state(arc(t(token.KwDel), 1)),
			state(arc(NtExprList, 2)),
			accept(),
		),
		// pass_stmt: 'pass'
		rule(NtPassStmt,
			state(arc(t(token.KwPass), 1)),
			accept(),
		),
		// flow_stmt: break_stmt | continue_stmt | return_stmt
		rule(NtFlowStmt,
			state(arc(NtBreakStmt, 1), arc(NtContinueStmt, 1), arc(NtReturnStmt, 1)),
			accept(),
		),
		rule(NtBreakStmt,
			state(arc(t(token.KwBreak), 1)),
			accept(),
		),
		rule(NtContinueStmt,
			state(arc(t(token.KwContinue), 1)),
			accept(),
		),
		// return_stmt: 'return' [testlist]
		rule(NtReturnStmt,
			state(arc(t(token.KwReturn), 1)),
			accept(arc(NtTestList, 2)),
			accept(),
		),
		// global_stmt: 'global' NAME (',' NAME)*
		rule(NtGlobalStmt,
			state(arc(t(token.KwGlobal), 1)),
			state(arc(t(token.Name), 2)),
			accept(arc(t(token.Comma), 3)),
			state(arc(t(token.Name), 2)),
		),
		// compound_stmt: if_stmt | while_stmt | for_stmt | funcdef | classdef
		rule(NtCompoundStmt,
			state(arc(NtIfStmt, 1), arc(NtWhileStmt, 1), arc(NtForStmt, 1),
				arc(NtFuncDef, 1), arc(NtClassDef, 1)),
			accept(),
		),
		// if_stmt: 'if' test ':' suite ('elif' test ':' suite)* ['else' ':' suite]
		rule(NtIfStmt,
			state(arc(t(token.KwIf), 1)),
			state(arc(NtTest, 2)),
			state(arc(t(token.Colon), 3)),
			state(arc(NtSuite, 4)),
			accept(arc(t(token.KwElif), 1), arc(t(token.KwElse), 5)),
			state(arc(t(token.Colon), 6)),
			state(arc(NtSuite, 7)),
			accept(),
		),
		// while_stmt: 'while' test ':' suite ['else' ':' suite]
		rule(NtWhileStmt,
			state(arc(t(token.KwWhile), 1)),
			state(arc(NtTest, 2)),
			state(arc(t(token.Colon), 3)),
			state(arc(NtSuite, 4)),
			accept(arc(t(token.KwElse), 5)),
			state(arc(t(token.Colon), 6)),
			state(arc(NtSuite, 7)),
			accept(),
		),
		// for_stmt: 'for' exprlist 'in' testlist ':' suite ['else' ':' suite]
		rule(NtForStmt,
			state(arc(t(token.KwFor), 1)),
			state(arc(NtExprList, 2)),
			state(arc(t(token.KwIn), 3)),
			state(arc(NtTestList, 4)),
			state(arc(t(token.Colon), 5)),
			state(arc(NtSuite, 6)),
			accept(arc(t(token.KwElse), 7)),
			state(arc(t(token.Colon), 8)),
			state(arc(NtSuite, 9)),
			accept(),
		),
		// funcdef: 'def' NAME parameters ':' suite
		rule(NtFuncDef,
			state(arc(t(token.KwDef), 1)),
			state(arc(t(token.Name), 2)),
			state(arc(NtParameters, 3)),
			state(arc(t(token.Colon), 4)),
			state(arc(NtSuite, 5)),
			accept(),
		),
		// parameters: '(' [paramlist] ')'
		rule(NtParameters,
			state(arc(t(token.LParen), 1)),
			state(arc(t(token.RParen), 3), arc(NtParamList, 2)),
			state(arc(t(token.RParen), 3)),
			accept(),
		),
		// paramlist: NAME ['=' test] (',' NAME ['=' test])* [',']
		rule(NtParamList,
			state(arc(t(token.Name), 1)),
			accept(arc(t(token.Comma), 2), arc(t(token.Assign), 3)),
			accept(arc(t(token.Name), 1)),
			state(arc(NtTest, 4)),
			accept(arc(t(token.Comma), 2)),
		),
		// classdef: 'class' NAME ['(' [arglist] ')'] ':' suite
		rule(NtClassDef,
			state(arc(t(token.KwClass), 1)),
			state(arc(t(token.Name), 2)),
			state(arc(t(token.Colon), 5), arc(t(token.LParen), 3)),
			state(arc(t(token.RParen), 4), arc(NtArgList, 6)),
			state(arc(t(token.Colon), 5)),
			state(arc(NtSuite, 7)),
			state(arc(t(token.RParen), 4)),
			accept(),
		),
		// suite: simple_stmt | NEWLINE INDENT stmt+ DEDENT
		rule(NtSuite,
			state(arc(NtSimpleStmt, 1), arc(t(token.Newline), 2)),
			accept(),
			state(arc(t(token.Indent), 3)),
			state(arc(NtStmt, 4)),
			state(arc(NtStmt, 4), arc(t(token.Dedent), 1)),
		),
		// test: or_test ['if' or_test 'else' test]
		rule(NtTest,
			state(arc(NtOrTest, 1)),
			accept(arc(t(token.KwIf), 2)),
			state(arc(NtOrTest, 3)),
			state(arc(t(token.KwElse), 4)),
			state(arc(NtTest, 5)),
			accept(),
		),
		// or_test: and_test ('or' and_test)*
		rule(NtOrTest,
			state(arc(NtAndTest, 1)),
			accept(arc(t(token.KwOr), 2)),
			state(arc(NtAndTest, 1)),
		),
		// and_test: not_test ('and' not_test)*
		rule(NtAndTest,
			state(arc(NtNotTest, 1)),
			accept(arc(t(token.KwAnd), 2)),
			state(arc(NtNotTest, 1)),
		),
		// not_test: 'not' not_test | comparison
		rule(NtNotTest,
			state(arc(t(token.KwNot), 1), arc(NtComparison, 2)),
			state(arc(NtNotTest, 2)),
			accept(),
		),
		// comparison: arith_expr (comp_op arith_expr)*
		rule(NtComparison,
			state(arc(NtArithExpr, 1)),
			accept(arc(NtCompOp, 2)),
			state(arc(NtArithExpr, 1)),
		),
		// comp_op: '<'|'>'|'=='|'>='|'<='|'!='|'in'|'not' 'in'|'is' ['not']
		rule(NtCompOp,
			state(
				arc(t(token.Lt), 1), arc(t(token.Gt), 1), arc(t(token.EqEq), 1),
				arc(t(token.GtEq), 1), arc(t(token.LtEq), 1), arc(t(token.NotEq), 1),
				arc(t(token.KwIn), 1), arc(t(token.KwIs), 2), arc(t(token.KwNot), 3),
			),
			accept(),
			accept(arc(t(token.KwNot), 1)),
			state(arc(t(token.KwIn), 1)),
		),
		// arith_expr: term (('+'|'-') term)*
		rule(NtArithExpr,
			state(arc(NtTerm, 1)),
			accept(arc(t(token.Plus), 2), arc(t(token.Minus), 2)),
			state(arc(NtTerm, 1)),
		),
		// term: factor (('*'|'/'|'%'|'//') factor)*
		rule(NtTerm,
			state(arc(NtFactor, 1)),
			accept(arc(t(token.Star), 2), arc(t(token.Slash), 2),
				arc(t(token.Percent), 2), arc(t(token.DoubleSlash), 2)),
			state(arc(NtFactor, 1)),
		),
		// factor: ('+'|'-') factor | power
		rule(NtFactor,
			state(arc(t(token.Plus), 1), arc(t(token.Minus), 1), arc(NtPower, 2)),
			state(arc(NtFactor, 2)),
			accept(),
		),
		// power: atom_expr ['**' factor]
		rule(NtPower,
			state(arc(NtAtomExpr, 1)),
			accept(arc(t(token.DoubleStar), 2)),
			state(arc(NtFactor, 3)),
			accept(),
		),
		// atom_expr: atom trailer*
		rule(NtAtomExpr,
			state(arc(NtAtom, 1)),
			accept(arc(NtTrailer, 1)),
		),
		// trailer: '(' [arglist] ')' | '[' test ']' | '.' NAME
		rule(NtTrailer,
			state(arc(t(token.LParen), 1), arc(t(token.LBracket), 4), arc(t(token.Dot), 6)),
			state(arc(t(token.RParen), 3), arc(NtArgList, 2)),
			state(arc(t(token.RParen), 3)),
			accept(),
			state(arc(NtTest, 5)),
			state(arc(t(token.RBracket), 3)),
			state(arc(t(token.Name), 3)),
		),
		// arglist: test (',' test)* [',']
		rule(NtArgList,
			state(arc(NtTest, 1)),
			accept(arc(t(token.Comma), 2)),
			accept(arc(NtTest, 1)),
		),
		// atom: '(' [testlist] ')' | '[' [testlist] ']'
		//     | NAME | NUMBER | STRING+ | 'None' | 'True' | 'False'
		rule(NtAtom,
			state(
				arc(t(token.Name), 1), arc(t(token.Number), 1), arc(t(token.String), 2),
				arc(t(token.KwNone), 1), arc(t(token.KwTrue), 1), arc(t(token.KwFalse), 1),
				arc(t(token.LParen), 3), arc(t(token.LBracket), 5),
			),
			accept(),
			accept(arc(t(token.String), 2)),
			state(arc(t(token.RParen), 1), arc(NtTestList, 4)),
			state(arc(t(token.RParen), 1)),
			state(arc(t(token.RBracket), 1), arc(NtTestList, 6)),
			state(arc(t(token.RBracket), 1)),
		),
		// testlist: test (',' test)* [',']
		rule(NtTestList,
			state(arc(NtTest, 1)),
			accept(arc(t(token.Comma), 2)),
			accept(arc(NtTest, 1)),
		),
		// exprlist: arith_expr (',' arith_expr)* [',']
		rule(NtExprList,
			state(arc(NtArithExpr, 1)),
			accept(arc(t(token.Comma), 2)),
			accept(arc(NtArithExpr, 1)),
		),
	})
}
