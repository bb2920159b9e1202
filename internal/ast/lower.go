package ast

import (
	"fmt"

	"adder/internal/diag"
	"adder/internal/grammar"
	"adder/internal/parser"
	"adder/internal/source"
	"adder/internal/token"
)

// Lower converts a concrete parse tree into an abstract tree. Assignment
// target checks happen here; structural checks against a caller-supplied
// tree live in the validate package.
func Lower(cst *parser.Tree, file *source.File) (*Tree, *diag.Detail) {
	lo := &lowerer{cst: cst, file: file}
	root := cst.Root()
	switch cst.Sym(root) {
	case grammar.NtFileInput:
		lo.out = NewTree(ModuleMode)
		for _, c := range cst.Children(root) {
			if cst.Sym(c) != grammar.NtStmt {
				continue
			}
			if det := lo.appendStmt(c, &lo.out.Body); det != nil {
				return nil, det
			}
		}
	case grammar.NtEvalInput:
		lo.out = NewTree(ExpressionMode)
		expr, det := lo.lowerExpr(cst.Child(root, 0))
		if det != nil {
			return nil, det
		}
		lo.out.Root = expr
	case grammar.NtSingleInput:
		lo.out = NewTree(InteractiveMode)
		first := cst.Child(root, 0)
		if cst.IsTerminal(first) {
			break // a lone NEWLINE lowers to an empty body
		}
		if det := lo.appendStmt(first, &lo.out.Body); det != nil {
			return nil, det
		}
	default:
		return nil, lo.errorAt(cst.Span(root), fmt.Sprintf("unexpected start rule %v", cst.Sym(root)))
	}
	lo.out.Src = file
	return lo.out, nil
}

type lowerer struct {
	cst  *parser.Tree
	file *source.File
	out  *Tree
}

// errorAt builds a syntax detail anchored at the span start.
func (lo *lowerer) errorAt(sp source.Span, msg string) *diag.Detail {
	pos := lo.file.Pos(sp.Start)
	return &diag.Detail{
		Kind:     diag.KindSyntax,
		Msg:      msg,
		Line:     int(pos.Line),
		Offset:   int(pos.Col - 1),
		Text:     lo.file.GetLine(pos.Line),
		Filename: lo.file.Path,
	}
}

func (lo *lowerer) intern(s string) source.StringID {
	return lo.out.Names.Intern(s)
}

// appendStmt lowers a stmt, simple_stmt or compound_stmt node into out.
func (lo *lowerer) appendStmt(n parser.NodeID, out *[]StmtID) *diag.Detail {
	cst := lo.cst
	switch cst.Sym(n) {
	case grammar.NtStmt:
		return lo.appendStmt(cst.Child(n, 0), out)

	case grammar.NtSimpleStmt:
		for _, c := range cst.Children(n) {
			if cst.Sym(c) != grammar.NtSmallStmt {
				continue
			}
			id, det := lo.lowerSmallStmt(cst.Child(c, 0))
			if det != nil {
				return det
			}
			*out = append(*out, id)
		}
		return nil

	case grammar.NtCompoundStmt:
		id, det := lo.lowerCompoundStmt(cst.Child(n, 0))
		if det != nil {
			return det
		}
		*out = append(*out, id)
		return nil
	}
	return lo.errorAt(cst.Span(n), fmt.Sprintf("unexpected statement rule %v", cst.Sym(n)))
}

func (lo *lowerer) lowerSmallStmt(n parser.NodeID) (StmtID, *diag.Detail) {
	cst := lo.cst
	sp := cst.Span(n)
	switch cst.Sym(n) {
	case grammar.NtExprStmt:
		return lo.lowerExprStmt(n)

	case grammar.NtDelStmt:
		targets, det := lo.lowerListElems(cst.Child(n, 1))
		if det != nil {
			return NoStmt, det
		}
		for _, tgt := range targets {
			if det := lo.setContext(tgt, Del); det != nil {
				return NoStmt, det
			}
		}
		return lo.out.NewDelete(sp, targets), nil

	case grammar.NtPassStmt:
		return lo.out.NewPass(sp), nil

	case grammar.NtFlowStmt:
		return lo.lowerFlowStmt(cst.Child(n, 0))

	case grammar.NtGlobalStmt:
		var names []source.StringID
		for _, c := range cst.Children(n) {
			if cst.IsTerminal(c) && cst.Tok(c).Kind == token.Name {
				names = append(names, lo.intern(cst.Tok(c).Text))
			}
		}
		return lo.out.NewGlobal(sp, names), nil
	}
	return NoStmt, lo.errorAt(sp, fmt.Sprintf("unexpected small statement rule %v", cst.Sym(n)))
}

func (lo *lowerer) lowerFlowStmt(n parser.NodeID) (StmtID, *diag.Detail) {
	cst := lo.cst
	sp := cst.Span(n)
	switch cst.Sym(n) {
	case grammar.NtBreakStmt:
		return lo.out.NewBreak(sp), nil
	case grammar.NtContinueStmt:
		return lo.out.NewContinue(sp), nil
	case grammar.NtReturnStmt:
		value := NoExpr
		if cst.NumChildren(n) > 1 {
			v, det := lo.lowerExpr(cst.Child(n, 1))
			if det != nil {
				return NoStmt, det
			}
			value = v
		}
		return lo.out.NewReturn(sp, value), nil
	}
	return NoStmt, lo.errorAt(sp, fmt.Sprintf("unexpected flow statement rule %v", cst.Sym(n)))
}

// lowerExprStmt handles plain expressions, chained assignment and augmented
// assignment.
func (lo *lowerer) lowerExprStmt(n parser.NodeID) (StmtID, *diag.Detail) {
	cst := lo.cst
	sp := cst.Span(n)

	if cst.NumChildren(n) == 1 {
		value, det := lo.lowerExpr(cst.Child(n, 0))
		if det != nil {
			return NoStmt, det
		}
		return lo.out.NewExprStmt(sp, value), nil
	}

	if cst.Sym(cst.Child(n, 1)) == grammar.NtAugAssign {
		target, det := lo.lowerExpr(cst.Child(n, 0))
		if det != nil {
			return NoStmt, det
		}
		if det := lo.setContext(target, Store); det != nil {
			return NoStmt, det
		}
		switch lo.out.ExprKindOf(target) {
		case ExprName, ExprAttribute, ExprSubscript:
		default:
			return NoStmt, lo.errorAt(lo.out.ExprSpan(target),
				"illegal expression for augmented assignment")
		}
		op := augOperator(cst.Tok(cst.Child(cst.Child(n, 1), 0)).Kind)
		value, det := lo.lowerExpr(cst.Child(n, 2))
		if det != nil {
			return NoStmt, det
		}
		return lo.out.NewAugAssign(sp, target, op, value), nil
	}

	// testlist ('=' testlist)+: every testlist but the last is a target.
	var targets []ExprID
	for i := 0; i+2 < cst.NumChildren(n); i += 2 {
		tgt, det := lo.lowerExpr(cst.Child(n, i))
		if det != nil {
			return NoStmt, det
		}
		if det := lo.setContext(tgt, Store); det != nil {
			return NoStmt, det
		}
		targets = append(targets, tgt)
	}
	value, det := lo.lowerExpr(cst.Child(n, cst.NumChildren(n)-1))
	if det != nil {
		return NoStmt, det
	}
	return lo.out.NewAssign(sp, targets, value), nil
}

func augOperator(k token.Kind) Operator {
	switch k {
	case token.PlusAssign:
		return OpAdd
	case token.MinusAssign:
		return OpSub
	case token.StarAssign:
		return OpMult
	case token.SlashAssign:
		return OpDiv
	case token.PercentAssign:
		return OpMod
	case token.DoubleStarAssign:
		return OpPow
	}
	return OpFloorDiv
}

func (lo *lowerer) lowerCompoundStmt(n parser.NodeID) (StmtID, *diag.Detail) {
	switch lo.cst.Sym(n) {
	case grammar.NtIfStmt:
		return lo.lowerIfStmt(n)
	case grammar.NtWhileStmt:
		return lo.lowerWhileStmt(n)
	case grammar.NtForStmt:
		return lo.lowerForStmt(n)
	case grammar.NtFuncDef:
		return lo.lowerFuncDef(n)
	case grammar.NtClassDef:
		return lo.lowerClassDef(n)
	}
	return NoStmt, lo.errorAt(lo.cst.Span(n), fmt.Sprintf("unexpected compound statement rule %v", lo.cst.Sym(n)))
}

// lowerIfStmt folds an elif chain into nested If nodes, innermost last.
func (lo *lowerer) lowerIfStmt(n parser.NodeID) (StmtID, *diag.Detail) {
	cst := lo.cst
	nc := cst.NumChildren(n)

	var orElse []StmtID
	end := nc
	if cst.Tok(cst.Child(n, nc-3)).Kind == token.KwElse {
		body, det := lo.lowerSuite(cst.Child(n, nc-1))
		if det != nil {
			return NoStmt, det
		}
		orElse = body
		end = nc - 3
	}

	// Walk 'if'/'elif' groups of four children right to left.
	var result StmtID
	for i := end - 4; i >= 0; i -= 4 {
		test, det := lo.lowerExpr(cst.Child(n, i+1))
		if det != nil {
			return NoStmt, det
		}
		body, det := lo.lowerSuite(cst.Child(n, i+3))
		if det != nil {
			return NoStmt, det
		}
		sp := cst.Span(cst.Child(n, i)).Cover(cst.Span(cst.Child(n, i+3)))
		result = lo.out.NewIf(sp, test, body, orElse)
		orElse = []StmtID{result}
	}
	return result, nil
}

func (lo *lowerer) lowerWhileStmt(n parser.NodeID) (StmtID, *diag.Detail) {
	cst := lo.cst
	test, det := lo.lowerExpr(cst.Child(n, 1))
	if det != nil {
		return NoStmt, det
	}
	body, det := lo.lowerSuite(cst.Child(n, 3))
	if det != nil {
		return NoStmt, det
	}
	var orElse []StmtID
	if cst.NumChildren(n) > 4 {
		orElse, det = lo.lowerSuite(cst.Child(n, 6))
		if det != nil {
			return NoStmt, det
		}
	}
	return lo.out.NewWhile(cst.Span(n), test, body, orElse), nil
}

func (lo *lowerer) lowerForStmt(n parser.NodeID) (StmtID, *diag.Detail) {
	cst := lo.cst
	target, det := lo.lowerExpr(cst.Child(n, 1))
	if det != nil {
		return NoStmt, det
	}
	if det := lo.setContext(target, Store); det != nil {
		return NoStmt, det
	}
	iter, det := lo.lowerExpr(cst.Child(n, 3))
	if det != nil {
		return NoStmt, det
	}
	body, det := lo.lowerSuite(cst.Child(n, 5))
	if det != nil {
		return NoStmt, det
	}
	var orElse []StmtID
	if cst.NumChildren(n) > 6 {
		orElse, det = lo.lowerSuite(cst.Child(n, 8))
		if det != nil {
			return NoStmt, det
		}
	}
	return lo.out.NewFor(cst.Span(n), target, iter, body, orElse), nil
}

func (lo *lowerer) lowerFuncDef(n parser.NodeID) (StmtID, *diag.Detail) {
	cst := lo.cst
	name := lo.intern(cst.Tok(cst.Child(n, 1)).Text)

	var params []source.StringID
	var defaults []ExprID
	parameters := cst.Child(n, 2)
	for _, c := range cst.Children(parameters) {
		if cst.Sym(c) != grammar.NtParamList {
			continue
		}
		kids := cst.Children(c)
		for i := 0; i < len(kids); i++ {
			p := kids[i]
			if cst.IsTerminal(p) && cst.Tok(p).Kind == token.Name {
				params = append(params, lo.intern(cst.Tok(p).Text))
				if i+2 < len(kids) && cst.Tok(kids[i+1]).Kind == token.Assign {
					dflt, det := lo.lowerExpr(kids[i+2])
					if det != nil {
						return NoStmt, det
					}
					defaults = append(defaults, dflt)
					i += 2
				} else if len(defaults) > 0 {
					return NoStmt, lo.errorAt(cst.Span(p), "non-default argument follows default argument")
				}
			}
		}
	}

	body, det := lo.lowerSuite(cst.Child(n, 4))
	if det != nil {
		return NoStmt, det
	}
	return lo.out.NewFunctionDef(cst.Span(n), name, params, defaults, body), nil
}

func (lo *lowerer) lowerClassDef(n parser.NodeID) (StmtID, *diag.Detail) {
	cst := lo.cst
	name := lo.intern(cst.Tok(cst.Child(n, 1)).Text)

	var bases []ExprID
	for _, c := range cst.Children(n) {
		if cst.Sym(c) != grammar.NtArgList {
			continue
		}
		for _, a := range cst.Children(c) {
			if cst.Sym(a) != grammar.NtTest {
				continue
			}
			base, det := lo.lowerExpr(a)
			if det != nil {
				return NoStmt, det
			}
			bases = append(bases, base)
		}
	}

	body, det := lo.lowerSuite(cst.Children(n)[cst.NumChildren(n)-1])
	if det != nil {
		return NoStmt, det
	}
	return lo.out.NewClassDef(cst.Span(n), name, bases, body), nil
}

func (lo *lowerer) lowerSuite(n parser.NodeID) ([]StmtID, *diag.Detail) {
	cst := lo.cst
	var body []StmtID
	for _, c := range cst.Children(n) {
		if cst.IsTerminal(c) {
			continue
		}
		if det := lo.appendStmt(c, &body); det != nil {
			return nil, det
		}
	}
	return body, nil
}
