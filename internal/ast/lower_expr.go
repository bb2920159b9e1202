package ast

import (
	"fmt"
	"strings"

	"adder/internal/diag"
	"adder/internal/grammar"
	"adder/internal/parser"
	"adder/internal/token"
)

// lowerExpr lowers any expression-shaped rule. Wrapper rules with a single
// child are drilled through without allocating nodes.
func (lo *lowerer) lowerExpr(n parser.NodeID) (ExprID, *diag.Detail) {
	cst := lo.cst
	for {
		if cst.NumChildren(n) == 1 {
			c := cst.Child(n, 0)
			if !cst.IsTerminal(c) && cst.Sym(n) != grammar.NtAtom {
				n = c
				continue
			}
		}
		break
	}

	sp := cst.Span(n)
	switch cst.Sym(n) {
	case grammar.NtTest:
		// body 'if' test 'else' orelse
		body, det := lo.lowerExpr(cst.Child(n, 0))
		if det != nil {
			return NoExpr, det
		}
		cond, det := lo.lowerExpr(cst.Child(n, 2))
		if det != nil {
			return NoExpr, det
		}
		orElse, det := lo.lowerExpr(cst.Child(n, 4))
		if det != nil {
			return NoExpr, det
		}
		return lo.out.NewIfExp(sp, cond, body, orElse), nil

	case grammar.NtOrTest, grammar.NtAndTest:
		op := OpOr
		if cst.Sym(n) == grammar.NtAndTest {
			op = OpAnd
		}
		var values []ExprID
		for i := 0; i < cst.NumChildren(n); i += 2 {
			v, det := lo.lowerExpr(cst.Child(n, i))
			if det != nil {
				return NoExpr, det
			}
			values = append(values, v)
		}
		return lo.out.NewBoolOp(sp, op, values), nil

	case grammar.NtNotTest:
		operand, det := lo.lowerExpr(cst.Child(n, 1))
		if det != nil {
			return NoExpr, det
		}
		return lo.out.NewUnaryOp(sp, OpNot, operand), nil

	case grammar.NtComparison:
		left, det := lo.lowerExpr(cst.Child(n, 0))
		if det != nil {
			return NoExpr, det
		}
		var ops []CmpOp
		var comparators []ExprID
		for i := 1; i < cst.NumChildren(n); i += 2 {
			ops = append(ops, lo.cmpOp(cst.Child(n, i)))
			c, det := lo.lowerExpr(cst.Child(n, i+1))
			if det != nil {
				return NoExpr, det
			}
			comparators = append(comparators, c)
		}
		return lo.out.NewCompare(sp, left, ops, comparators), nil

	case grammar.NtArithExpr, grammar.NtTerm:
		left, det := lo.lowerExpr(cst.Child(n, 0))
		if det != nil {
			return NoExpr, det
		}
		for i := 1; i < cst.NumChildren(n); i += 2 {
			right, det := lo.lowerExpr(cst.Child(n, i+1))
			if det != nil {
				return NoExpr, det
			}
			opSpan := cst.Span(cst.Child(n, 0)).Cover(cst.Span(cst.Child(n, i+1)))
			left = lo.out.NewBinOp(opSpan, left, binOperator(cst.Tok(cst.Child(n, i)).Kind), right)
		}
		return left, nil

	case grammar.NtFactor:
		operand, det := lo.lowerExpr(cst.Child(n, 1))
		if det != nil {
			return NoExpr, det
		}
		op := OpUAdd
		if cst.Tok(cst.Child(n, 0)).Kind == token.Minus {
			op = OpUSub
		}
		return lo.out.NewUnaryOp(sp, op, operand), nil

	case grammar.NtPower:
		left, det := lo.lowerExpr(cst.Child(n, 0))
		if det != nil {
			return NoExpr, det
		}
		right, det := lo.lowerExpr(cst.Child(n, 2))
		if det != nil {
			return NoExpr, det
		}
		return lo.out.NewBinOp(sp, left, OpPow, right), nil

	case grammar.NtAtomExpr:
		return lo.lowerAtomExpr(n)

	case grammar.NtAtom:
		return lo.lowerAtom(n)

	case grammar.NtTestList, grammar.NtExprList:
		elts, det := lo.lowerListElems(n)
		if det != nil {
			return NoExpr, det
		}
		if len(elts) == 1 && cst.NumChildren(n) == 1 {
			return elts[0], nil
		}
		return lo.out.NewTuple(sp, elts), nil
	}
	return NoExpr, lo.errorAt(sp, fmt.Sprintf("unexpected expression rule %v", cst.Sym(n)))
}

// lowerListElems lowers the expression children of a testlist or exprlist
// without joining them into a tuple.
func (lo *lowerer) lowerListElems(n parser.NodeID) ([]ExprID, *diag.Detail) {
	cst := lo.cst
	var elts []ExprID
	for _, c := range cst.Children(n) {
		if cst.IsTerminal(c) {
			continue
		}
		e, det := lo.lowerExpr(c)
		if det != nil {
			return nil, det
		}
		elts = append(elts, e)
	}
	return elts, nil
}

func (lo *lowerer) lowerAtomExpr(n parser.NodeID) (ExprID, *diag.Detail) {
	cst := lo.cst
	value, det := lo.lowerAtom(cst.Child(n, 0))
	if det != nil {
		return NoExpr, det
	}
	base := cst.Span(cst.Child(n, 0))

	for i := 1; i < cst.NumChildren(n); i++ {
		tr := cst.Child(n, i)
		sp := base.Cover(cst.Span(tr))
		switch cst.Tok(cst.Child(tr, 0)).Kind {
		case token.LParen:
			var args []ExprID
			if cst.Sym(cst.Child(tr, 1)) == grammar.NtArgList {
				args, det = lo.lowerListElems(cst.Child(tr, 1))
				if det != nil {
					return NoExpr, det
				}
			}
			value = lo.out.NewCall(sp, value, args)
		case token.LBracket:
			index, det := lo.lowerExpr(cst.Child(tr, 1))
			if det != nil {
				return NoExpr, det
			}
			value = lo.out.NewSubscript(sp, value, index)
		case token.Dot:
			attr := lo.intern(cst.Tok(cst.Child(tr, 1)).Text)
			value = lo.out.NewAttribute(sp, value, attr)
		}
	}
	return value, nil
}

func (lo *lowerer) lowerAtom(n parser.NodeID) (ExprID, *diag.Detail) {
	cst := lo.cst
	sp := cst.Span(n)
	first := cst.Child(n, 0)
	tok := cst.Tok(first)

	switch tok.Kind {
	case token.Name:
		return lo.out.NewName(sp, lo.intern(tok.Text)), nil
	case token.Number:
		return lo.out.NewNum(sp, tok.Text), nil
	case token.String:
		var sb strings.Builder
		for _, c := range cst.Children(n) {
			part, err := decodeStringLiteral(cst.Tok(c).Text)
			if err != nil {
				return NoExpr, lo.errorAt(cst.Span(c), err.Error())
			}
			sb.WriteString(part)
		}
		return lo.out.NewStr(sp, sb.String()), nil
	case token.KwNone:
		return lo.out.NewNameConst(sp, SingletonNone), nil
	case token.KwTrue:
		return lo.out.NewNameConst(sp, SingletonTrue), nil
	case token.KwFalse:
		return lo.out.NewNameConst(sp, SingletonFalse), nil

	case token.LParen:
		if cst.NumChildren(n) == 2 {
			return lo.out.NewTuple(sp, nil), nil
		}
		inner := cst.Child(n, 1)
		// A parenthesized single expression without a trailing comma is
		// just that expression; anything else is a tuple.
		if cst.NumChildren(inner) == 1 {
			return lo.lowerExpr(inner)
		}
		elts, det := lo.lowerListElems(inner)
		if det != nil {
			return NoExpr, det
		}
		return lo.out.NewTuple(sp, elts), nil

	case token.LBracket:
		var elts []ExprID
		if cst.NumChildren(n) == 3 {
			var det *diag.Detail
			elts, det = lo.lowerListElems(cst.Child(n, 1))
			if det != nil {
				return NoExpr, det
			}
		}
		return lo.out.NewList(sp, elts), nil
	}
	return NoExpr, lo.errorAt(sp, fmt.Sprintf("unexpected atom token %v", tok.Kind))
}

// cmpOp maps a comp_op node to its operator.
func (lo *lowerer) cmpOp(n parser.NodeID) CmpOp {
	cst := lo.cst
	first := cst.Tok(cst.Child(n, 0)).Kind
	if cst.NumChildren(n) == 2 {
		if first == token.KwNot {
			return CmpNotIn
		}
		return CmpIsNot
	}
	switch first {
	case token.Lt:
		return CmpLt
	case token.Gt:
		return CmpGt
	case token.EqEq:
		return CmpEq
	case token.LtEq:
		return CmpLtE
	case token.GtEq:
		return CmpGtE
	case token.NotEq:
		return CmpNotEq
	case token.KwIn:
		return CmpIn
	}
	return CmpIs
}

func binOperator(k token.Kind) Operator {
	switch k {
	case token.Plus:
		return OpAdd
	case token.Minus:
		return OpSub
	case token.Star:
		return OpMult
	case token.Slash:
		return OpDiv
	case token.Percent:
		return OpMod
	case token.DoubleStar:
		return OpPow
	}
	return OpFloorDiv
}

// setContext marks an assignable expression as a store or delete target
// and rejects everything else with the matching message.
func (lo *lowerer) setContext(e ExprID, ctx Ctx) *diag.Detail {
	var desc string
	switch lo.out.ExprKindOf(e) {
	case ExprName:
		lo.out.Name(e).Ctx = ctx
		return nil
	case ExprAttribute:
		lo.out.Attribute(e).Ctx = ctx
		return nil
	case ExprSubscript:
		lo.out.Subscript(e).Ctx = ctx
		return nil
	case ExprTuple:
		t := lo.out.Tuple(e)
		t.Ctx = ctx
		for _, elt := range t.Elts {
			if det := lo.setContext(elt, ctx); det != nil {
				return det
			}
		}
		return nil
	case ExprList:
		l := lo.out.List(e)
		l.Ctx = ctx
		for _, elt := range l.Elts {
			if det := lo.setContext(elt, ctx); det != nil {
				return det
			}
		}
		return nil
	case ExprBoolOp, ExprBinOp, ExprUnaryOp:
		desc = "operator"
	case ExprCompare:
		desc = "comparison"
	case ExprIfExp:
		desc = "conditional expression"
	case ExprCall:
		desc = "function call"
	case ExprNum, ExprStr:
		desc = "literal"
	case ExprNameConst:
		desc = "keyword"
	default:
		desc = "expression"
	}
	verb := "assign to"
	if ctx == Del {
		verb = "delete"
	}
	return lo.errorAt(lo.out.ExprSpan(e), fmt.Sprintf("can't %s %s", verb, desc))
}
