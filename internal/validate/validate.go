// Package validate checks the structural integrity of a syntax tree that
// did not come out of this module's own lowering, typically one assembled
// by an embedding program before compilation.
package validate

import (
	"fmt"

	"adder/internal/ast"
	"adder/internal/diag"
)

// Tree verifies mode/root agreement and then every node reachable from the
// roots. The returned diagnostics carry no source position: a synthetic
// tree has none.
func Tree(t *ast.Tree) *diag.Diagnostic {
	v := &validator{t: t}
	switch t.Mode {
	case ast.ModuleMode, ast.InteractiveMode:
		if t.Root != ast.NoExpr {
			return diag.NewValidationError(fmt.Sprintf("%s tree must not carry a root expression", t.Mode))
		}
		return v.stmts(t.Body)
	case ast.ExpressionMode:
		if len(t.Body) != 0 {
			return diag.NewValidationError("Expression tree must not carry statements")
		}
		if t.Root == ast.NoExpr {
			return diag.NewValidationError("Expression tree has no root expression")
		}
		return v.expr(t.Root, ast.Load)
	}
	return diag.NewValidationError(fmt.Sprintf("unknown tree mode %d", t.Mode))
}

type validator struct {
	t *ast.Tree
}

func (v *validator) stmts(body []ast.StmtID) *diag.Diagnostic {
	for _, id := range body {
		if d := v.stmt(id); d != nil {
			return d
		}
	}
	return nil
}

// block checks a statement list that the grammar requires to be non-empty.
func (v *validator) block(owner string, body []ast.StmtID) *diag.Diagnostic {
	if len(body) == 0 {
		return diag.NewValidationError(fmt.Sprintf("empty body on %s", owner))
	}
	return v.stmts(body)
}

func (v *validator) stmt(id ast.StmtID) *diag.Diagnostic {
	t := v.t
	switch kind := t.StmtKindOf(id); kind {
	case ast.StmtFunctionDef:
		fn := t.FunctionDef(id)
		seen := make(map[string]struct{}, len(fn.Params))
		for _, p := range fn.Params {
			name := t.Names.MustLookup(p)
			if _, dup := seen[name]; dup {
				return diag.NewValidationError(fmt.Sprintf("duplicate argument '%s' in function definition", name))
			}
			seen[name] = struct{}{}
		}
		if len(fn.Defaults) > len(fn.Params) {
			return diag.NewValidationError("more defaults than arguments on FunctionDef")
		}
		for _, dflt := range fn.Defaults {
			if d := v.expr(dflt, ast.Load); d != nil {
				return d
			}
		}
		return v.block("FunctionDef", fn.Body)

	case ast.StmtClassDef:
		cls := t.ClassDef(id)
		for _, b := range cls.Bases {
			if d := v.expr(b, ast.Load); d != nil {
				return d
			}
		}
		return v.block("ClassDef", cls.Body)

	case ast.StmtReturn:
		if val := t.Return(id).Value; val != ast.NoExpr {
			return v.expr(val, ast.Load)
		}
		return nil

	case ast.StmtDelete:
		del := t.Delete(id)
		if len(del.Targets) == 0 {
			return diag.NewValidationError("empty targets on Delete")
		}
		for _, tgt := range del.Targets {
			if d := v.expr(tgt, ast.Del); d != nil {
				return d
			}
		}
		return nil

	case ast.StmtAssign:
		as := t.Assign(id)
		if len(as.Targets) == 0 {
			return diag.NewValidationError("empty targets on Assign")
		}
		for _, tgt := range as.Targets {
			if d := v.expr(tgt, ast.Store); d != nil {
				return d
			}
		}
		return v.expr(as.Value, ast.Load)

	case ast.StmtAugAssign:
		aug := t.AugAssign(id)
		switch t.ExprKindOf(aug.Target) {
		case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		default:
			return diag.NewValidationError("AugAssign target must be a name, attribute or subscript")
		}
		if d := v.expr(aug.Target, ast.Store); d != nil {
			return d
		}
		return v.expr(aug.Value, ast.Load)

	case ast.StmtFor:
		f := t.For(id)
		if d := v.expr(f.Target, ast.Store); d != nil {
			return d
		}
		if d := v.expr(f.Iter, ast.Load); d != nil {
			return d
		}
		if d := v.block("For", f.Body); d != nil {
			return d
		}
		return v.stmts(f.OrElse)

	case ast.StmtWhile:
		w := t.While(id)
		if d := v.expr(w.Test, ast.Load); d != nil {
			return d
		}
		if d := v.block("While", w.Body); d != nil {
			return d
		}
		return v.stmts(w.OrElse)

	case ast.StmtIf:
		ifs := t.If(id)
		if d := v.expr(ifs.Test, ast.Load); d != nil {
			return d
		}
		if d := v.block("If", ifs.Body); d != nil {
			return d
		}
		return v.stmts(ifs.OrElse)

	case ast.StmtGlobal:
		if len(t.Global(id).Names) == 0 {
			return diag.NewValidationError("empty names on Global")
		}
		return nil

	case ast.StmtExpr:
		return v.expr(t.ExprStmt(id).Value, ast.Load)

	case ast.StmtPass, ast.StmtBreak, ast.StmtContinue:
		return nil
	default:
		return diag.NewValidationError(fmt.Sprintf("unknown statement kind %d", kind))
	}
}

// expr checks one expression against the context its position demands.
func (v *validator) expr(id ast.ExprID, ctx ast.Ctx) *diag.Diagnostic {
	if id == ast.NoExpr {
		return diag.NewValidationError("missing expression node")
	}
	t := v.t
	kind := t.ExprKindOf(id)

	if ctx != ast.Load {
		switch kind {
		case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript, ast.ExprTuple, ast.ExprList:
		default:
			return diag.NewValidationError(fmt.Sprintf("expression of kind %s cannot be a %s target", kind, ctxWord(ctx)))
		}
	}

	switch kind {
	case ast.ExprBoolOp:
		b := t.BoolOp(id)
		if len(b.Values) < 2 {
			return diag.NewValidationError("BoolOp with less than 2 values")
		}
		for _, val := range b.Values {
			if d := v.expr(val, ast.Load); d != nil {
				return d
			}
		}
	case ast.ExprBinOp:
		b := t.BinOp(id)
		if d := v.expr(b.Left, ast.Load); d != nil {
			return d
		}
		return v.expr(b.Right, ast.Load)
	case ast.ExprUnaryOp:
		return v.expr(t.UnaryOp(id).Operand, ast.Load)
	case ast.ExprCompare:
		c := t.Compare(id)
		if len(c.Ops) == 0 || len(c.Ops) != len(c.Comparators) {
			return diag.NewValidationError("Compare with mismatched operators and comparators")
		}
		if d := v.expr(c.Left, ast.Load); d != nil {
			return d
		}
		for _, cmp := range c.Comparators {
			if d := v.expr(cmp, ast.Load); d != nil {
				return d
			}
		}
	case ast.ExprCall:
		call := t.Call(id)
		if d := v.expr(call.Func, ast.Load); d != nil {
			return d
		}
		for _, arg := range call.Args {
			if d := v.expr(arg, ast.Load); d != nil {
				return d
			}
		}
	case ast.ExprNum:
		if t.Num(id).Literal == "" {
			return diag.NewValidationError("Num with empty literal")
		}
	case ast.ExprStr, ast.ExprNameConst:
	case ast.ExprAttribute:
		if d := v.checkCtx(t.Attribute(id).Ctx, ctx); d != nil {
			return d
		}
		return v.expr(t.Attribute(id).Value, ast.Load)
	case ast.ExprSubscript:
		sub := t.Subscript(id)
		if d := v.checkCtx(sub.Ctx, ctx); d != nil {
			return d
		}
		if d := v.expr(sub.Value, ast.Load); d != nil {
			return d
		}
		return v.expr(sub.Index, ast.Load)
	case ast.ExprName:
		return v.checkCtx(t.Name(id).Ctx, ctx)
	case ast.ExprTuple:
		tup := t.Tuple(id)
		if d := v.checkCtx(tup.Ctx, ctx); d != nil {
			return d
		}
		for _, elt := range tup.Elts {
			if d := v.expr(elt, ctx); d != nil {
				return d
			}
		}
	case ast.ExprList:
		lst := t.List(id)
		if d := v.checkCtx(lst.Ctx, ctx); d != nil {
			return d
		}
		for _, elt := range lst.Elts {
			if d := v.expr(elt, ctx); d != nil {
				return d
			}
		}
	case ast.ExprIfExp:
		ie := t.IfExp(id)
		if d := v.expr(ie.Test, ast.Load); d != nil {
			return d
		}
		if d := v.expr(ie.Body, ast.Load); d != nil {
			return d
		}
		return v.expr(ie.OrElse, ast.Load)
	default:
		return diag.NewValidationError(fmt.Sprintf("unknown expression kind %d", kind))
	}
	return nil
}

func (v *validator) checkCtx(got, want ast.Ctx) *diag.Diagnostic {
	if got != want {
		return diag.NewValidationError(fmt.Sprintf("expression must have %s context but has %s instead", want, got))
	}
	return nil
}

func ctxWord(ctx ast.Ctx) string {
	if ctx == ast.Del {
		return "delete"
	}
	return "store"
}
