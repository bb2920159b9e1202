package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"adder/internal/ast"
	"adder/internal/parser"
	"adder/internal/source"
)

// DumpParseTree writes the concrete parse tree with one node per line,
// indented by depth. Terminals show their token text.
func DumpParseTree(w io.Writer, t *parser.Tree, fs *source.FileSet) {
	var walk func(id parser.NodeID, depth int)
	walk = func(id parser.NodeID, depth int) {
		indent := strings.Repeat("  ", depth)
		if t.IsTerminal(id) {
			tok := t.Tok(id)
			if tok.Text != "" {
				fmt.Fprintf(w, "%s%s %q\n", indent, tok.Kind, tok.Text)
			} else {
				fmt.Fprintf(w, "%s%s\n", indent, tok.Kind)
			}
			return
		}
		start, _ := fs.Resolve(t.Span(id))
		fmt.Fprintf(w, "%s%s (%d:%d)\n", indent, t.Sym(id), start.Line, start.Col)
		for _, c := range t.Children(id) {
			walk(c, depth+1)
		}
	}
	walk(t.Root(), 0)
}

// DumpAST writes the lowered tree in a compact s-expression form.
func DumpAST(w io.Writer, t *ast.Tree) {
	d := astDumper{w: w, t: t}
	switch t.Mode {
	case ast.ExpressionMode:
		fmt.Fprint(w, "Expression(")
		d.expr(t.Root)
		fmt.Fprintln(w, ")")
	case ast.InteractiveMode:
		d.block("Interactive", t.Body, 0)
	default:
		d.block("Module", t.Body, 0)
	}
}

type astDumper struct {
	w io.Writer
	t *ast.Tree
}

func (d *astDumper) block(label string, body []ast.StmtID, depth int) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), label)
	for _, id := range body {
		d.stmt(id, depth+1)
	}
}

func (d *astDumper) stmt(id ast.StmtID, depth int) {
	t := d.t
	indent := strings.Repeat("  ", depth)
	fmt.Fprint(d.w, indent)

	switch t.StmtKindOf(id) {
	case ast.StmtFunctionDef:
		fn := t.FunctionDef(id)
		fmt.Fprintf(d.w, "FunctionDef %s(", t.Names.MustLookup(fn.Name))
		firstDefault := len(fn.Params) - len(fn.Defaults)
		for i, p := range fn.Params {
			if i > 0 {
				fmt.Fprint(d.w, ", ")
			}
			fmt.Fprint(d.w, t.Names.MustLookup(p))
			if i >= firstDefault {
				fmt.Fprint(d.w, "=")
				d.expr(fn.Defaults[i-firstDefault])
			}
		}
		fmt.Fprintln(d.w, ")")
		for _, s := range fn.Body {
			d.stmt(s, depth+1)
		}
		return
	case ast.StmtClassDef:
		cls := t.ClassDef(id)
		fmt.Fprintf(d.w, "ClassDef %s", t.Names.MustLookup(cls.Name))
		for _, b := range cls.Bases {
			fmt.Fprint(d.w, " ")
			d.expr(b)
		}
		fmt.Fprintln(d.w)
		for _, s := range cls.Body {
			d.stmt(s, depth+1)
		}
		return
	case ast.StmtReturn:
		fmt.Fprint(d.w, "Return")
		if v := t.Return(id).Value; v != ast.NoExpr {
			fmt.Fprint(d.w, " ")
			d.expr(v)
		}
	case ast.StmtDelete:
		fmt.Fprint(d.w, "Delete")
		for _, tgt := range t.Delete(id).Targets {
			fmt.Fprint(d.w, " ")
			d.expr(tgt)
		}
	case ast.StmtAssign:
		as := t.Assign(id)
		fmt.Fprint(d.w, "Assign")
		for _, tgt := range as.Targets {
			fmt.Fprint(d.w, " ")
			d.expr(tgt)
		}
		fmt.Fprint(d.w, " = ")
		d.expr(as.Value)
	case ast.StmtAugAssign:
		aug := t.AugAssign(id)
		fmt.Fprint(d.w, "AugAssign ")
		d.expr(aug.Target)
		fmt.Fprintf(d.w, " %s= ", aug.Op)
		d.expr(aug.Value)
	case ast.StmtGlobal:
		names := t.Global(id).Names
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = t.Names.MustLookup(n)
		}
		fmt.Fprintf(d.w, "Global %s", strings.Join(parts, ", "))
	case ast.StmtExpr:
		fmt.Fprint(d.w, "Expr ")
		d.expr(t.ExprStmt(id).Value)
	case ast.StmtPass:
		fmt.Fprint(d.w, "Pass")
	case ast.StmtBreak:
		fmt.Fprint(d.w, "Break")
	case ast.StmtContinue:
		fmt.Fprint(d.w, "Continue")
	case ast.StmtIf:
		ifs := t.If(id)
		fmt.Fprint(d.w, "If ")
		d.expr(ifs.Test)
		fmt.Fprintln(d.w)
		for _, s := range ifs.Body {
			d.stmt(s, depth+1)
		}
		d.orElse(ifs.OrElse, depth)
		return
	case ast.StmtWhile:
		ws := t.While(id)
		fmt.Fprint(d.w, "While ")
		d.expr(ws.Test)
		fmt.Fprintln(d.w)
		for _, s := range ws.Body {
			d.stmt(s, depth+1)
		}
		d.orElse(ws.OrElse, depth)
		return
	case ast.StmtFor:
		fs := t.For(id)
		fmt.Fprint(d.w, "For ")
		d.expr(fs.Target)
		fmt.Fprint(d.w, " in ")
		d.expr(fs.Iter)
		fmt.Fprintln(d.w)
		for _, s := range fs.Body {
			d.stmt(s, depth+1)
		}
		d.orElse(fs.OrElse, depth)
		return
	}
	fmt.Fprintln(d.w)
}

func (d *astDumper) orElse(body []ast.StmtID, depth int) {
	if len(body) == 0 {
		return
	}
	fmt.Fprintf(d.w, "%sElse\n", strings.Repeat("  ", depth))
	for _, s := range body {
		d.stmt(s, depth+1)
	}
}

func (d *astDumper) expr(id ast.ExprID) {
	t := d.t
	switch t.ExprKindOf(id) {
	case ast.ExprBoolOp:
		b := t.BoolOp(id)
		fmt.Fprintf(d.w, "%s(", b.Op)
		d.exprList(b.Values)
		fmt.Fprint(d.w, ")")
	case ast.ExprBinOp:
		b := t.BinOp(id)
		fmt.Fprintf(d.w, "%s(", b.Op)
		d.expr(b.Left)
		fmt.Fprint(d.w, ", ")
		d.expr(b.Right)
		fmt.Fprint(d.w, ")")
	case ast.ExprUnaryOp:
		u := t.UnaryOp(id)
		fmt.Fprintf(d.w, "%s(", u.Op)
		d.expr(u.Operand)
		fmt.Fprint(d.w, ")")
	case ast.ExprCompare:
		cmp := t.Compare(id)
		fmt.Fprint(d.w, "Compare(")
		d.expr(cmp.Left)
		for i, op := range cmp.Ops {
			fmt.Fprintf(d.w, " %s ", op)
			d.expr(cmp.Comparators[i])
		}
		fmt.Fprint(d.w, ")")
	case ast.ExprCall:
		call := t.Call(id)
		fmt.Fprint(d.w, "Call(")
		d.expr(call.Func)
		if len(call.Args) > 0 {
			fmt.Fprint(d.w, ", ")
			d.exprList(call.Args)
		}
		fmt.Fprint(d.w, ")")
	case ast.ExprNum:
		fmt.Fprintf(d.w, "Num(%s)", t.Num(id).Literal)
	case ast.ExprStr:
		fmt.Fprintf(d.w, "Str(%q)", t.Str(id).Value)
	case ast.ExprNameConst:
		fmt.Fprint(d.w, t.NameConst(id).Value)
	case ast.ExprAttribute:
		at := t.Attribute(id)
		fmt.Fprint(d.w, "Attribute(")
		d.expr(at.Value)
		fmt.Fprintf(d.w, ", %s)", t.Names.MustLookup(at.Attr))
	case ast.ExprSubscript:
		sub := t.Subscript(id)
		fmt.Fprint(d.w, "Subscript(")
		d.expr(sub.Value)
		fmt.Fprint(d.w, ", ")
		d.expr(sub.Index)
		fmt.Fprint(d.w, ")")
	case ast.ExprName:
		fmt.Fprint(d.w, t.Names.MustLookup(t.Name(id).ID))
	case ast.ExprTuple:
		fmt.Fprint(d.w, "Tuple(")
		d.exprList(t.Tuple(id).Elts)
		fmt.Fprint(d.w, ")")
	case ast.ExprList:
		fmt.Fprint(d.w, "List(")
		d.exprList(t.List(id).Elts)
		fmt.Fprint(d.w, ")")
	case ast.ExprIfExp:
		ie := t.IfExp(id)
		fmt.Fprint(d.w, "IfExp(")
		d.expr(ie.Test)
		fmt.Fprint(d.w, ", ")
		d.expr(ie.Body)
		fmt.Fprint(d.w, ", ")
		d.expr(ie.OrElse)
		fmt.Fprint(d.w, ")")
	}
}

func (d *astDumper) exprList(ids []ast.ExprID) {
	for i, id := range ids {
		if i > 0 {
			fmt.Fprint(d.w, ", ")
		}
		d.expr(id)
	}
}
