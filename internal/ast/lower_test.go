package ast_test

import (
	"testing"

	"adder/internal/ast"
	"adder/internal/diag"
	"adder/internal/grammar"
	"adder/internal/parser"
	"adder/internal/source"
)

func lowerSrc(t *testing.T, src string, start grammar.Symbol) (*ast.Tree, *diag.Detail) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.adr", []byte(src)))
	cst, det := parser.ParseSource(file, start, parser.Options{})
	if det != nil {
		t.Fatalf("parse of %q failed: %+v", src, det)
	}
	return ast.Lower(cst, file)
}

func mustLower(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, det := lowerSrc(t, src, grammar.NtFileInput)
	if det != nil {
		t.Fatalf("lowering of %q failed: kind=%v msg=%q", src, det.Kind, det.Msg)
	}
	return tree
}

func lowerError(t *testing.T, src string) *diag.Detail {
	t.Helper()
	_, det := lowerSrc(t, src, grammar.NtFileInput)
	if det == nil {
		t.Fatalf("lowering of %q succeeded, wanted an error", src)
	}
	return det
}

func TestLowerAssign(t *testing.T) {
	tree := mustLower(t, "x = 1\n")
	if len(tree.Body) != 1 || tree.StmtKindOf(tree.Body[0]) != ast.StmtAssign {
		t.Fatalf("body = %v", tree.Body)
	}
	as := tree.Assign(tree.Body[0])
	if len(as.Targets) != 1 {
		t.Fatalf("targets = %d", len(as.Targets))
	}
	tgt := as.Targets[0]
	if tree.ExprKindOf(tgt) != ast.ExprName || tree.Name(tgt).Ctx != ast.Store {
		t.Fatalf("target kind=%v ctx=%v", tree.ExprKindOf(tgt), tree.Name(tgt).Ctx)
	}
	if tree.Names.MustLookup(tree.Name(tgt).ID) != "x" {
		t.Fatalf("target name = %q", tree.Names.MustLookup(tree.Name(tgt).ID))
	}
	if tree.ExprKindOf(as.Value) != ast.ExprNum || tree.Num(as.Value).Literal != "1" {
		t.Fatalf("value = %v", tree.ExprKindOf(as.Value))
	}
}

func TestLowerChainedAssign(t *testing.T) {
	tree := mustLower(t, "a = b = 1\n")
	as := tree.Assign(tree.Body[0])
	if len(as.Targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(as.Targets))
	}
	for _, tgt := range as.Targets {
		if tree.Name(tgt).Ctx != ast.Store {
			t.Fatalf("target not in store context")
		}
	}
}

func TestLowerTupleTarget(t *testing.T) {
	tree := mustLower(t, "a, b = c\n")
	as := tree.Assign(tree.Body[0])
	tgt := as.Targets[0]
	if tree.ExprKindOf(tgt) != ast.ExprTuple {
		t.Fatalf("target kind = %v, want Tuple", tree.ExprKindOf(tgt))
	}
	tup := tree.Tuple(tgt)
	if tup.Ctx != ast.Store {
		t.Fatal("tuple not in store context")
	}
	for _, elt := range tup.Elts {
		if tree.Name(elt).Ctx != ast.Store {
			t.Fatal("tuple element not in store context")
		}
	}
}

func TestLowerAugAssign(t *testing.T) {
	tree := mustLower(t, "x //= 2\n")
	aug := tree.AugAssign(tree.Body[0])
	if aug.Op != ast.OpFloorDiv {
		t.Fatalf("op = %v, want FloorDiv", aug.Op)
	}
	if tree.Name(aug.Target).Ctx != ast.Store {
		t.Fatal("aug target not in store context")
	}
}

func TestAssignTargetErrors(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"1 = x\n", "can't assign to literal"},
		{"'s' = x\n", "can't assign to literal"},
		{"a + b = 1\n", "can't assign to operator"},
		{"not a = 1\n", "can't assign to operator"},
		{"f() = 1\n", "can't assign to function call"},
		{"None = 1\n", "can't assign to keyword"},
		{"True = 1\n", "can't assign to keyword"},
		{"a < b = 1\n", "can't assign to comparison"},
		{"a, 1 = x\n", "can't assign to literal"},
		{"del 1\n", "can't delete literal"},
		{"del f()\n", "can't delete function call"},
		{"x, y += 1\n", "illegal expression for augmented assignment"},
		{"1 += 1\n", "can't assign to literal"},
		{"for 1 in x:\n    pass\n", "can't assign to literal"},
	}
	for _, tc := range cases {
		det := lowerError(t, tc.src)
		if det.Kind != diag.KindSyntax || det.Msg != tc.msg {
			t.Errorf("input %q: kind=%v msg=%q, want %q", tc.src, det.Kind, det.Msg, tc.msg)
		}
	}
}

func TestLowerIfChain(t *testing.T) {
	tree := mustLower(t, "if a:\n    pass\nelif b:\n    x = 1\nelse:\n    pass\n")
	if len(tree.Body) != 1 {
		t.Fatalf("body = %d statements", len(tree.Body))
	}
	outer := tree.If(tree.Body[0])
	if len(outer.OrElse) != 1 || tree.StmtKindOf(outer.OrElse[0]) != ast.StmtIf {
		t.Fatalf("elif not nested in orelse")
	}
	inner := tree.If(outer.OrElse[0])
	if len(inner.Body) != 1 || tree.StmtKindOf(inner.Body[0]) != ast.StmtAssign {
		t.Fatalf("elif body wrong")
	}
	if len(inner.OrElse) != 1 || tree.StmtKindOf(inner.OrElse[0]) != ast.StmtPass {
		t.Fatalf("else body wrong")
	}
}

func TestLowerForLoop(t *testing.T) {
	tree := mustLower(t, "for i, j in pairs:\n    break\nelse:\n    continue\n")
	f := tree.For(tree.Body[0])
	if tree.ExprKindOf(f.Target) != ast.ExprTuple {
		t.Fatalf("target = %v, want Tuple", tree.ExprKindOf(f.Target))
	}
	if tree.Name(f.Iter).Ctx != ast.Load {
		t.Fatal("iter not a load")
	}
	if len(f.Body) != 1 || tree.StmtKindOf(f.Body[0]) != ast.StmtBreak {
		t.Fatal("body wrong")
	}
	if len(f.OrElse) != 1 || tree.StmtKindOf(f.OrElse[0]) != ast.StmtContinue {
		t.Fatal("orelse wrong")
	}
}

func TestLowerFunctionAndClass(t *testing.T) {
	tree := mustLower(t, "def f(a, b):\n    return a\nclass C(Base):\n    pass\n")
	fn := tree.FunctionDef(tree.Body[0])
	if tree.Names.MustLookup(fn.Name) != "f" || len(fn.Params) != 2 {
		t.Fatalf("funcdef name/params wrong")
	}
	if tree.Names.MustLookup(fn.Params[1]) != "b" {
		t.Fatalf("param = %q", tree.Names.MustLookup(fn.Params[1]))
	}
	ret := tree.Return(fn.Body[0])
	if ret.Value == ast.NoExpr {
		t.Fatal("return value missing")
	}

	cls := tree.ClassDef(tree.Body[1])
	if tree.Names.MustLookup(cls.Name) != "C" || len(cls.Bases) != 1 {
		t.Fatalf("classdef wrong")
	}
	if tree.Names.MustLookup(tree.Name(cls.Bases[0]).ID) != "Base" {
		t.Fatal("base name wrong")
	}
}

func TestLowerExpressions(t *testing.T) {
	tree := mustLower(t, "x = a + b * -c ** 2\n")
	as := tree.Assign(tree.Body[0])
	add := tree.BinOp(as.Value)
	if add.Op != ast.OpAdd {
		t.Fatalf("root op = %v, want Add", add.Op)
	}
	mul := tree.BinOp(add.Right)
	if mul.Op != ast.OpMult {
		t.Fatalf("right op = %v, want Mult", mul.Op)
	}
	neg := tree.UnaryOp(mul.Right)
	if neg.Op != ast.OpUSub {
		t.Fatalf("unary = %v, want USub", neg.Op)
	}
	pow := tree.BinOp(neg.Operand)
	if pow.Op != ast.OpPow {
		t.Fatalf("operand op = %v, want Pow", pow.Op)
	}
}

func TestLowerCompareChain(t *testing.T) {
	tree := mustLower(t, "x = a < b not in c is not d\n")
	cmp := tree.Compare(tree.Assign(tree.Body[0]).Value)
	want := []ast.CmpOp{ast.CmpLt, ast.CmpNotIn, ast.CmpIsNot}
	if len(cmp.Ops) != len(want) {
		t.Fatalf("ops = %v", cmp.Ops)
	}
	for i, op := range want {
		if cmp.Ops[i] != op {
			t.Fatalf("op %d = %v, want %v", i, cmp.Ops[i], op)
		}
	}
}

func TestLowerTrailers(t *testing.T) {
	tree := mustLower(t, "x = obj.attr(arg)[0]\n")
	sub := tree.Subscript(tree.Assign(tree.Body[0]).Value)
	call := tree.Call(sub.Value)
	if len(call.Args) != 1 {
		t.Fatalf("args = %d", len(call.Args))
	}
	attr := tree.Attribute(call.Func)
	if tree.Names.MustLookup(attr.Attr) != "attr" {
		t.Fatal("attribute name wrong")
	}
	if tree.Names.MustLookup(tree.Name(attr.Value).ID) != "obj" {
		t.Fatal("attribute base wrong")
	}
}

func TestLowerStringConcat(t *testing.T) {
	tree := mustLower(t, `x = 'a' "\n" r'\t'` + "\n")
	s := tree.Str(tree.Assign(tree.Body[0]).Value)
	if s.Value != "a\n\\t" {
		t.Fatalf("value = %q", s.Value)
	}
}

func TestLowerParensAndDisplays(t *testing.T) {
	tree := mustLower(t, "a = (x)\nb = (x,)\nc = ()\nd = [1, 2]\ne = []\n")
	if tree.ExprKindOf(tree.Assign(tree.Body[0]).Value) != ast.ExprName {
		t.Fatal("(x) should lower to the inner name")
	}
	if tree.ExprKindOf(tree.Assign(tree.Body[1]).Value) != ast.ExprTuple {
		t.Fatal("(x,) should lower to a tuple")
	}
	empty := tree.Tuple(tree.Assign(tree.Body[2]).Value)
	if len(empty.Elts) != 0 {
		t.Fatal("() should be an empty tuple")
	}
	lst := tree.List(tree.Assign(tree.Body[3]).Value)
	if len(lst.Elts) != 2 {
		t.Fatal("[1, 2] wrong arity")
	}
	if len(tree.List(tree.Assign(tree.Body[4]).Value).Elts) != 0 {
		t.Fatal("[] should be empty")
	}
}

func TestLowerEvalMode(t *testing.T) {
	tree, det := lowerSrc(t, "1 + 2", grammar.NtEvalInput)
	if det != nil {
		t.Fatalf("eval lowering failed: %+v", det)
	}
	if tree.Mode != ast.ExpressionMode || tree.Root == ast.NoExpr {
		t.Fatalf("mode=%v root=%v", tree.Mode, tree.Root)
	}
	if tree.ExprKindOf(tree.Root) != ast.ExprBinOp {
		t.Fatalf("root kind = %v", tree.ExprKindOf(tree.Root))
	}
}

func TestLowerSingleMode(t *testing.T) {
	// A blank line only reaches the parser in interactive mode, where it
	// ends the command group as a lone NEWLINE.
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.adr", []byte("\n")))
	cst, det := parser.ParseSource(file, grammar.NtSingleInput, parser.Options{DontImplyDedent: true})
	if det != nil {
		t.Fatalf("blank single parse failed: %+v", det)
	}
	tree, det := ast.Lower(cst, file)
	if det != nil {
		t.Fatalf("blank single failed: %+v", det)
	}
	if tree.Mode != ast.InteractiveMode || len(tree.Body) != 0 {
		t.Fatalf("mode=%v body=%v", tree.Mode, tree.Body)
	}

	tree, det = lowerSrc(t, "x = 1; y = 2\n", grammar.NtSingleInput)
	if det != nil {
		t.Fatalf("semicolon single failed: %+v", det)
	}
	if len(tree.Body) != 2 {
		t.Fatalf("body = %d statements, want 2", len(tree.Body))
	}
}

func TestLowerPositions(t *testing.T) {
	src := "x = 1\nif a:\n    y = 2\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.adr", []byte(src)))
	cst, det := parser.ParseSource(file, grammar.NtFileInput, parser.Options{})
	if det != nil {
		t.Fatalf("parse failed: %+v", det)
	}
	tree, det := ast.Lower(cst, file)
	if det != nil {
		t.Fatalf("lowering failed: %+v", det)
	}

	if line := file.Pos(tree.StmtSpan(tree.Body[0]).Start).Line; line != 1 {
		t.Fatalf("first stmt line = %d, want 1", line)
	}
	ifStmt := tree.If(tree.Body[1])
	if line := file.Pos(tree.StmtSpan(ifStmt.Body[0]).Start).Line; line != 3 {
		t.Fatalf("nested stmt line = %d, want 3", line)
	}
}

func TestLowerConditionalExpr(t *testing.T) {
	tree := mustLower(t, "x = a if c else b\n")
	as := tree.Assign(tree.Body[0])
	if tree.ExprKindOf(as.Value) != ast.ExprIfExp {
		t.Fatalf("value kind = %v", tree.ExprKindOf(as.Value))
	}
	ie := tree.IfExp(as.Value)
	name := func(id ast.ExprID) string { return tree.Names.MustLookup(tree.Name(id).ID) }
	if name(ie.Body) != "a" || name(ie.Test) != "c" || name(ie.OrElse) != "b" {
		t.Fatalf("got %s if %s else %s", name(ie.Body), name(ie.Test), name(ie.OrElse))
	}

	// else binds right: the alternative is itself a conditional.
	tree = mustLower(t, "x = a if c else b if d else e\n")
	ie = tree.IfExp(tree.Assign(tree.Body[0]).Value)
	if tree.ExprKindOf(ie.OrElse) != ast.ExprIfExp {
		t.Fatalf("orelse kind = %v, want IfExp", tree.ExprKindOf(ie.OrElse))
	}

	det := lowerError(t, "(a if c else b) = 1\n")
	if det.Msg != "can't assign to conditional expression" {
		t.Fatalf("msg = %q", det.Msg)
	}
}

func TestLowerParamDefaults(t *testing.T) {
	tree := mustLower(t, "def f(a, b=1, c=2):\n    pass\n")
	fn := tree.FunctionDef(tree.Body[0])
	if len(fn.Params) != 3 || len(fn.Defaults) != 2 {
		t.Fatalf("params = %d, defaults = %d", len(fn.Params), len(fn.Defaults))
	}
	if tree.ExprKindOf(fn.Defaults[0]) != ast.ExprNum || tree.Num(fn.Defaults[0]).Literal != "1" {
		t.Fatalf("first default = %v", tree.ExprKindOf(fn.Defaults[0]))
	}

	det := lowerError(t, "def f(a=1, b):\n    pass\n")
	if det.Msg != "non-default argument follows default argument" {
		t.Fatalf("msg = %q", det.Msg)
	}
}
