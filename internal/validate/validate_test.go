package validate_test

import (
	"strings"
	"testing"

	"adder/internal/ast"
	"adder/internal/diag"
	"adder/internal/grammar"
	"adder/internal/parser"
	"adder/internal/source"
	"adder/internal/validate"
)

func lowered(t *testing.T, src string, start grammar.Symbol) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.adr", []byte(src)))
	cst, det := parser.ParseSource(file, start, parser.Options{})
	if det != nil {
		t.Fatalf("parse failed: %+v", det)
	}
	tree, det := ast.Lower(cst, file)
	if det != nil {
		t.Fatalf("lowering failed: %+v", det)
	}
	return tree
}

func TestLoweredTreesValidate(t *testing.T) {
	sources := []string{
		"",
		"x = a.b[0] = y\n",
		"del a, b.c\n",
		"def f(a, b):\n    return a < b < 10\nclass C(f):\n    pass\n",
		"for i, j in pairs:\n    x += i\nelse:\n    pass\n",
		"while not done:\n    break\n",
		"global g\ng = [1, (2, 3)]\n",
	}
	for _, src := range sources {
		tree := lowered(t, src, grammar.NtFileInput)
		if d := validate.Tree(tree); d != nil {
			t.Errorf("input %q: %v", src, d)
		}
	}

	eval := lowered(t, "f(x) + 1", grammar.NtEvalInput)
	if d := validate.Tree(eval); d != nil {
		t.Errorf("eval tree: %v", d)
	}
}

func TestModeMismatch(t *testing.T) {
	tree := ast.NewTree(ast.ExpressionMode)
	d := validate.Tree(tree)
	if d == nil || d.Category != diag.CatValidation {
		t.Fatalf("got %v, want validation error", d)
	}
	if d.HasPosition() {
		t.Fatal("validation diagnostics should carry no position")
	}

	mod := ast.NewTree(ast.ModuleMode)
	mod.Root = mod.NewNum(source.Span{}, "1")
	if d := validate.Tree(mod); d == nil {
		t.Fatal("module tree with root expression accepted")
	}
}

func TestEmptyBody(t *testing.T) {
	tree := ast.NewTree(ast.ModuleMode)
	name := tree.Names.Intern("f")
	tree.Body = append(tree.Body, tree.NewFunctionDef(source.Span{}, name, nil, nil, nil))
	d := validate.Tree(tree)
	if d == nil || !strings.Contains(d.Msg, "empty body on FunctionDef") {
		t.Fatalf("got %v", d)
	}
}

func TestDuplicateParams(t *testing.T) {
	tree := ast.NewTree(ast.ModuleMode)
	name := tree.Names.Intern("f")
	a := tree.Names.Intern("a")
	body := []ast.StmtID{tree.NewPass(source.Span{})}
	tree.Body = append(tree.Body, tree.NewFunctionDef(source.Span{}, name, []source.StringID{a, a}, nil, body))
	d := validate.Tree(tree)
	if d == nil || !strings.Contains(d.Msg, "duplicate argument 'a'") {
		t.Fatalf("got %v", d)
	}
}

func TestContextMismatch(t *testing.T) {
	tree := ast.NewTree(ast.ModuleMode)
	x := tree.NewName(source.Span{}, tree.Names.Intern("x"))
	one := tree.NewNum(source.Span{}, "1")
	// Target was never switched to store context.
	tree.Body = append(tree.Body, tree.NewAssign(source.Span{}, []ast.ExprID{x}, one))
	d := validate.Tree(tree)
	if d == nil || !strings.Contains(d.Msg, "Store context") {
		t.Fatalf("got %v", d)
	}
}

func TestBadStoreTarget(t *testing.T) {
	tree := ast.NewTree(ast.ModuleMode)
	lit := tree.NewNum(source.Span{}, "1")
	val := tree.NewNum(source.Span{}, "2")
	tree.Body = append(tree.Body, tree.NewAssign(source.Span{}, []ast.ExprID{lit}, val))
	d := validate.Tree(tree)
	if d == nil || !strings.Contains(d.Msg, "store target") {
		t.Fatalf("got %v", d)
	}
}
