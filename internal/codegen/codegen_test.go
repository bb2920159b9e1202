package codegen_test

import (
	"reflect"
	"strings"
	"testing"

	"adder/internal/ast"
	"adder/internal/codegen"
	"adder/internal/diag"
	"adder/internal/grammar"
	"adder/internal/parser"
	"adder/internal/source"
)

func compileSrc(t *testing.T, src string, start grammar.Symbol, opts codegen.Options) *codegen.CodeObject {
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
	co, d := codegen.Compile(tree, file, opts)
	if d != nil {
		t.Fatalf("compile failed: %v", d)
	}
	return co
}

func compileErr(t *testing.T, src string) *diag.Diagnostic {
	t.Helper()
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
	co, d := codegen.Compile(tree, file, codegen.Options{})
	if d == nil {
		t.Fatalf("compile of %q succeeded: %v", src, co.Instrs)
	}
	return d
}

func opsOf(co *codegen.CodeObject) []codegen.Opcode {
	ops := make([]codegen.Opcode, len(co.Instrs))
	for i, in := range co.Instrs {
		ops[i] = in.Op
	}
	return ops
}

func countOp(co *codegen.CodeObject, op codegen.Opcode) int {
	n := 0
	for _, in := range co.Instrs {
		if in.Op == op {
			n++
		}
	}
	return n
}

// checkJumpTargets verifies every jump argument lands inside the
// instruction stream (one past the end is a valid fallthrough target).
func checkJumpTargets(t *testing.T, co *codegen.CodeObject) {
	t.Helper()
	for i, in := range co.Instrs {
		if in.Op.HasJumpTarget() && int(in.Arg) > len(co.Instrs) {
			t.Errorf("instr %d (%s) jumps to %d, past end %d", i, in.Op, in.Arg, len(co.Instrs))
		}
	}
}

func TestCompileModule(t *testing.T) {
	co := compileSrc(t, "x = 1\ny = x + 2\n", grammar.NtFileInput, codegen.Options{})
	want := []codegen.Opcode{
		codegen.OpLoadConst, codegen.OpStoreName,
		codegen.OpLoadName, codegen.OpLoadConst, codegen.OpBinaryOp, codegen.OpStoreName,
		codegen.OpLoadConst, codegen.OpReturnValue,
	}
	if got := opsOf(co); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if !reflect.DeepEqual(co.Names, []string{"x", "y"}) {
		t.Errorf("names = %v", co.Names)
	}
	if co.Instrs[4].Arg != uint32(ast.OpAdd) {
		t.Errorf("binary op arg = %d", co.Instrs[4].Arg)
	}
	if co.Instrs[1].Line != 1 || co.Instrs[5].Line != 2 {
		t.Errorf("line table wrong: %v", co.Instrs)
	}
}

func TestCompileExpression(t *testing.T) {
	co := compileSrc(t, "a + 1", grammar.NtEvalInput, codegen.Options{})
	ops := opsOf(co)
	if ops[len(ops)-1] != codegen.OpReturnValue {
		t.Fatalf("expression code must end in RETURN_VALUE, got %v", ops)
	}
	if countOp(co, codegen.OpReturnValue) != 1 {
		t.Errorf("expression code has extra returns: %v", ops)
	}
}

func TestInteractivePrintExpr(t *testing.T) {
	co := compileSrc(t, "x\n", grammar.NtSingleInput, codegen.Options{})
	if countOp(co, codegen.OpPrintExpr) != 1 {
		t.Fatalf("interactive expression statement should print: %v", opsOf(co))
	}

	mod := compileSrc(t, "x\n", grammar.NtFileInput, codegen.Options{})
	if countOp(mod, codegen.OpPrintExpr) != 0 || countOp(mod, codegen.OpPopTop) != 1 {
		t.Fatalf("module expression statement should pop: %v", opsOf(mod))
	}
}

func TestDocstring(t *testing.T) {
	src := "'doc'\nx = 1\n"

	co := compileSrc(t, src, grammar.NtFileInput, codegen.Options{})
	if co.Docstring != "doc" {
		t.Errorf("docstring = %q", co.Docstring)
	}
	for _, c := range co.Consts {
		if c.Kind == codegen.ConstStr && c.Str == "doc" {
			t.Error("docstring leaked into the constant pool")
		}
	}

	stripped := compileSrc(t, src, grammar.NtFileInput, codegen.Options{Optimize: 2})
	if stripped.Docstring != "" {
		t.Errorf("optimize 2 kept docstring %q", stripped.Docstring)
	}
}

func TestFunctionDocstring(t *testing.T) {
	co := compileSrc(t, "def f():\n    'fdoc'\n    pass\n", grammar.NtFileInput, codegen.Options{})
	var fn *codegen.CodeObject
	for _, c := range co.Consts {
		if c.Kind == codegen.ConstCode {
			fn = c.Code
		}
	}
	if fn == nil {
		t.Fatal("no function code object in pool")
	}
	if fn.Docstring != "fdoc" {
		t.Errorf("function docstring = %q", fn.Docstring)
	}
}

func TestConstFolding(t *testing.T) {
	co := compileSrc(t, "x = 1 + 2 * 3\n", grammar.NtFileInput, codegen.Options{Optimize: 1})
	if countOp(co, codegen.OpBinaryOp) != 0 {
		t.Fatalf("arithmetic not folded: %v", opsOf(co))
	}
	if got := co.Consts[co.Instrs[0].Arg]; got.Kind != codegen.ConstInt || got.Int != 7 {
		t.Fatalf("folded to %v, want 7", got)
	}

	plain := compileSrc(t, "x = 1 + 2 * 3\n", grammar.NtFileInput, codegen.Options{})
	if countOp(plain, codegen.OpBinaryOp) != 2 {
		t.Fatalf("optimize 0 should not fold: %v", opsOf(plain))
	}
}

func TestFoldingSemantics(t *testing.T) {
	cases := []struct {
		src  string
		want codegen.Const
	}{
		{"1 / 2", codegen.Const{Kind: codegen.ConstFloat, Float: 0.5}},
		{"7 // 2", codegen.Const{Kind: codegen.ConstInt, Int: 3}},
		{"-7 // 2", codegen.Const{Kind: codegen.ConstInt, Int: -4}},
		{"-7 % 2", codegen.Const{Kind: codegen.ConstInt, Int: 1}},
		{"2 ** 10", codegen.Const{Kind: codegen.ConstInt, Int: 1024}},
		{"2 ** -1", codegen.Const{Kind: codegen.ConstFloat, Float: 0.5}},
		{"0 ** 0", codegen.Const{Kind: codegen.ConstInt, Int: 1}},
		{"1 ** 1000000000000000000", codegen.Const{Kind: codegen.ConstInt, Int: 1}},
		{"0 ** 1000000000000000000", codegen.Const{Kind: codegen.ConstInt, Int: 0}},
		{"(-1) ** 1000000000000000001", codegen.Const{Kind: codegen.ConstInt, Int: -1}},
		{"1.5 + 1", codegen.Const{Kind: codegen.ConstFloat, Float: 2.5}},
		{"not True", codegen.Const{Kind: codegen.ConstBool, Bool: false}},
		{"'ab' + 'cd'", codegen.Const{Kind: codegen.ConstStr, Str: "abcd"}},
	}
	for _, tc := range cases {
		co := compileSrc(t, tc.src, grammar.NtEvalInput, codegen.Options{Optimize: 1})
		if co.Instrs[0].Op != codegen.OpLoadConst {
			t.Errorf("%q: not folded: %v", tc.src, opsOf(co))
			continue
		}
		if got := co.Consts[co.Instrs[0].Arg]; !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%q folded to %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestFoldingCapsHugePower(t *testing.T) {
	co := compileSrc(t, "2 ** 1000000000000000000", grammar.NtEvalInput, codegen.Options{Optimize: 1})
	if countOp(co, codegen.OpBinaryOp) != 1 {
		t.Fatalf("overflowing power must stay unfolded: %v", opsOf(co))
	}
}

func TestFoldingSkipsDivisionByZero(t *testing.T) {
	co := compileSrc(t, "1 // 0", grammar.NtEvalInput, codegen.Options{Optimize: 1})
	if countOp(co, codegen.OpBinaryOp) != 1 {
		t.Fatalf("division by zero must stay unfolded: %v", opsOf(co))
	}
}

func TestIntegerOverflowDiagnostic(t *testing.T) {
	d := compileErr(t, "x = 99999999999999999999999999\n")
	if !strings.Contains(d.Msg, "out of range") {
		t.Fatalf("got %q", d.Msg)
	}
	if d.Line != 1 {
		t.Errorf("line = %d", d.Line)
	}
}

func TestPlacementErrors(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"return 1\n", "'return' outside function"},
		{"break\n", "'break' outside loop"},
		{"continue\n", "'continue' not properly in loop"},
		{"if x:\n    break\n", "'break' outside loop"},
		{"def f():\n    continue\n", "'continue' not properly in loop"},
	}
	for _, tc := range cases {
		d := compileErr(t, tc.src)
		if d.Msg != tc.want {
			t.Errorf("%q: got %q, want %q", tc.src, d.Msg, tc.want)
		}
		if d.Category != diag.CatSyntax {
			t.Errorf("%q: category = %v", tc.src, d.Category)
		}
	}
}

func TestChainedAssign(t *testing.T) {
	co := compileSrc(t, "a = b = 1\n", grammar.NtFileInput, codegen.Options{})
	if countOp(co, codegen.OpDupTop) != 1 {
		t.Fatalf("chained assignment needs one DUP_TOP: %v", opsOf(co))
	}
	if countOp(co, codegen.OpStoreName) != 2 {
		t.Fatalf("chained assignment needs two stores: %v", opsOf(co))
	}
}

func TestTupleUnpack(t *testing.T) {
	co := compileSrc(t, "a, b = p\n", grammar.NtFileInput, codegen.Options{})
	found := false
	for _, in := range co.Instrs {
		if in.Op == codegen.OpUnpackSequence && in.Arg == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("no UNPACK_SEQUENCE 2: %v", opsOf(co))
	}
}

func TestAugAssign(t *testing.T) {
	co := compileSrc(t, "x += 1\n", grammar.NtFileInput, codegen.Options{})
	want := []codegen.Opcode{
		codegen.OpLoadName, codegen.OpLoadConst, codegen.OpBinaryOp, codegen.OpStoreName,
		codegen.OpLoadConst, codegen.OpReturnValue,
	}
	if got := opsOf(co); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGlobals(t *testing.T) {
	co := compileSrc(t, "global g, h\nglobal g\ng = 1\n", grammar.NtFileInput, codegen.Options{})
	if !reflect.DeepEqual(co.Globals, []string{"g", "h"}) {
		t.Fatalf("globals = %v", co.Globals)
	}
}

func TestLoopJumps(t *testing.T) {
	srcs := []string{
		"while a:\n    break\nelse:\n    x = 1\n",
		"while a:\n    continue\n",
		"for i in xs:\n    if i:\n        break\n    continue\nelse:\n    pass\n",
	}
	for _, src := range srcs {
		co := compileSrc(t, src, grammar.NtFileInput, codegen.Options{})
		checkJumpTargets(t, co)
	}
}

func TestBreakSkipsElse(t *testing.T) {
	co := compileSrc(t, "while a:\n    break\nelse:\n    x = 1\n", grammar.NtFileInput, codegen.Options{})
	var breakJump, elseStore = -1, -1
	for i, in := range co.Instrs {
		if in.Op == codegen.OpJump && breakJump == -1 {
			breakJump = i
		}
		if in.Op == codegen.OpStoreName {
			elseStore = i
		}
	}
	if breakJump == -1 || elseStore == -1 {
		t.Fatalf("shape unexpected: %v", opsOf(co))
	}
	if int(co.Instrs[breakJump].Arg) <= elseStore {
		t.Fatalf("break target %d does not skip else body at %d", co.Instrs[breakJump].Arg, elseStore)
	}
}

func TestForLoop(t *testing.T) {
	co := compileSrc(t, "for i in xs:\n    y = i\n", grammar.NtFileInput, codegen.Options{})
	ops := opsOf(co)
	if countOp(co, codegen.OpGetIter) != 1 || countOp(co, codegen.OpForIter) != 1 {
		t.Fatalf("for loop shape: %v", ops)
	}
	checkJumpTargets(t, co)
}

func TestFunctionCode(t *testing.T) {
	co := compileSrc(t, "def f(a, b):\n    return a\n", grammar.NtFileInput, codegen.Options{})
	var fn *codegen.CodeObject
	for _, c := range co.Consts {
		if c.Kind == codegen.ConstCode {
			fn = c.Code
		}
	}
	if fn == nil {
		t.Fatal("no nested code object")
	}
	if fn.Name != "f" || !reflect.DeepEqual(fn.Params, []string{"a", "b"}) {
		t.Fatalf("nested code = %q params %v", fn.Name, fn.Params)
	}
	if fn.FirstLine != 1 {
		t.Errorf("first line = %d", fn.FirstLine)
	}
	if countOp(co, codegen.OpMakeFunction) != 1 {
		t.Fatalf("module shape: %v", opsOf(co))
	}
}

func TestClassCode(t *testing.T) {
	co := compileSrc(t, "class C(Base, Other):\n    pass\n", grammar.NtFileInput, codegen.Options{})
	var build *codegen.Instr
	for i := range co.Instrs {
		if co.Instrs[i].Op == codegen.OpBuildClass {
			build = &co.Instrs[i]
		}
	}
	if build == nil || build.Arg != 2 {
		t.Fatalf("BUILD_CLASS with 2 bases expected: %v", opsOf(co))
	}
	if countOp(co, codegen.OpLoadName) != 2 {
		t.Fatalf("bases should load by name: %v", opsOf(co))
	}
}

func TestBoolOpShortCircuit(t *testing.T) {
	co := compileSrc(t, "a and b or c", grammar.NtEvalInput, codegen.Options{})
	if countOp(co, codegen.OpJumpIfFalseKeep) != 1 || countOp(co, codegen.OpJumpIfTrueKeep) != 1 {
		t.Fatalf("short-circuit shape: %v", opsOf(co))
	}
	checkJumpTargets(t, co)
}

func TestCompareChain(t *testing.T) {
	co := compileSrc(t, "a < b < c", grammar.NtEvalInput, codegen.Options{})
	if countOp(co, codegen.OpCompareOp) != 2 {
		t.Fatalf("chain needs two comparisons: %v", opsOf(co))
	}
	if countOp(co, codegen.OpJumpIfFalseKeep) != 1 {
		t.Fatalf("chain needs one short-circuit jump: %v", opsOf(co))
	}
	checkJumpTargets(t, co)
}

func TestMarshalRoundtrip(t *testing.T) {
	src := "'doc'\n" +
		"def fib(n):\n" +
		"    if n < 2:\n" +
		"        return n\n" +
		"    return fib(n - 1) + fib(n - 2)\n" +
		"xs = [fib(1), fib(2)]\n"
	co := compileSrc(t, src, grammar.NtFileInput, codegen.Options{Optimize: 1})

	data, err := co.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := codegen.UnmarshalCodeObject(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(co, back) {
		t.Fatalf("roundtrip mismatch:\n%+v\n%+v", co, back)
	}
}

func TestConditionalExpr(t *testing.T) {
	co := compileSrc(t, "x = 1 if c else 2\n", grammar.NtFileInput, codegen.Options{})
	want := []codegen.Opcode{
		codegen.OpLoadName, codegen.OpJumpIfFalse,
		codegen.OpLoadConst, codegen.OpJump,
		codegen.OpLoadConst, codegen.OpStoreName,
		codegen.OpLoadConst, codegen.OpReturnValue,
	}
	if got := opsOf(co); !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if co.Instrs[1].Arg != 4 {
		t.Errorf("false branch target = %d, want 4", co.Instrs[1].Arg)
	}
	if co.Instrs[3].Arg != 5 {
		t.Errorf("join target = %d, want 5", co.Instrs[3].Arg)
	}
	checkJumpTargets(t, co)
}

func TestFunctionDefaults(t *testing.T) {
	co := compileSrc(t, "def f(a, b=5):\n    return b\n", grammar.NtFileInput, codegen.Options{})
	var mk *codegen.Instr
	for i := range co.Instrs {
		if co.Instrs[i].Op == codegen.OpMakeFunction {
			mk = &co.Instrs[i]
		}
	}
	if mk == nil || mk.Arg != 1 {
		t.Fatalf("MAKE_FUNCTION with 1 default expected: %v", opsOf(co))
	}
	// The default value loads before the code object.
	want := []codegen.Opcode{codegen.OpLoadConst, codegen.OpLoadConst, codegen.OpMakeFunction, codegen.OpStoreName}
	if got := opsOf(co)[:4]; !reflect.DeepEqual(got, want) {
		t.Fatalf("prologue = %v, want %v", got, want)
	}
	if co.Consts[co.Instrs[0].Arg].Kind != codegen.ConstInt || co.Consts[co.Instrs[0].Arg].Int != 5 {
		t.Fatalf("default const = %+v", co.Consts[co.Instrs[0].Arg])
	}
}
