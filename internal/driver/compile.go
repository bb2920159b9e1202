// Package driver wires the front-end stages into the public compile
// pipeline: normalize input, tokenize, parse, lower, validate, emit.
// Every failure surfaces as exactly one *diag.Diagnostic.
package driver

import (
	"errors"
	"fmt"

	"adder/internal/ast"
	"adder/internal/codegen"
	"adder/internal/diag"
	"adder/internal/observ"
	"adder/internal/parser"
	"adder/internal/source"
	"adder/internal/validate"
)

// Result is the successful outcome of a compilation. AST is set when
// FlagASTOnly was given, Code otherwise.
type Result struct {
	AST  *ast.Tree
	Code *codegen.CodeObject
}

// Compile runs the full pipeline on one input. Configuration is checked
// before any tokenizing; all failures are returned as *diag.Diagnostic.
func Compile(in Input, filename string, mode Mode, flags Flags, env *Env, optimize int) (*Result, error) {
	return CompileTimed(in, filename, mode, flags, env, optimize, nil)
}

// CompileTimed is Compile with per-phase timings recorded into tm when it
// is non-nil.
func CompileTimed(in Input, filename string, mode Mode, flags Flags, env *Env, optimize int, tm *observ.Timer) (*Result, error) {
	if bad := flags &^ validFlags; bad != 0 {
		return nil, diag.NewConfigError(fmt.Sprintf("unrecognized compile flags: %#x", uint32(bad)))
	}
	if optimize < -1 || optimize > 2 {
		return nil, diag.NewConfigError(fmt.Sprintf("compile(): invalid optimize value %d", optimize))
	}
	if mode > ModeSingle {
		return nil, diag.NewConfigError(fmt.Sprintf("compile(): invalid mode %d", uint8(mode)))
	}
	flags, optimize = env.merge(flags, optimize)

	if in.kind == inputTree {
		return compileTree(in.tree, filename, mode, flags, optimize, tm)
	}

	phase := begin(tm, "normalize")
	fs := source.NewFileSet()
	fileID, derr := addInput(fs, filename, in, flags)
	end(tm, phase)
	if derr != nil {
		return nil, derr
	}
	file := fs.Get(fileID)

	phase = begin(tm, "parse")
	popts := parser.Options{
		BarryAsBDFL:     flags.Has(FlagBarryAsBDFL),
		DontImplyDedent: flags.Has(FlagDontImplyDedent),
	}
	cst, det := parser.ParseSource(file, mode.startSymbol(), popts)
	end(tm, phase)
	if det != nil {
		return nil, diag.FromDetail(det)
	}

	phase = begin(tm, "lower")
	tree, det := ast.Lower(cst, file)
	end(tm, phase)
	if det != nil {
		return nil, diag.FromDetail(det)
	}

	return finish(tree, file, filename, flags, optimize, tm)
}

// compileTree is the pre-built tree fast path: no tokenizing, no parsing.
func compileTree(tree *ast.Tree, filename string, mode Mode, flags Flags, optimize int, tm *observ.Timer) (*Result, error) {
	if tree == nil {
		return nil, diag.NewConfigError("compile(): tree input is nil")
	}
	if tree.Mode != mode.astMode() {
		return nil, diag.NewConfigError(fmt.Sprintf(
			"compile(): tree was built for mode %q, requested %q", modeName(tree.Mode), mode))
	}
	file := tree.Src
	if file == nil {
		fs := source.NewFileSet()
		file = fs.Get(fs.AddVirtual(filename, nil))
	}
	return finish(tree, file, filename, flags, optimize, tm)
}

// finish runs validation and, unless FlagASTOnly, code generation.
func finish(tree *ast.Tree, file *source.File, filename string, flags Flags, optimize int, tm *observ.Timer) (*Result, error) {
	phase := begin(tm, "validate")
	d := validate.Tree(tree)
	end(tm, phase)
	if d != nil {
		d.Filename = filename
		return nil, d
	}
	if flags.Has(FlagASTOnly) {
		return &Result{AST: tree}, nil
	}

	phase = begin(tm, "codegen")
	code, d := codegen.Compile(tree, file, codegen.Options{Optimize: optimize, Filename: filename})
	end(tm, phase)
	if d != nil {
		return nil, d
	}
	return &Result{Code: code}, nil
}

// addInput normalizes the caller's source into the file set, mapping the
// normalizer's sentinel errors to their diagnostic categories.
func addInput(fs *source.FileSet, filename string, in Input, flags Flags) (source.FileID, *diag.Diagnostic) {
	var raw []byte
	ignoreCookie := flags.Has(FlagIgnoreCookie)
	switch in.kind {
	case inputText:
		raw = []byte(in.text)
		ignoreCookie = true
	case inputBytes:
		raw = in.bytes
	}

	id, err := fs.AddSource(filename, raw, in.declaredLen, ignoreCookie)
	if err == nil {
		return id, nil
	}

	var decErr *source.DecodeError
	switch {
	case errors.As(err, &decErr):
		return 0, diag.FromDetail(&diag.Detail{
			Kind:     diag.KindDecode,
			Msg:      decErr.Error(),
			Filename: filename,
		})
	case errors.Is(err, source.ErrNulByte), errors.Is(err, source.ErrLengthMismatch):
		return 0, diag.NewValueError(err.Error())
	}
	return 0, &diag.Diagnostic{Category: diag.CatInternal, Msg: err.Error(), Filename: filename}
}

func modeName(m ast.Mode) string {
	switch m {
	case ast.ExpressionMode:
		return "eval"
	case ast.InteractiveMode:
		return "single"
	}
	return "exec"
}

func begin(tm *observ.Timer, name string) int {
	if tm == nil {
		return -1
	}
	return tm.Begin(name)
}

func end(tm *observ.Timer, idx int) {
	if tm != nil {
		tm.End(idx)
	}
}
