package codegen

import (
	"fmt"

	"adder/internal/ast"
	"adder/internal/diag"
	"adder/internal/source"
)

// Options configures code generation.
type Options struct {
	// Optimize selects the optimization level: 1 folds constant
	// expressions, 2 additionally strips docstrings.
	Optimize int
	// Filename is the display name stamped on code objects and
	// diagnostics; empty means the file's own path.
	Filename string
}

// Compile turns a lowered tree into a code object.
func Compile(tree *ast.Tree, file *source.File, opts Options) (*CodeObject, *diag.Diagnostic) {
	if opts.Filename == "" {
		opts.Filename = file.Path
	}
	c := &compiler{
		tree: tree,
		file: file,
		opts: opts,
		code: &CodeObject{Name: "<module>", Filename: opts.Filename, FirstLine: 1},
	}
	switch tree.Mode {
	case ast.ExpressionMode:
		c.expr(tree.Root)
		c.emit(OpReturnValue, 0, c.line(tree.ExprSpan(tree.Root)))
	case ast.ModuleMode:
		c.body(tree.Body, true)
		c.returnNone(lastLine(c.code))
	case ast.InteractiveMode:
		c.interactive = true
		c.body(tree.Body, false)
		c.returnNone(lastLine(c.code))
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.code, nil
}

type loopCtx struct {
	continueTo int
	breaks     []int
}

type compiler struct {
	tree *ast.Tree
	file *source.File
	opts Options
	code *CodeObject
	err  *diag.Diagnostic

	loops       []loopCtx
	inFunction  bool
	interactive bool
}

func (c *compiler) fail(sp source.Span, msg string) {
	if c.err != nil {
		return
	}
	pos := c.file.Pos(sp.Start)
	c.err = &diag.Diagnostic{
		Category: diag.CatSyntax,
		Msg:      msg,
		Filename: c.opts.Filename,
		Line:     int(pos.Line),
		Offset:   int(pos.Col - 1),
		Text:     c.file.GetLine(pos.Line),
	}
}

func (c *compiler) line(sp source.Span) uint32 {
	return c.file.Pos(sp.Start).Line
}

func lastLine(co *CodeObject) uint32 {
	if len(co.Instrs) == 0 {
		return 1
	}
	return co.Instrs[len(co.Instrs)-1].Line
}

// emit appends one instruction and returns its index for patching.
func (c *compiler) emit(op Opcode, arg uint32, line uint32) int {
	c.code.Instrs = append(c.code.Instrs, Instr{Op: op, Arg: arg, Line: line})
	return len(c.code.Instrs) - 1
}

func (c *compiler) patch(at int) {
	c.code.Instrs[at].Arg = uint32(len(c.code.Instrs))
}

func (c *compiler) returnNone(line uint32) {
	c.emit(OpLoadConst, c.code.addConst(Const{Kind: ConstNone}), line)
	c.emit(OpReturnValue, 0, line)
}

// body compiles a statement list, peeling a leading docstring when asked.
func (c *compiler) body(stmts []ast.StmtID, docstring bool) {
	if docstring && len(stmts) > 0 {
		if doc, ok := c.docstringOf(stmts[0]); ok {
			if c.opts.Optimize < 2 {
				c.code.Docstring = doc
			}
			stmts = stmts[1:]
		}
	}
	for _, id := range stmts {
		c.stmt(id)
		if c.err != nil {
			return
		}
	}
}

func (c *compiler) docstringOf(id ast.StmtID) (string, bool) {
	if c.tree.StmtKindOf(id) != ast.StmtExpr {
		return "", false
	}
	val := c.tree.ExprStmt(id).Value
	if c.tree.ExprKindOf(val) != ast.ExprStr {
		return "", false
	}
	return c.tree.Str(val).Value, true
}

func (c *compiler) stmt(id ast.StmtID) {
	t := c.tree
	sp := t.StmtSpan(id)
	line := c.line(sp)

	switch t.StmtKindOf(id) {
	case ast.StmtExpr:
		c.expr(t.ExprStmt(id).Value)
		if c.interactive && !c.inFunction {
			c.emit(OpPrintExpr, 0, line)
		} else {
			c.emit(OpPopTop, 0, line)
		}

	case ast.StmtAssign:
		as := t.Assign(id)
		c.expr(as.Value)
		for i, tgt := range as.Targets {
			if i < len(as.Targets)-1 {
				c.emit(OpDupTop, 0, line)
			}
			c.store(tgt)
		}

	case ast.StmtAugAssign:
		aug := t.AugAssign(id)
		// The target loads once and stores once; attribute and subscript
		// bases are evaluated on both sides.
		c.expr(aug.Target)
		c.expr(aug.Value)
		c.emit(OpBinaryOp, uint32(aug.Op), line)
		c.store(aug.Target)

	case ast.StmtDelete:
		for _, tgt := range t.Delete(id).Targets {
			c.delete(tgt)
		}

	case ast.StmtReturn:
		if !c.inFunction {
			c.fail(sp, "'return' outside function")
			return
		}
		ret := t.Return(id)
		if ret.Value != ast.NoExpr {
			c.expr(ret.Value)
		} else {
			c.emit(OpLoadConst, c.code.addConst(Const{Kind: ConstNone}), line)
		}
		c.emit(OpReturnValue, 0, line)

	case ast.StmtPass:

	case ast.StmtBreak:
		if len(c.loops) == 0 {
			c.fail(sp, "'break' outside loop")
			return
		}
		top := &c.loops[len(c.loops)-1]
		top.breaks = append(top.breaks, c.emit(OpJump, 0, line))

	case ast.StmtContinue:
		if len(c.loops) == 0 {
			c.fail(sp, "'continue' not properly in loop")
			return
		}
		c.emit(OpJump, uint32(c.loops[len(c.loops)-1].continueTo), line)

	case ast.StmtGlobal:
		for _, n := range t.Global(id).Names {
			c.addGlobal(t.Names.MustLookup(n))
		}

	case ast.StmtIf:
		c.ifStmt(id)

	case ast.StmtWhile:
		c.whileStmt(id)

	case ast.StmtFor:
		c.forStmt(id)

	case ast.StmtFunctionDef:
		c.funcDef(id)

	case ast.StmtClassDef:
		c.classDef(id)
	}
}

func (c *compiler) addGlobal(name string) {
	for _, have := range c.code.Globals {
		if have == name {
			return
		}
	}
	c.code.Globals = append(c.code.Globals, name)
}

func (c *compiler) ifStmt(id ast.StmtID) {
	t := c.tree
	ifs := t.If(id)
	line := c.line(t.StmtSpan(id))

	c.expr(ifs.Test)
	toElse := c.emit(OpJumpIfFalse, 0, line)
	c.body(ifs.Body, false)
	if len(ifs.OrElse) == 0 {
		c.patch(toElse)
		return
	}
	toEnd := c.emit(OpJump, 0, line)
	c.patch(toElse)
	c.body(ifs.OrElse, false)
	c.patch(toEnd)
}

func (c *compiler) whileStmt(id ast.StmtID) {
	t := c.tree
	w := t.While(id)
	line := c.line(t.StmtSpan(id))

	start := len(c.code.Instrs)
	c.expr(w.Test)
	toExit := c.emit(OpJumpIfFalse, 0, line)

	c.loops = append(c.loops, loopCtx{continueTo: start})
	c.body(w.Body, false)
	c.emit(OpJump, uint32(start), line)
	loop := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]

	c.patch(toExit)
	c.body(w.OrElse, false)
	for _, b := range loop.breaks {
		c.patch(b)
	}
}

func (c *compiler) forStmt(id ast.StmtID) {
	t := c.tree
	f := t.For(id)
	line := c.line(t.StmtSpan(id))

	c.expr(f.Iter)
	c.emit(OpGetIter, 0, line)
	start := len(c.code.Instrs)
	toExit := c.emit(OpForIter, 0, line)
	c.store(f.Target)

	c.loops = append(c.loops, loopCtx{continueTo: start})
	c.body(f.Body, false)
	c.emit(OpJump, uint32(start), line)
	loop := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]

	c.patch(toExit)
	c.body(f.OrElse, false)
	for _, b := range loop.breaks {
		c.patch(b)
	}
}

func (c *compiler) funcDef(id ast.StmtID) {
	t := c.tree
	fn := t.FunctionDef(id)
	sp := t.StmtSpan(id)
	name := t.Names.MustLookup(fn.Name)

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = t.Names.MustLookup(p)
	}

	inner := c.nested(name, sp)
	inner.inFunction = true
	inner.code.Params = params
	inner.body(fn.Body, true)
	if inner.err != nil {
		c.err = inner.err
		return
	}
	inner.returnNone(lastLine(inner.code))

	line := c.line(sp)
	// Defaults evaluate in the enclosing scope, left to right, under the
	// code object; MakeFunction's argument is their count.
	for _, dflt := range fn.Defaults {
		c.expr(dflt)
	}
	c.emit(OpLoadConst, c.code.addConst(Const{Kind: ConstCode, Code: inner.code}), line)
	c.emit(OpMakeFunction, uint32(len(fn.Defaults)), line)
	c.emit(OpStoreName, c.code.addName(name), line)
}

func (c *compiler) classDef(id ast.StmtID) {
	t := c.tree
	cls := t.ClassDef(id)
	sp := t.StmtSpan(id)
	name := t.Names.MustLookup(cls.Name)

	inner := c.nested(name, sp)
	inner.body(cls.Body, true)
	if inner.err != nil {
		c.err = inner.err
		return
	}
	inner.returnNone(lastLine(inner.code))

	line := c.line(sp)
	c.emit(OpLoadConst, c.code.addConst(Const{Kind: ConstCode, Code: inner.code}), line)
	for _, b := range cls.Bases {
		c.expr(b)
	}
	c.emit(OpBuildClass, uint32(len(cls.Bases)), line)
	c.emit(OpStoreName, c.code.addName(name), line)
}

// nested creates the compiler for a function or class body.
func (c *compiler) nested(name string, sp source.Span) *compiler {
	return &compiler{
		tree: c.tree,
		file: c.file,
		opts: c.opts,
		code: &CodeObject{Name: name, Filename: c.opts.Filename, FirstLine: c.line(sp)},
	}
}

// store compiles the write half of an assignment; the value is on the stack.
func (c *compiler) store(tgt ast.ExprID) {
	t := c.tree
	sp := t.ExprSpan(tgt)
	line := c.line(sp)

	switch t.ExprKindOf(tgt) {
	case ast.ExprName:
		c.emit(OpStoreName, c.code.addName(t.Names.MustLookup(t.Name(tgt).ID)), line)
	case ast.ExprAttribute:
		at := t.Attribute(tgt)
		c.expr(at.Value)
		c.emit(OpStoreAttr, c.code.addName(t.Names.MustLookup(at.Attr)), line)
	case ast.ExprSubscript:
		sub := t.Subscript(tgt)
		c.expr(sub.Value)
		c.expr(sub.Index)
		c.emit(OpStoreSubscr, 0, line)
	case ast.ExprTuple:
		elts := t.Tuple(tgt).Elts
		c.emit(OpUnpackSequence, uint32(len(elts)), line)
		for _, elt := range elts {
			c.store(elt)
		}
	case ast.ExprList:
		elts := t.List(tgt).Elts
		c.emit(OpUnpackSequence, uint32(len(elts)), line)
		for _, elt := range elts {
			c.store(elt)
		}
	default:
		c.fail(sp, fmt.Sprintf("cannot store to %s node", t.ExprKindOf(tgt)))
	}
}

func (c *compiler) delete(tgt ast.ExprID) {
	t := c.tree
	sp := t.ExprSpan(tgt)
	line := c.line(sp)

	switch t.ExprKindOf(tgt) {
	case ast.ExprName:
		c.emit(OpDeleteName, c.code.addName(t.Names.MustLookup(t.Name(tgt).ID)), line)
	case ast.ExprAttribute:
		at := t.Attribute(tgt)
		c.expr(at.Value)
		c.emit(OpDeleteAttr, c.code.addName(t.Names.MustLookup(at.Attr)), line)
	case ast.ExprSubscript:
		sub := t.Subscript(tgt)
		c.expr(sub.Value)
		c.expr(sub.Index)
		c.emit(OpDeleteSubscr, 0, line)
	case ast.ExprTuple:
		for _, elt := range t.Tuple(tgt).Elts {
			c.delete(elt)
		}
	case ast.ExprList:
		for _, elt := range t.List(tgt).Elts {
			c.delete(elt)
		}
	default:
		c.fail(sp, fmt.Sprintf("cannot delete %s node", t.ExprKindOf(tgt)))
	}
}

func (c *compiler) expr(id ast.ExprID) {
	t := c.tree
	sp := t.ExprSpan(id)
	line := c.line(sp)

	if c.opts.Optimize >= 1 {
		if folded, ok := c.fold(id); ok {
			c.emit(OpLoadConst, c.code.addConst(folded), line)
			return
		}
	}

	switch t.ExprKindOf(id) {
	case ast.ExprBoolOp:
		b := t.BoolOp(id)
		jump := OpJumpIfFalseKeep
		if b.Op == ast.OpOr {
			jump = OpJumpIfTrueKeep
		}
		var ends []int
		for i, v := range b.Values {
			c.expr(v)
			if i < len(b.Values)-1 {
				ends = append(ends, c.emit(jump, 0, line))
			}
		}
		for _, e := range ends {
			c.patch(e)
		}

	case ast.ExprBinOp:
		b := t.BinOp(id)
		c.expr(b.Left)
		c.expr(b.Right)
		c.emit(OpBinaryOp, uint32(b.Op), line)

	case ast.ExprUnaryOp:
		u := t.UnaryOp(id)
		c.expr(u.Operand)
		c.emit(OpUnaryOp, uint32(u.Op), line)

	case ast.ExprCompare:
		// Chains compile as short-circuit conjunctions; middle operands
		// are evaluated per comparison.
		cmp := t.Compare(id)
		left := cmp.Left
		var ends []int
		for i, op := range cmp.Ops {
			c.expr(left)
			c.expr(cmp.Comparators[i])
			c.emit(OpCompareOp, uint32(op), line)
			if i < len(cmp.Ops)-1 {
				ends = append(ends, c.emit(OpJumpIfFalseKeep, 0, line))
				left = cmp.Comparators[i]
			}
		}
		for _, e := range ends {
			c.patch(e)
		}

	case ast.ExprCall:
		call := t.Call(id)
		c.expr(call.Func)
		for _, a := range call.Args {
			c.expr(a)
		}
		c.emit(OpCallFunction, uint32(len(call.Args)), line)

	case ast.ExprNum:
		v, err := parseNumber(t.Num(id).Literal)
		if err != nil {
			c.fail(sp, err.Error())
			return
		}
		c.emit(OpLoadConst, c.code.addConst(v), line)

	case ast.ExprStr:
		c.emit(OpLoadConst, c.code.addConst(Const{Kind: ConstStr, Str: t.Str(id).Value}), line)

	case ast.ExprNameConst:
		c.emit(OpLoadConst, c.code.addConst(singletonConst(t.NameConst(id).Value)), line)

	case ast.ExprAttribute:
		at := t.Attribute(id)
		c.expr(at.Value)
		c.emit(OpLoadAttr, c.code.addName(t.Names.MustLookup(at.Attr)), line)

	case ast.ExprSubscript:
		sub := t.Subscript(id)
		c.expr(sub.Value)
		c.expr(sub.Index)
		c.emit(OpBinarySubscr, 0, line)

	case ast.ExprName:
		c.emit(OpLoadName, c.code.addName(t.Names.MustLookup(t.Name(id).ID)), line)

	case ast.ExprTuple:
		for _, elt := range t.Tuple(id).Elts {
			c.expr(elt)
		}
		c.emit(OpBuildTuple, uint32(len(t.Tuple(id).Elts)), line)

	case ast.ExprList:
		for _, elt := range t.List(id).Elts {
			c.expr(elt)
		}
		c.emit(OpBuildList, uint32(len(t.List(id).Elts)), line)

	case ast.ExprIfExp:
		ie := t.IfExp(id)
		c.expr(ie.Test)
		toElse := c.emit(OpJumpIfFalse, 0, line)
		c.expr(ie.Body)
		toEnd := c.emit(OpJump, 0, line)
		c.patch(toElse)
		c.expr(ie.OrElse)
		c.patch(toEnd)
	}
}

func singletonConst(s ast.Singleton) Const {
	switch s {
	case ast.SingletonTrue:
		return Const{Kind: ConstBool, Bool: true}
	case ast.SingletonFalse:
		return Const{Kind: ConstBool, Bool: false}
	}
	return Const{Kind: ConstNone}
}
