package ast

import "adder/internal/source"

// StmtKind discriminates statement payloads.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtFunctionDef
	StmtClassDef
	StmtReturn
	StmtDelete
	StmtAssign
	StmtAugAssign
	StmtFor
	StmtWhile
	StmtIf
	StmtGlobal
	StmtExpr
	StmtPass
	StmtBreak
	StmtContinue
)

var stmtKindNames = [...]string{
	"Invalid", "FunctionDef", "ClassDef", "Return", "Delete", "Assign",
	"AugAssign", "For", "While", "If", "Global", "Expr", "Pass", "Break",
	"Continue",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "UnknownStmt"
}

// Stmt is the fixed-size header of a statement node.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	payload uint32
}

// FunctionDefStmt is 'def Name(Params): Body'. Defaults align with the
// tail of Params: Params[len(Params)-len(Defaults)+i] defaults to
// Defaults[i].
type FunctionDefStmt struct {
	Name     source.StringID
	Params   []source.StringID
	Defaults []ExprID
	Body     []StmtID
}

// ClassDefStmt is 'class Name(Bases): Body'.
type ClassDefStmt struct {
	Name  source.StringID
	Bases []ExprID
	Body  []StmtID
}

// ReturnStmt carries NoExpr for a bare return.
type ReturnStmt struct {
	Value ExprID
}

// DeleteStmt is 'del Targets'.
type DeleteStmt struct {
	Targets []ExprID
}

// AssignStmt covers chained assignment: every target receives Value.
type AssignStmt struct {
	Targets []ExprID
	Value   ExprID
}

// AugAssignStmt is 'Target op= Value'.
type AugAssignStmt struct {
	Target ExprID
	Op     Operator
	Value  ExprID
}

// ForStmt is 'for Target in Iter: Body else: OrElse'.
type ForStmt struct {
	Target ExprID
	Iter   ExprID
	Body   []StmtID
	OrElse []StmtID
}

// WhileStmt is 'while Test: Body else: OrElse'.
type WhileStmt struct {
	Test   ExprID
	Body   []StmtID
	OrElse []StmtID
}

// IfStmt is 'if Test: Body else: OrElse'; elif chains nest in OrElse.
type IfStmt struct {
	Test   ExprID
	Body   []StmtID
	OrElse []StmtID
}

// GlobalStmt is 'global Names'.
type GlobalStmt struct {
	Names []source.StringID
}

// ExprStmtNode is an expression evaluated for effect.
type ExprStmtNode struct {
	Value ExprID
}

// StmtKindOf returns the kind of a statement node.
func (t *Tree) StmtKindOf(id StmtID) StmtKind {
	return t.stmts.Get(uint32(id)).Kind
}

// StmtSpan returns the source extent of a statement node.
func (t *Tree) StmtSpan(id StmtID) source.Span {
	return t.stmts.Get(uint32(id)).Span
}

func (t *Tree) newStmt(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(t.stmts.Alloc(Stmt{Kind: kind, Span: span, payload: payload}))
}

func (t *Tree) NewFunctionDef(span source.Span, name source.StringID, params []source.StringID, defaults []ExprID, body []StmtID) StmtID {
	return t.newStmt(StmtFunctionDef, span, t.funcDefs.Alloc(FunctionDefStmt{Name: name, Params: params, Defaults: defaults, Body: body}))
}

func (t *Tree) NewClassDef(span source.Span, name source.StringID, bases []ExprID, body []StmtID) StmtID {
	return t.newStmt(StmtClassDef, span, t.classDefs.Alloc(ClassDefStmt{Name: name, Bases: bases, Body: body}))
}

func (t *Tree) NewReturn(span source.Span, value ExprID) StmtID {
	return t.newStmt(StmtReturn, span, t.returns.Alloc(ReturnStmt{Value: value}))
}

func (t *Tree) NewDelete(span source.Span, targets []ExprID) StmtID {
	return t.newStmt(StmtDelete, span, t.deletes.Alloc(DeleteStmt{Targets: targets}))
}

func (t *Tree) NewAssign(span source.Span, targets []ExprID, value ExprID) StmtID {
	return t.newStmt(StmtAssign, span, t.assigns.Alloc(AssignStmt{Targets: targets, Value: value}))
}

func (t *Tree) NewAugAssign(span source.Span, target ExprID, op Operator, value ExprID) StmtID {
	return t.newStmt(StmtAugAssign, span, t.augAssigns.Alloc(AugAssignStmt{Target: target, Op: op, Value: value}))
}

func (t *Tree) NewFor(span source.Span, target, iter ExprID, body, orElse []StmtID) StmtID {
	return t.newStmt(StmtFor, span, t.fors.Alloc(ForStmt{Target: target, Iter: iter, Body: body, OrElse: orElse}))
}

func (t *Tree) NewWhile(span source.Span, test ExprID, body, orElse []StmtID) StmtID {
	return t.newStmt(StmtWhile, span, t.whiles.Alloc(WhileStmt{Test: test, Body: body, OrElse: orElse}))
}

func (t *Tree) NewIf(span source.Span, test ExprID, body, orElse []StmtID) StmtID {
	return t.newStmt(StmtIf, span, t.ifs.Alloc(IfStmt{Test: test, Body: body, OrElse: orElse}))
}

func (t *Tree) NewGlobal(span source.Span, names []source.StringID) StmtID {
	return t.newStmt(StmtGlobal, span, t.globals.Alloc(GlobalStmt{Names: names}))
}

func (t *Tree) NewExprStmt(span source.Span, value ExprID) StmtID {
	return t.newStmt(StmtExpr, span, t.exprStmts.Alloc(ExprStmtNode{Value: value}))
}

func (t *Tree) NewPass(span source.Span) StmtID {
	return t.newStmt(StmtPass, span, 0)
}

func (t *Tree) NewBreak(span source.Span) StmtID {
	return t.newStmt(StmtBreak, span, 0)
}

func (t *Tree) NewContinue(span source.Span) StmtID {
	return t.newStmt(StmtContinue, span, 0)
}

func (t *Tree) FunctionDef(id StmtID) *FunctionDefStmt {
	return t.funcDefs.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) ClassDef(id StmtID) *ClassDefStmt {
	return t.classDefs.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) Return(id StmtID) *ReturnStmt {
	return t.returns.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) Delete(id StmtID) *DeleteStmt {
	return t.deletes.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) Assign(id StmtID) *AssignStmt {
	return t.assigns.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) AugAssign(id StmtID) *AugAssignStmt {
	return t.augAssigns.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) For(id StmtID) *ForStmt {
	return t.fors.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) While(id StmtID) *WhileStmt {
	return t.whiles.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) If(id StmtID) *IfStmt {
	return t.ifs.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) Global(id StmtID) *GlobalStmt {
	return t.globals.Get(t.stmts.Get(uint32(id)).payload)
}

func (t *Tree) ExprStmt(id StmtID) *ExprStmtNode {
	return t.exprStmts.Get(t.stmts.Get(uint32(id)).payload)
}
