package ast

import "adder/internal/source"

// Tree is a lowered syntax tree. Node headers and payloads live in arenas;
// identifiers are interned in Names.
type Tree struct {
	// Mode determines which root field is meaningful: Body for ModuleMode
	// and InteractiveMode, Root for ExpressionMode.
	Mode  Mode
	Body  []StmtID
	Root  ExprID
	Names *source.Interner
	// Src is the file the tree was lowered from; nil for hand-built trees.
	// Node spans index into it.
	Src *source.File

	exprs Arena[Expr]
	stmts Arena[Stmt]

	boolOps    Arena[BoolOpExpr]
	binOps     Arena[BinOpExpr]
	unaryOps   Arena[UnaryOpExpr]
	compares   Arena[CompareExpr]
	calls      Arena[CallExpr]
	nums       Arena[NumExpr]
	strs       Arena[StrExpr]
	nameConsts Arena[NameConstExpr]
	attributes Arena[AttributeExpr]
	subscripts Arena[SubscriptExpr]
	names      Arena[NameExpr]
	tuples     Arena[TupleExpr]
	lists      Arena[ListExpr]
	ifExps     Arena[IfExpExpr]

	funcDefs   Arena[FunctionDefStmt]
	classDefs  Arena[ClassDefStmt]
	returns    Arena[ReturnStmt]
	deletes    Arena[DeleteStmt]
	assigns    Arena[AssignStmt]
	augAssigns Arena[AugAssignStmt]
	fors       Arena[ForStmt]
	whiles     Arena[WhileStmt]
	ifs        Arena[IfStmt]
	globals    Arena[GlobalStmt]
	exprStmts  Arena[ExprStmtNode]
}

// NewTree creates an empty tree for the given mode.
func NewTree(mode Mode) *Tree {
	return &Tree{Mode: mode, Names: source.NewInterner()}
}

// NumExprs returns the number of expression nodes.
func (t *Tree) NumExprs() int {
	return t.exprs.Len()
}

// NumStmts returns the number of statement nodes.
func (t *Tree) NumStmts() int {
	return t.stmts.Len()
}
