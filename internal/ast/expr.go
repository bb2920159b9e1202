package ast

import "adder/internal/source"

// ExprKind discriminates expression payloads.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprBoolOp
	ExprBinOp
	ExprUnaryOp
	ExprCompare
	ExprCall
	ExprNum
	ExprStr
	ExprNameConst
	ExprAttribute
	ExprSubscript
	ExprName
	ExprTuple
	ExprList
	ExprIfExp
)

var exprKindNames = [...]string{
	"Invalid", "BoolOp", "BinOp", "UnaryOp", "Compare", "Call", "Num", "Str",
	"NameConstant", "Attribute", "Subscript", "Name", "Tuple", "List", "IfExp",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "UnknownExpr"
}

// Expr is the fixed-size header of an expression node; the payload lives in
// the per-kind arena addressed by payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	payload uint32
}

// BoolOpExpr is 'a and b and c' or 'a or b'.
type BoolOpExpr struct {
	Op     BoolOpKind
	Values []ExprID
}

// BinOpExpr is a binary arithmetic expression.
type BinOpExpr struct {
	Left  ExprID
	Op    Operator
	Right ExprID
}

// UnaryOpExpr is a unary expression.
type UnaryOpExpr struct {
	Op      UnaryOp
	Operand ExprID
}

// CompareExpr is a chained comparison: Left op[0] Comparators[0] op[1] ...
type CompareExpr struct {
	Left        ExprID
	Ops         []CmpOp
	Comparators []ExprID
}

// CallExpr is a call with positional arguments.
type CallExpr struct {
	Func ExprID
	Args []ExprID
}

// NumExpr keeps the literal text; evaluation happens at code generation.
type NumExpr struct {
	Literal string
}

// StrExpr holds the decoded string value.
type StrExpr struct {
	Value string
}

// NameConstExpr is None, True or False.
type NameConstExpr struct {
	Value Singleton
}

// AttributeExpr is 'value.attr'.
type AttributeExpr struct {
	Value ExprID
	Attr  source.StringID
	Ctx   Ctx
}

// SubscriptExpr is 'value[index]'.
type SubscriptExpr struct {
	Value ExprID
	Index ExprID
	Ctx   Ctx
}

// NameExpr is an identifier reference.
type NameExpr struct {
	ID  source.StringID
	Ctx Ctx
}

// TupleExpr is a comma-joined expression list.
type TupleExpr struct {
	Elts []ExprID
	Ctx  Ctx
}

// ListExpr is a bracketed display.
type ListExpr struct {
	Elts []ExprID
	Ctx  Ctx
}

// IfExpExpr is 'body if test else orelse'.
type IfExpExpr struct {
	Test   ExprID
	Body   ExprID
	OrElse ExprID
}

// ExprKindOf returns the kind of an expression node.
func (t *Tree) ExprKindOf(id ExprID) ExprKind {
	return t.exprs.Get(uint32(id)).Kind
}

// ExprSpan returns the source extent of an expression node.
func (t *Tree) ExprSpan(id ExprID) source.Span {
	return t.exprs.Get(uint32(id)).Span
}

func (t *Tree) newExpr(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(t.exprs.Alloc(Expr{Kind: kind, Span: span, payload: payload}))
}

func (t *Tree) NewBoolOp(span source.Span, op BoolOpKind, values []ExprID) ExprID {
	return t.newExpr(ExprBoolOp, span, t.boolOps.Alloc(BoolOpExpr{Op: op, Values: values}))
}

func (t *Tree) NewBinOp(span source.Span, left ExprID, op Operator, right ExprID) ExprID {
	return t.newExpr(ExprBinOp, span, t.binOps.Alloc(BinOpExpr{Left: left, Op: op, Right: right}))
}

func (t *Tree) NewUnaryOp(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return t.newExpr(ExprUnaryOp, span, t.unaryOps.Alloc(UnaryOpExpr{Op: op, Operand: operand}))
}

func (t *Tree) NewCompare(span source.Span, left ExprID, ops []CmpOp, comparators []ExprID) ExprID {
	return t.newExpr(ExprCompare, span, t.compares.Alloc(CompareExpr{Left: left, Ops: ops, Comparators: comparators}))
}

func (t *Tree) NewCall(span source.Span, fn ExprID, args []ExprID) ExprID {
	return t.newExpr(ExprCall, span, t.calls.Alloc(CallExpr{Func: fn, Args: args}))
}

func (t *Tree) NewNum(span source.Span, literal string) ExprID {
	return t.newExpr(ExprNum, span, t.nums.Alloc(NumExpr{Literal: literal}))
}

func (t *Tree) NewStr(span source.Span, value string) ExprID {
	return t.newExpr(ExprStr, span, t.strs.Alloc(StrExpr{Value: value}))
}

func (t *Tree) NewNameConst(span source.Span, value Singleton) ExprID {
	return t.newExpr(ExprNameConst, span, t.nameConsts.Alloc(NameConstExpr{Value: value}))
}

func (t *Tree) NewAttribute(span source.Span, value ExprID, attr source.StringID) ExprID {
	return t.newExpr(ExprAttribute, span, t.attributes.Alloc(AttributeExpr{Value: value, Attr: attr, Ctx: Load}))
}

func (t *Tree) NewSubscript(span source.Span, value, index ExprID) ExprID {
	return t.newExpr(ExprSubscript, span, t.subscripts.Alloc(SubscriptExpr{Value: value, Index: index, Ctx: Load}))
}

func (t *Tree) NewName(span source.Span, id source.StringID) ExprID {
	return t.newExpr(ExprName, span, t.names.Alloc(NameExpr{ID: id, Ctx: Load}))
}

func (t *Tree) NewTuple(span source.Span, elts []ExprID) ExprID {
	return t.newExpr(ExprTuple, span, t.tuples.Alloc(TupleExpr{Elts: elts, Ctx: Load}))
}

func (t *Tree) NewList(span source.Span, elts []ExprID) ExprID {
	return t.newExpr(ExprList, span, t.lists.Alloc(ListExpr{Elts: elts, Ctx: Load}))
}

func (t *Tree) NewIfExp(span source.Span, test, body, orElse ExprID) ExprID {
	return t.newExpr(ExprIfExp, span, t.ifExps.Alloc(IfExpExpr{Test: test, Body: body, OrElse: orElse}))
}

func (t *Tree) BoolOp(id ExprID) *BoolOpExpr {
	return t.boolOps.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) BinOp(id ExprID) *BinOpExpr {
	return t.binOps.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) UnaryOp(id ExprID) *UnaryOpExpr {
	return t.unaryOps.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) Compare(id ExprID) *CompareExpr {
	return t.compares.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) Call(id ExprID) *CallExpr {
	return t.calls.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) Num(id ExprID) *NumExpr {
	return t.nums.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) Str(id ExprID) *StrExpr {
	return t.strs.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) NameConst(id ExprID) *NameConstExpr {
	return t.nameConsts.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) Attribute(id ExprID) *AttributeExpr {
	return t.attributes.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) Subscript(id ExprID) *SubscriptExpr {
	return t.subscripts.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) Name(id ExprID) *NameExpr {
	return t.names.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) Tuple(id ExprID) *TupleExpr {
	return t.tuples.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) List(id ExprID) *ListExpr {
	return t.lists.Get(t.exprs.Get(uint32(id)).payload)
}

func (t *Tree) IfExp(id ExprID) *IfExpExpr {
	return t.ifExps.Get(t.exprs.Get(uint32(id)).payload)
}
