package ast

// ExprID is a 1-based handle to an expression node.
type ExprID uint32

// StmtID is a 1-based handle to a statement node.
type StmtID uint32

// NoExpr and NoStmt are the absent-node sentinels.
const (
	NoExpr ExprID = 0
	NoStmt StmtID = 0
)
