package ast

// Mode selects the shape of a lowered tree.
type Mode uint8

const (
	// ModuleMode is a sequence of statements from file input.
	ModuleMode Mode = iota
	// ExpressionMode is a single expression from eval input.
	ExpressionMode
	// InteractiveMode is a statement group from single input.
	InteractiveMode
)

func (m Mode) String() string {
	switch m {
	case ModuleMode:
		return "Module"
	case ExpressionMode:
		return "Expression"
	case InteractiveMode:
		return "Interactive"
	}
	return "UnknownMode"
}

// Ctx is the usage context of an assignable expression.
type Ctx uint8

const (
	Load Ctx = iota
	Store
	Del
)

func (c Ctx) String() string {
	switch c {
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Del:
		return "Del"
	}
	return "UnknownCtx"
}

// BoolOpKind distinguishes 'and' from 'or'.
type BoolOpKind uint8

const (
	OpAnd BoolOpKind = iota
	OpOr
)

func (op BoolOpKind) String() string {
	if op == OpAnd {
		return "And"
	}
	return "Or"
}

// Operator is a binary arithmetic operator.
type Operator uint8

const (
	OpAdd Operator = iota
	OpSub
	OpMult
	OpDiv
	OpMod
	OpPow
	OpFloorDiv
)

var operatorNames = [...]string{"Add", "Sub", "Mult", "Div", "Mod", "Pow", "FloorDiv"}

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "UnknownOp"
}

// UnaryOp is a unary operator.
type UnaryOp uint8

const (
	OpUAdd UnaryOp = iota
	OpUSub
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpUAdd:
		return "UAdd"
	case OpUSub:
		return "USub"
	case OpNot:
		return "Not"
	}
	return "UnknownUnaryOp"
}

// CmpOp is a comparison operator.
type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
	CmpIs
	CmpIsNot
	CmpIn
	CmpNotIn
)

var cmpOpNames = [...]string{"Eq", "NotEq", "Lt", "LtE", "Gt", "GtE", "Is", "IsNot", "In", "NotIn"}

func (op CmpOp) String() string {
	if int(op) < len(cmpOpNames) {
		return cmpOpNames[op]
	}
	return "UnknownCmpOp"
}

// Singleton is the value of a NameConst expression.
type Singleton uint8

const (
	SingletonNone Singleton = iota
	SingletonTrue
	SingletonFalse
)

func (s Singleton) String() string {
	switch s {
	case SingletonNone:
		return "None"
	case SingletonTrue:
		return "True"
	case SingletonFalse:
		return "False"
	}
	return "UnknownSingleton"
}
