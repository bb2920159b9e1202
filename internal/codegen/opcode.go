package codegen

// Opcode is one stack machine instruction. Operands come from the
// instruction argument; values flow through the operand stack.
type Opcode uint8

const (
	OpInvalid Opcode = iota

	// Argument is a constant pool index.
	OpLoadConst
	// Argument is a name pool index.
	OpLoadName
	OpStoreName
	OpDeleteName
	OpLoadAttr
	OpStoreAttr
	OpDeleteAttr

	OpBinarySubscr
	OpStoreSubscr
	OpDeleteSubscr

	// Argument is a BinArg value.
	OpBinaryOp
	// Argument is a UnaryArg value.
	OpUnaryOp
	// Argument is a CmpArg value.
	OpCompareOp

	// Argument is an instruction index.
	OpJump
	OpJumpIfFalse
	OpJumpIfTrue
	// Pop-less conditional jumps for boolean chains.
	OpJumpIfFalseKeep
	OpJumpIfTrueKeep

	OpGetIter
	// Argument is the instruction index to jump to when the iterator is
	// exhausted.
	OpForIter

	// Argument is the positional argument count.
	OpCallFunction
	// Argument is a constant pool index holding a code object.
	OpMakeFunction
	// Argument is the base class count; the class code object is below
	// the bases on the stack.
	OpBuildClass

	// Argument is the element count.
	OpBuildTuple
	OpBuildList
	// Argument is the element count to unpack the top of stack into.
	OpUnpackSequence

	OpDupTop
	OpPopTop
	OpPrintExpr
	OpReturnValue
)

var opcodeNames = [...]string{
	"INVALID",
	"LOAD_CONST", "LOAD_NAME", "STORE_NAME", "DELETE_NAME",
	"LOAD_ATTR", "STORE_ATTR", "DELETE_ATTR",
	"BINARY_SUBSCR", "STORE_SUBSCR", "DELETE_SUBSCR",
	"BINARY_OP", "UNARY_OP", "COMPARE_OP",
	"JUMP", "JUMP_IF_FALSE", "JUMP_IF_TRUE",
	"JUMP_IF_FALSE_KEEP", "JUMP_IF_TRUE_KEEP",
	"GET_ITER", "FOR_ITER",
	"CALL_FUNCTION", "MAKE_FUNCTION", "BUILD_CLASS",
	"BUILD_TUPLE", "BUILD_LIST", "UNPACK_SEQUENCE",
	"DUP_TOP", "POP_TOP", "PRINT_EXPR", "RETURN_VALUE",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "UNKNOWN"
}

// HasJumpTarget reports whether the argument is an instruction index.
func (op Opcode) HasJumpTarget() bool {
	switch op {
	case OpJump, OpJumpIfFalse, OpJumpIfTrue, OpJumpIfFalseKeep, OpJumpIfTrueKeep, OpForIter:
		return true
	}
	return false
}
