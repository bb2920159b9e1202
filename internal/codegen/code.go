package codegen

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ConstKind discriminates constant pool entries.
type ConstKind uint8

const (
	ConstNone ConstKind = iota
	ConstBool
	ConstInt
	ConstFloat
	ConstStr
	ConstCode
	ConstTuple
)

// Const is one constant pool entry. Exactly the field selected by Kind is
// meaningful.
type Const struct {
	Kind  ConstKind   `msgpack:"kind"`
	Bool  bool        `msgpack:"bool,omitempty"`
	Int   int64       `msgpack:"int,omitempty"`
	Float float64     `msgpack:"float,omitempty"`
	Str   string      `msgpack:"str,omitempty"`
	Code  *CodeObject `msgpack:"code,omitempty"`
	Elems []Const     `msgpack:"elems,omitempty"`
}

func (c Const) String() string {
	switch c.Kind {
	case ConstNone:
		return "None"
	case ConstBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case ConstInt:
		return fmt.Sprintf("%d", c.Int)
	case ConstFloat:
		return fmt.Sprintf("%g", c.Float)
	case ConstStr:
		return fmt.Sprintf("%q", c.Str)
	case ConstCode:
		return fmt.Sprintf("<code %s>", c.Code.Name)
	case ConstTuple:
		return fmt.Sprintf("tuple/%d", len(c.Elems))
	}
	return "?"
}

// equal reports pool-level identity; used for constant deduplication.
func (c Const) equal(o Const) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ConstNone:
		return true
	case ConstBool:
		return c.Bool == o.Bool
	case ConstInt:
		return c.Int == o.Int
	case ConstFloat:
		return c.Float == o.Float
	case ConstStr:
		return c.Str == o.Str
	case ConstCode:
		return c.Code == o.Code
	case ConstTuple:
		if len(c.Elems) != len(o.Elems) {
			return false
		}
		for i := range c.Elems {
			if !c.Elems[i].equal(o.Elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Instr is one encoded instruction with its source line.
type Instr struct {
	Op   Opcode `msgpack:"op"`
	Arg  uint32 `msgpack:"arg"`
	Line uint32 `msgpack:"line"`
}

func (in Instr) String() string {
	if in.Op.HasJumpTarget() || in.Op == OpLoadConst || in.Op == OpLoadName ||
		in.Op == OpStoreName || in.Op == OpDeleteName {
		return fmt.Sprintf("%-20s %d", in.Op, in.Arg)
	}
	return in.Op.String()
}

// CodeObject is the executable result of compilation. It is self-contained
// and serializable; nested functions and classes live in the constant pool.
type CodeObject struct {
	Name      string   `msgpack:"name"`
	Filename  string   `msgpack:"filename"`
	Params    []string `msgpack:"params,omitempty"`
	Globals   []string `msgpack:"globals,omitempty"`
	Names     []string `msgpack:"names,omitempty"`
	Consts    []Const  `msgpack:"consts,omitempty"`
	Instrs    []Instr  `msgpack:"instrs"`
	FirstLine uint32   `msgpack:"firstline"`
	Docstring string   `msgpack:"docstring,omitempty"`
}

// Marshal serializes the code object.
func (co *CodeObject) Marshal() ([]byte, error) {
	return msgpack.Marshal(co)
}

// UnmarshalCodeObject deserializes a code object produced by Marshal.
func UnmarshalCodeObject(data []byte) (*CodeObject, error) {
	var co CodeObject
	if err := msgpack.Unmarshal(data, &co); err != nil {
		return nil, fmt.Errorf("decode code object: %w", err)
	}
	return &co, nil
}

// addConst returns the pool index of the constant, deduplicating.
func (co *CodeObject) addConst(c Const) uint32 {
	for i, have := range co.Consts {
		if have.equal(c) {
			return uint32(i)
		}
	}
	co.Consts = append(co.Consts, c)
	return uint32(len(co.Consts) - 1)
}

// addName returns the pool index of the name, deduplicating.
func (co *CodeObject) addName(name string) uint32 {
	for i, have := range co.Names {
		if have == name {
			return uint32(i)
		}
	}
	co.Names = append(co.Names, name)
	return uint32(len(co.Names) - 1)
}
