package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"adder/internal/ast"
)

// maxFoldedStr caps folded string concatenation so the constant pool does
// not balloon.
const maxFoldedStr = 256

// fold evaluates a constant subexpression. A false result means the
// expression must be compiled normally; it is not an error.
func (c *compiler) fold(id ast.ExprID) (Const, bool) {
	t := c.tree
	switch t.ExprKindOf(id) {
	case ast.ExprNum:
		v, err := parseNumber(t.Num(id).Literal)
		if err != nil {
			return Const{}, false
		}
		return v, true

	case ast.ExprStr:
		return Const{Kind: ConstStr, Str: t.Str(id).Value}, true

	case ast.ExprNameConst:
		return singletonConst(t.NameConst(id).Value), true

	case ast.ExprUnaryOp:
		u := t.UnaryOp(id)
		operand, ok := c.fold(u.Operand)
		if !ok {
			return Const{}, false
		}
		return foldUnary(u.Op, operand)

	case ast.ExprBinOp:
		b := t.BinOp(id)
		left, ok := c.fold(b.Left)
		if !ok {
			return Const{}, false
		}
		right, ok := c.fold(b.Right)
		if !ok {
			return Const{}, false
		}
		return foldBinary(left, b.Op, right)

	case ast.ExprTuple:
		elts := t.Tuple(id).Elts
		folded := make([]Const, 0, len(elts))
		for _, elt := range elts {
			v, ok := c.fold(elt)
			if !ok {
				return Const{}, false
			}
			folded = append(folded, v)
		}
		return Const{Kind: ConstTuple, Elems: folded}, true
	}
	return Const{}, false
}

func foldUnary(op ast.UnaryOp, v Const) (Const, bool) {
	switch op {
	case ast.OpUAdd:
		if v.Kind == ConstInt || v.Kind == ConstFloat {
			return v, true
		}
	case ast.OpUSub:
		switch v.Kind {
		case ConstInt:
			if v.Int == math.MinInt64 {
				return Const{}, false
			}
			return Const{Kind: ConstInt, Int: -v.Int}, true
		case ConstFloat:
			return Const{Kind: ConstFloat, Float: -v.Float}, true
		}
	case ast.OpNot:
		switch v.Kind {
		case ConstBool:
			return Const{Kind: ConstBool, Bool: !v.Bool}, true
		case ConstNone:
			return Const{Kind: ConstBool, Bool: true}, true
		}
	}
	return Const{}, false
}

func foldBinary(l Const, op ast.Operator, r Const) (Const, bool) {
	if l.Kind == ConstStr && r.Kind == ConstStr && op == ast.OpAdd {
		if len(l.Str)+len(r.Str) > maxFoldedStr {
			return Const{}, false
		}
		return Const{Kind: ConstStr, Str: l.Str + r.Str}, true
	}

	if l.Kind == ConstInt && r.Kind == ConstInt {
		return foldIntOp(l.Int, op, r.Int)
	}
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return Const{}, false
	}
	return foldFloatOp(lf, op, rf)
}

func asFloat(c Const) (float64, bool) {
	switch c.Kind {
	case ConstInt:
		return float64(c.Int), true
	case ConstFloat:
		return c.Float, true
	}
	return 0, false
}

func foldIntOp(a int64, op ast.Operator, b int64) (Const, bool) {
	switch op {
	case ast.OpAdd:
		s := a + b
		if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
			return Const{}, false
		}
		return Const{Kind: ConstInt, Int: s}, true
	case ast.OpSub:
		return foldIntOp(a, ast.OpAdd, -b)
	case ast.OpMult:
		if a == 0 || b == 0 {
			return Const{Kind: ConstInt, Int: 0}, true
		}
		s := a * b
		if s/a != b {
			return Const{}, false
		}
		return Const{Kind: ConstInt, Int: s}, true
	case ast.OpDiv:
		if b == 0 {
			return Const{}, false
		}
		return Const{Kind: ConstFloat, Float: float64(a) / float64(b)}, true
	case ast.OpMod:
		if b == 0 {
			return Const{}, false
		}
		m := a % b
		if m != 0 && (a < 0) != (b < 0) {
			m += b
		}
		return Const{Kind: ConstInt, Int: m}, true
	case ast.OpFloorDiv:
		if b == 0 {
			return Const{}, false
		}
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return Const{Kind: ConstInt, Int: q}, true
	case ast.OpPow:
		return foldIntPow(a, b)
	}
	return Const{}, false
}

func foldIntPow(base, exp int64) (Const, bool) {
	if exp < 0 {
		return Const{Kind: ConstFloat, Float: math.Pow(float64(base), float64(exp))}, true
	}
	// Bases in {-1, 0, 1} never overflow, so the loop below would run for
	// the full exponent; resolve them directly.
	switch base {
	case 0:
		if exp == 0 {
			return Const{Kind: ConstInt, Int: 1}, true
		}
		return Const{Kind: ConstInt, Int: 0}, true
	case 1:
		return Const{Kind: ConstInt, Int: 1}, true
	case -1:
		if exp%2 == 0 {
			return Const{Kind: ConstInt, Int: 1}, true
		}
		return Const{Kind: ConstInt, Int: -1}, true
	}
	// |base| >= 2 overflows int64 within 63 multiplications.
	if exp > 62 {
		return Const{}, false
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		next := result * base
		if next/base != result {
			return Const{}, false
		}
		result = next
	}
	return Const{Kind: ConstInt, Int: result}, true
}

func foldFloatOp(a float64, op ast.Operator, b float64) (Const, bool) {
	switch op {
	case ast.OpAdd:
		return Const{Kind: ConstFloat, Float: a + b}, true
	case ast.OpSub:
		return Const{Kind: ConstFloat, Float: a - b}, true
	case ast.OpMult:
		return Const{Kind: ConstFloat, Float: a * b}, true
	case ast.OpDiv:
		if b == 0 {
			return Const{}, false
		}
		return Const{Kind: ConstFloat, Float: a / b}, true
	case ast.OpMod:
		if b == 0 {
			return Const{}, false
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return Const{Kind: ConstFloat, Float: m}, true
	case ast.OpFloorDiv:
		if b == 0 {
			return Const{}, false
		}
		return Const{Kind: ConstFloat, Float: math.Floor(a / b)}, true
	case ast.OpPow:
		return Const{Kind: ConstFloat, Float: math.Pow(a, b)}, true
	}
	return Const{}, false
}

// parseNumber evaluates a numeric literal's text.
func parseNumber(lit string) (Const, error) {
	low := strings.ToLower(lit)
	if strings.HasPrefix(low, "0x") || strings.HasPrefix(low, "0o") || strings.HasPrefix(low, "0b") {
		v, err := strconv.ParseInt(low, 0, 64)
		if err != nil {
			return Const{}, fmt.Errorf("invalid numeric literal %q", lit)
		}
		return Const{Kind: ConstInt, Int: v}, nil
	}
	plain := strings.ReplaceAll(lit, "_", "")
	if strings.ContainsAny(plain, ".eE") {
		f, err := strconv.ParseFloat(plain, 64)
		if err != nil {
			return Const{}, fmt.Errorf("invalid numeric literal %q", lit)
		}
		return Const{Kind: ConstFloat, Float: f}, nil
	}
	v, err := strconv.ParseInt(plain, 10, 64)
	if err != nil {
		return Const{}, fmt.Errorf("integer literal out of range: %q", lit)
	}
	return Const{Kind: ConstInt, Int: v}, nil
}
