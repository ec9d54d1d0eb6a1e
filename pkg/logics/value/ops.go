package value

import (
	"math"
	"strings"
)

// MaxRepeatLength caps the byte length of a string produced by Mul.
// Repeat counts that would exceed it are reduced to fit.
const MaxRepeatLength = 1 << 24

// Add returns a + b. Strings concatenate the string forms of both operands;
// otherwise the result is a float sum if either side is a float, else an
// integer sum.
func Add(a, b Value) Value {
	switch {
	case a.kind == KindString || b.kind == KindString:
		return String(a.String() + b.String())
	case a.kind == KindFloat || b.kind == KindFloat:
		return Number(a.Float() + b.Float())
	}
	x, y := a.Int(), b.Int()
	s := x + y
	if (s > x) != (y > 0) {
		return Number(float64(x) + float64(y))
	}
	return Int(s)
}

// Sub returns a - b.
func Sub(a, b Value) Value {
	if a.kind == KindFloat || b.kind == KindFloat {
		return Number(a.Float() - b.Float())
	}
	x, y := a.Int(), b.Int()
	d := x - y
	if (d < x) != (y > 0) {
		return Number(float64(x) - float64(y))
	}
	return Int(d)
}

// Mul returns a * b. A string operand is repeated by the integer form of
// the other operand; a non-positive count yields the empty string.
func Mul(a, b Value) Value {
	switch {
	case a.kind == KindString:
		return repeat(a.s, b.Int())
	case b.kind == KindString:
		return repeat(b.s, a.Int())
	case a.kind == KindFloat || b.kind == KindFloat:
		return Number(a.Float() * b.Float())
	}
	x, y := a.Int(), b.Int()
	if x == 0 || y == 0 {
		return Int(0)
	}
	p := x * y
	if p/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return Number(float64(x) * float64(y))
	}
	return Int(p)
}

func repeat(s string, n int64) Value {
	if n <= 0 || s == "" {
		return String("")
	}
	if limit := int64(MaxRepeatLength / len(s)); n > limit {
		n = limit
	}
	return String(strings.Repeat(s, int(n)))
}

// Div returns the true quotient a / b. Two integers never truncate: 7 / 2
// is 3.5. Division by zero yields inf, -inf or nan.
func Div(a, b Value) Value {
	return Number(a.Float() / b.Float())
}

// FloorDiv returns the integer quotient of a and b rounded toward negative
// infinity. Division by zero yields inf, -inf or nan.
func FloorDiv(a, b Value) Value {
	x, y := a.Int(), b.Int()
	if y == 0 {
		return Number(math.Floor(float64(x) / float64(y)))
	}
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return Int(q)
}

// Mod returns the remainder of a / b, taking the sign of the divisor.
// Modulo by zero yields nan.
func Mod(a, b Value) Value {
	if a.kind == KindFloat || b.kind == KindFloat {
		x, y := a.Float(), b.Float()
		r := math.Mod(x, y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return Number(r)
	}
	x, y := a.Int(), b.Int()
	if y == 0 {
		return Number(math.NaN())
	}
	r := x % y
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return Int(r)
}

// Pow returns a raised to the power of b. Integer powers stay integral
// unless the exponent is negative or the result overflows.
func Pow(a, b Value) Value {
	if a.kind == KindFloat || b.kind == KindFloat {
		return Number(math.Pow(a.Float(), b.Float()))
	}
	base, exp := a.Int(), b.Int()
	if exp < 0 {
		return Number(math.Pow(float64(base), float64(exp)))
	}
	if r, ok := intPow(base, exp); ok {
		return Int(r)
	}
	return Number(math.Pow(float64(base), float64(exp)))
}

func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r := Mul(Int(result), Int(base))
			if r.kind != KindInt {
				return 0, false
			}
			result = r.i
		}
		exp >>= 1
		if exp > 0 {
			sq := Mul(Int(base), Int(base))
			if sq.kind != KindInt {
				return 0, false
			}
			base = sq.i
		}
	}
	return result, true
}

// Pos returns +v, keeping floats as floats and coercing everything else to
// an integer.
func Pos(v Value) Value {
	if v.kind == KindFloat {
		return v
	}
	return Int(v.Int())
}

// Neg returns -v, keeping floats as floats and coercing everything else to
// an integer.
func Neg(v Value) Value {
	if v.kind == KindFloat {
		return Number(-v.f)
	}
	i := v.Int()
	if i == math.MinInt64 {
		return Number(-float64(i))
	}
	return Int(-i)
}

// Invert returns the bitwise complement of v's integer form.
func Invert(v Value) Value {
	return Int(^v.Int())
}

// Not returns the boolean negation of v's truthiness.
func Not(v Value) Value {
	return Bool(!v.Bool())
}
