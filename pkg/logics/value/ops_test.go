package value

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryOps(t *testing.T) {
	tests := []struct {
		name string
		op   func(a, b Value) Value
		a, b Value
		want string
	}{
		{"add ints", Add, Int(1), Int(2), "3"},
		{"add concatenates", Add, Int(1), String("2"), `"12"`},
		{"add floats to int", Add, Number(1.5), Number(1.5), "3"},
		{"add bool", Add, True, Int(1), "2"},
		{"add none", Add, None(), Int(1), "1"},
		{"add overflow", Add, Int(math.MaxInt64), Int(1), "9.223372036854776e+18"},
		{"sub mixed", Sub, Int(5), Number(7.5), "-2.5"},
		{"mul ints", Mul, Int(2), Int(3), "6"},
		{"mul float", Mul, Int(2), Number(2.5), "5"},
		{"mul repeats string", Mul, String("ab"), Int(3), `"ababab"`},
		{"mul repeats string right", Mul, Int(3), String("ab"), `"ababab"`},
		{"mul zero repeat", Mul, String("ab"), Int(0), `""`},
		{"mul negative repeat", Mul, String("ab"), Int(-2), `""`},
		{"div is true division", Div, Int(7), Int(2), "3.5"},
		{"div exact", Div, Int(4), Int(2), "2"},
		{"div by zero", Div, Int(1), Int(0), "inf"},
		{"div negative by zero", Div, Int(-1), Int(0), "-inf"},
		{"div zero by zero", Div, Int(0), Int(0), "nan"},
		{"floordiv", FloorDiv, Int(7), Int(2), "3"},
		{"floordiv negative dividend", FloorDiv, Int(-7), Int(2), "-4"},
		{"floordiv negative divisor", FloorDiv, Int(7), Int(-2), "-4"},
		{"floordiv truncates operands", FloorDiv, Number(7.9), Int(2), "3"},
		{"floordiv by zero", FloorDiv, Int(1), Int(0), "inf"},
		{"mod", Mod, Int(7), Int(3), "1"},
		{"mod negative dividend", Mod, Int(-7), Int(3), "2"},
		{"mod negative divisor", Mod, Int(7), Int(-3), "-2"},
		{"mod float", Mod, Number(7.5), Int(2), "1.5"},
		{"mod negative float", Mod, Number(-7.5), Int(2), "0.5"},
		{"mod by zero", Mod, Int(1), Int(0), "nan"},
		{"pow", Pow, Int(2), Int(10), "1024"},
		{"pow negative exponent", Pow, Int(2), Int(-1), "0.5"},
		{"pow fractional exponent", Pow, Int(4), Number(0.5), "2"},
		{"pow overflow", Pow, Int(2), Int(64), "1.8446744073709552e+19"},
		{"pow zero", Pow, Int(5), Int(0), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op(tt.a, tt.b).Repr())
		})
	}
}

func TestUnaryOps(t *testing.T) {
	tests := []struct {
		name string
		op   func(Value) Value
		v    Value
		want string
	}{
		{"pos bool", Pos, True, "1"},
		{"pos float", Pos, Number(1.5), "1.5"},
		{"pos string", Pos, String("12abc"), "12"},
		{"neg float", Neg, Number(1.5), "-1.5"},
		{"neg string", Neg, String("3"), "-3"},
		{"neg min int", Neg, Int(math.MinInt64), "9.223372036854776e+18"},
		{"invert", Invert, Int(5), "-6"},
		{"invert none", Invert, None(), "-1"},
		{"not zero", Not, Int(0), "True"},
		{"not list", Not, List(Int(1)), "False"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op(tt.v).Repr())
		})
	}
}

func TestMul_RepeatIsCapped(t *testing.T) {
	got := Mul(String("abcd"), Int(math.MaxInt64))
	assert.Equal(t, MaxRepeatLength, len(got.String()))
	assert.True(t, strings.HasPrefix(got.String(), "abcdabcd"))
}

func TestOps_DoNotMutateOperands(t *testing.T) {
	a := List(Int(1), Int(2))
	c := Mul(a, String("x"))
	assert.Equal(t, "[1, 2]", a.Repr())
	assert.Equal(t, `""`, c.Repr())
}
