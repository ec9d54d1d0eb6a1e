package value

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPrefix   = regexp.MustCompile(`^[+-]?[0-9]+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)
)

// ParseInt parses the leading integer of s, ignoring surrounding whitespace
// and any trailing text. " -123 xix" yields -123.
//
// Returns ErrNotNumeric when s has no leading integer. Out-of-range numbers
// return the clamped value along with strconv.ErrRange.
func ParseInt(s string) (int64, error) {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, ErrNotNumeric
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return n, strconv.ErrRange
	}
	return n, nil
}

// ParseFloat parses the leading decimal number of s, ignoring surrounding
// whitespace and any trailing text. " -123.4 xfx" yields -123.4.
//
// Returns ErrNotNumeric when s has no leading number. Out-of-range numbers
// return ±Inf along with strconv.ErrRange.
func ParseFloat(s string) (float64, error) {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, ErrNotNumeric
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return f, strconv.ErrRange
	}
	return f, nil
}

// Bool returns the truthiness of v. None, false, zero, NaN and empty
// strings, lists and dicts are false.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0 && !math.IsNaN(v.f)
	case KindString:
		return v.s != ""
	case KindList:
		return len(v.list) > 0
	case KindDict:
		return v.dict.Len() > 0
	default:
		return false
	}
}

// Int returns v as an integer. Floats are truncated toward zero; strings and
// other kinds use the leading integer of their string form. Never fails:
// unparsable input yields 0.
func (v Value) Int() int64 {
	switch v.kind {
	case KindNone:
		return 0
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt:
		return v.i
	case KindFloat:
		return truncate(v.f)
	}
	n, err := ParseInt(v.String())
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}

// Float returns v as a float. Strings and other kinds use the leading
// number of their string form. Never fails: unparsable input yields 0.0.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNone:
		return 0
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	}
	f, err := ParseFloat(v.String())
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}

// String returns the string form of v: the text itself for strings, the
// literal for numbers, and Repr for everything else.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	default:
		return v.Repr()
	}
}

// ToList returns the elements of a list, or a single-element list holding v
// for every other kind. The returned slice must not be modified.
func (v Value) ToList() []Value {
	if v.kind == KindList {
		return v.list
	}
	return []Value{v}
}

// ToDict returns the entries of a dict, or a one-entry map using the string
// form of v as key and v as value. The returned map must not be modified.
func (v Value) ToDict() *OrderedMap[Value] {
	if v.kind == KindDict {
		return v.dict
	}
	m := NewOrderedMap[Value](1)
	m.Set(v.String(), v)
	return m
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0
	case f >= twoPow63:
		return math.MaxInt64
	case f < -twoPow63:
		return math.MinInt64
	}
	return int64(f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
