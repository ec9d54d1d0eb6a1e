package builtin

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/randalmurphal/logics/pkg/logics/value"
)

// ErrArguments indicates a function was called with the wrong number of
// arguments.
var ErrArguments = errors.New("wrong number of arguments")

// MaxRange caps the number of elements range may produce.
const MaxRange = 1 << 16

// Default returns a new registry holding the standard functions with
// language-neutral casing rules.
func Default() *Registry {
	return Standard(language.Und)
}

// Standard returns a new registry holding the standard functions. Casing
// functions follow the rules of tag.
func Standard(tag language.Tag) *Registry {
	r := New()
	r.RegisterMany(map[string]Func{
		"upper":      upper(tag),
		"lower":      lower(tag),
		"capitalize": capitalize(tag),
		"title":      title(tag),
		"str":        str,
		"strip":      strip(trimBoth),
		"lstrip":     strip(trimLeft),
		"rstrip":     strip(trimRight),
		"replace":    replace,
		"join":       join,
		"split":      split,
		"lfill":      fill(true),
		"rfill":      fill(false),
		"currency":   currency,

		"int":    toInt,
		"float":  toFloat,
		"bool":   toBool,
		"len":    length,
		"sum":    sum,
		"min":    extreme(-1),
		"max":    extreme(1),
		"round":  round,
		"range":  rangeOf,
		"keys":   keys,
		"values": values,
	})
	return r
}

// arity checks that len(args) lies within [lo, hi]. A negative hi means
// no upper bound.
func arity(args []value.Value, lo, hi int) error {
	n := len(args)
	switch {
	case n < lo && lo == hi:
		return fmt.Errorf("%w: want %d, have %d", ErrArguments, lo, n)
	case n < lo:
		return fmt.Errorf("%w: want at least %d, have %d", ErrArguments, lo, n)
	case hi >= 0 && n > hi:
		return fmt.Errorf("%w: want at most %d, have %d", ErrArguments, hi, n)
	}
	return nil
}

// arg returns the i-th argument or def when it was not passed.
func arg(args []value.Value, i int, def value.Value) value.Value {
	if i < len(args) {
		return args[i]
	}
	return def
}
