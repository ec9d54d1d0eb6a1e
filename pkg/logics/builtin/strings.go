package builtin

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/logics/pkg/logics/value"
)

// Casers are stateful, so each call builds its own.

func upper(tag language.Tag) Func {
	return func(args ...value.Value) (any, error) {
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		return cases.Upper(tag).String(args[0].String()), nil
	}
}

func lower(tag language.Tag) Func {
	return func(args ...value.Value) (any, error) {
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		return cases.Lower(tag).String(args[0].String()), nil
	}
}

// capitalize upper-cases the first character and lower-cases the rest.
func capitalize(tag language.Tag) Func {
	return func(args ...value.Value) (any, error) {
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		s := args[0].String()
		_, size := utf8.DecodeRuneInString(s)
		return cases.Upper(tag).String(s[:size]) + cases.Lower(tag).String(s[size:]), nil
	}
}

func title(tag language.Tag) Func {
	return func(args ...value.Value) (any, error) {
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		return cases.Title(tag).String(args[0].String()), nil
	}
}

func str(args ...value.Value) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return args[0].String(), nil
}

const defaultCutset = " \t\r\n"

type trimMode uint8

const (
	trimBoth trimMode = iota
	trimLeft
	trimRight
)

// strip(s [, chars]) removes any of chars from the ends of s.
func strip(mode trimMode) Func {
	return func(args ...value.Value) (any, error) {
		if err := arity(args, 1, 2); err != nil {
			return nil, err
		}
		s := args[0].String()
		cutset := arg(args, 1, value.String(defaultCutset)).String()
		switch mode {
		case trimLeft:
			return strings.TrimLeft(s, cutset), nil
		case trimRight:
			return strings.TrimRight(s, cutset), nil
		default:
			return strings.Trim(s, cutset), nil
		}
	}
}

// replace(s [, find [, with]]) replaces every occurrence of find in s. find
// defaults to a space and with to the empty string; a list of finds is
// replaced one after the other. An empty find inserts with before every
// character.
func replace(args ...value.Value) (any, error) {
	if err := arity(args, 1, 3); err != nil {
		return nil, err
	}
	s := args[0].String()
	find := arg(args, 1, value.String(" "))
	with := arg(args, 2, value.String("")).String()

	finds := []value.Value{find}
	if find.Kind() == value.KindList {
		finds = find.Items()
	}
	for _, f := range finds {
		s = replaceOne(s, f.String(), with)
	}
	return s, nil
}

func replaceOne(s, find, with string) string {
	if find != "" {
		return strings.ReplaceAll(s, find, with)
	}
	var sb strings.Builder
	for _, r := range s {
		sb.WriteString(with)
		sb.WriteRune(r)
	}
	return sb.String()
}

// join(list [, delim [, last]]) joins the string forms of the items with
// delim, using last between the final two items when given.
func join(args ...value.Value) (any, error) {
	if err := arity(args, 1, 3); err != nil {
		return nil, err
	}
	items := args[0].ToList()
	delim := arg(args, 1, value.String(", ")).String()
	last := arg(args, 2, value.None())

	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			if i == len(items)-1 && !last.IsNone() {
				sb.WriteString(last.String())
			} else {
				sb.WriteString(delim)
			}
		}
		sb.WriteString(item.String())
	}
	return sb.String(), nil
}

// split(s [, delim]) splits s around delim, which defaults to a space. An
// empty delim splits s into characters.
func split(args ...value.Value) (any, error) {
	if err := arity(args, 1, 2); err != nil {
		return nil, err
	}
	parts := strings.Split(args[0].String(), arg(args, 1, value.String(" ")).String())
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return out, nil
}

// fill returns lfill or rfill: fill(s, width [, pad]) repeats pad once for
// every character s is shorter than width, on the left or the right.
func fill(left bool) Func {
	return func(args ...value.Value) (any, error) {
		if err := arity(args, 2, 3); err != nil {
			return nil, err
		}
		s := args[0].String()
		missing := args[1].Int() - int64(utf8.RuneCountInString(s))
		if missing <= 0 {
			return s, nil
		}
		pad := arg(args, 2, value.String(" ")).String()
		if pad == "" {
			return s, nil
		}
		padding := value.Mul(value.String(pad), value.Int(missing)).String()
		if left {
			return padding + s, nil
		}
		return s + padding, nil
	}
}

// currency(amount [, decimal [, thousands [, sign]]]) formats amount with two
// decimals and grouped thousands, e.g. 1234.5 -> "1.234,50 €".
func currency(args ...value.Value) (any, error) {
	if err := arity(args, 1, 4); err != nil {
		return nil, err
	}
	decimal := arg(args, 1, value.String(",")).String()
	thousands := arg(args, 2, value.String(".")).String()
	sign := arg(args, 3, value.String("€")).String()

	formatted := strconv.FormatFloat(args[0].Float(), 'f', 2, 64)
	negative := strings.HasPrefix(formatted, "-")
	formatted = strings.TrimPrefix(formatted, "-")
	whole, fraction, _ := strings.Cut(formatted, ".")

	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteString(thousands)
		}
		sb.WriteRune(r)
	}
	sb.WriteString(decimal)
	sb.WriteString(fraction)
	if sign != "" {
		sb.WriteByte(' ')
		sb.WriteString(sign)
	}
	return strings.TrimSpace(sb.String()), nil
}
