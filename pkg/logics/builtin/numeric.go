package builtin

import (
	"math"

	"github.com/randalmurphal/logics/pkg/logics/value"
)

// toInt truncates the numeric form of its argument: int("12.7") is 12.
func toInt(args ...value.Value) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	v := args[0]
	switch v.Kind() {
	case value.KindInt, value.KindBool, value.KindNone:
		return v.Int(), nil
	}
	return value.Int(value.Number(math.Trunc(v.Float())).Int()), nil
}

func toFloat(args ...value.Value) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return args[0].Float(), nil
}

func toBool(args ...value.Value) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return args[0].Bool(), nil
}

func length(args ...value.Value) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return args[0].Len(), nil
}

// sum adds the numeric items of a list. Strings contribute their leading
// number; None, lists and dicts contribute nothing.
func sum(args ...value.Value) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	total := value.Int(0)
	for _, item := range args[0].ToList() {
		switch item.Kind() {
		case value.KindBool, value.KindInt, value.KindFloat:
			total = value.Add(total, item)
		case value.KindString:
			total = value.Add(total, value.Number(item.Float()))
		}
	}
	return total, nil
}

// extreme returns min (sign -1) or max (sign 1). A single argument is
// treated as the collection to search; several arguments are compared with
// each other. No candidates yield None.
func extreme(sign int) Func {
	return func(args ...value.Value) (any, error) {
		candidates := args
		if len(args) == 1 {
			candidates = args[0].ToList()
		}
		if len(candidates) == 0 {
			return value.None(), nil
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			if value.Compare(c, best)*sign > 0 {
				best = c
			}
		}
		return best, nil
	}
}

// round(x [, digits]) rounds half to even at the given number of decimal
// digits.
func round(args ...value.Value) (any, error) {
	if err := arity(args, 1, 2); err != nil {
		return nil, err
	}
	f := args[0].Float()
	digits := arg(args, 1, value.Int(0)).Int()
	if digits == 0 {
		return value.Number(math.RoundToEven(f)), nil
	}
	if digits > 308 || digits < -308 {
		return value.Number(f), nil
	}
	scale := math.Pow(10, float64(digits))
	scaled := f * scale
	if math.IsInf(scaled, 0) {
		return value.Number(f), nil
	}
	return value.Number(math.RoundToEven(scaled) / scale), nil
}

// rangeOf implements range(stop), range(start, stop) and
// range(start, stop, step). A zero step yields an empty list. The result
// holds at most MaxRange items.
func rangeOf(args ...value.Value) (any, error) {
	if err := arity(args, 1, 3); err != nil {
		return nil, err
	}
	start, stop, step := int64(0), args[0].Int(), int64(1)
	if len(args) > 1 {
		start, stop = args[0].Int(), args[1].Int()
	}
	if len(args) > 2 {
		step = args[2].Int()
	}

	out := []value.Value{}
	if step == 0 {
		return out, nil
	}
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		if len(out) == MaxRange {
			break
		}
		out = append(out, value.Int(i))
		if (step > 0 && i > math.MaxInt64-step) || (step < 0 && i < math.MinInt64-step) {
			break
		}
	}
	return out, nil
}

// keys returns the keys of a dict as a list of strings.
func keys(args ...value.Value) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	names := args[0].ToDict().Keys()
	out := make([]value.Value, len(names))
	for i, k := range names {
		out[i] = value.String(k)
	}
	return out, nil
}

// values returns the values of a dict as a list.
func values(args ...value.Value) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return args[0].ToDict().Values(), nil
}
