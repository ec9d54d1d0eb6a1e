package value

import (
	"cmp"
	"strings"
)

// Compare performs a three-way comparison of a and b and returns -1, 0 or 1.
//
// The operands are coerced along a fixed type-priority ladder:
//
//  1. If either is a dict, both are promoted to dicts. Fewer keys is smaller.
//     With equal key counts, a's keys are walked in order: a key missing from
//     b makes a greater, otherwise the first non-equal value decides.
//  2. Else if either is a list, both are promoted to lists. Shorter is
//     smaller; equal lengths compare elementwise.
//  3. Else if either is a string, the string forms are compared.
//  4. Else if either is a float, the float forms are compared.
//  5. Otherwise the integer forms are compared.
func Compare(a, b Value) int {
	switch {
	case a.kind == KindDict || b.kind == KindDict:
		return compareDicts(a.ToDict(), b.ToDict())
	case a.kind == KindList || b.kind == KindList:
		return compareLists(a.ToList(), b.ToList())
	case a.kind == KindString || b.kind == KindString:
		return strings.Compare(a.String(), b.String())
	case a.kind == KindFloat || b.kind == KindFloat:
		return compareFloats(a.Float(), b.Float())
	default:
		return cmp.Compare(a.Int(), b.Int())
	}
}

func compareDicts(a, b *OrderedMap[Value]) int {
	if c := cmp.Compare(a.Len(), b.Len()); c != 0 {
		return c
	}
	for k, av := range a.All() {
		bv, ok := b.Get(k)
		if !ok {
			return 1
		}
		if c := Compare(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

func compareLists(a, b []Value) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// compareFloats treats NaN as neither smaller nor greater.
func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether Compare(a, b) == 0.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// In reports whether v is contained in container.
//
// For dicts v's string form is looked up as a key, for lists each element
// is compared with Compare, and for everything else v's string form is
// searched as a substring of container's string form.
func (v Value) In(container Value) bool {
	switch container.kind {
	case KindDict:
		return container.dict.Has(v.String())
	case KindList:
		for _, item := range container.list {
			if Compare(item, v) == 0 {
				return true
			}
		}
		return false
	default:
		return strings.Contains(container.String(), v.String())
	}
}
