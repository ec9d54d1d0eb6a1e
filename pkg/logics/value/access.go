package value

import "unicode/utf8"

// Len returns the number of keys of a dict, the number of elements of a
// list, and the number of characters of the string form of anything else.
func (v Value) Len() int {
	switch v.kind {
	case KindDict:
		return v.dict.Len()
	case KindList:
		return len(v.list)
	default:
		return utf8.RuneCountInString(v.String())
	}
}

// Index looks key up in v.
//
// Dicts are indexed by the string form of key. Lists and strings are indexed
// by the integer form of key, where negative positions count from the end.
// Missing keys, out-of-range positions and other kinds yield None.
func (v Value) Index(key Value) Value {
	switch v.kind {
	case KindDict:
		if item, ok := v.dict.Get(key.String()); ok {
			return item
		}
		return Null
	case KindList:
		if i, ok := position(key.Int(), len(v.list)); ok {
			return v.list[i]
		}
		return Null
	case KindString:
		runes := []rune(v.s)
		if i, ok := position(key.Int(), len(runes)); ok {
			return String(string(runes[i]))
		}
		return Null
	default:
		return Null
	}
}

func position(i int64, n int) (int, bool) {
	if i < 0 {
		i += int64(n)
	}
	if i < 0 || i >= int64(n) {
		return 0, false
	}
	return int(i), true
}

// Slice returns the sub-range [from, to) of a list or string as the same
// kind. None bounds default to the start and end; negative bounds count
// from the end; the range is clamped to valid bounds. Other kinds yield
// None.
func (v Value) Slice(from, to Value) Value {
	switch v.kind {
	case KindList:
		lo, hi := bounds(from, to, len(v.list))
		items := make([]Value, hi-lo)
		copy(items, v.list[lo:hi])
		return listOf(items)
	case KindString:
		runes := []rune(v.s)
		lo, hi := bounds(from, to, len(runes))
		return String(string(runes[lo:hi]))
	default:
		return Null
	}
}

func bounds(from, to Value, n int) (int, int) {
	lo, hi := int64(0), int64(n)
	if !from.IsNone() {
		lo = clamp(from.Int(), n)
	}
	if !to.IsNone() {
		hi = clamp(to.Int(), n)
	}
	if hi < lo {
		hi = lo
	}
	return int(lo), int(hi)
}

func clamp(i int64, n int) int64 {
	if i < 0 {
		i += int64(n)
	}
	if i < 0 {
		return 0
	}
	if i > int64(n) {
		return int64(n)
	}
	return i
}
