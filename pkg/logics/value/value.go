package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds. The zero Kind is KindNone, so the zero Value is None.
const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindDict
)

// String returns the Logics type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is an immutable Logics runtime value.
//
// The kind is fixed when the value is constructed. Lists and dicts are
// copied on construction; slices and maps handed out by accessors must be
// treated as read-only.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	dict *OrderedMap[Value]
}

// Common values.
var (
	Null  = Value{}
	True  = Value{kind: KindBool, b: true}
	False = Value{kind: KindBool, b: false}
)

// None returns the None value.
func None() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Number returns a numeric value from f. The result is an Int when f is
// finite and has no fractional part, and a Float otherwise.
func Number(f float64) Value {
	if isIntegral(f) {
		return Int(int64(f))
	}
	return Value{kind: KindFloat, f: f}
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List returns a list value holding a copy of items.
func List(items ...Value) Value {
	return listOf(slices.Clone(items))
}

// Dict returns a dict value holding a copy of m.
func Dict(m *OrderedMap[Value]) Value {
	return dictOf(m.Clone())
}

// listOf wraps items without copying; callers must own items.
func listOf(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// dictOf wraps m without copying; callers must own m.
func dictOf(m *OrderedMap[Value]) Value {
	if m == nil {
		m = NewOrderedMap[Value](0)
	}
	return Value{kind: KindDict, dict: m}
}

// 2^63 as a float; int64 conversion is only defined below it.
const twoPow63 = 9223372036854775808.0

func isIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) &&
		f == math.Trunc(f) && f >= -twoPow63 && f < twoPow63
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether v is None.
func (v Value) IsNone() bool { return v.kind == KindNone }

// Items returns the elements of a list value, or nil for other kinds.
// The returned slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Entries returns the entries of a dict value, or nil for other kinds.
// The returned map must not be modified.
func (v Value) Entries() *OrderedMap[Value] {
	if v.kind != KindDict {
		return nil
	}
	return v.dict
}

// New converts native Go data into a Value.
//
// Supported inputs are nil, bool, all integer widths, float32, float64,
// json.Number, string, Value, slices and arrays of supported values, maps
// with string keys, and *OrderedMap of Value or any. Composite inputs are
// converted all-or-nothing: the first unsupported element fails the whole
// conversion with a *ConversionError. Plain Go maps are converted in sorted
// key order.
func New(x any) (Value, error) {
	return convert(x, "$")
}

// MustNew is like New but panics on conversion failure.
func MustNew(x any) Value {
	v, err := New(x)
	if err != nil {
		panic(err)
	}
	return v
}

func convert(x any, path string) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null, nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Null, nil
		}
		return *t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return fromUint(t), nil
	case float32:
		return Number(float64(t)), nil
	case float64:
		return Number(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		if f, err := t.Float64(); err == nil {
			return Number(f), nil
		}
		return Null, &ConversionError{Path: path, Type: "json.Number"}
	case string:
		return String(t), nil
	case []Value:
		return List(t...), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := convert(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return Null, err
			}
			items[i] = v
		}
		return listOf(items), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewOrderedMap[Value](len(keys))
		for _, k := range keys {
			v, err := convert(t[k], path+"."+k)
			if err != nil {
				return Null, err
			}
			m.Set(k, v)
		}
		return dictOf(m), nil
	case *OrderedMap[Value]:
		return Dict(t), nil
	case *OrderedMap[any]:
		m := NewOrderedMap[Value](t.Len())
		for k, item := range t.All() {
			v, err := convert(item, path+"."+k)
			if err != nil {
				return Null, err
			}
			m.Set(k, v)
		}
		return dictOf(m), nil
	}
	return convertReflect(reflect.ValueOf(x), path)
}

func convertReflect(rv reflect.Value, path string) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null, nil
		}
		return convert(rv.Elem().Interface(), path)
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return listOf(nil), nil
		}
		items := make([]Value, rv.Len())
		for i := range items {
			v, err := convert(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return Null, err
			}
			items[i] = v
		}
		return listOf(items), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Null, &ConversionError{Path: path, Type: rv.Type().String()}
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		m := NewOrderedMap[Value](len(keys))
		for _, k := range keys {
			v, err := convert(rv.MapIndex(k).Interface(), path+"."+k.String())
			if err != nil {
				return Null, err
			}
			m.Set(k.String(), v)
		}
		return dictOf(m), nil
	}
	typ := "invalid"
	if rv.IsValid() {
		typ = rv.Type().String()
	}
	return Null, &ConversionError{Path: path, Type: typ}
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Number(float64(u))
	}
	return Int(int64(u))
}

// Native returns v as plain Go data: nil, bool, int64, float64, string,
// []any or map[string]any.
func (v Value) Native() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Native()
		}
		return out
	case KindDict:
		out := make(map[string]any, v.dict.Len())
		for k, item := range v.dict.All() {
			out[k] = item.Native()
		}
		return out
	default:
		return nil
	}
}
