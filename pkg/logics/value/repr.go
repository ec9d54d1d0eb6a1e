package value

import "strings"

// Repr returns the canonical debug representation of v.
//
//	None           None
//	booleans       True / False
//	numbers        their literal text
//	strings        "text" with embedded quotes escaped
//	lists          [e1, e2]
//	dicts          {key: value} with raw, unquoted keys
//
// Repr is a display form and is not guaranteed to parse back.
func (v Value) Repr() string {
	var sb strings.Builder
	v.writeRepr(&sb)
	return sb.String()
}

func (v Value) writeRepr(sb *strings.Builder) {
	switch v.kind {
	case KindNone:
		sb.WriteString("None")
	case KindBool:
		if v.b {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case KindInt, KindFloat:
		sb.WriteString(v.String())
	case KindString:
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(v.s, `"`, `\"`))
		sb.WriteByte('"')
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeRepr(sb)
		}
		sb.WriteByte(']')
	case KindDict:
		sb.WriteByte('{')
		i := 0
		for k, item := range v.dict.All() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			item.writeRepr(sb)
			i++
		}
		sb.WriteByte('}')
	}
}

// GoString implements fmt.GoStringer so %#v prints the Logics repr.
func (v Value) GoString() string {
	return v.Repr()
}
