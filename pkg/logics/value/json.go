package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// MarshalJSON encodes v as JSON, keeping dict keys in insertion order.
// Non-finite floats encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNone:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			buf.WriteString("null")
		} else {
			buf.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
		}
	case KindString:
		return writeJSONString(buf, v.s)
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindDict:
		buf.WriteByte('{')
		i := 0
		for k, item := range v.dict.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := item.writeJSON(buf); err != nil {
				return err
			}
			i++
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	buf.Write(b)
	return nil
}

// UnmarshalJSON decodes JSON into v, keeping object keys in document order.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := FromJSON(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// FromJSON decodes a single JSON document into a Value.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return Null, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Null, errors.New("parse json: unexpected data after document")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeJSON(dec)
				if err != nil {
					return Null, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null, err
			}
			return listOf(items), nil
		case '{':
			m := NewOrderedMap[Value](0)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null, fmt.Errorf("object key %v is not a string", keyTok)
				}
				item, err := decodeJSON(dec)
				if err != nil {
					return Null, err
				}
				m.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null, err
			}
			return dictOf(m), nil
		}
		return Null, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return convert(t, "$")
	}
}
