package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Len(t *testing.T) {
	assert.Equal(t, 0, List().Len())
	assert.Equal(t, 3, List(Int(1), Int(2), Int(3)).Len())
	assert.Equal(t, 2, dictOfPairs("a", 1, "b", 2).Len())
	assert.Equal(t, 5, String("héllo").Len())
	assert.Equal(t, 4, Int(1234).Len())
	assert.Equal(t, 4, None().Len())
}

func TestValue_Index(t *testing.T) {
	list := List(Int(10), Int(20), Int(30))
	dict := dictOfPairs("a", 1, "2", "two")

	tests := []struct {
		name string
		v    Value
		key  Value
		want string
	}{
		{"list", list, Int(1), "20"},
		{"list negative", list, Int(-1), "30"},
		{"list out of range", list, Int(3), "None"},
		{"list too negative", list, Int(-4), "None"},
		{"list string key", list, String("2"), "30"},
		{"string rune", String("héllo"), Int(1), `"é"`},
		{"string negative", String("abc"), Int(-1), `"c"`},
		{"dict", dict, String("a"), "1"},
		{"dict key coerced", dict, Int(2), `"two"`},
		{"dict missing", dict, String("zz"), "None"},
		{"int", Int(5), Int(0), "None"},
		{"none", None(), Int(0), "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Index(tt.key).Repr())
		})
	}
}

func TestValue_Slice(t *testing.T) {
	list := List(Int(0), Int(1), Int(2), Int(3), Int(4))

	tests := []struct {
		name     string
		v        Value
		from, to Value
		want     string
	}{
		{"tail", list, Int(-2), None(), "[3, 4]"},
		{"head", list, None(), Int(-1), "[0, 1, 2, 3]"},
		{"middle", list, Int(1), Int(3), "[1, 2]"},
		{"whole", list, None(), None(), "[0, 1, 2, 3, 4]"},
		{"inverted is empty", list, Int(3), Int(1), "[]"},
		{"clamped", list, Int(-100), Int(100), "[0, 1, 2, 3, 4]"},
		{"string", String("hello"), Int(1), Int(3), `"el"`},
		{"string runes", String("añob"), Int(1), Int(3), `"ño"`},
		{"string tail", String("hello"), Int(-3), None(), `"llo"`},
		{"dict", dictOfPairs("a", 1), None(), None(), "None"},
		{"int", Int(12345), Int(1), Int(2), "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Slice(tt.from, tt.to).Repr())
		})
	}
}

func TestValue_SliceCopies(t *testing.T) {
	list := List(Int(0), Int(1), Int(2))
	part := list.Slice(Int(0), Int(2))
	assert.Equal(t, "[0, 1]", part.Repr())
	assert.Equal(t, "[0, 1, 2]", list.Repr())
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[int](0)
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, []int{3, 2}, m.Values())
	assert.Equal(t, 2, m.Len())

	clone := m.Clone()
	m.Delete("b")
	m.Delete("missing")
	assert.Equal(t, []string{"a"}, m.Keys())
	assert.Equal(t, []string{"b", "a"}, clone.Keys())

	var nilMap *OrderedMap[int]
	assert.Equal(t, 0, nilMap.Len())
	assert.False(t, nilMap.Has("a"))
	assert.Nil(t, nilMap.Keys())
	for range nilMap.All() {
		t.Fatal("nil map must not yield entries")
	}
}
