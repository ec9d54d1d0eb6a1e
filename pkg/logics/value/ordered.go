package value

import (
	"iter"
	"slices"
)

// OrderedMap is a string-keyed map that remembers insertion order.
// Keys are unique; re-setting an existing key keeps its original position.
//
// A nil *OrderedMap behaves like an empty map for all read operations.
type OrderedMap[V any] struct {
	keys    []string
	entries map[string]V
}

// NewOrderedMap creates an empty map with room for capacity entries.
func NewOrderedMap[V any](capacity int) *OrderedMap[V] {
	if capacity < 0 {
		capacity = 0
	}
	return &OrderedMap[V]{
		keys:    make([]string, 0, capacity),
		entries: make(map[string]V, capacity),
	}
}

// Set adds or replaces the value stored under key.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.entries == nil {
		m.entries = make(map[string]V)
	}
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

// Get returns the value stored under key and whether it exists.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.entries[key]
	return v, ok
}

// Has reports whether key exists.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *OrderedMap[V]) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.entries[key]; !ok {
		return
	}
	delete(m.entries, key)
	if i := slices.Index(m.keys, key); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Values returns the values in insertion order.
func (m *OrderedMap[V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.entries[k]
	}
	return out
}

// All iterates over the entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.entries[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy that can be modified independently.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	out := NewOrderedMap[V](m.Len())
	for k, v := range m.All() {
		out.Set(k, v)
	}
	return out
}
