package logics

import "github.com/randalmurphal/logics/pkg/logics/value"

// stack threads intermediate results between evaluation steps of one run.
type stack struct {
	items []value.Value
}

func (s *stack) push(v value.Value) {
	s.items = append(s.items, v)
}

func (s *stack) pop() (value.Value, error) {
	if len(s.items) == 0 {
		return value.Null, ErrStackUnderflow
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// popN removes the top n values and returns them in push order.
func (s *stack) popN(n int) ([]value.Value, error) {
	if n > len(s.items) {
		return nil, ErrStackUnderflow
	}
	cut := len(s.items) - n
	out := make([]value.Value, n)
	copy(out, s.items[cut:])
	s.items = s.items[:cut]
	return out, nil
}

func (s *stack) len() int {
	return len(s.items)
}
