package logics

import (
	"maps"
	"slices"

	"github.com/randalmurphal/logics/pkg/logics/value"
)

// Environment binds variable names to Values. Frames are layered: a child
// sees its parent's bindings, and Set always writes to the child's own
// frame, so a child never changes what its parent holds.
//
// An Environment is not safe for concurrent mutation. Concurrent runs must
// each use their own Environment, or share one read-only parent through
// Child.
type Environment struct {
	parent *Environment
	vars   *value.OrderedMap[value.Value]
}

// NewEnvironment returns a root Environment holding vars, converted with
// value.New in sorted key order. Conversion is all-or-nothing.
func NewEnvironment(vars map[string]any) (*Environment, error) {
	env := &Environment{vars: value.NewOrderedMap[value.Value](len(vars))}
	if err := env.Bind(vars); err != nil {
		return nil, err
	}
	return env, nil
}

// Child returns a new, empty frame on top of e. Calling Child on a nil
// Environment returns an empty root.
func (e *Environment) Child() *Environment {
	return &Environment{parent: e, vars: value.NewOrderedMap[value.Value](0)}
}

// Bind converts vars and sets them in e's own frame, in sorted key order.
// Nothing is bound if any value fails to convert.
func (e *Environment) Bind(vars map[string]any) error {
	keys := slices.Sorted(maps.Keys(vars))
	converted := make([]value.Value, len(keys))
	for i, k := range keys {
		v, err := value.New(vars[k])
		if err != nil {
			return err
		}
		converted[i] = v
	}
	for i, k := range keys {
		e.vars.Set(k, converted[i])
	}
	return nil
}

// Set binds name in e's own frame.
func (e *Environment) Set(name string, v value.Value) {
	e.vars.Set(name, v)
}

// Lookup finds name in e or its ancestors, nearest frame first.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars.Get(name); ok {
			return v, true
		}
	}
	return value.Null, false
}

// Dict returns every visible binding as a dict. Outer frames come first;
// a name shadowed by an inner frame keeps its outer position.
func (e *Environment) Dict() value.Value {
	var frames []*Environment
	for env := e; env != nil; env = env.parent {
		frames = append(frames, env)
	}
	merged := value.NewOrderedMap[value.Value](0)
	for i := len(frames) - 1; i >= 0; i-- {
		for k, v := range frames[i].vars.All() {
			merged.Set(k, v)
		}
	}
	return value.Dict(merged)
}
