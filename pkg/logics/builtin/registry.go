package builtin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/randalmurphal/logics/pkg/logics/value"
)

// Func is a native function callable from expressions. Arguments arrive as
// Values; the result may be a Value or any native data value.New accepts.
type Func func(args ...value.Value) (any, error)

// ErrUnknownName is returned by Subset for names that are not registered.
var ErrUnknownName = errors.New("unknown function name")

// Registry is a thread-safe mapping from function name to Func.
// It uses sync.RWMutex since lookups vastly outnumber registrations.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		funcs: make(map[string]Func),
	}
}

// Register adds or replaces a function. A nil fn removes the name.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.funcs, name)
		return
	}
	r.funcs[name] = fn
}

// RegisterMany adds or replaces multiple functions.
func (r *Registry) RegisterMany(funcs map[string]Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, fn := range funcs {
		if fn == nil {
			delete(r.funcs, name)
			continue
		}
		r.funcs[name] = fn
	}
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Delete removes name from the registry.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.funcs, name)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs)
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	out := New()
	if r == nil {
		return out
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, fn := range r.funcs {
		out.funcs[name] = fn
	}
	return out
}

// Subset returns a new registry holding only the named functions. Every
// name must be registered.
func (r *Registry) Subset(names ...string) (*Registry, error) {
	out := New()
	for _, name := range names {
		fn, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		out.funcs[name] = fn
	}
	return out, nil
}
