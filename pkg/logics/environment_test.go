package logics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/logics/pkg/logics/value"
)

func TestNewEnvironment(t *testing.T) {
	env, err := NewEnvironment(map[string]any{"b": 2, "a": []any{1, "x"}})
	require.NoError(t, err)

	v, ok := env.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, `[1, "x"]`, v.Repr())

	_, ok = env.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, `{a: [1, "x"], b: 2}`, env.Dict().Repr(), "keys are sorted")
}

func TestNewEnvironment_ConversionFailure(t *testing.T) {
	_, err := NewEnvironment(map[string]any{"ok": 1, "bad": struct{}{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, value.ErrConversion)
}

func TestEnvironment_BindIsAllOrNothing(t *testing.T) {
	env, err := NewEnvironment(nil)
	require.NoError(t, err)

	err = env.Bind(map[string]any{"a": 1, "z": make(chan int)})
	require.Error(t, err)
	_, ok := env.Lookup("a")
	assert.False(t, ok)
}

func TestEnvironment_Layers(t *testing.T) {
	root, err := NewEnvironment(map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)

	child := root.Child()
	child.Set("x", value.Int(10))
	child.Set("z", value.Int(30))

	x, _ := child.Lookup("x")
	assert.Equal(t, int64(10), x.Int())
	y, _ := child.Lookup("y")
	assert.Equal(t, int64(2), y.Int())

	x, _ = root.Lookup("x")
	assert.Equal(t, int64(1), x.Int(), "child writes never reach the parent")
	_, ok := root.Lookup("z")
	assert.False(t, ok)

	assert.Equal(t, "{x: 10, y: 2, z: 30}", child.Dict().Repr())
	assert.Equal(t, "{x: 1, y: 2}", root.Dict().Repr())
}

func TestEnvironment_NilParent(t *testing.T) {
	var env *Environment
	child := env.Child()
	child.Set("a", value.True)

	v, ok := child.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "True", v.Repr())

	_, ok = env.Lookup("a")
	assert.False(t, ok)
}
