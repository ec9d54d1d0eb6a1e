package template

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/logics/pkg/logics"
	"github.com/randalmurphal/logics/pkg/logics/parser"
	"github.com/randalmurphal/logics/pkg/logics/value"
)

func render(t *testing.T, src string, vars map[string]any, opts ...Option) string {
	t.Helper()
	tpl, err := New(src, opts...)
	require.NoError(t, err)
	out, err := tpl.Render(context.Background(), vars)
	require.NoError(t, err)
	return out
}

func TestRender_Interpolation(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		vars     map[string]any
		expected string
	}{
		{"plain text", "no tags here", nil, "no tags here"},
		{"empty template", "", nil, ""},
		{"variable", "Hello {{ name }}!", map[string]any{"name": "World"}, "Hello World!"},
		{"arithmetic", "{{ 1 + 2 }}", nil, "3"},
		{"function", "{{ upper(name) }}", map[string]any{"name": "abc"}, "ABC"},
		{"list", "{{ [1, 2] }}", nil, "[1, 2]"},
		{"bool", "{{ flag }}", map[string]any{"flag": true}, "True"},
		{"missing variable", "[{{ missing }}]", nil, "[]"},
		{"empty tag", "[{{ }}]", nil, "[]"},
		{"adjacent tags", "{{ a }}{{ b }}", map[string]any{"a": 1, "b": 2}, "12"},
		{"unterminated tag", "a {{ b", nil, "a {{ b"},
		{"attribute", "{{ user.name }}", map[string]any{"user": map[string]any{"name": "x"}}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.src, tt.vars))
		})
	}
}

func TestRender_Blocks(t *testing.T) {
	users := []any{
		map[string]any{"name": "ann"},
		map[string]any{"name": "bob"},
	}

	tests := []struct {
		name     string
		src      string
		vars     map[string]any
		expected string
	}{
		{"truthy", "{{# show }}yes{{/}}", map[string]any{"show": true}, "yes"},
		{"falsy", "{{# show }}yes{{/}}", map[string]any{"show": false}, ""},
		{"else", "{{# show }}yes{{|}}no{{/}}", map[string]any{"show": false}, "no"},
		{"zero is falsy", "{{# n }}a{{|}}b{{/}}", map[string]any{"n": 0}, "b"},
		{"string once", "{{# s }}[{{ s }}]{{/}}", map[string]any{"s": "hi"}, "[hi]"},
		{"else-if first", "{{# n > 10 }}big{{| n > 5 }}medium{{|}}small{{/}}", map[string]any{"n": 20}, "big"},
		{"else-if second", "{{# n > 10 }}big{{| n > 5 }}medium{{|}}small{{/}}", map[string]any{"n": 7}, "medium"},
		{"else-if fallthrough", "{{# n > 10 }}big{{| n > 5 }}medium{{|}}small{{/}}", map[string]any{"n": 1}, "small"},
		{"else-if without else", "{{# a }}A{{| b }}B{{/}}", map[string]any{"a": 0, "b": 0}, ""},
		{
			"list loop",
			"{{# items }}{{ loop.index }}:{{ loop.item }}{{# not loop.last }}, {{/}}{{/}}",
			map[string]any{"items": []any{"a", "b", "c"}},
			"1:a, 2:b, 3:c",
		},
		{"loop length", "{{# items }}{{ loop.length }}{{/}}", map[string]any{"items": []any{"x", "y"}}, "22"},
		{"loop first", "{{# items }}{{# loop.first }}*{{/}}{{ loop.index0 }}{{/}}", map[string]any{"items": []any{1, 2}}, "*01"},
		{"empty list", "{{# items }}x{{|}}none{{/}}", map[string]any{"items": []any{}}, "none"},
		{"dict items", "{{# users }}{{ name }}({{ loop.index0 }}) {{/}}", map[string]any{"users": users}, "ann(0) bob(1) "},
		{
			"dict items shadow for their iteration",
			"{{# users }}{{ name }},{{/}}{{ name }}",
			map[string]any{"users": users, "name": "outer"},
			"ann,bob,outer",
		},
		{"truthy dict", "{{# user }}{{ name }}{{/}}", map[string]any{"user": map[string]any{"name": "x"}}, "x"},
		{
			"truthy dict keeps bound names",
			"{{# user }}{{ name }} {{ age }}{{/}}",
			map[string]any{"user": map[string]any{"name": "inner", "age": 3}, "name": "outer"},
			"outer 3",
		},
		{"empty dict", "{{# user }}a{{|}}b{{/}}", map[string]any{"user": map[string]any{}}, "b"},
		{
			"nested loops",
			"{{# rows }}{{# cols }}{{ loop.parent.index }}{{ loop.index }} {{/}}{{/}}",
			map[string]any{"rows": []any{1, 2}, "cols": []any{1, 2}},
			"11 12 21 22 ",
		},
		{"outer loop has no parent", "{{# items }}{{ loop.parent }}{{/}}", map[string]any{"items": []any{1}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.src, tt.vars))
		})
	}
}

func TestRender_WhitespaceStripping(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"both sides", "a   {{- x -}}   b", "aXb"},
		{"left only", "a \n{{- x }} b", "aX b"},
		{"right only", "a {{ x -}}\n\n b", "a Xb"},
		{"markers alone", "a {{--}} b", "ab"},
		{"minus is not a marker inside", "{{ 0 - 1 }}", "-1"},
		{
			"block lines",
			"<ul>\n{{# items -}}\n  <li>{{ loop.item }}</li>\n{{/}}</ul>",
			"<ul>\n<li>1</li>\n<li>2</li>\n</ul>",
		},
	}

	vars := map[string]any{"x": "X", "items": []any{1, 2}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.src, vars))
		})
	}
}

func TestOptions(t *testing.T) {
	t.Run("delimiters", func(t *testing.T) {
		got := render(t, "Hi <% name %> {{ name }}", map[string]any{"name": "Bob"}, WithDelimiters("<%", "%>"))
		assert.Equal(t, "Hi Bob {{ name }}", got)
	})

	t.Run("empty delimiters keep defaults", func(t *testing.T) {
		got := render(t, "{{ 1 }}", nil, WithDelimiters("", ""))
		assert.Equal(t, "1", got)
	})

	t.Run("empty value", func(t *testing.T) {
		got := render(t, "[{{ missing }}]", nil, WithEmptyValue("-"))
		assert.Equal(t, "[-]", got)
	})

	t.Run("program options", func(t *testing.T) {
		double := func(args ...value.Value) (any, error) {
			return value.Mul(args[0], value.Int(2)), nil
		}
		got := render(t, "{{ double(21) }}", nil, WithProgramOptions(logics.WithFunction("double", double)))
		assert.Equal(t, "42", got)
	})
}

func TestNew_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		col     int
		message string
	}{
		{"close without open", "{{/}}", 1, 1, "closing block without opening block"},
		{"alternative without open", "a\n  {{|}}", 2, 3, "alternative block without opening block"},
		{"unclosed", "{{# x }}{{# y }}", 1, 17, "2 blocks are still open, expecting {{/}}{{/}}"},
		{"double else", "{{# x }}a{{|}}b{{|}}c{{/}}", 1, 16, "alternative block after else block"},
		{"else-if after else", "{{# x }}a{{|}}b{{| y }}c{{/}}", 1, 16, "alternative block after else block"},
		{"block without condition", "x{{#  }}{{/}}", 1, 2, "block without condition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.col, se.Col)
			assert.Equal(t, tt.message, se.Msg)
		})
	}
}

func TestNew_ExpressionSyntaxError(t *testing.T) {
	_, err := New("first line\nsecond {{ 1 + }}")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.ErrorIs(t, err, parser.ErrSyntax)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Line)
	assert.Greater(t, se.Col, len("second {{"))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must("{{ 1 }}") })
	assert.Panics(t, func() { Must("{{/}}") })
}

func TestRender_Errors(t *testing.T) {
	t.Run("unknown function", func(t *testing.T) {
		tpl := Must("a {{ nope() }}")
		_, err := tpl.Render(context.Background(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, logics.ErrUnknownFunction)
	})

	t.Run("failing block condition", func(t *testing.T) {
		fail := func(...value.Value) (any, error) { return nil, errors.New("boom") }
		tpl := Must("{{# fail() }}x{{/}}", WithProgramOptions(logics.WithFunction("fail", fail)))
		_, err := tpl.Render(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("unconvertible variable", func(t *testing.T) {
		tpl := Must("{{ x }}")
		_, err := tpl.Render(context.Background(), map[string]any{"x": make(chan int)})
		require.Error(t, err)
		assert.ErrorIs(t, err, value.ErrConversion)
	})
}

func TestRenderEnvironment_DoesNotMutate(t *testing.T) {
	env, err := logics.NewEnvironment(map[string]any{
		"items": []any{map[string]any{"k": 1}},
	})
	require.NoError(t, err)

	out, err := Must("{{# items }}{{ k }}{{/}}").RenderEnvironment(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	_, ok := env.Lookup("loop")
	assert.False(t, ok)
	_, ok = env.Lookup("k")
	assert.False(t, ok)
}

func TestRender_Concurrent(t *testing.T) {
	tpl := Must("{{# items }}{{ loop.item * n }};{{/}}")

	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := tpl.Render(context.Background(), map[string]any{"items": []any{1, 2}, "n": i})
			if err == nil {
				results[i] = out
			}
		}()
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, fmt.Sprintf("%d;%d;", i, 2*i), got)
	}
}
