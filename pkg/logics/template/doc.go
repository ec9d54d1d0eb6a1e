/*
Package template renders text templates whose tags hold Logics expressions.

# Overview

The syntax follows Mustache in spirit. Every tag is compiled into a
logics.Program once, in New, and evaluated on each Render:

	tpl, err := template.New("Hello {{ upper(name) }}!")
	out, err := tpl.Render(ctx, map[string]any{"name": "world"})
	// out: "Hello WORLD!"

# Tags

	{{ expr }}     interpolate the value of expr
	{{# expr }}    open a block
	{{| expr }}    else-if branch of the enclosing block
	{{|}}          else branch of the enclosing block
	{{/}}          close the block

A block whose value is a non-empty list renders its body once per item.
Inside the body, loop holds item, index (from 1), index0, first, last,
length and the enclosing loop as parent. Keys of dict items are bound as
variables for their iteration:

	{{# users }}{{ loop.index }}. {{ name }}{{| }}nobody{{/}}

A truthy dict binds those of its keys that are not bound yet. Other truthy
values render the body once. Falsy values and empty lists fall through to
the next branch.

# Whitespace

A "-" right after the opening delimiter strips the whitespace before the
tag; a "-" right before the closing delimiter strips the whitespace after
it:

	{{# items -}}
	    {{ loop.item }}
	{{- /}}

# Missing values

Expressions that yield None, including unknown variables, render as the
empty value set with WithEmptyValue. Unterminated tags are kept as literal
text.
*/
package template
