/*
Package builtin provides the function registry consulted by Logics call
expressions, and the standard set of functions.

# Registry

A Registry maps names to Funcs and is safe for concurrent use:

	r := builtin.Default()
	r.Register("double", func(args ...value.Value) (any, error) {
	    return value.Mul(args[0], value.Int(2)), nil
	})

Functions receive their arguments as Values and may return either a Value
or plain Go data; the evaluator converts the result with value.New. A
returned error aborts the evaluation.

# Standard functions

	upper(s)  lower(s)  capitalize(s)  title(s)  str(x)
	strip(s [, chars])  lstrip(s [, chars])  rstrip(s [, chars])
	replace(s [, find [, with]])  join(list [, delim [, last]])
	split(s [, delim])  lfill(s, width [, pad])  rfill(s, width [, pad])
	currency(x [, decimal [, thousands [, sign]]])
	int(x)  float(x)  bool(x)  len(x)  sum(list)  round(x [, digits])
	min(list) / min(a, b, ...)  max(list) / max(a, b, ...)
	range(stop) / range(start, stop [, step])
	keys(dict)  values(dict)

Casing follows golang.org/x/text/cases for the language passed to Standard;
Default uses language-neutral rules.
*/
package builtin
