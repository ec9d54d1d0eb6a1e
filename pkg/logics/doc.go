/*
Package logics evaluates Logics expressions: short formulas such as computed
fields, template conditions and business rules, run against a set of
variables.

# Overview

An expression is parsed into a syntax tree (package ast) once and can then
be run any number of times, concurrently, with different variables. Results
are dynamically typed values (package value): None, booleans, integers,
floats, strings, lists and ordered dicts.

The language covers arithmetic, chained comparisons, boolean logic with
short-circuiting, conditional expressions, list and dict literals, indexing
and slicing with negative positions, attribute access on dicts, list
comprehensions and calls to registered functions.

# Basic Usage

	prog, err := logics.Compile(`total * 0.9 if "vip" in tags else total`)
	if err != nil {
	    log.Fatal(err)
	}

	v, ok, err := prog.Run(ctx, map[string]any{
	    "total": 120,
	    "tags":  []string{"vip"},
	})
	if err != nil {
	    log.Fatal(err)
	}
	if ok {
	    fmt.Println(v.Repr()) // 108
	}

For one-off evaluation use Eval:

	v, err := logics.Eval(`upper(name)`, map[string]any{"name": "ada"})

# Failure

Evaluation is permissive: strings that are not numbers count as 0, missing
variables, keys and positions yield None, and division by zero yields inf
or nan. A run fails only when

  - a function is not registered (*UnknownFunctionError),
  - a function returns an error or panics (*CallError),
  - a variable or function result cannot be converted (*value.ConversionError),
  - the syntax tree is malformed (*ast.MalformedError, *UnknownNodeError).

# Functions

Calls resolve against a builtin.Registry. The standard set is used unless
WithFunctions replaces it:

	r := builtin.Default()
	r.Register("vat", func(args ...value.Value) (any, error) {
	    return value.Mul(args[0], value.Number(1.19)), nil
	})
	prog, err := logics.Compile(`vat(price)`, logics.WithFunctions(r))

# Comprehensions

	[x * 2 for x in items if x % 2 == 0]

visits at most 4096 items of the iterable (see WithMaxIterations); longer
inputs are truncated without error. The loop variable is bound in the run's
working frame and stays visible after the comprehension, so

	[x for x in [1, 2, 3]] and x

yields 3. WithScopedComprehensions confines it to the comprehension.
Bindings never reach the caller's Environment: every run works on a child
frame.

# Observability

	prog, err := logics.Compile(src,
	    logics.WithLogger(slog.Default()),
	    logics.WithMetrics(observability.NewMetricsRecorder()),
	    logics.WithTracing(),
	)

Logs carry run_id and program attributes. Metrics and spans use the global
OpenTelemetry providers.

# Syntax trees from elsewhere

Trees produced by another parser can be loaded from their JSON form:

	{"kind": "add", "children": [
	    {"kind": "Number", "text": "1"},
	    {"kind": "load", "children": [{"kind": "Identifier", "text": "x"}]}
	]}

	prog, err := logics.Load(data)
*/
package logics
