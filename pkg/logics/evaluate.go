package logics

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/logics/pkg/logics/ast"
	"github.com/randalmurphal/logics/pkg/logics/builtin"
	"github.com/randalmurphal/logics/pkg/logics/observability"
	"github.com/randalmurphal/logics/pkg/logics/value"
)

// machine holds the state of a single run.
type machine struct {
	ctx    context.Context
	cfg    *programConfig
	logger *slog.Logger
	env    *Environment
	stack  stack
	nodes  int
}

// run evaluates root and returns the single value it leaves on the stack.
func (m *machine) run(root *ast.Node) (value.Value, bool, error) {
	if root == nil {
		return value.Null, false, nil
	}
	if err := m.eval(root); err != nil {
		return value.Null, false, err
	}
	if m.stack.len() != 1 {
		return value.Null, false, fmt.Errorf("%w: %d values left after evaluation", ErrStackUnderflow, m.stack.len())
	}
	v, err := m.stack.pop()
	return v, err == nil, err
}

// eval evaluates n and pushes exactly one value.
func (m *machine) eval(n *ast.Node) error {
	m.nodes++
	if err := n.CheckArity(); err != nil {
		return err
	}

	switch n.Kind {
	// Flow nodes evaluate their own children.
	case ast.KindAnd, ast.KindOr:
		return m.evalLogical(n)
	case ast.KindIf:
		return m.evalIf(n)
	case ast.KindCmp:
		return m.evalCmp(n)
	case ast.KindComprehension:
		return m.evalComprehension(n)
	case ast.KindCall:
		return m.evalCall(n)

	// Leaves.
	case ast.KindString:
		m.stack.push(value.String(value.Unquote(n.Text)))
	case ast.KindNumber:
		m.stack.push(parseNumber(n.Text))
	case ast.KindTrue:
		m.stack.push(value.True)
	case ast.KindFalse:
		m.stack.push(value.False)
	case ast.KindNone:
		m.stack.push(value.Null)
	case ast.KindIdentifier:
		m.stack.push(value.String(n.Text))
	case ast.KindVars:
		m.stack.push(m.env.Dict())

	// Everything else evaluates its children first.
	case ast.KindLoad:
		return m.apply(n, func(args []value.Value) value.Value {
			v, _ := m.env.Lookup(args[0].String())
			return v
		})
	case ast.KindAttr:
		return m.apply(n, func(args []value.Value) value.Value {
			v, _ := args[0].ToDict().Get(args[1].String())
			return v
		})
	case ast.KindIndex:
		return m.apply(n, func(args []value.Value) value.Value { return args[0].Index(args[1]) })
	case ast.KindSlice:
		return m.apply(n, func(args []value.Value) value.Value { return args[0].Slice(args[1], args[2]) })
	case ast.KindList:
		return m.apply(n, func(args []value.Value) value.Value { return value.List(args...) })
	case ast.KindDict:
		return m.apply(n, buildDict)
	case ast.KindStrings:
		return m.apply(n, concat)
	case ast.KindAdd:
		return m.binary(n, value.Add)
	case ast.KindSub:
		return m.binary(n, value.Sub)
	case ast.KindMul:
		return m.binary(n, value.Mul)
	case ast.KindDiv:
		return m.binary(n, value.Div)
	case ast.KindIdiv:
		return m.binary(n, value.FloorDiv)
	case ast.KindMod:
		return m.binary(n, value.Mod)
	case ast.KindPow:
		return m.binary(n, value.Pow)
	case ast.KindPos:
		return m.unary(n, value.Pos)
	case ast.KindNeg:
		return m.unary(n, value.Neg)
	case ast.KindInvert:
		return m.unary(n, value.Invert)
	case ast.KindNot:
		return m.unary(n, value.Not)

	case ast.KindEq, ast.KindNeq, ast.KindLt, ast.KindLtEq, ast.KindGt, ast.KindGtEq, ast.KindIn, ast.KindOuter:
		return &ast.MalformedError{Kind: n.Kind, Msg: "comparison operator outside a cmp node"}
	default:
		return &UnknownNodeError{Kind: n.Kind}
	}
	return nil
}

// apply evaluates the children of n in order, then replaces their values
// with fn's result.
func (m *machine) apply(n *ast.Node, fn func([]value.Value) value.Value) error {
	for _, child := range n.Children {
		if err := m.eval(child); err != nil {
			return err
		}
	}
	args, err := m.stack.popN(len(n.Children))
	if err != nil {
		return err
	}
	m.stack.push(fn(args))
	return nil
}

func (m *machine) binary(n *ast.Node, op func(a, b value.Value) value.Value) error {
	return m.apply(n, func(args []value.Value) value.Value { return op(args[0], args[1]) })
}

func (m *machine) unary(n *ast.Node, op func(value.Value) value.Value) error {
	return m.apply(n, func(args []value.Value) value.Value { return op(args[0]) })
}

// operand evaluates n and pops its result.
func (m *machine) operand(n *ast.Node) (value.Value, error) {
	if err := m.eval(n); err != nil {
		return value.Null, err
	}
	return m.stack.pop()
}

// evalLogical returns the left operand itself when it decides the result,
// without evaluating the right one.
func (m *machine) evalLogical(n *ast.Node) error {
	left, err := m.operand(n.Children[0])
	if err != nil {
		return err
	}
	if left.Bool() == (n.Kind == ast.KindOr) {
		m.stack.push(left)
		return nil
	}
	return m.eval(n.Children[1])
}

func (m *machine) evalIf(n *ast.Node) error {
	cond, err := m.operand(n.Children[1])
	if err != nil {
		return err
	}
	if cond.Bool() {
		return m.eval(n.Children[0])
	}
	return m.eval(n.Children[2])
}

// evalCmp evaluates a comparison chain left to right and stops at the
// first link that does not hold. A single operand yields itself.
func (m *machine) evalCmp(n *ast.Node) error {
	left, err := m.operand(n.Children[0])
	if err != nil {
		return err
	}
	if len(n.Children) == 1 {
		m.stack.push(left)
		return nil
	}
	for i := 1; i+1 < len(n.Children); i += 2 {
		right, err := m.operand(n.Children[i+1])
		if err != nil {
			return err
		}
		if !holds(n.Children[i].Kind, left, right) {
			m.stack.push(value.False)
			return nil
		}
		left = right
	}
	m.stack.push(value.True)
	return nil
}

func holds(op ast.Kind, a, b value.Value) bool {
	switch op {
	case ast.KindEq:
		return value.Compare(a, b) == 0
	case ast.KindNeq:
		return value.Compare(a, b) != 0
	case ast.KindLt:
		return value.Compare(a, b) < 0
	case ast.KindLtEq:
		return value.Compare(a, b) <= 0
	case ast.KindGt:
		return value.Compare(a, b) > 0
	case ast.KindGtEq:
		return value.Compare(a, b) >= 0
	case ast.KindIn:
		return a.In(b)
	case ast.KindOuter:
		return !a.In(b)
	}
	return false
}

// evalComprehension implements [body for name in iterable if filter]. At
// most maxIterations items of the iterable are visited.
func (m *machine) evalComprehension(n *ast.Node) error {
	iterable, err := m.operand(n.Children[2])
	if err != nil {
		return err
	}
	items := iterable.ToList()
	name := n.Children[1].Text
	body, filter := n.Children[0], n.Child(3)

	limit := m.cfg.maxIterations
	if len(items) > limit {
		items = items[:limit]
		m.truncated(name, limit)
	}

	if m.cfg.scoped {
		outer := m.env
		m.env = outer.Child()
		defer func() { m.env = outer }()
	}

	out := make([]value.Value, 0, len(items))
	for _, item := range items {
		m.env.Set(name, item)
		if filter != nil {
			keep, err := m.operand(filter)
			if err != nil {
				return err
			}
			if !keep.Bool() {
				continue
			}
		}
		v, err := m.operand(body)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	m.stack.push(value.List(out...))
	return nil
}

func (m *machine) truncated(name string, limit int) {
	observability.LogTruncated(m.logger, name, limit)
	m.cfg.metrics.RecordTruncation(m.ctx, limit)
	if m.cfg.tracingEnabled {
		m.cfg.spans.AddSpanEvent(m.ctx, "comprehension.truncated",
			attribute.String("variable", name),
			attribute.Int("limit", limit),
		)
	}
}

// evalCall looks the callee up at call time and converts its result with
// value.New.
func (m *machine) evalCall(n *ast.Node) error {
	name := n.Children[0].Text

	var args []value.Value
	if argList := n.Child(1); argList != nil {
		list, err := m.operand(argList)
		if err != nil {
			return err
		}
		args = list.Items()
	}

	fn, ok := m.cfg.functions.Lookup(name)
	if !ok {
		return &UnknownFunctionError{Name: name}
	}

	result, err := m.invoke(name, fn, args)
	if err != nil {
		return err
	}
	m.stack.push(result)
	return nil
}

// invoke calls fn with observability around it. Errors, panics and
// unconvertible results are all reported as a *CallError.
func (m *machine) invoke(name string, fn builtin.Func, args []value.Value) (result value.Value, callErr error) {
	ctx := m.ctx
	if m.cfg.tracingEnabled {
		var span trace.Span
		ctx, span = m.cfg.spans.StartCallSpan(ctx, name)
		defer func() {
			m.cfg.spans.EndSpanWithError(span, callErr)
		}()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			callErr = &CallError{Name: name, Err: &PanicError{
				Name:  name,
				Value: r,
				Stack: string(debug.Stack()),
			}}
		}
		m.cfg.metrics.RecordCall(ctx, name, time.Since(start), callErr)
		if callErr != nil {
			observability.LogCallError(m.logger, name, callErr)
		}
	}()

	out, err := fn(args...)
	if err != nil {
		return value.Null, &CallError{Name: name, Err: err}
	}
	result, err = value.New(out)
	if err != nil {
		return value.Null, &CallError{Name: name, Err: err}
	}
	return result, nil
}

// parseNumber reads a numeric literal. Integer literals that fit in 64
// bits stay exact; everything else goes through float parsing.
func parseNumber(text string) value.Value {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return value.Int(i)
	}
	f, _ := value.ParseFloat(text)
	return value.Number(f)
}

// buildDict pairs up alternating key and value results. Keys use their
// string form.
func buildDict(args []value.Value) value.Value {
	entries := value.NewOrderedMap[value.Value](len(args) / 2)
	for i := 0; i+1 < len(args); i += 2 {
		entries.Set(args[i].String(), args[i+1])
	}
	return value.Dict(entries)
}

func concat(args []value.Value) value.Value {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(a.String())
	}
	return value.String(sb.String())
}
