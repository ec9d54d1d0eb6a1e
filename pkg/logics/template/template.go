package template

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/randalmurphal/logics/pkg/logics"
	"github.com/randalmurphal/logics/pkg/logics/parser"
	"github.com/randalmurphal/logics/pkg/logics/value"
)

// Template is a compiled template. It is safe for concurrent use after
// construction.
type Template struct {
	open        string
	close       string
	emptyValue  string
	programOpts []logics.Option

	root *block
}

// node is one of *block, text, *output or *section.
type node any

// block is a sequence of nodes rendered one after the other.
type block struct {
	nodes []node
}

type text string

// output interpolates the result of an expression.
type output struct {
	prog *logics.Program
}

// section renders body for a truthy cond, once per item for a non-empty
// list, and alt (nil, a *block or another *section) otherwise.
type section struct {
	cond *logics.Program
	body *block
	alt  node
}

// New compiles src.
//
// Example:
//
//	tpl, err := template.New("{{# items }}{{ loop.index }}. {{ name }}\n{{/}}")
//	out, err := tpl.Render(ctx, map[string]any{"items": items})
func New(src string, opts ...Option) (*Template, error) {
	t := &Template{
		open:  DefaultOpen,
		close: DefaultClose,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.parse(src); err != nil {
		return nil, err
	}
	return t, nil
}

// Must is like New but panics on error.
func Must(src string, opts ...Option) *Template {
	t, err := New(src, opts...)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return t
}

// Render renders the template against vars, converted with value.New.
func (t *Template) Render(ctx context.Context, vars map[string]any) (string, error) {
	env, err := logics.NewEnvironment(vars)
	if err != nil {
		return "", fmt.Errorf("bind variables: %w", err)
	}
	return t.RenderEnvironment(ctx, env)
}

// RenderEnvironment renders the template against env without modifying it.
func (t *Template) RenderEnvironment(ctx context.Context, env *logics.Environment) (string, error) {
	var sb strings.Builder
	if err := t.render(ctx, env, t.root, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// openBlock is a section under construction.
type openBlock struct {
	parent *block
	conds  []*logics.Program // nil marks the else branch
	bodies []*block
}

func (t *Template) parse(src string) error {
	root := &block{}
	cur := root
	var stack []*openBlock

	pos := 0
	for {
		start := strings.Index(src[pos:], t.open)
		if start < 0 {
			break
		}
		start += pos
		inner := start + len(t.open)
		end := strings.Index(src[inner:], t.close)
		if end < 0 {
			break
		}
		end += inner
		next := end + len(t.close)

		literal := src[pos:start]
		exprStart, exprEnd := inner, end
		if strings.HasPrefix(src[exprStart:exprEnd], markStrip) {
			exprStart += len(markStrip)
			literal = strings.TrimRightFunc(literal, unicode.IsSpace)
		}
		if strings.HasSuffix(src[exprStart:exprEnd], markStrip) {
			exprEnd -= len(markStrip)
			next += len(src[next:]) - len(strings.TrimLeftFunc(src[next:], unicode.IsSpace))
		}
		if literal != "" {
			cur.nodes = append(cur.nodes, text(literal))
		}
		pos = next

		tag := src[exprStart:exprEnd]
		switch {
		case strings.HasPrefix(tag, markBlock):
			body := tag[len(markBlock):]
			if strings.TrimSpace(body) == "" {
				return syntaxError(src, start, "block without condition")
			}
			cond, err := t.compile(src, body, exprStart+len(markBlock))
			if err != nil {
				return err
			}
			stack = append(stack, &openBlock{parent: cur, conds: []*logics.Program{cond}})
			cur = &block{}

		case strings.HasPrefix(tag, markAlt):
			if len(stack) == 0 {
				return syntaxError(src, start, "alternative block without opening block")
			}
			top := stack[len(stack)-1]
			if top.conds[len(top.conds)-1] == nil {
				return syntaxError(src, start, "alternative block after else block")
			}
			var cond *logics.Program
			if body := tag[len(markAlt):]; strings.TrimSpace(body) != "" {
				var err error
				if cond, err = t.compile(src, body, exprStart+len(markAlt)); err != nil {
					return err
				}
			}
			top.conds = append(top.conds, cond)
			top.bodies = append(top.bodies, cur)
			cur = &block{}

		case strings.HasPrefix(tag, markEnd):
			if len(stack) == 0 {
				return syntaxError(src, start, "closing block without opening block")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.bodies = append(top.bodies, cur)
			top.parent.nodes = append(top.parent.nodes, top.chain())
			cur = top.parent

		default:
			prog, err := t.compile(src, tag, exprStart)
			if err != nil {
				return err
			}
			cur.nodes = append(cur.nodes, &output{prog: prog})
		}
	}

	if n := len(stack); n > 0 {
		return syntaxError(src, len(src), "%d blocks are still open, expecting %s",
			n, strings.Repeat(t.open+markEnd+t.close, n))
	}
	if pos < len(src) {
		cur.nodes = append(cur.nodes, text(src[pos:]))
	}
	t.root = root
	return nil
}

// chain folds the branches of a closed block into nested sections, last
// branch first.
func (b *openBlock) chain() node {
	var alt node
	for i := len(b.conds) - 1; i >= 0; i-- {
		if b.conds[i] == nil {
			alt = b.bodies[i]
			continue
		}
		alt = &section{cond: b.conds[i], body: b.bodies[i], alt: alt}
	}
	return alt
}

// compile compiles the expression expr found at offset off of src. Parser
// positions are translated to template positions.
func (t *Template) compile(src, expr string, off int) (*logics.Program, error) {
	prog, err := logics.Compile(expr, t.programOpts...)
	if err == nil {
		return prog, nil
	}
	line, col := position(src, off)
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		if se.Line > 1 {
			line, col = line+se.Line-1, se.Col
		} else {
			col += se.Col - 1
		}
		return nil, &SyntaxError{Line: line, Col: col, Msg: se.Msg, Err: err}
	}
	return nil, &SyntaxError{Line: line, Col: col, Msg: err.Error(), Err: err}
}

func syntaxError(src string, off int, format string, args ...any) error {
	line, col := position(src, off)
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// position returns the 1-based line and column of byte offset off.
func position(src string, off int) (line, col int) {
	before := src[:off]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return line, utf8.RuneCountInString(before) + 1
}

func (t *Template) render(ctx context.Context, env *logics.Environment, n node, sb *strings.Builder) error {
	switch n := n.(type) {
	case nil:
		return nil
	case text:
		sb.WriteString(string(n))
	case *block:
		for _, child := range n.nodes {
			if err := t.render(ctx, env, child, sb); err != nil {
				return err
			}
		}
	case *output:
		v, _, err := n.prog.RunEnvironment(ctx, env)
		if err != nil {
			return err
		}
		if v.IsNone() {
			sb.WriteString(t.emptyValue)
		} else {
			sb.WriteString(v.String())
		}
	case *section:
		return t.renderSection(ctx, env, n, sb)
	default:
		return fmt.Errorf("template: unexpected node %T", n)
	}
	return nil
}

// renderSection renders a block tag. A list renders the body once per item
// with a loop variable, merging the keys of dict items. A dict merges
// those keys not already bound. Anything else renders the body once when
// truthy. Empty and falsy values render the alternative.
func (t *Template) renderSection(ctx context.Context, env *logics.Environment, s *section, sb *strings.Builder) error {
	v, _, err := s.cond.RunEnvironment(ctx, env)
	if err != nil {
		return err
	}

	switch {
	case v.Kind() == value.KindList && len(v.Items()) > 0:
		items := v.Items()
		parent, ok := env.Lookup("loop")
		if !ok || parent.Kind() != value.KindDict {
			parent = value.None()
		}
		for i, item := range items {
			frame := env.Child()
			if entries := item.Entries(); entries != nil {
				for k, e := range entries.All() {
					frame.Set(k, e)
				}
			}
			frame.Set("loop", loopVar(item, i, len(items), parent))
			if err := t.render(ctx, frame, s.body, sb); err != nil {
				return err
			}
		}
		return nil

	case v.Kind() != value.KindList && v.Bool():
		frame := env
		if entries := v.Entries(); entries != nil {
			frame = env.Child()
			for k, e := range entries.All() {
				if _, bound := env.Lookup(k); !bound {
					frame.Set(k, e)
				}
			}
		}
		return t.render(ctx, frame, s.body, sb)
	}
	return t.render(ctx, env, s.alt, sb)
}

func loopVar(item value.Value, i, n int, parent value.Value) value.Value {
	m := value.NewOrderedMap[value.Value](7)
	m.Set("item", item)
	m.Set("index", value.Int(int64(i+1)))
	m.Set("index0", value.Int(int64(i)))
	m.Set("first", value.Bool(i == 0))
	m.Set("last", value.Bool(i == n-1))
	m.Set("length", value.Int(int64(n)))
	m.Set("parent", parent)
	return value.Dict(m)
}
