package logics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/logics/pkg/logics/ast"
	"github.com/randalmurphal/logics/pkg/logics/observability"
	"github.com/randalmurphal/logics/pkg/logics/value"
)

// Program is a syntax tree ready for evaluation together with its
// configuration. A Program is immutable and safe for concurrent runs.
type Program struct {
	root     *ast.Node
	cfg      programConfig
	defaults *Environment
	err      error
}

// New returns a Program evaluating root. A nil root is an empty program.
// The tree is shared, not copied, and must not be modified afterwards.
func New(root *ast.Node, opts ...Option) *Program {
	return newProgram(root, newProgramConfig(opts))
}

func newProgramConfig(opts []Option) programConfig {
	cfg := defaultProgramConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func newProgram(root *ast.Node, cfg programConfig) *Program {
	p := &Program{root: root, cfg: cfg, err: cfg.err}
	if p.err == nil && len(cfg.defaults) > 0 {
		p.defaults, p.err = NewEnvironment(cfg.defaults)
	}
	return p
}

// Compile parses src with the configured parser and returns its Program.
func Compile(src string, opts ...Option) (*Program, error) {
	cfg := newProgramConfig(opts)
	if cfg.err != nil {
		return nil, cfg.err
	}
	root, err := cfg.parserOrDefault().Parse(src)
	if err != nil {
		return nil, err
	}
	p := newProgram(root, cfg)
	if p.err != nil {
		return nil, p.err
	}
	return p, nil
}

// Load returns the Program for a syntax tree in its JSON form, as produced
// by an external parser.
func Load(data []byte, opts ...Option) (*Program, error) {
	root, err := ast.FromJSON(data)
	if err != nil {
		return nil, err
	}
	p := New(root, opts...)
	if p.err != nil {
		return nil, p.err
	}
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, opts ...Option) *Program {
	p, err := Compile(src, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Eval compiles and runs src once with the standard functions.
//
//	v, err := logics.Eval(`price * (1 - discount)`, map[string]any{
//	    "price": 100, "discount": 0.2,
//	})
//	fmt.Println(v.Repr()) // 80
func Eval(src string, vars map[string]any) (value.Value, error) {
	p, err := Compile(src)
	if err != nil {
		return value.Null, err
	}
	v, _, err := p.Run(context.Background(), vars)
	return v, err
}

// Root returns the syntax tree, or nil for an empty program.
func (p *Program) Root() *ast.Node {
	return p.root
}

// Run evaluates the program against vars, converted with value.New.
// Default variables from WithSettings sit underneath vars.
//
// The boolean is false when the program is empty and produced no value.
// Failures are unknown functions, errors returned by functions, values
// that cannot be converted and malformed trees; everything else degrades
// to default values instead of failing.
func (p *Program) Run(ctx context.Context, vars map[string]any) (value.Value, bool, error) {
	if p.err != nil {
		return value.Null, false, p.err
	}
	env := p.defaults.Child()
	if err := env.Bind(vars); err != nil {
		return value.Null, false, fmt.Errorf("bind variables: %w", err)
	}
	return p.run(ctx, env)
}

// RunEnvironment evaluates the program against env. Bindings made during
// the run go to a child frame, so env itself is never modified.
func (p *Program) RunEnvironment(ctx context.Context, env *Environment) (value.Value, bool, error) {
	if p.err != nil {
		return value.Null, false, p.err
	}
	return p.run(ctx, env.Child())
}

func (p *Program) run(ctx context.Context, env *Environment) (result value.Value, ok bool, runErr error) {
	if ctx == nil {
		ctx = context.Background()
	}

	runID := p.cfg.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := observability.EnrichLogger(p.cfg.logger, runID, p.cfg.name)

	done := observability.TimedOperation()
	observability.LogRunStart(logger)

	if p.cfg.tracingEnabled {
		var span trace.Span
		ctx, span = p.cfg.spans.StartRunSpan(ctx, p.cfg.name, runID)
		defer func() {
			p.cfg.spans.EndSpanWithError(span, runErr)
		}()
	}

	m := &machine{
		ctx:    ctx,
		cfg:    &p.cfg,
		logger: logger,
		env:    env,
	}
	result, ok, runErr = m.run(p.root)

	duration := done()
	p.cfg.metrics.RecordRun(ctx, runErr == nil, duration, m.nodes)

	if runErr != nil {
		observability.LogRunError(logger, runErr, duration)
		return value.Null, false, runErr
	}
	observability.LogRunComplete(logger, duration, m.nodes)
	return result, ok, nil
}
