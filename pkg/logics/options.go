package logics

import (
	"log/slog"

	"github.com/randalmurphal/logics/pkg/logics/ast"
	"github.com/randalmurphal/logics/pkg/logics/builtin"
	"github.com/randalmurphal/logics/pkg/logics/config"
	"github.com/randalmurphal/logics/pkg/logics/observability"
	"github.com/randalmurphal/logics/pkg/logics/parser"
)

// Parser turns source text into a syntax tree. *parser.Parser satisfies it.
type Parser interface {
	Parse(src string) (*ast.Node, error)
}

// programConfig holds the configuration of a Program.
type programConfig struct {
	functions      *builtin.Registry
	ownFunctions   bool
	added          map[string]builtin.Func
	maxIterations  int
	scoped         bool
	parser         Parser
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
	runID          string
	name           string
	defaults       map[string]any
	err            error
}

func defaultProgramConfig() programConfig {
	return programConfig{
		functions:     builtin.Default(),
		ownFunctions:  true,
		maxIterations: config.DefaultMaxIterations,
		metrics:       observability.NoopMetrics{},
		spans:         observability.NoopSpanManager{},
		name:          "logics",
	}
}

// Option configures a Program.
type Option func(*programConfig)

// WithFunctions replaces the standard functions with r. The registry is
// consulted at call time, so later registrations are visible to the
// Program.
func WithFunctions(r *builtin.Registry) Option {
	return func(c *programConfig) {
		if r == nil {
			r = builtin.New()
		}
		c.functions = r
		c.ownFunctions = false
	}
}

// WithFunction adds or replaces a single function. A registry passed to
// WithFunctions is copied first and left untouched.
//
//	prog, err := logics.Compile(`greet(name)`,
//	    logics.WithFunction("greet", func(args ...value.Value) (any, error) {
//	        return "hello " + args[0].String(), nil
//	    }))
func WithFunction(name string, fn builtin.Func) Option {
	return func(c *programConfig) {
		if !c.ownFunctions {
			c.functions = c.functions.Clone()
			c.ownFunctions = true
		}
		c.functions.Register(name, fn)
		if c.added == nil {
			c.added = make(map[string]builtin.Func)
		}
		c.added[name] = fn
	}
}

// WithMaxIterations bounds the number of items a comprehension visits.
// Default: 4096. Non-positive values are ignored.
//
// Longer inputs are truncated silently; the truncation is logged and
// counted when a logger or metrics recorder is configured.
func WithMaxIterations(n int) Option {
	return func(c *programConfig) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithScopedComprehensions binds comprehension loop variables in a frame
// discarded when the comprehension ends. By default the loop variable is
// written to the run's working frame and stays visible to the rest of the
// expression.
func WithScopedComprehensions() Option {
	return func(c *programConfig) {
		c.scoped = true
	}
}

// WithParser sets the parser used by Compile. Default: parser.New().
func WithParser(p Parser) Option {
	return func(c *programConfig) {
		c.parser = p
	}
}

// WithLogger enables run logging. Runs log at debug level, failures at
// error level and truncated comprehensions at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *programConfig) {
		c.logger = logger
	}
}

// WithMetrics records run, call and truncation metrics.
//
//	prog := logics.New(root, logics.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *programConfig) {
		if m == nil {
			m = observability.NoopMetrics{}
		}
		c.metrics = m
	}
}

// WithTracing opens a span for every run and every function call using
// the global OpenTelemetry tracer provider.
func WithTracing() Option {
	return func(c *programConfig) {
		c.tracingEnabled = true
		c.spans = observability.NewSpanManager()
	}
}

// WithSpanManager traces through m instead of the global tracer.
func WithSpanManager(m observability.SpanManager) Option {
	return func(c *programConfig) {
		if m == nil {
			c.tracingEnabled = false
			c.spans = observability.NoopSpanManager{}
			return
		}
		c.tracingEnabled = true
		c.spans = m
	}
}

// WithRunID fixes the identifier attached to logs and spans. By default
// every run gets a fresh UUID.
func WithRunID(id string) Option {
	return func(c *programConfig) {
		c.runID = id
	}
}

// WithName names the Program in logs and spans. Default: "logics".
func WithName(name string) Option {
	return func(c *programConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithSettings applies loaded settings: iteration limit, comprehension
// scoping, tracing, metrics, the function set and default variables. An
// invalid function set or language fails Compile, or Run for programs
// built with New.
//
// Settings only switch features on, so WithScopedComprehensions or
// WithTracing given earlier stay in effect. The settings' function set
// replaces a registry passed to WithFunctions; functions added with
// WithFunction are kept on top of it wherever the option appears.
func WithSettings(s config.Settings) Option {
	return func(c *programConfig) {
		if s.MaxIterations > 0 {
			c.maxIterations = s.MaxIterations
		}
		c.scoped = c.scoped || s.ScopedComprehensions
		if s.Tracing {
			WithTracing()(c)
		}
		if s.Metrics {
			c.metrics = observability.NewMetricsRecorder()
		}
		r, err := s.Registry()
		if err != nil {
			c.err = err
			return
		}
		r.RegisterMany(c.added)
		c.functions = r
		c.ownFunctions = true
		c.defaults = s.Vars
	}
}

func (c *programConfig) parserOrDefault() Parser {
	if c.parser == nil {
		return parser.New()
	}
	return c.parser
}
