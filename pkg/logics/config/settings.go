package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/randalmurphal/logics/pkg/logics/builtin"
)

// DefaultMaxIterations bounds the number of items a comprehension produces.
const DefaultMaxIterations = 4096

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid settings")

// Settings configures an evaluator.
type Settings struct {
	// MaxIterations caps comprehension output.
	MaxIterations int

	// ScopedComprehensions binds loop variables in a frame discarded after
	// the comprehension instead of the run's working frame.
	ScopedComprehensions bool

	// Tracing and Metrics enable the OpenTelemetry hooks.
	Tracing bool
	Metrics bool

	// LogLevel is one of debug, info, warn, error. Empty means info.
	LogLevel string

	// Language selects the casing rules of the string functions (BCP 47).
	// Empty means language-neutral.
	Language string

	// Functions restricts the standard functions visible to expressions.
	// Nil exposes all of them.
	Functions []string

	// Vars are default variable bindings.
	Vars map[string]any
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{MaxIterations: DefaultMaxIterations}
}

// Decode reads Settings from cfg, falling back to Default for missing keys.
//
//	max_iterations: 100
//	scoped_comprehensions: true
//	tracing: true
//	metrics: false
//	log_level: debug
//	language: de
//	functions: [upper, lower, len]
//	vars:
//	  currency: EUR
func Decode(cfg Config) Settings {
	def := Default()
	return Settings{
		MaxIterations:        cfg.Int("max_iterations", def.MaxIterations),
		ScopedComprehensions: cfg.Bool("scoped_comprehensions", def.ScopedComprehensions),
		Tracing:              cfg.Bool("tracing", def.Tracing),
		Metrics:              cfg.Bool("metrics", def.Metrics),
		LogLevel:             cfg.String("log_level", def.LogLevel),
		Language:             cfg.String("language", def.Language),
		Functions:            cfg.StringSlice("functions", def.Functions),
		Vars:                 cfg.Map("vars"),
	}
}

// Validate reports the first problem found, wrapped with ErrInvalid.
func (s Settings) Validate() error {
	if s.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalid, s.MaxIterations)
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	if _, err := s.Tag(); err != nil {
		return err
	}
	if len(s.Functions) > 0 {
		if _, err := builtin.Default().Subset(s.Functions...); err != nil {
			return fmt.Errorf("%w: functions: %w", ErrInvalid, err)
		}
	}
	return nil
}

// SlogLevel returns LogLevel as a slog.Level; unknown levels map to info.
func (s Settings) SlogLevel() slog.Level {
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Tag parses Language. Empty yields language.Und.
func (s Settings) Tag() (language.Tag, error) {
	if s.Language == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(s.Language)
	if err != nil {
		return language.Und, fmt.Errorf("%w: language %q: %w", ErrInvalid, s.Language, err)
	}
	return tag, nil
}

// Registry builds the function registry these settings describe: the
// standard set for Language, narrowed to Functions when given.
func (s Settings) Registry() (*builtin.Registry, error) {
	tag, err := s.Tag()
	if err != nil {
		return nil, err
	}
	r := builtin.Standard(tag)
	if len(s.Functions) == 0 {
		return r, nil
	}
	sub, err := r.Subset(s.Functions...)
	if err != nil {
		return nil, fmt.Errorf("%w: functions: %w", ErrInvalid, err)
	}
	return sub, nil
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log_level %q", ErrInvalid, name)
}
