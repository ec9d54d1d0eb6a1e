package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/randalmurphal/logics/pkg/logics/config"
)

func TestDefault(t *testing.T) {
	s := config.Default()
	assert.Equal(t, config.DefaultMaxIterations, s.MaxIterations)
	assert.False(t, s.ScopedComprehensions)
	assert.NoError(t, s.Validate())
	assert.Equal(t, slog.LevelInfo, s.SlogLevel())
}

func TestDecode(t *testing.T) {
	s := config.Decode(config.New(map[string]any{
		"max_iterations":        10,
		"scoped_comprehensions": true,
		"tracing":               true,
		"log_level":             "debug",
		"functions":             []any{"upper"},
		"vars":                  map[string]any{"x": 1},
	}))

	assert.Equal(t, 10, s.MaxIterations)
	assert.True(t, s.ScopedComprehensions)
	assert.True(t, s.Tracing)
	assert.False(t, s.Metrics)
	assert.Equal(t, []string{"upper"}, s.Functions)
	assert.Equal(t, map[string]any{"x": 1}, s.Vars)
	assert.Equal(t, slog.LevelDebug, s.SlogLevel())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.Settings)
		wantErr string
	}{
		{"default", func(*config.Settings) {}, ""},
		{"zero iterations", func(s *config.Settings) { s.MaxIterations = 0 }, "max_iterations must be positive"},
		{"bad level", func(s *config.Settings) { s.LogLevel = "loud" }, `unknown log_level "loud"`},
		{"warning level", func(s *config.Settings) { s.LogLevel = "WARNING" }, ""},
		{"bad language", func(s *config.Settings) { s.Language = "not a tag" }, `language "not a tag"`},
		{"known functions", func(s *config.Settings) { s.Functions = []string{"len", "upper"} }, ""},
		{"unknown function", func(s *config.Settings) { s.Functions = []string{"exec"} }, `"exec"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.Default()
			tt.modify(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for name, want := range tests {
		s := config.Settings{LogLevel: name}
		assert.Equal(t, want, s.SlogLevel(), name)
	}
}

func TestTag(t *testing.T) {
	tag, err := config.Settings{}.Tag()
	require.NoError(t, err)
	assert.Equal(t, language.Und, tag)

	tag, err = config.Settings{Language: "tr"}.Tag()
	require.NoError(t, err)
	assert.Equal(t, language.Turkish, tag)
}

func TestRegistry(t *testing.T) {
	r, err := config.Default().Registry()
	require.NoError(t, err)
	assert.True(t, r.Has("currency"))

	r, err = config.Settings{Functions: []string{"upper"}}.Registry()
	require.NoError(t, err)
	assert.Equal(t, []string{"upper"}, r.Names())

	_, err = config.Settings{Functions: []string{"nope"}}.Registry()
	assert.ErrorIs(t, err, config.ErrInvalid)

	r, err = config.Settings{Language: "tr"}.Registry()
	require.NoError(t, err)
	fn, _ := r.Lookup("upper")
	out, err := fn(valueString("i"))
	require.NoError(t, err)
	assert.Equal(t, "İ", out)
}
