package template

import "github.com/randalmurphal/logics/pkg/logics"

// Default delimiters and markers.
const (
	DefaultOpen  = "{{"
	DefaultClose = "}}"

	markStrip = "-"
	markBlock = "#"
	markAlt   = "|"
	markEnd   = "/"
)

// Option configures a Template.
type Option func(*Template)

// WithDelimiters replaces the "{{" and "}}" tag delimiters. Empty values
// keep the defaults.
//
// Example:
//
//	tpl, _ := template.New("Hello <% name %>", template.WithDelimiters("<%", "%>"))
func WithDelimiters(open, close string) Option {
	return func(t *Template) {
		if open != "" {
			t.open = open
		}
		if close != "" {
			t.close = close
		}
	}
}

// WithEmptyValue sets the text rendered for expressions that yield None.
//
// Default: "" (nothing is rendered)
func WithEmptyValue(s string) Option {
	return func(t *Template) {
		t.emptyValue = s
	}
}

// WithProgramOptions passes options to every expression compiled from the
// template, e.g. custom functions or a logger.
func WithProgramOptions(opts ...logics.Option) Option {
	return func(t *Template) {
		t.programOpts = append(t.programOpts, opts...)
	}
}
