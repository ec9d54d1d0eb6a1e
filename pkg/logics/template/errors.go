package template

import (
	"errors"
	"fmt"
)

// ErrSyntax indicates a malformed template.
var ErrSyntax = errors.New("template syntax error")

// SyntaxError reports where a template failed to parse. Err holds the
// underlying expression error when the tag itself was well formed.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// Unwrap returns ErrSyntax and, if present, the expression error.
func (e *SyntaxError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSyntax}
	}
	return []error{ErrSyntax, e.Err}
}
