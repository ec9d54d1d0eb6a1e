package parser

import (
	"errors"
	"fmt"
)

// ErrSyntax indicates the source text is not a valid Logics expression.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports where parsing failed.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func newSyntaxError(line, col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// Unwrap returns ErrSyntax for errors.Is support.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
