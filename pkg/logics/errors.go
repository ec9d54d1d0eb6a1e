package logics

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/logics/pkg/logics/ast"
)

// Sentinel errors for evaluation.
var (
	// ErrUnknownFunction indicates a call to a name absent from the function
	// registry.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrUnknownNode indicates a syntax tree node of a kind the evaluator
	// does not implement.
	ErrUnknownNode = errors.New("unknown node kind")

	// ErrStackUnderflow indicates a node consumed more values than its
	// children produced. It only occurs with hand-built trees.
	ErrStackUnderflow = errors.New("evaluation stack underflow")
)

// UnknownFunctionError reports a call to an unregistered function.
type UnknownFunctionError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

// Unwrap returns ErrUnknownFunction for errors.Is support.
func (e *UnknownFunctionError) Unwrap() error {
	return ErrUnknownFunction
}

// CallError wraps an error returned by a registered function, or the
// failure to convert its result into a Value.
type CallError struct {
	// Name is the function that failed.
	Name string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("call %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CallError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised inside a registered function.
type PanicError struct {
	// Name is the function that panicked.
	Name string
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("function %s panicked: %v", e.Name, e.Value)
}

// UnknownNodeError reports a node kind the evaluator cannot execute.
type UnknownNodeError struct {
	Kind ast.Kind
}

// Error implements the error interface.
func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("cannot evaluate %q node", e.Kind)
}

// Unwrap returns ErrUnknownNode for errors.Is support.
func (e *UnknownNodeError) Unwrap() error {
	return ErrUnknownNode
}
