package value

import (
	"errors"
	"fmt"
)

// ErrConversion indicates native data has no Logics representation.
var ErrConversion = errors.New("cannot convert into a Logics value")

// ErrNotNumeric indicates a string has no leading numeric part.
var ErrNotNumeric = errors.New("no leading number")

// ConversionError reports the element that made a conversion fail.
type ConversionError struct {
	// Path locates the element, e.g. "$.items[2]".
	Path string
	// Type is the Go type that could not be converted.
	Type string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s at %s into a Logics value", e.Type, e.Path)
}

// Unwrap returns ErrConversion for errors.Is support.
func (e *ConversionError) Unwrap() error {
	return ErrConversion
}
