// This file contains panic recovery utilities. Explainers call into
// user-supplied model code (Predict, Gradient); a misbehaving model must not
// take the whole process down, so panics at that boundary are converted into
// structured errors with stack information.

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError represents an error that was created from a recovered panic.
// It includes the original panic value and stack trace information.
type PanicError struct {
	// PanicValue is the original value passed to panic()
	PanicValue interface{}

	// StackTrace contains the stack trace at the time of panic
	StackTrace string

	// Operation identifies where the panic was recovered
	Operation string
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns nil as PanicError doesn't wrap another error by default.
func (e *PanicError) Unwrap() error {
	return nil
}

// String provides detailed information including stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a new PanicError with the given operation context and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover is a utility function to be used with defer to recover from panics
// and convert them into errors.
//
// Usage:
//
//	func (k *Kernel) ShapValues(X mat.Matrix) (v *Values, err error) {
//	    defer errors.Recover(&err, "Kernel.ShapValues")
//	    // ... dispatch into the model ...
//	}
//
// If a panic occurs it is converted to a PanicError and assigned to err. An
// error already set by the function is preserved in the message.
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		panicErr := NewPanicError(operation, r)

		if err != nil {
			if *err != nil {
				*err = Wrapf(*err, "panic occurred: %v", panicErr)
			} else {
				*err = WithStack(panicErr)
			}
		}
	}
}
