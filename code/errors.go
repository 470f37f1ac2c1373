package code

import (
	"errors"

	"github.com/rahilshah3105/code-line-formatter/diagnose"
)

// Sentinel errors for error classification.
var (
	// ErrCodeExecution indicates a failure thrown by the executed script,
	// such as a syntax error or a runtime exception.
	ErrCodeExecution = errors.New("code execution error")

	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrLimitExceeded indicates that an execution limit was reached,
	// such as the timeout.
	ErrLimitExceeded = errors.New("limit exceeded")
)

// CodeError is a failure thrown by a script, carrying the engine's native
// metadata.
type CodeError struct {
	// Category is the native failure category, such as "TypeError".
	// Empty when the thrown value has none.
	Category string

	// Message is the native message without the category prefix.
	Message string

	// Stack is the native trace text.
	Stack string

	// SourceName is the name the script was compiled under.
	SourceName string

	// WrapperLines is the number of synthetic lines placed before the script.
	WrapperLines int

	// Err is the underlying error, if any.
	Err error
}

// Error returns "Category: message", or just the message when the category
// is unknown.
func (e *CodeError) Error() string {
	if e.Category == "" {
		return e.Message
	}
	if e.Message == "" {
		return e.Category
	}
	return e.Category + ": " + e.Message
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *CodeError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target.
// CodeError matches ErrCodeExecution to allow sentinel-style error checking.
func (e *CodeError) Is(target error) bool {
	return target == ErrCodeExecution
}

// Failure converts the error into classification input.
func (e *CodeError) Failure() diagnose.Failure {
	return diagnose.Failure{
		Category:     e.Category,
		Message:      e.Message,
		Stack:        e.Stack,
		SourceName:   e.SourceName,
		WrapperLines: e.WrapperLines,
	}
}
