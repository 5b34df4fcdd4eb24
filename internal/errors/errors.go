// Package errors provides standardized error types for table operations.
// This package defines TableError for consistent error handling across
// the cleaning pipeline, with operation context and error wrapping support.
package errors

import (
	"fmt"
)

// TableError represents standardized errors across all table operations
type TableError struct {
	Op      string // Operation name (e.g., "Encode", "Impute", "ReadCSV")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *TableError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *TableError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *TableError) Is(target error) bool {
	if te, ok := target.(*TableError); ok {
		return e.Op == te.Op && e.Column == te.Column && e.Message == te.Message
	}
	return false
}

// Common error constructors for consistent error creation

// NewColumnNotFoundError creates an error for operations on non-existent columns
func NewColumnNotFoundError(op, column string) *TableError {
	return &TableError{
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewTypeMismatchError creates an error for operations on columns of the wrong type
func NewTypeMismatchError(op, column, want, got string) *TableError {
	return &TableError{
		Op:      op,
		Column:  column,
		Message: fmt.Sprintf("expected %s column, got %s", want, got),
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *TableError {
	return &TableError{
		Op:      op,
		Message: message,
	}
}

// NewReadError creates an error for source load failures. These are fatal:
// the pipeline cannot proceed without its input table.
func NewReadError(op, path string, cause error) *TableError {
	return &TableError{
		Op:      op,
		Message: fmt.Sprintf("cannot read source %s", path),
		Cause:   cause,
	}
}

// NewWriteError creates an error for destination persistence failures
func NewWriteError(op, path string, cause error) *TableError {
	return &TableError{
		Op:      op,
		Message: fmt.Sprintf("cannot write destination %s", path),
		Cause:   cause,
	}
}

// ErrEmptyTable indicates an operation on a table with no rows, such as
// a pipeline run over a header-only source file.
var ErrEmptyTable = &TableError{
	Op:      "validation",
	Message: "operation not supported on empty table",
}
