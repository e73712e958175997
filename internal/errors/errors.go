// Package errors provides structured error types for the clickforge
// pipeline. All errors include a category, code, message, and optional
// cause for consistent handling across components. The pipeline is a
// batch run-once tool, so no error is retryable: the first unrecoverable
// error aborts the run.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by pipeline stage.
type ErrorCategory string

const (
	ErrCategoryConfig     ErrorCategory = "CONFIG"
	ErrCategoryGeneration ErrorCategory = "GENERATION"
	ErrCategoryWrite      ErrorCategory = "WRITE"
	ErrCategoryRead       ErrorCategory = "READ"
	ErrCategoryStorage    ErrorCategory = "STORAGE"
	ErrCategoryCatalog    ErrorCategory = "CATALOG"
	ErrCategoryInternal   ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Config codes
	CodeInvalidRange        = "INVALID_RANGE"
	CodeInvalidPartitionKey = "INVALID_PARTITION_KEY"
	CodeInvalidCodec        = "INVALID_CODEC"

	// Generation codes
	CodeDomainViolation = "DOMAIN_VIOLATION"

	// Write codes
	CodeEmptyTable     = "EMPTY_TABLE"
	CodeDirCreation    = "DIR_CREATION_FAILED"
	CodeFileWrite      = "FILE_WRITE_FAILED"
	CodeManifestWrite  = "MANIFEST_WRITE_FAILED"
	CodeUnsupportedKey = "UNSUPPORTED_PARTITION_KEY"

	// Read codes
	CodeFileRead       = "FILE_READ_FAILED"
	CodeNoPartitions   = "NO_PARTITIONS"
	CodeManifestDecode = "MANIFEST_DECODE_FAILED"

	// Storage codes
	CodeUploadFailed = "UPLOAD_FAILED"

	// Catalog codes
	CodeRunInsert = "RUN_INSERT_FAILED"
	CodeRunQuery  = "RUN_QUERY_FAILED"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// PipelineError is the structured error type used throughout clickforge.
type PipelineError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
}

// Error returns a formatted error string.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *PipelineError) Is(target error) bool {
	var t *PipelineError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new PipelineError.
func New(category ErrorCategory, code, message string) *PipelineError {
	return &PipelineError{Category: category, Code: code, Message: message}
}

// Newf creates a new PipelineError with a formatted message.
func Newf(category ErrorCategory, code, format string, args ...interface{}) *PipelineError {
	return New(category, code, fmt.Sprintf(format, args...))
}

// Wrap creates a new PipelineError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *PipelineError {
	return &PipelineError{Category: category, Code: code, Message: message, Cause: cause}
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a PipelineError.
func GetCategory(err error) ErrorCategory {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a PipelineError.
func GetCode(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// Convenience constructors for common errors.

func NewConfigError(code, message string) *PipelineError {
	return New(ErrCategoryConfig, code, message)
}

func NewWriteError(code, message string, cause error) *PipelineError {
	return Wrap(ErrCategoryWrite, code, message, cause)
}

func NewReadError(code, message string, cause error) *PipelineError {
	return Wrap(ErrCategoryRead, code, message, cause)
}

func NewStorageError(code, message string, cause error) *PipelineError {
	return Wrap(ErrCategoryStorage, code, message, cause)
}

func NewCatalogError(code, message string, cause error) *PipelineError {
	return Wrap(ErrCategoryCatalog, code, message, cause)
}

func NewInternalError(message string, cause error) *PipelineError {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}
