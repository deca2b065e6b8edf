package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeIO                   = "IO_ERROR"
	ErrCodeCorruptRecord        = "CORRUPT_RECORD"
	ErrCodeUnsupportedContainer = "UNSUPPORTED_CONTAINER"
	ErrCodeEmptyContainer       = "EMPTY_CONTAINER"
	ErrCodeUnknownFormat        = "UNKNOWN_FORMAT"
	ErrCodeNothingToExport      = "NOTHING_TO_EXPORT"
	ErrCodeSchema               = "SCHEMA_ERROR"
	ErrCodeNotFound             = "NOT_FOUND"
)

// AppError represents an application error with a stable code
type AppError struct {
	Code    string // Error code (e.g., "IO_ERROR", "CORRUPT_RECORD")
	Message string // Human-readable error message
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err, or any error it wraps, is an AppError
// carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// NewIOError wraps a filesystem failure on a record or temp file
func NewIOError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeIO,
		Message: fmt.Sprintf("i/o failure during %s", op),
		Err:     err,
	}
}

// NewCorruptRecordError marks a record that exists but fails parsing
func NewCorruptRecordError(id string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeCorruptRecord,
		Message: fmt.Sprintf("deck record %q is corrupt", id),
		Err:     err,
	}
}

// NewUnsupportedContainerError marks an archive with no recognizable database
func NewUnsupportedContainerError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedContainer,
		Message: message,
	}
}

// NewEmptyContainerError marks an archive that produced no cards
func NewEmptyContainerError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyContainer,
		Message: message,
	}
}

// NewUnknownFormatError marks an import file whose format cannot be detected
func NewUnknownFormatError(path string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownFormat,
		Message: fmt.Sprintf("cannot detect format of %q; expected .apkg, .txt, .tsv or .csv", path),
	}
}

// NewNothingToExportError marks an export with an empty deck selection
func NewNothingToExportError() *AppError {
	return &AppError{
		Code:    ErrCodeNothingToExport,
		Message: "no decks to export",
	}
}

// NewSchemaError wraps an embedded-database construction or query failure
func NewSchemaError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeSchema,
		Message: fmt.Sprintf("collection database failure during %s", op),
		Err:     err,
	}
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
	}
}
