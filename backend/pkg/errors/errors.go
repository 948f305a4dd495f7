package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeArchive represents failures opening or reading an export archive
	ErrorTypeArchive ErrorType = "archive"
	// ErrorTypeParse represents per-file JSON decode failures
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeExtract represents batch-level extraction outcomes surfaced to the user
	ErrorTypeExtract ErrorType = "extract"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// ErrorType reports the category; promoted through every typed error below
func (e *BaseError) ErrorType() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Archive Errors

// ErrArchiveOpenFailed is returned when the uploaded file is not a readable archive
type ErrArchiveOpenFailed struct {
	*BaseError
	Source string
}

func NewArchiveOpenFailed(source string, err error) *ErrArchiveOpenFailed {
	return &ErrArchiveOpenFailed{
		BaseError: NewBaseError(ErrorTypeArchive, fmt.Sprintf("failed to open archive: %s", source), err),
		Source:    source,
	}
}

// ErrEntryReadFailed is returned when a single archive entry cannot be read
type ErrEntryReadFailed struct {
	*BaseError
	Entry string
}

func NewEntryReadFailed(entry string, err error) *ErrEntryReadFailed {
	return &ErrEntryReadFailed{
		BaseError: NewBaseError(ErrorTypeArchive, fmt.Sprintf("failed to read entry: %s", entry), err),
		Entry:     entry,
	}
}

// ErrEntryTooLarge is returned when an entry exceeds the configured size ceiling
type ErrEntryTooLarge struct {
	*BaseError
	Entry string
	Size  uint64
	Limit int64
}

func NewEntryTooLarge(entry string, size uint64, limit int64) *ErrEntryTooLarge {
	return &ErrEntryTooLarge{
		BaseError: NewBaseError(ErrorTypeArchive, fmt.Sprintf("entry too large: %s (%d bytes, limit %d)", entry, size, limit), nil),
		Entry:     entry,
		Size:      size,
		Limit:     limit,
	}
}

// Parse Errors

// ErrJSONParseFailed is returned when an entry is not valid JSON
type ErrJSONParseFailed struct {
	*BaseError
	File string
}

func NewJSONParseFailed(file string, err error) *ErrJSONParseFailed {
	return &ErrJSONParseFailed{
		BaseError: NewBaseError(ErrorTypeParse, fmt.Sprintf("invalid JSON in %s", file), err),
		File:      file,
	}
}

// Extraction Errors

// ErrNoJSONFiles is returned when an archive holds no JSON entries at all
var ErrNoJSONFiles = NewBaseError(ErrorTypeExtract, "no JSON files found in archive", nil)

// ErrNoDataExtracted is returned when JSON entries exist but none yield a user record
var ErrNoDataExtracted = NewBaseError(ErrorTypeExtract, "no user data could be extracted from the JSON files", nil)

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or anything it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	var typed interface{ ErrorType() ErrorType }
	if errors.As(err, &typed) {
		return typed.ErrorType() == errType
	}
	return false
}

// IsBatchFailure reports whether err is one of the user-facing batch outcomes
func IsBatchFailure(err error) bool {
	return errors.Is(err, ErrNoJSONFiles) || errors.Is(err, ErrNoDataExtracted)
}
