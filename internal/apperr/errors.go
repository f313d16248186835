package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// AppError is a structured application error with a stable code.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Predefined error codes.
const (
	CodeUnreadableFile = "UNREADABLE_FILE"
	CodeMissingInput   = "MISSING_INPUT"
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeInternalError  = "INTERNAL_ERROR"
)

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, preserving an existing code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{Code: appErr.Code, Message: message, Cause: err}
	}
	return &AppError{Code: CodeInternalError, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if err is an AppError, otherwise "UNKNOWN".
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// UnreadableFile reports that a data file could not be read with the given
// type and reader options. Every reader failure collapses into this one kind;
// the underlying cause is retained only for the error chain.
func UnreadableFile(filename string, options map[string]interface{}, cause error) *AppError {
	return &AppError{
		Code:    CodeUnreadableFile,
		Message: fmt.Sprintf("unable to read %s with the provided read options %s", filename, formatOptions(options)),
		Cause:   cause,
	}
}

// UnsupportedFiletype reports a file type outside the loader's strategy set.
func UnsupportedFiletype(filetype string, supported []string) *AppError {
	return &AppError{
		Code: CodeUnreadableFile,
		Message: fmt.Sprintf("filetype %s is not supported at this time, supported filetypes are %s",
			filetype, strings.Join(supported, ", ")),
	}
}

// MissingInput reports a required startup input that was not supplied.
func MissingInput(message string) *AppError {
	return New(CodeMissingInput, message)
}

// ConfigInvalid reports an invalid configuration value.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// IsUnreadableFile reports whether err carries the UNREADABLE_FILE code.
func IsUnreadableFile(err error) bool {
	return GetCode(err) == CodeUnreadableFile
}

func formatOptions(options map[string]interface{}) string {
	if len(options) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, options[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
