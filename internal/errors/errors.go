package errors

import (
	"fmt"
)

// AppError represents a structured application error
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

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeScorerUnavailable = "SCORER_UNAVAILABLE"
	CodeScorerTimeout     = "SCORER_TIMEOUT"
	CodeCacheCorruption   = "CACHE_CORRUPTION"
	CodeNotFound          = "NOT_FOUND"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// ScorerUnavailable marks a benchmark that could not run at all. The
// orchestrator records it and excludes the benchmark from fusion.
func ScorerUnavailable(kind string, cause error) *AppError {
	return &AppError{
		Code:    CodeScorerUnavailable,
		Message: fmt.Sprintf("benchmark %s unavailable", kind),
		Cause:   cause,
	}
}

// ScorerTimeout marks a benchmark that exceeded its time budget. Treated
// identically to ScorerUnavailable at the orchestrator boundary.
func ScorerTimeout(kind string, cause error) *AppError {
	return &AppError{
		Code:    CodeScorerTimeout,
		Message: fmt.Sprintf("benchmark %s exceeded its time budget", kind),
		Cause:   cause,
	}
}

// CacheCorruption marks a stored entry that failed validation on read.
// The cache deletes the entry and reports a miss; never propagated.
func CacheCorruption(key string, cause error) *AppError {
	return &AppError{
		Code:    CodeCacheCorruption,
		Message: fmt.Sprintf("cache entry %s failed validation", key),
		Cause:   cause,
	}
}
