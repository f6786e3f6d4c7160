package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type of the kit.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code.
// It lets the package sentinels match any error of their kind.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Sentinels for errors.Is comparisons. They must not be mutated.
var (
	ErrNullArgument    = &AppError{Code: ErrCodeNullArgument, Message: "argument is nil"}
	ErrInvalidArgument = &AppError{Code: ErrCodeInvalidArgument, Message: "argument is invalid"}
	ErrIndexOutOfRange = &AppError{Code: ErrCodeIndexOutOfRange, Message: "index out of range"}
	ErrEmptyValue      = &AppError{Code: ErrCodeEmptyValue, Message: "value is absent"}
	ErrInvalidState    = &AppError{Code: ErrCodeInvalidState, Message: "invalid state"}
	ErrSourceFailed    = &AppError{Code: ErrCodeSourceFailed, Message: "source failed"}
)

// --- Constructors ---

// NullArgument creates an AppError for a required argument that was nil.
func NullArgument(name string) *AppError {
	return &AppError{
		Code: ErrCodeNullArgument, Message: fmt.Sprintf("%s must not be nil", name),
		Details: map[string]any{"argument": name},
	}
}

// InvalidArgument creates an AppError for an argument that cannot be used.
func InvalidArgument(name, reason string) *AppError {
	details := make(map[string]any)
	if name != "" {
		details["argument"] = name
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid %s: %s", name, reason),
		Details: details,
	}
}

// IndexOutOfRange creates an AppError for an index or range outside [0, length).
func IndexOutOfRange(name string, value any, length int) *AppError {
	return &AppError{
		Code: ErrCodeIndexOutOfRange, Message: fmt.Sprintf("%s %v is out of range for length %d", name, value, length),
		Details: map[string]any{"argument": name, "value": fmt.Sprint(value), "length": length},
	}
}

// EmptyValue creates an AppError for an absent value unwrapped without a caller error.
func EmptyValue() *AppError {
	return &AppError{Code: ErrCodeEmptyValue, Message: "optional value is empty"}
}

// InvalidState creates an AppError for an operation that conflicts with current state.
func InvalidState(reason string) *AppError {
	return &AppError{Code: ErrCodeInvalidState, Message: reason}
}

// SourceFailed creates an AppError for an asynchronous producer that failed.
func SourceFailed(source string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSourceFailed, Message: fmt.Sprintf("%s failed to produce a value", source),
		Details: map[string]any{"source": source}, Cause: cause,
	}
}

// --- Inspection ---

// IsAppError checks whether err is or wraps an *AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first *AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}
