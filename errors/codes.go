package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Argument errors
const (
	// ErrCodeNullArgument indicates a required value or function was nil.
	ErrCodeNullArgument ErrorCode = "NULL_ARGUMENT"
	// ErrCodeInvalidArgument indicates an argument was present but unusable.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeIndexOutOfRange indicates an index or range fell outside its target.
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"
)

// Value errors
const (
	// ErrCodeEmptyValue indicates an absent value was unwrapped as an error.
	ErrCodeEmptyValue ErrorCode = "EMPTY_VALUE"
)

// State errors
const (
	// ErrCodeInvalidState indicates an operation conflicts with the current state.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
	// ErrCodeSourceFailed indicates an asynchronous producer failed.
	ErrCodeSourceFailed ErrorCode = "SOURCE_FAILED"
)

var argumentCodes = map[ErrorCode]bool{
	ErrCodeNullArgument:    true,
	ErrCodeInvalidArgument: true,
	ErrCodeIndexOutOfRange: true,
}

// IsArgumentCode reports whether code describes a caller argument mistake.
// Argument errors are raised synchronously and never stored in a pipeline.
func IsArgumentCode(code ErrorCode) bool {
	return argumentCodes[code]
}
