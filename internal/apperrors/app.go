// Package apperrors provides structured error types and helpers for the
// HTTP runtime built on top of shardqueue.
package apperrors

// AppError is a structured application error carrying an API error code.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// WithCause returns a copy of e carrying the given underlying cause.
func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Cause: cause}
}

// Pre-defined errors for the task submission surface.
var (
	ErrInvalidJSON = &AppError{
		Code:    ErrCodeInvalidJSON,
		Message: "request body is not valid JSON",
	}
	ErrValidationFailed = &AppError{
		Code:    ErrCodeValidationFailed,
		Message: "request validation failed",
	}
	ErrInternalError = &AppError{
		Code:    ErrCodeInternalError,
		Message: "internal server error",
	}
	ErrQueueShutdown = &AppError{
		Code:    ErrCodeQueueShutdown,
		Message: "the task pool has been shut down and no longer accepts work",
	}
	ErrSubmissionTimeout = &AppError{
		Code:    ErrCodeSubmissionTimeout,
		Message: "the task did not complete before the requested timeout",
	}
)
