package apperrors

// Error codes for API responses.
const (
	// Request related errors (2000-2999)
	ErrCodeInvalidJSON      = 2001
	ErrCodeValidationFailed = 2002
	ErrCodeMissingFields    = 2003

	// System related errors (5000-5999)
	ErrCodeInternalError = 5001

	// Task-queue related errors (6000-6999)
	ErrCodeQueueFull         = 6000 // reserved: the queue is unbounded today, nothing returns this yet
	ErrCodeQueueShutdown     = 6001
	ErrCodeSubmissionTimeout = 6002
)
