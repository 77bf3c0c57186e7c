package response

// Business status codes.
const (
	CodeSuccess = 0
	CodeError   = 1

	// Auth / permission errors 100xx
	ErrTokenInvalid = 10001
	ErrNoPermission = 10002

	// Submission module errors 200xx
	ErrSubmissionNotFound = 20001
	ErrSubmissionDecided  = 20002
	ErrDuplicateTitle     = 20003

	// Content module errors 300xx
	ErrPostNotFound      = 30001
	ErrCommentNotFound   = 30002
	ErrRegenInProgress   = 30003

	// System errors 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
