package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Connection / credential errors
	ErrNotLoggedIn     = "NOT_LOGGED_IN"
	ErrAuthFailed      = "AUTH_FAILED"
	ErrProfileNotFound = "PROFILE_NOT_FOUND"
	ErrConfigInvalid   = "CONFIG_INVALID"

	// Server errors
	ErrAPIError = "API_ERROR"
	ErrNotFound = "NOT_FOUND"

	// Import pipeline errors
	ErrParseFailed      = "PARSE_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrFieldNotFound    = "FIELD_NOT_FOUND"
	ErrResolutionFailed = "RESOLUTION_FAILED"

	// Input errors
	ErrInvalidInput  = "INVALID_INPUT"
	ErrFileReadError = "FILE_READ_ERROR"

	// Store / history errors
	ErrStoreError   = "STORE_ERROR"
	ErrHistoryError = "HISTORY_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
	ErrAborted  = "ABORTED"
)
