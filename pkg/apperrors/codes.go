package apperrors

// ErrorCode classifies an application error independent of its message text,
// so callers can branch on kind without parsing strings.
type ErrorCode string

const (
	// System and unknown failures
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeConfigurationError   ErrorCode = "CONFIGURATION_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Request validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConsentRequired  ErrorCode = "CONSENT_REQUIRED"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"

	// Remote storage failure taxonomy
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"

	// All uploads in a batch failed
	CodeBatchFailed ErrorCode = "BATCH_FAILED"
)
