package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application-wide error type. Domain names the subsystem the
// error originated in ("upload", "storage", "config", ...).
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError without an underlying cause.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON keeps the wire shape free of the wrapped error and HTTP code.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- common helpers ---

// InternalError wraps an unclassified system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// NewBadRequestError builds a 400 validation error.
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

// NewLimitExceededError builds a 413 for size or count ceilings.
func NewLimitExceededError(message string) *AppError {
	return New(CodeLimitExceeded, "request", message, http.StatusRequestEntityTooLarge)
}

// NewNotFoundError builds a 404 for unknown resources and routes.
func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, "request", message, http.StatusNotFound)
}

// NewConsentRequiredError is returned when the consent checkbox was not ticked.
func NewConsentRequiredError(message string) *AppError {
	return New(CodeConsentRequired, "request", message, http.StatusBadRequest)
}

// NewConfigurationError reports server-side misconfiguration (bad folder ID,
// invalid credentials). Always a 500: the caller cannot remediate it.
func NewConfigurationError(err error, message string) *AppError {
	return Wrap(err, CodeConfigurationError, "config", message, http.StatusInternalServerError)
}

// NewExternalServiceError reports a remote storage failure surfaced to the caller.
func NewExternalServiceError(err error, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, "storage", message, http.StatusInternalServerError)
}
