package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Request errors
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeMissingField     = "MISSING_FIELD"

	// External errors
	CodeExternalError = "EXTERNAL_ERROR"

	// Internal errors
	CodeConfigError = "CONFIG_ERROR"
)

// Messages returned to callers. They are part of the public contract.
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgMissingAPIKey    = "API key is not configured on the server."
	MsgProcessingFailed = "An error occurred while processing your request."
)

// AppError represents a structured application error
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Request errors
func MethodNotAllowed(method string) *AppError {
	return &AppError{
		Code:    CodeMethodNotAllowed,
		Message: MsgMethodNotAllowed,
		Status:  http.StatusMethodNotAllowed,
		Details: map[string]any{"method": method},
	}
}

// MissingField reports a required body field that is absent, empty or of the
// wrong type. The message is "<field> is required".
func MissingField(field string) *AppError {
	return &AppError{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("%s is required", field),
		Status:  http.StatusBadRequest,
		Details: map[string]any{"field": field},
	}
}

// External errors

// ExternalError hides the upstream failure behind the generic processing
// message. The cause stays in Err for server-side logging only.
func ExternalError(service string, err error) *AppError {
	return &AppError{
		Code:    CodeExternalError,
		Message: MsgProcessingFailed,
		Status:  http.StatusInternalServerError,
		Details: map[string]any{"upstream": service},
		Err:     err,
	}
}

// Internal errors
func ConfigError(message string) *AppError {
	return &AppError{
		Code:    CodeConfigError,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// Common error instances
var (
	ErrMissingAPIKey = ConfigError(MsgMissingAPIKey)
)

// AsAppError returns the *AppError in err's chain, or nil.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetHTTPStatus returns the status err maps to; anything that is not an
// AppError is a 500.
func GetHTTPStatus(err error) int {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
