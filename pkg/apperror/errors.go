package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// AppError represents an error surfaced to the operator, either raised
// locally or decoded from a backend response.
type AppError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if len(e.Details) > 0 {
		return e.Message + ": " + strings.Join(e.Details, "; ")
	}
	return e.Message
}

// serverError covers the three error body shapes the backend produces:
// {"error": "..."}, {"details": ["...", ...]} and {"message": "..."}.
type serverError struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// FromResponse decodes an error response body into a single AppError,
// regardless of which of the backend's error shapes it carries. A body that
// is not JSON degrades to its raw text, and an empty body to the generic
// status text.
func FromResponse(statusCode int, body []byte) *AppError {
	appErr := &AppError{Code: statusCode, Message: http.StatusText(statusCode)}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return appErr
	}

	var srv serverError
	if err := json.Unmarshal(body, &srv); err != nil {
		appErr.Message = trimmed
		return appErr
	}

	switch {
	case len(srv.Details) > 0:
		appErr.Message = "Validation failed"
		if srv.Error != "" {
			appErr.Message = srv.Error
		} else if srv.Message != "" {
			appErr.Message = srv.Message
		}
		appErr.Details = srv.Details
	case srv.Error != "":
		appErr.Message = srv.Error
	case srv.Message != "":
		appErr.Message = srv.Message
	default:
		appErr.Message = trimmed
	}

	return appErr
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
