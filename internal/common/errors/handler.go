// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler writes standardized error responses for the HTTP API.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// httpStatusMapping maps internal error codes to HTTP status codes.
// Codes missing from the table fall back to 500.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeProfileNotFound:          http.StatusNotFound,
	ErrCodeOpportunityNotFound:      http.StatusNotFound,
	"RESOURCE_NOT_FOUND":            http.StatusNotFound,
	ErrCodeInvalidRequest:           http.StatusBadRequest,
	ErrCodeEnquiryValidationFailed:  http.StatusUnprocessableEntity,
	ErrCodeSearchTimeout:            http.StatusGatewayTimeout,
	ErrCodeProfileFetchFailed:       http.StatusServiceUnavailable,
	ErrCodeOpportunityFetch:         http.StatusServiceUnavailable,
	ErrCodeDatabaseConnectionFailed: http.StatusServiceUnavailable,
	ErrCodeSearchQueryFailed:        http.StatusBadGateway,
	ErrCodeNotificationSendFailed:   http.StatusBadGateway,
}

// HTTPStatus returns the status code for an error code.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError normalizes any error to a StandardError and writes it as a
// JSON response with the mapped status code.
func (h *ErrorHandler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := h.normalizeError(err)

	h.logger.Error("request failed", map[string]interface{}{
		"method":    r.Method,
		"path":      r.URL.Path,
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(stdErr.Code))
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": stdErr,
	})
}

// normalizeError ensures we always have a StandardError.
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
