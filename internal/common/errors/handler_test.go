// internal/common/errors/handler_test.go
package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	lastMsg    string
	lastFields map[string]interface{}
}

func (l *captureLogger) Error(msg string, fields map[string]interface{}) {
	l.lastMsg = msg
	l.lastFields = fields
}

func TestWriteError_StandardError(t *testing.T) {
	log := &captureLogger{}
	h := NewErrorHandler(log)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/u1/recommendations", nil)

	h.WriteError(w, r, NewProfileNotFoundError("u1"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		Error StandardError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeProfileNotFound, body.Error.Code)
	assert.Equal(t, "request failed", log.lastMsg)
	assert.Equal(t, "PROFILE_NOT_FOUND", log.lastFields["errorCode"])
}

func TestWriteError_PlainErrorBecomesInternal(t *testing.T) {
	h := NewErrorHandler(&captureLogger{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities", nil)

	h.WriteError(w, r, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error StandardError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), body.Error.Code)
	assert.Equal(t, "boom", body.Error.Details)
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeProfileNotFound, http.StatusNotFound},
		{ErrCodeInvalidRequest, http.StatusBadRequest},
		{ErrCodeEnquiryValidationFailed, http.StatusUnprocessableEntity},
		{ErrCodeSearchTimeout, http.StatusGatewayTimeout},
		{ErrCodeProfileFetchFailed, http.StatusServiceUnavailable},
		{ErrCodeSearchQueryFailed, http.StatusBadGateway},
		{ErrCodeQueryExecutionFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), string(tt.code))
	}
}

func TestRetryableFlags(t *testing.T) {
	assert.True(t, NewProfileFetchFailedError(errors.New("x")).Retryable)
	assert.True(t, NewSearchQueryFailedError(errors.New("x")).Retryable)
	assert.False(t, NewProfileNotFoundError("u1").Retryable)
	assert.False(t, NewInvalidRequestError("x").Retryable)
}
