// internal/service/enquiry_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stperrors "stp-connect/internal/common/errors"
	"stp-connect/internal/common/logger"
	"stp-connect/internal/models"
)

type fakeEnquiryWriter struct {
	stored []models.Enquiry
	err    error
}

func (f *fakeEnquiryWriter) CreateEnquiry(_ context.Context, enquiry models.Enquiry) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, enquiry)
	return nil
}

type fakeEnquiryNotifier struct {
	notified []models.Enquiry
	status   string
}

func (f *fakeEnquiryNotifier) NotifyEnquiry(_ context.Context, enquiry models.Enquiry) models.Notification {
	f.notified = append(f.notified, enquiry)
	status := f.status
	if status == "" {
		status = NotificationStatusSent
	}
	return models.Notification{ID: "n1", Status: status}
}

func validEnquiryRequest() EnquiryRequest {
	return EnquiryRequest{
		Name:    "Lerato N",
		Email:   "lerato@example.com",
		Subject: "Lab space",
		Message: "Do you have wet lab space available from August?",
	}
}

func TestSubmitEnquiry(t *testing.T) {
	writer := &fakeEnquiryWriter{}
	notifier := &fakeEnquiryNotifier{}
	svc, err := NewEnquiryService(writer, notifier, logger.NewTestLogger(t))
	require.NoError(t, err)

	enquiry, err := svc.SubmitEnquiry(context.Background(), validEnquiryRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, enquiry.ID)
	assert.Equal(t, "general", enquiry.Category)
	require.Len(t, writer.stored, 1)
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, enquiry.ID, notifier.notified[0].ID)
}

func TestSubmitEnquiry_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EnquiryRequest)
	}{
		{"missing name", func(r *EnquiryRequest) { r.Name = "" }},
		{"missing email", func(r *EnquiryRequest) { r.Email = "" }},
		{"missing message", func(r *EnquiryRequest) { r.Message = "" }},
		{"unknown category", func(r *EnquiryRequest) { r.Category = "billing" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &fakeEnquiryWriter{}
			svc, err := NewEnquiryService(writer, &fakeEnquiryNotifier{}, logger.NewTestLogger(t))
			require.NoError(t, err)

			req := validEnquiryRequest()
			tt.mutate(&req)

			_, err = svc.SubmitEnquiry(context.Background(), req)
			require.Error(t, err)

			var stdErr *stperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, stperrors.ErrCodeEnquiryValidationFailed, stdErr.Code)
			assert.Empty(t, writer.stored)
		})
	}
}

func TestSubmitEnquiry_InsertFailurePropagates(t *testing.T) {
	writer := &fakeEnquiryWriter{err: errors.New("connection reset")}
	notifier := &fakeEnquiryNotifier{}
	svc, err := NewEnquiryService(writer, notifier, logger.NewTestLogger(t))
	require.NoError(t, err)

	_, err = svc.SubmitEnquiry(context.Background(), validEnquiryRequest())
	require.Error(t, err)
	assert.Empty(t, notifier.notified)
}

func TestSubmitEnquiry_NotificationFailureDoesNotFailSubmission(t *testing.T) {
	writer := &fakeEnquiryWriter{}
	notifier := &fakeEnquiryNotifier{status: NotificationStatusFailed}
	svc, err := NewEnquiryService(writer, notifier, logger.NewTestLogger(t))
	require.NoError(t, err)

	enquiry, err := svc.SubmitEnquiry(context.Background(), validEnquiryRequest())
	require.NoError(t, err)
	assert.NotNil(t, enquiry)
	require.Len(t, writer.stored, 1)
}
