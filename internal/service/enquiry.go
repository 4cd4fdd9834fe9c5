// internal/service/enquiry.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	stperrors "stp-connect/internal/common/errors"
	"stp-connect/internal/common/logger"
	"stp-connect/internal/models"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

// enquirySchema validates the enquiry submission payload.
const enquirySchema = `{
	"type": "object",
	"properties": {
		"name":     {"type": "string", "minLength": 1, "maxLength": 200},
		"email":    {"type": "string", "format": "email", "maxLength": 320},
		"subject":  {"type": "string", "minLength": 1, "maxLength": 300},
		"message":  {"type": "string", "minLength": 1, "maxLength": 5000},
		"category": {"type": "string", "enum": ["general", "tenancy", "funding", "partnership", "media"]}
	},
	"required": ["name", "email", "subject", "message"],
	"additionalProperties": false
}`

// EnquiryRequest is the inbound enquiry payload.
type EnquiryRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
}

// EnquiryWriter persists enquiries.
type EnquiryWriter interface {
	CreateEnquiry(ctx context.Context, enquiry models.Enquiry) error
}

// EnquiryNotifier delivers the notifications that follow a new enquiry.
type EnquiryNotifier interface {
	NotifyEnquiry(ctx context.Context, enquiry models.Enquiry) models.Notification
}

// EnquiryService validates, persists and fans out contact enquiries.
type EnquiryService struct {
	store    EnquiryWriter
	notifier EnquiryNotifier
	schema   *gojsonschema.Schema
	logger   logger.Logger
}

func NewEnquiryService(store EnquiryWriter, notifier EnquiryNotifier, log logger.Logger) (*EnquiryService, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(enquirySchema))
	if err != nil {
		return nil, fmt.Errorf("compile enquiry schema: %w", err)
	}

	return &EnquiryService{
		store:    store,
		notifier: notifier,
		schema:   schema,
		logger:   log.WithFields(map[string]interface{}{"component": "enquiries"}),
	}, nil
}

// SubmitEnquiry validates the request, stores the enquiry and triggers
// notifications. Notification delivery is best-effort; a failed send
// does not fail the submission.
func (s *EnquiryService) SubmitEnquiry(ctx context.Context, req EnquiryRequest) (*models.Enquiry, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	enquiry := models.Enquiry{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateEnquiry(ctx, enquiry); err != nil {
		return nil, stperrors.NewDatabaseInsertFailedError(err)
	}

	notification := s.notifier.NotifyEnquiry(ctx, enquiry)
	s.logger.Info("enquiry submitted", map[string]interface{}{
		"enquiryId":          enquiry.ID,
		"category":           enquiry.Category,
		"notificationStatus": notification.Status,
	})

	return &enquiry, nil
}

func (s *EnquiryService) validate(req EnquiryRequest) error {
	doc, err := json.Marshal(req)
	if err != nil {
		return stperrors.NewInvalidRequestError(err.Error())
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return stperrors.NewInvalidRequestError(err.Error())
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return stperrors.NewEnquiryValidationFailedError(strings.Join(details, "; "))
	}

	return nil
}
