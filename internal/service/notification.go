// internal/service/notification.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stp-connect/internal/common/config"
	"stp-connect/internal/common/logger"
	"stp-connect/internal/common/metrics"
	"stp-connect/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
)

const (
	NotificationTypeEnquiryReceived = "enquiry-received"
	NotificationTypeEnquiryAck      = "enquiry-acknowledgement"

	NotificationStatusSent     = "sent"
	NotificationStatusFailed   = "failed"
	NotificationStatusDisabled = "disabled"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// NotificationService delivers enquiry notifications over SES email and
// SNS SMS, depending on which channels are enabled in configuration.
type NotificationService struct {
	config      config.NotificationConfig
	logger      logger.Logger
	sesClient   SESService
	snsClient   SNSService
	templateMap map[string]map[string]string
}

func NewNotificationService(cfg config.NotificationConfig, log logger.Logger) (*NotificationService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &NotificationService{
		config:      cfg,
		logger:      log.WithFields(map[string]interface{}{"component": "notifications"}),
		sesClient:   ses.NewFromConfig(awsCfg),
		snsClient:   sns.NewFromConfig(awsCfg),
		templateMap: loadTemplates(),
	}, nil
}

// NotifyEnquiry sends the admin alert for a new enquiry and, when a sender
// email is present, an acknowledgement back to the sender. Delivery
// failures are reported in the notification status rather than as errors.
func (s *NotificationService) NotifyEnquiry(ctx context.Context, enquiry models.Enquiry) models.Notification {
	data := map[string]string{
		"enquiryId": enquiry.ID,
		"name":      enquiry.Name,
		"email":     enquiry.Email,
		"subject":   enquiry.Subject,
		"message":   enquiry.Message,
		"category":  enquiry.Category,
	}

	notification := models.Notification{
		ID:          uuid.New().String(),
		RecipientID: enquiry.Email,
		Type:        NotificationTypeEnquiryReceived,
		Channel:     "email",
		Status:      NotificationStatusDisabled,
		SentAt:      time.Now().UTC(),
	}

	if !s.config.Email.Enabled {
		metrics.NotificationsSent.WithLabelValues("email", NotificationStatusDisabled).Inc()
		return notification
	}

	adminTmpl := s.templateMap[NotificationTypeEnquiryReceived]
	notification.Subject = renderTemplate(adminTmpl["subject"], data)
	notification.Body = renderTemplate(adminTmpl["body"], data)

	if err := s.sendEmail(ctx, s.config.Email.AdminTo, notification.Subject, notification.Body); err != nil {
		s.logger.Error("admin enquiry email failed", map[string]interface{}{
			"error":     err,
			"enquiryId": enquiry.ID,
		})
		notification.Status = NotificationStatusFailed
		metrics.NotificationsSent.WithLabelValues("email", NotificationStatusFailed).Inc()
		return notification
	}
	notification.Status = NotificationStatusSent
	metrics.NotificationsSent.WithLabelValues("email", NotificationStatusSent).Inc()

	if enquiry.Email != "" {
		ackTmpl := s.templateMap[NotificationTypeEnquiryAck]
		subject := renderTemplate(ackTmpl["subject"], data)
		body := renderTemplate(ackTmpl["body"], data)
		if err := s.sendEmail(ctx, enquiry.Email, subject, body); err != nil {
			// Acknowledgement is best-effort; the admin alert already landed.
			s.logger.Warn("acknowledgement email failed", map[string]interface{}{
				"error":     err,
				"enquiryId": enquiry.ID,
			})
			metrics.NotificationsSent.WithLabelValues("email", NotificationStatusFailed).Inc()
		} else {
			metrics.NotificationsSent.WithLabelValues("email", NotificationStatusSent).Inc()
		}
	}

	return notification
}

// NotifySMS publishes a short message to a phone number when the SMS
// channel is enabled.
func (s *NotificationService) NotifySMS(ctx context.Context, phone, message string) models.Notification {
	notification := models.Notification{
		ID:          uuid.New().String(),
		RecipientID: phone,
		Type:        NotificationTypeEnquiryReceived,
		Channel:     "sms",
		Status:      NotificationStatusDisabled,
		Body:        message,
		SentAt:      time.Now().UTC(),
	}

	if !s.config.SMS.Enabled || phone == "" {
		metrics.NotificationsSent.WithLabelValues("sms", NotificationStatusDisabled).Inc()
		return notification
	}

	if err := s.sendSMS(ctx, phone, message); err != nil {
		s.logger.Error("SMS send failed", map[string]interface{}{
			"error": err,
			"phone": phone,
		})
		notification.Status = NotificationStatusFailed
		metrics.NotificationsSent.WithLabelValues("sms", NotificationStatusFailed).Inc()
		return notification
	}

	notification.Status = NotificationStatusSent
	metrics.NotificationsSent.WithLabelValues("sms", NotificationStatusSent).Inc()
	return notification
}

func (s *NotificationService) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.config.Email.FromEmail),
	})
	return err
}

func (s *NotificationService) sendSMS(ctx context.Context, to, message string) error {
	_, err := s.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

// Simplified template rendering with placeholder removal for missing values
func renderTemplate(tmpl string, data map[string]string) string {
	result := tmpl

	for k, v := range data {
		result = strings.ReplaceAll(result, "{{"+k+"}}", v)
	}

	// Remove any remaining placeholders (missing values)
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}

func loadTemplates() map[string]map[string]string {
	return map[string]map[string]string{
		NotificationTypeEnquiryReceived: {
			"subject": "New Enquiry: {{subject}}",
			"body":    "A new {{category}} enquiry was received from {{name}} ({{email}}).\n\n{{message}}",
		},
		NotificationTypeEnquiryAck: {
			"subject": "We received your enquiry",
			"body":    "Hello {{name}}, thank you for contacting the ELIDZ Science and Technology Park. Your enquiry \"{{subject}}\" has been logged and our team will respond shortly.",
		},
	}
}
