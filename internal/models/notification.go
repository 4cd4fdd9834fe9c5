// internal/models/notification.go
package models

import "time"

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipientId"`
	Type        string    `json:"type"`    // "enquiry_received", "enquiry_ack"
	Channel     string    `json:"channel"` // "email", "sms"
	Status      string    `json:"status"`  // "sent", "failed", "disabled"
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	SentAt      time.Time `json:"sentAt"`
}
