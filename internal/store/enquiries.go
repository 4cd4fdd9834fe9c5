// internal/store/enquiries.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"stp-connect/internal/models"
)

// EnquiryStore persists contact enquiries submitted through the apps.
type EnquiryStore struct {
	db *sql.DB
}

func NewEnquiryStore(db *sql.DB) *EnquiryStore {
	return &EnquiryStore{db: db}
}

func (s *EnquiryStore) CreateEnquiry(ctx context.Context, enq models.Enquiry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enquiries (id, name, email, subject, message, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		enq.ID, enq.Name, enq.Email, enq.Subject, enq.Message, enq.Category, enq.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert enquiry: %w", err)
	}
	return nil
}
