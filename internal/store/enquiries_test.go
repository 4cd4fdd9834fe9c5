// internal/store/enquiries_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stp-connect/internal/models"
)

func TestCreateEnquiry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	enquiry := models.Enquiry{
		ID:        "e1",
		Name:      "Lerato N",
		Email:     "lerato@example.com",
		Subject:   "Tenancy",
		Message:   "Looking for lab space",
		Category:  "general",
		CreatedAt: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO enquiries").
		WithArgs(enquiry.ID, enquiry.Name, enquiry.Email, enquiry.Subject,
			enquiry.Message, enquiry.Category, enquiry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewEnquiryStore(db)
	require.NoError(t, s.CreateEnquiry(context.Background(), enquiry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEnquiry_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO enquiries").
		WillReturnError(errors.New("connection reset"))

	s := NewEnquiryStore(db)
	err = s.CreateEnquiry(context.Background(), models.Enquiry{ID: "e2"})
	assert.Error(t, err)
}
