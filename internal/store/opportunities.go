// internal/store/opportunities.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"stp-connect/internal/common/logger"
	"stp-connect/internal/models"
)

var ErrOpportunityNotFound = errors.New("opportunity not found")

// OpportunityStore loads opportunity listings from PostgreSQL. Sectors
// are stored as a JSONB array; unreadable values degrade to no sectors.
type OpportunityStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewOpportunityStore(db *sql.DB, log logger.Logger) *OpportunityStore {
	return &OpportunityStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "opportunity-store"}),
	}
}

const opportunityColumns = `
	id, title, description, type, COALESCE(category, ''), COALESCE(sectors, '[]'),
	status, created_at, deadline`

// GetActiveOpportunities returns all opportunities currently open for
// applications, newest first.
func (s *OpportunityStore) GetActiveOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+opportunityColumns+`
		FROM opportunities
		WHERE status = $1
		ORDER BY created_at DESC`, models.OpportunityStatusActive)
	if err != nil {
		return nil, fmt.Errorf("query opportunities: %w", err)
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opps = append(opps, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate opportunities: %w", err)
	}

	return opps, nil
}

// GetOpportunity fetches a single opportunity by ID.
func (s *OpportunityStore) GetOpportunity(ctx context.Context, id string) (*models.Opportunity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT`+opportunityColumns+`
		FROM opportunities WHERE id = $1`, id)

	opp, err := scanOpportunity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}
	return &opp, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOpportunity(row rowScanner) (models.Opportunity, error) {
	var opp models.Opportunity
	var sectors []byte
	var deadline sql.NullTime

	err := row.Scan(
		&opp.ID, &opp.Title, &opp.Description, &opp.Type, &opp.Category,
		&sectors, &opp.Status, &opp.CreatedAt, &deadline,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return opp, sql.ErrNoRows
		}
		return opp, fmt.Errorf("scan opportunity: %w", err)
	}

	if err := json.Unmarshal(sectors, &opp.Sectors); err != nil {
		opp.Sectors = nil
	}
	if deadline.Valid {
		t := deadline.Time
		opp.Deadline = &t
	}

	return opp, nil
}
