// internal/service/recommendation_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stperrors "stp-connect/internal/common/errors"
	"stp-connect/internal/common/logger"
	"stp-connect/internal/common/observability"
	"stp-connect/internal/models"
	"stp-connect/internal/store"
)

var testObs = observability.New("stp-connect-test")

type fakeProfileReader struct {
	profiles map[string]*models.Profile
	listErr  error
	getErr   error
}

func (f *fakeProfileReader) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileReader) ListProfiles(_ context.Context, excludeID string) ([]models.Profile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Profile
	for _, p := range f.profiles {
		if p.ID != excludeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeOpportunityReader struct {
	active []models.Opportunity
	err    error
}

func (f *fakeOpportunityReader) GetActiveOpportunities(_ context.Context) ([]models.Opportunity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.active, nil
}

func (f *fakeOpportunityReader) GetOpportunity(_ context.Context, id string) (*models.Opportunity, error) {
	for i := range f.active {
		if f.active[i].ID == id {
			return &f.active[i], nil
		}
	}
	return nil, store.ErrOpportunityNotFound
}

func newTestService(t *testing.T, profiles *fakeProfileReader, opps *fakeOpportunityReader) *RecommendationService {
	t.Helper()
	return NewRecommendationService(profiles, opps, testObs, logger.NewTestLogger(t))
}

func TestGetRecommendedOpportunities_RanksByScore(t *testing.T) {
	student := &models.Profile{ID: "u1", Role: models.RoleStudent, Bio: "robotics and automation"}
	now := time.Now()
	old := now.Add(-60 * 24 * time.Hour)

	opps := &fakeOpportunityReader{active: []models.Opportunity{
		{ID: "low", Title: "Office space", Type: models.OpportunityTenders, CreatedAt: old},
		{ID: "high", Title: "Robotics internship", Description: "robotics automation lab",
			Type: models.OpportunityInternships, CreatedAt: old},
	}}

	svc := newTestService(t, &fakeProfileReader{profiles: map[string]*models.Profile{"u1": student}}, opps)

	result, err := svc.GetRecommendedOpportunities(context.Background(), "u1", 5)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "high", result[0].ID)
}

func TestGetRecommendedOpportunities_MissingProfileReturnsEmpty(t *testing.T) {
	svc := newTestService(t,
		&fakeProfileReader{profiles: map[string]*models.Profile{}},
		&fakeOpportunityReader{active: []models.Opportunity{{ID: "o1"}}},
	)

	result, err := svc.GetRecommendedOpportunities(context.Background(), "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGetRecommendedOpportunities_StoreErrorPropagates(t *testing.T) {
	dbErr := errors.New("connection refused")

	svc := newTestService(t,
		&fakeProfileReader{getErr: dbErr},
		&fakeOpportunityReader{},
	)

	_, err := svc.GetRecommendedOpportunities(context.Background(), "u1", 5)
	assert.ErrorIs(t, err, dbErr)

	var stdErr *stperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stperrors.ErrCodeProfileFetchFailed, stdErr.Code)
}

func TestGetRecommendedOpportunities_OpportunityFetchErrorPropagates(t *testing.T) {
	fetchErr := errors.New("query timeout")
	student := &models.Profile{ID: "u1", Role: models.RoleStudent}

	svc := newTestService(t,
		&fakeProfileReader{profiles: map[string]*models.Profile{"u1": student}},
		&fakeOpportunityReader{err: fetchErr},
	)

	_, err := svc.GetRecommendedOpportunities(context.Background(), "u1", 5)
	assert.ErrorIs(t, err, fetchErr)

	var stdErr *stperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stperrors.ErrCodeOpportunityFetch, stdErr.Code)
}

func TestGetRecommendedMatches_KeepsScoresAndReasons(t *testing.T) {
	student := &models.Profile{ID: "u1", Role: models.RoleStudent}
	opps := &fakeOpportunityReader{active: []models.Opportunity{
		{ID: "o1", Title: "Bursary", Type: models.OpportunityBursaries,
			CreatedAt: time.Now().Add(-30 * 24 * time.Hour)},
	}}

	svc := newTestService(t, &fakeProfileReader{profiles: map[string]*models.Profile{"u1": student}}, opps)

	matches, err := svc.GetRecommendedMatches(context.Background(), "u1", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 40, matches[0].Score)
	assert.Contains(t, matches[0].Reasons, "Perfect match for Students")
}

func TestGetCompatiblePeers(t *testing.T) {
	entrepreneur := &models.Profile{ID: "u1", Role: models.RoleEntrepreneur}
	investor := &models.Profile{ID: "u2", Role: models.RoleInvestor, FullName: "Ayo L"}

	svc := newTestService(t,
		&fakeProfileReader{profiles: map[string]*models.Profile{"u1": entrepreneur, "u2": investor}},
		&fakeOpportunityReader{},
	)

	peers, err := svc.GetCompatiblePeers(context.Background(), "u1", 5)
	require.NoError(t, err)
	require.Len(t, peers, 1)
	assert.Equal(t, "u2", peers[0].Profile.ID)
	assert.Equal(t, 40, peers[0].Compatibility.Score)
}

func TestGetCompatiblePeers_MissingProfileReturnsEmpty(t *testing.T) {
	svc := newTestService(t,
		&fakeProfileReader{profiles: map[string]*models.Profile{}},
		&fakeOpportunityReader{},
	)

	peers, err := svc.GetCompatiblePeers(context.Background(), "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, peers)
}

func TestMatchOpportunityPassThrough(t *testing.T) {
	svc := newTestService(t, &fakeProfileReader{}, &fakeOpportunityReader{})

	m := svc.MatchOpportunity(
		models.Profile{Role: models.RoleSMME},
		models.Opportunity{Type: models.OpportunityTenders, CreatedAt: time.Now().Add(-90 * 24 * time.Hour)},
	)
	assert.Equal(t, 40, m.Score)
}

func TestCompatibilityPassThrough(t *testing.T) {
	svc := newTestService(t, &fakeProfileReader{}, &fakeOpportunityReader{})

	c := svc.Compatibility(
		models.Profile{ID: "a", Role: models.RoleStudent},
		models.Profile{ID: "b", Role: models.RoleResearcher},
	)
	assert.Equal(t, 40, c.Score)
	assert.Equal(t, models.CompatibilityMedium, c.Level)
}
