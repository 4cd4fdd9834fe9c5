// internal/service/recommendation.go
package service

import (
	"context"
	"errors"
	"time"

	stperrors "stp-connect/internal/common/errors"
	"stp-connect/internal/common/logger"
	"stp-connect/internal/common/metrics"
	"stp-connect/internal/common/observability"
	"stp-connect/internal/matching"
	"stp-connect/internal/models"
	"stp-connect/internal/store"
)

// ProfileReader is the profile lookup surface the recommendation
// service needs from the store layer.
type ProfileReader interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	ListProfiles(ctx context.Context, excludeID string) ([]models.Profile, error)
}

// OpportunityReader is the opportunity lookup surface the
// recommendation service needs from the store layer.
type OpportunityReader interface {
	GetActiveOpportunities(ctx context.Context) ([]models.Opportunity, error)
	GetOpportunity(ctx context.Context, id string) (*models.Opportunity, error)
}

// RecommendationService ranks opportunities and peer profiles for a user.
type RecommendationService struct {
	profiles      ProfileReader
	opportunities OpportunityReader
	obs           *observability.Observability
	logger        logger.Logger
}

func NewRecommendationService(profiles ProfileReader, opportunities OpportunityReader,
	obs *observability.Observability, log logger.Logger) *RecommendationService {
	return &RecommendationService{
		profiles:      profiles,
		opportunities: opportunities,
		obs:           obs,
		logger:        log.WithFields(map[string]interface{}{"component": "recommendations"}),
	}
}

// GetRecommendedOpportunities returns the top active opportunities for a
// user, best first. A user without a profile gets an empty list rather
// than an error; store failures propagate as standardized errors that
// name the store that failed.
func (s *RecommendationService) GetRecommendedOpportunities(ctx context.Context, userID string, limit int) ([]models.Opportunity, error) {
	start := time.Now()
	defer func() {
		s.obs.RecordScoringDuration(ctx, time.Since(start), "opportunities")
	}()
	s.obs.RecordScoring(ctx, "opportunities")

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			s.logger.Info("no profile for user, returning empty recommendations", map[string]interface{}{
				"userId": userID,
			})
			return []models.Opportunity{}, nil
		}
		return nil, stperrors.NewProfileFetchFailedError(err)
	}

	opportunities, err := s.opportunities.GetActiveOpportunities(ctx)
	if err != nil {
		return nil, stperrors.NewOpportunityFetchFailedError(err)
	}

	matches := matching.RankOpportunities(*profile, opportunities, limit, time.Now())

	result := make([]models.Opportunity, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.Opportunity)
	}

	metrics.RecommendationsServed.WithLabelValues("opportunities").Inc()
	return result, nil
}

// GetRecommendedMatches is GetRecommendedOpportunities with scores and
// reasons attached, for clients that render match explanations.
func (s *RecommendationService) GetRecommendedMatches(ctx context.Context, userID string, limit int) ([]models.OpportunityMatch, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return []models.OpportunityMatch{}, nil
		}
		return nil, stperrors.NewProfileFetchFailedError(err)
	}

	opportunities, err := s.opportunities.GetActiveOpportunities(ctx)
	if err != nil {
		return nil, stperrors.NewOpportunityFetchFailedError(err)
	}

	matches := matching.RankOpportunities(*profile, opportunities, limit, time.Now())
	metrics.RecommendationsServed.WithLabelValues("opportunities").Inc()
	return matches, nil
}

// GetCompatiblePeers ranks all other profiles by networking
// compatibility with the given user.
func (s *RecommendationService) GetCompatiblePeers(ctx context.Context, userID string, limit int) ([]models.PeerMatch, error) {
	start := time.Now()
	defer func() {
		s.obs.RecordScoringDuration(ctx, time.Since(start), "peers")
	}()
	s.obs.RecordScoring(ctx, "peers")

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			s.logger.Info("no profile for user, returning empty peer matches", map[string]interface{}{
				"userId": userID,
			})
			return []models.PeerMatch{}, nil
		}
		return nil, stperrors.NewProfileFetchFailedError(err)
	}

	candidates, err := s.profiles.ListProfiles(ctx, userID)
	if err != nil {
		return nil, stperrors.NewProfileFetchFailedError(err)
	}

	peers := matching.RankPeers(*profile, candidates, limit)
	metrics.RecommendationsServed.WithLabelValues("peers").Inc()
	return peers, nil
}

// MatchOpportunity scores a single profile/opportunity pair.
func (s *RecommendationService) MatchOpportunity(profile models.Profile, opportunity models.Opportunity) models.OpportunityMatch {
	return matching.ScoreOpportunity(profile, opportunity, time.Now())
}

// Compatibility scores a single pair of profiles.
func (s *RecommendationService) Compatibility(a, b models.Profile) models.CompatibilityScore {
	return matching.ScoreCompatibility(a, b)
}
