// internal/store/profiles.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stp-connect/internal/common/logger"
	"stp-connect/internal/common/metrics"
	"stp-connect/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore loads user profiles from PostgreSQL with a Redis
// cache-aside layer. Cache failures degrade silently to the database.
type ProfileStore struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewProfileStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *ProfileStore {
	return &ProfileStore{
		db:       db,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "profile-store"}),
	}
}

func profileCacheKey(userID string) string {
	return "profile:" + userID
}

// GetProfile resolves a user ID to a profile. Returns ErrProfileNotFound
// when no row exists.
func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, profileCacheKey(userID)).Result(); err == nil {
			var profile models.Profile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				metrics.ProfileCacheHits.WithLabelValues("hit").Inc()
				return &profile, nil
			}
		}
		metrics.ProfileCacheHits.WithLabelValues("miss").Inc()
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, role, full_name, email,
		       COALESCE(bio, ''), COALESCE(organization, ''), COALESCE(address, '')
		FROM profiles WHERE id = $1`, userID)

	var profile models.Profile
	err := row.Scan(
		&profile.ID, &profile.Role, &profile.FullName, &profile.Email,
		&profile.Bio, &profile.Organization, &profile.Address,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := s.redis.Set(ctx, profileCacheKey(userID), data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("profile cache write failed", map[string]interface{}{
					"userId": userID,
					"error":  err,
				})
			}
		}
	}

	return &profile, nil
}

// ListProfiles returns every profile except the given user, for peer
// matching.
func (s *ProfileStore) ListProfiles(ctx context.Context, excludeID string) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, full_name, email,
		       COALESCE(bio, ''), COALESCE(organization, ''), COALESCE(address, '')
		FROM profiles WHERE id <> $1`, excludeID)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Role, &p.FullName, &p.Email, &p.Bio, &p.Organization, &p.Address); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

// InvalidateProfile drops the cached copy after a profile update.
func (s *ProfileStore) InvalidateProfile(ctx context.Context, userID string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, profileCacheKey(userID)).Err()
}
