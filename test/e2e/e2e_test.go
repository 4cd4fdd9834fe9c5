// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stp-connect/internal/api"
	"stp-connect/internal/common/config"
	"stp-connect/internal/common/database"
	"stp-connect/internal/common/logger"
	"stp-connect/internal/common/observability"
	"stp-connect/internal/models"
	"stp-connect/internal/service"
	"stp-connect/internal/store"
)

// Runs against live local Postgres/Redis/Elasticsearch. Enable with:
//
//	E2E_TESTS=1 go test ./test/e2e/
func TestFullE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests; set E2E_TESTS=1 to run against live services")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)

	// Force localhost for E2E runs
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}

	log := logger.NewTestLogger(t)

	// --- Connectivity ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "PostgreSQL connection failed")
	defer pg.Close()
	require.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "Redis client creation failed")
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx), "Redis ping failed")

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err, "Elasticsearch client creation failed")
	require.NoError(t, es.Ping(), "Elasticsearch ping failed")

	t.Log("All backing services reachable")

	// --- Schema + test data ---
	createTables(t, ctx, pg)
	studentID := seedTestData(t, ctx, pg)

	// --- Full service wiring ---
	obs := observability.New("e2e")
	defer obs.Shutdown()

	profiles := store.NewProfileStore(pg.DB, rdb.Client, time.Minute, log)
	opportunities := store.NewOpportunityStore(pg.DB, log)
	enquiryStore := store.NewEnquiryStore(pg.DB)
	search := store.NewOpportunitySearch(es.Client, cfg.Database.Elasticsearch.Index, log)

	recommendations := service.NewRecommendationService(profiles, opportunities, obs, log)
	enquiries, err := service.NewEnquiryService(enquiryStore, noopNotifier{}, log)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewServer(recommendations, enquiries, search, 5, log).Handler())
	defer srv.Close()

	// --- Recommendations over HTTP ---
	res, err := http.Get(fmt.Sprintf("%s/api/v1/users/%s/recommendations", srv.URL, studentID))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var recBody struct {
		Recommendations []models.OpportunityMatch `json:"recommendations"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&recBody))
	require.NotEmpty(t, recBody.Recommendations)
	assert.GreaterOrEqual(t, recBody.Recommendations[0].Score, 40)
	t.Logf("Got %d recommendations, top score %d",
		len(recBody.Recommendations), recBody.Recommendations[0].Score)

	// Second call should be served from the Redis profile cache.
	res2, err := http.Get(fmt.Sprintf("%s/api/v1/users/%s/recommendations", srv.URL, studentID))
	require.NoError(t, err)
	res2.Body.Close()
	assert.Equal(t, http.StatusOK, res2.StatusCode)

	// --- Enquiry submission over HTTP ---
	enquiry := map[string]string{
		"name":    "E2E Tester",
		"email":   "e2e@example.com",
		"subject": "Automated check",
		"message": "Submitted by the end-to-end suite",
	}
	payload, _ := json.Marshal(enquiry)
	res3, err := http.Post(srv.URL+"/api/v1/enquiries", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer res3.Body.Close()
	assert.Equal(t, http.StatusCreated, res3.StatusCode)

	t.Log("Full E2E flow passed")
}

type noopNotifier struct{}

func (noopNotifier) NotifyEnquiry(_ context.Context, _ models.Enquiry) models.Notification {
	return models.Notification{Status: service.NotificationStatusDisabled}
}

func createTables(t *testing.T, ctx context.Context, pg *database.PostgresClient) {
	t.Helper()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			role TEXT NOT NULL,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			bio TEXT,
			organization TEXT,
			address TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS opportunities (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			category TEXT,
			sectors JSONB,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deadline TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS enquiries (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			category TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		_, err := pg.DB.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
}

func seedTestData(t *testing.T, ctx context.Context, pg *database.PostgresClient) string {
	t.Helper()

	studentID := uuid.New().String()
	_, err := pg.DB.ExecContext(ctx,
		`INSERT INTO profiles (id, role, full_name, email, bio) VALUES ($1, 'Student', 'E2E Student', 'student@example.com', 'robotics and automation')`,
		studentID)
	require.NoError(t, err)

	_, err = pg.DB.ExecContext(ctx,
		`INSERT INTO opportunities (id, title, description, type, status, created_at)
		 VALUES ($1, 'Robotics internship', 'Automation lab placement', 'Internships', 'active', now())
		 ON CONFLICT (id) DO NOTHING`,
		uuid.New().String())
	require.NoError(t, err)

	return studentID
}
