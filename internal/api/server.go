// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	stperrors "stp-connect/internal/common/errors"
	"stp-connect/internal/common/logger"
	"stp-connect/internal/common/metrics"
	"stp-connect/internal/models"
	"stp-connect/internal/service"
	"stp-connect/internal/store"
	"stp-connect/pkg/catalog"
)

// Recommender is the recommendation surface exposed over HTTP.
type Recommender interface {
	GetRecommendedMatches(ctx context.Context, userID string, limit int) ([]models.OpportunityMatch, error)
	GetCompatiblePeers(ctx context.Context, userID string, limit int) ([]models.PeerMatch, error)
	MatchOpportunity(profile models.Profile, opportunity models.Opportunity) models.OpportunityMatch
	Compatibility(a, b models.Profile) models.CompatibilityScore
}

// EnquirySubmitter accepts contact enquiries.
type EnquirySubmitter interface {
	SubmitEnquiry(ctx context.Context, req service.EnquiryRequest) (*models.Enquiry, error)
}

// Searcher runs opportunity directory searches.
type Searcher interface {
	Search(ctx context.Context, params store.SearchParams) (*store.SearchResult, error)
}

// ReadinessCheck reports whether a backing dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// Server wires the HTTP routes to the service layer.
type Server struct {
	recommender  Recommender
	enquiries    EnquirySubmitter
	search       Searcher
	errorHandler *stperrors.ErrorHandler
	logger       logger.Logger
	defaultLimit int
	readiness    map[string]ReadinessCheck
	catalog      *catalog.Catalog
}

func NewServer(recommender Recommender, enquiries EnquirySubmitter, search Searcher,
	defaultLimit int, log logger.Logger) *Server {
	return &Server{
		recommender:  recommender,
		enquiries:    enquiries,
		search:       search,
		errorHandler: stperrors.NewErrorHandler(log),
		logger:       log.WithFields(map[string]interface{}{"component": "api"}),
		defaultLimit: defaultLimit,
		readiness:    map[string]ReadinessCheck{},
		catalog:      catalog.Default(),
	}
}

// SetCatalog replaces the built-in catalog, normally with one loaded
// from a deployed catalog file.
func (s *Server) SetCatalog(cat *catalog.Catalog) {
	if cat != nil {
		s.catalog = cat
	}
}

// AddReadinessCheck registers a dependency probe for /ready.
func (s *Server) AddReadinessCheck(name string, check ReadinessCheck) {
	s.readiness[name] = check
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/users/{id}/recommendations", s.instrument("recommendations", s.handleRecommendations))
	mux.HandleFunc("GET /api/v1/users/{id}/peers", s.instrument("peers", s.handlePeers))
	mux.HandleFunc("POST /api/v1/match", s.instrument("match", s.handleMatch))
	mux.HandleFunc("POST /api/v1/compatibility", s.instrument("compatibility", s.handleCompatibility))
	mux.HandleFunc("GET /api/v1/opportunities", s.instrument("opportunities", s.handleSearch))
	mux.HandleFunc("POST /api/v1/enquiries", s.instrument("enquiries", s.handleEnquiry))
	mux.HandleFunc("GET /api/v1/catalog", s.instrument("catalog", s.handleCatalog))

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// instrument records request counts and latency per route.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("write response failed", map[string]interface{}{"error": err})
	}
}

// limitFrom parses ?limit=, falling back to the configured default.
func (s *Server) limitFrom(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return s.defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return s.defaultLimit
	}
	return limit
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failures := map[string]string{}
	for name, check := range s.readiness {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not ready",
			"failures": failures,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}
