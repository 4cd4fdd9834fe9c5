// internal/api/handlers.go
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	stperrors "stp-connect/internal/common/errors"
	"stp-connect/internal/common/validation"
	"stp-connect/internal/models"
	"stp-connect/internal/service"
	"stp-connect/internal/store"
)

var matchSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"profile":     {Type: "object"},
		"opportunity": {Type: "object"},
	},
	Required: []string{"profile", "opportunity"},
}

var compatibilitySchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"user1": {Type: "object"},
		"user2": {Type: "object"},
	},
	Required: []string{"user1", "user2"},
}

// decodeValidated parses the request body, checks it against the schema
// and then unmarshals it into the typed request struct.
func decodeValidated(r *http.Request, schema validation.JSONSchema, out interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return stperrors.NewInvalidRequestError(err.Error())
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return stperrors.NewInvalidRequestError(err.Error())
	}

	if result := validation.ValidateInput(raw, schema); !result.Valid {
		return stperrors.NewInvalidRequestError(result.ErrorSummary())
	}

	if err := json.Unmarshal(body, out); err != nil {
		return stperrors.NewInvalidRequestError(err.Error())
	}
	return nil
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	matches, err := s.recommender.GetRecommendedMatches(r.Context(), userID, s.limitFrom(r))
	if err != nil {
		s.errorHandler.WriteError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":          userID,
		"recommendations": matches,
	})
}

func (s *Server) handlePeers(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	peers, err := s.recommender.GetCompatiblePeers(r.Context(), userID, s.limitFrom(r))
	if err != nil {
		s.errorHandler.WriteError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId": userID,
		"peers":  peers,
	})
}

type matchRequest struct {
	Profile     models.Profile     `json:"profile"`
	Opportunity models.Opportunity `json:"opportunity"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeValidated(r, matchSchema, &req); err != nil {
		s.errorHandler.WriteError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.recommender.MatchOpportunity(req.Profile, req.Opportunity))
}

type compatibilityRequest struct {
	User1 models.Profile `json:"user1"`
	User2 models.Profile `json:"user2"`
}

func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	var req compatibilityRequest
	if err := decodeValidated(r, compatibilitySchema, &req); err != nil {
		s.errorHandler.WriteError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.recommender.Compatibility(req.User1, req.User2))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := store.SearchParams{
		Query: q.Get("q"),
		Type:  q.Get("type"),
	}
	if from, err := strconv.Atoi(q.Get("from")); err == nil && from > 0 {
		params.From = from
	}
	if size, err := strconv.Atoi(q.Get("size")); err == nil && size > 0 {
		params.Size = size
	}

	result, err := s.search.Search(r.Context(), params)
	if err != nil {
		s.errorHandler.WriteError(w, r, stperrors.NewSearchQueryFailedError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"opportunities": result.Opportunities,
		"total":         result.TotalHits,
		"took":          result.Took,
	})
}

func (s *Server) handleEnquiry(w http.ResponseWriter, r *http.Request) {
	var req service.EnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.WriteError(w, r, stperrors.NewInvalidRequestError(err.Error()))
		return
	}

	enquiry, err := s.enquiries.SubmitEnquiry(r.Context(), req)
	if err != nil {
		s.errorHandler.WriteError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        enquiry.ID,
		"category":  enquiry.Category,
		"createdAt": enquiry.CreatedAt,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog)
}
