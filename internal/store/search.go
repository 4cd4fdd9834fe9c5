// internal/store/search.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stp-connect/internal/common/logger"
	"stp-connect/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// SearchParams describes an opportunity directory search.
type SearchParams struct {
	Query string
	Type  string
	From  int
	Size  int
}

// SearchResult carries one page of matches plus hit metadata.
type SearchResult struct {
	Opportunities []models.Opportunity
	TotalHits     int64
	Took          int64
}

// OpportunitySearch runs full-text queries against the opportunity index.
type OpportunitySearch struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewOpportunitySearch(client *elasticsearch.Client, index string, log logger.Logger) *OpportunitySearch {
	return &OpportunitySearch{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "opportunity-search"}),
	}
}

// Search executes a bool query combining full-text matching on
// title/description/category with an optional type filter.
func (s *OpportunitySearch) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	req, err := s.buildRequest(params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	opps := make([]models.Opportunity, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		opps = append(opps, hit.Source)
	}

	return &SearchResult{
		Opportunities: opps,
		TotalHits:     r.Hits.Total.Value,
		Took:          time.Since(start).Milliseconds(),
	}, nil
}

func (s *OpportunitySearch) buildRequest(params SearchParams) (*esapi.SearchRequest, error) {
	if s.index == "" {
		return nil, fmt.Errorf("index name is required")
	}

	from := params.From
	size := params.Size
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	var mustClauses []interface{}
	var filterClauses []interface{}

	if params.Query != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  params.Query,
				"fields": []string{"title^2", "description", "category"},
			},
		})
	}
	if params.Type != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"type": params.Type},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}
	if len(boolQuery) == 0 {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort":  []interface{}{map[string]interface{}{"created_at": "desc"}},
	})

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &size,
	}

	return &req, nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Opportunity `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
