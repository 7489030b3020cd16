// Package httpapi provides HTTP handlers and data transfer objects for the fuzzr API.
package httpapi

import (
	"encoding/json"

	"github.com/dsjohal14/fuzzr/internal/scope/db"
	"github.com/dsjohal14/fuzzr/internal/scope/search"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string   `json:"status"`
	Collections int      `json:"collections"`
	Oracles     []string `json:"oracles"`
}

// SearchRequest ranks inline items against a query.
// Options follow the engine contract: surroundMatchesWith is a
// [prefix, suffix] pair and toString is a gjson path into each item.
type SearchRequest struct {
	Items   []json.RawMessage `json:"items"`
	Query   string            `json:"query"`
	Options map[string]any    `json:"options,omitempty"`
	Oracle  string            `json:"oracle,omitempty"` // Default: server config
	Limit   int               `json:"limit,omitempty"`  // 0 returns every match
}

// CollectionSearchRequest ranks a stored collection against a query
type CollectionSearchRequest struct {
	Query   string         `json:"query"`
	Options map[string]any `json:"options,omitempty"`
	Oracle  string         `json:"oracle,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

// SearchResponse represents ranked results
type SearchResponse struct {
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
	Total   int             `json:"total"` // Matches before limit
	Query   string          `json:"query"`
}

// MatchesRequest probes a single text
type MatchesRequest struct {
	Text   string `json:"text"`
	Query  string `json:"query"`
	Oracle string `json:"oracle,omitempty"`
}

// MatchesResponse reports whether the text matched
type MatchesResponse struct {
	Matches bool `json:"matches"`
}

// PutCollectionRequest creates or replaces a collection
type PutCollectionRequest struct {
	Items []json.RawMessage `json:"items"`
}

// CollectionListResponse lists stored collections
type CollectionListResponse struct {
	Collections []db.Summary `json:"collections"`
	Count       int          `json:"count"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
