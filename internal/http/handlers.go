package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dsjohal14/fuzzr/internal/oracle"
	"github.com/dsjohal14/fuzzr/internal/scope/db"
	"github.com/dsjohal14/fuzzr/internal/scope/jsonitems"
	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/rs/zerolog"
)

// Defaults are applied to requests that leave a setting out.
type Defaults struct {
	Oracle   string
	Options  search.Options
	MaxItems int // 0 means unlimited
}

// Handler contains HTTP handlers for the API
type Handler struct {
	store    db.Storage
	defaults Defaults
	logger   zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(store db.Storage, defaults Defaults, logger zerolog.Logger) *Handler {
	return &Handler{
		store:    store,
		defaults: defaults,
		logger:   logger,
	}
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeSearchError maps engine error kinds to HTTP statuses
func writeSearchError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "SEARCH_ERROR"
	switch search.KindOf(err) {
	case search.KindConfiguration:
		status, code = http.StatusBadRequest, "CONFIGURATION_ERROR"
	case search.KindItemType:
		status, code = http.StatusUnprocessableEntity, "ITEM_TYPE_ERROR"
	case search.KindStringify:
		status, code = http.StatusUnprocessableEntity, "STRINGIFY_ERROR"
	case search.KindOracle:
		status, code = http.StatusInternalServerError, "ORACLE_ERROR"
	}
	writeJSON(w, status, ErrorResponse{
		Error:   "search failed",
		Code:    code,
		Details: err.Error(),
	})
}

// newEngine builds a per-request engine so concurrent requests never share
// an oracle instance
func (h *Handler) newEngine(oracleName string, raw map[string]any) (*search.Engine, error) {
	if oracleName == "" {
		oracleName = h.defaults.Oracle
	}
	o, err := oracle.New(oracleName)
	if err != nil {
		return nil, &search.Error{Kind: search.KindConfiguration, Index: -1, Err: err}
	}

	opts, err := jsonitems.ParseOptions(raw)
	if err != nil {
		return nil, err
	}
	if _, ok := raw[search.KeySurroundMatchesWith]; !ok {
		opts.Surround = h.defaults.Options.Surround
	}
	if _, ok := raw[search.KeyDedup]; !ok {
		opts.Dedup = h.defaults.Options.Dedup
	}

	engine, err := search.NewEngine(o, opts)
	if err != nil {
		return nil, err
	}
	return engine.WithLogger(h.logger), nil
}

// runSearch decodes items and ranks them, applying limit after ranking
func (h *Handler) runSearch(w http.ResponseWriter, items []json.RawMessage, query, oracleName string, raw map[string]any, limit int) {
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must not be negative", "INVALID_LIMIT")
		return
	}
	if h.defaults.MaxItems > 0 && len(items) > h.defaults.MaxItems {
		writeError(w, http.StatusRequestEntityTooLarge, "too many items", "TOO_MANY_ITEMS")
		return
	}

	engine, err := h.newEngine(oracleName, raw)
	if err != nil {
		h.logger.Warn().Err(err).Msg("invalid search options")
		writeSearchError(w, err)
		return
	}

	candidates, err := jsonitems.Decode(items)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_ITEM")
		return
	}

	results, err := engine.Search(search.FromSlice(candidates), query)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", query).Msg("search failed")
		writeSearchError(w, err)
		return
	}

	total := len(results)
	if limit > 0 && limit < total {
		results = results[:limit]
	}

	h.logger.Info().
		Str("query", query).
		Int("items", len(items)).
		Int("results", len(results)).
		Int("limit", limit).
		Msg("search completed")

	writeJSON(w, http.StatusOK, SearchResponse{
		Results: results,
		Count:   len(results),
		Total:   total,
		Query:   query,
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
