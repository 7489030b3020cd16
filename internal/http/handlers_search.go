package httpapi

import (
	"encoding/json"
	"net/http"
)

// HandleSearch ranks the items in the request body against the query
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid search request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	h.runSearch(w, req.Items, req.Query, req.Oracle, req.Options, req.Limit)
}

// HandleMatches reports whether a single text matches the query
func (h *Handler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	var req MatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid matches request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	engine, err := h.newEngine(req.Oracle, nil)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	ok, err := engine.Matches(req.Text, req.Query)
	if err != nil {
		h.logger.Error().Err(err).Msg("matches probe failed")
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MatchesResponse{Matches: ok})
}
