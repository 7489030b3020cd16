package httpapi

import (
	"net/http"

	"github.com/dsjohal14/fuzzr/internal/oracle"
)

// HandleHealth returns API health status and collection count
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("health check failed")
		writeError(w, http.StatusServiceUnavailable, "storage unavailable", "STORE_ERROR")
		return
	}

	h.logger.Debug().Int("collections", count).Msg("health check")

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Collections: count,
		Oracles:     oracle.Names(),
	})
}
