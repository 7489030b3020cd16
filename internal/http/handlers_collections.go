package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dsjohal14/fuzzr/internal/scope/db"
	"github.com/go-chi/chi/v5"
)

// HandleListCollections lists stored collections
func (h *Handler) HandleListCollections(w http.ResponseWriter, r *http.Request) {
	sums, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list collections")
		writeError(w, http.StatusInternalServerError, "failed to list collections", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, CollectionListResponse{
		Collections: sums,
		Count:       len(sums),
	})
}

// HandlePutCollection creates or replaces a collection
func (h *Handler) HandlePutCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := db.ValidateName(name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_NAME")
		return
	}

	var req PutCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid collection request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if h.defaults.MaxItems > 0 && len(req.Items) > h.defaults.MaxItems {
		writeError(w, http.StatusRequestEntityTooLarge, "too many items", "TOO_MANY_ITEMS")
		return
	}

	c, err := h.store.Put(r.Context(), db.Collection{Name: name, Items: req.Items})
	if err != nil {
		h.logger.Error().Err(err).Str("collection", name).Msg("failed to store collection")
		writeError(w, http.StatusInternalServerError, "failed to store collection", "STORE_ERROR")
		return
	}
	if err := h.store.Flush(); err != nil {
		h.logger.Error().Err(err).Str("collection", name).Msg("failed to flush store")
		writeError(w, http.StatusInternalServerError, "failed to persist collection", "STORE_ERROR")
		return
	}

	h.logger.Info().
		Str("collection", name).
		Int("items", len(c.Items)).
		Msg("collection stored")

	writeJSON(w, http.StatusOK, c.Summary())
}

// HandleGetCollection returns a collection with its items
func (h *Handler) HandleGetCollection(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCollection(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleDeleteCollection removes a collection
func (h *Handler) HandleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.store.Delete(r.Context(), name); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "collection not found", "NOT_FOUND")
			return
		}
		h.logger.Error().Err(err).Str("collection", name).Msg("failed to delete collection")
		writeError(w, http.StatusInternalServerError, "failed to delete collection", "STORE_ERROR")
		return
	}

	if err := h.store.Flush(); err != nil {
		h.logger.Error().Err(err).Str("collection", name).Msg("failed to flush store")
		writeError(w, http.StatusInternalServerError, "failed to persist deletion", "STORE_ERROR")
		return
	}

	h.logger.Info().Str("collection", name).Msg("collection deleted")
	w.WriteHeader(http.StatusNoContent)
}

// HandleSearchCollection ranks a stored collection against the query
func (h *Handler) HandleSearchCollection(w http.ResponseWriter, r *http.Request) {
	var req CollectionSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid collection search request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	c, ok := h.loadCollection(w, r)
	if !ok {
		return
	}

	h.runSearch(w, c.Items, req.Query, req.Oracle, req.Options, req.Limit)
}

func (h *Handler) loadCollection(w http.ResponseWriter, r *http.Request) (db.Collection, bool) {
	name := chi.URLParam(r, "name")
	c, err := h.store.Get(r.Context(), name)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "collection not found", "NOT_FOUND")
			return db.Collection{}, false
		}
		h.logger.Error().Err(err).Str("collection", name).Msg("failed to load collection")
		writeError(w, http.StatusInternalServerError, "failed to load collection", "STORE_ERROR")
		return db.Collection{}, false
	}
	return c, true
}
