package handlers

import (
	"net/http"

	"flowcanvas/application/services"

	"go.uber.org/zap"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	editor *services.EditorService
	logger *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(editor *services.EditorService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		editor: editor,
		logger: logger,
	}
}

// SearchResponse lists the nodes whose content matched the query
type SearchResponse struct {
	Query     string   `json:"query"`
	LegacyIDs []string `json:"legacyIds"`
}

// Search handles GET /search. An empty query matches nothing.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	legacyIDs, err := h.editor.Search(r.Context(), query)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	if legacyIDs == nil {
		legacyIDs = []string{}
	}

	respondJSON(w, h.logger, http.StatusOK, SearchResponse{
		Query:     query,
		LegacyIDs: legacyIDs,
	})
}
