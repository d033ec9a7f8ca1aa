package handlers

import (
	"net/http"

	"flowcanvas/application/services"

	"go.uber.org/zap"
)

// SelectionHandler handles selection-related HTTP requests
type SelectionHandler struct {
	editor *services.EditorService
	logger *zap.Logger
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(editor *services.EditorService, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		editor: editor,
		logger: logger,
	}
}

// DeleteRequestResponse describes what a confirmed delete would remove
type DeleteRequestResponse struct {
	Pending bool   `json:"pending"`
	Count   int    `json:"count,omitempty"`
	Name    string `json:"name,omitempty"`
}

// BackgroundClick handles POST /selection/background-click
func (h *SelectionHandler) BackgroundClick(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.ClickBackground(r.Context()); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Selection cleared",
	})
}

// DeleteRequest handles GET /selection/delete-request. It never mutates:
// the caller shows the descriptor to the user and then confirms.
func (h *SelectionHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	confirmation, pending, err := h.editor.RequestDelete(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, DeleteRequestResponse{
		Pending: pending,
		Count:   confirmation.Count,
		Name:    confirmation.Name,
	})
}

// ConfirmDelete handles POST /selection/delete
func (h *SelectionHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.DeleteSelected(r.Context()); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Selected nodes deleted",
	})
}
