package handlers

import (
	"encoding/json"
	"net/http"

	"flowcanvas/application/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	editor *services.EditorService
	logger *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(editor *services.EditorService, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{
		editor: editor,
		logger: logger,
	}
}

// CreateEdgeRequest represents the request body for a user-drawn connection
type CreateEdgeRequest struct {
	SourceID string `json:"sourceId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
}

// EdgeResponse represents one connection between nodes
type EdgeResponse struct {
	ID       string `json:"id"`
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// CreateEdge handles POST /edges. Connections between unknown endpoints are
// a silent no-op, matching the canvas behavior of dropping an invalid draw.
func (h *EdgeHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req CreateEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	edge, err := h.editor.Connect(r.Context(), req.SourceID, req.TargetID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	if edge == nil {
		respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
			"message": "Connection ignored",
		})
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, EdgeResponse{
		ID:       edge.ID.String(),
		SourceID: edge.SourceID.String(),
		TargetID: edge.TargetID.String(),
	})
}

// DeleteEdge handles DELETE /edges/{edgeID}
func (h *EdgeHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	edgeID := chi.URLParam(r, "edgeID")
	if edgeID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Edge ID is required")
		return
	}

	if err := h.editor.Disconnect(r.Context(), edgeID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Edge deleted",
	})
}
