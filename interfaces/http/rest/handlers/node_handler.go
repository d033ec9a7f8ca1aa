package handlers

import (
	"encoding/json"
	"net/http"

	"flowcanvas/application/services"
	"flowcanvas/domain/core/entities"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	editor *services.EditorService
	logger *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(editor *services.EditorService, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		editor: editor,
		logger: logger,
	}
}

// CreateNodeRequest represents the request body for placing a component
type CreateNodeRequest struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ContentID string  `json:"contentId" validate:"required"`
}

// NodeResponse represents one node on the canvas
type NodeResponse struct {
	ID           string  `json:"id"`
	LegacyID     string  `json:"legacyId"`
	ContentID    string  `json:"contentId"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	ShowDropdown bool    `json:"showDropdown"`
}

// BulkDeleteRequest represents the request body for deleting nodes
type BulkDeleteRequest struct {
	LegacyIDs []string `json:"legacyIds" validate:"required,min=1"`
}

// MoveNodeRequest represents the request body for dragging a node
type MoveNodeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ClickNodeRequest represents one canvas click on a node
type ClickNodeRequest struct {
	Modifier string `json:"modifier,omitempty" validate:"omitempty,oneof=plain shift ctrl"`
}

// HoverNodeRequest represents the pointer entering or leaving a node
type HoverNodeRequest struct {
	Entered bool `json:"entered"`
}

// UpdateHintRequest represents the request body for a display hint change
type UpdateHintRequest struct {
	ShowDropdown bool `json:"showDropdown"`
}

// CreateNode handles POST /nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	node, err := h.editor.AddComponent(r.Context(), req.X, req.Y, req.ContentID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, nodeResponse(node))
}

// BulkDeleteNodes handles POST /nodes/bulk-delete
func (h *NodeHandler) BulkDeleteNodes(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.editor.RemoveNodes(r.Context(), req.LegacyIDs); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Nodes deleted",
	})
}

// MoveNode handles PUT /nodes/{legacyID}/position
func (h *NodeHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	legacyID := chi.URLParam(r, "legacyID")
	if legacyID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Node ID is required")
		return
	}

	var req MoveNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.editor.MoveNode(r.Context(), legacyID, req.X, req.Y); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Node moved",
	})
}

// ClickNode handles POST /nodes/{legacyID}/click
func (h *NodeHandler) ClickNode(w http.ResponseWriter, r *http.Request) {
	legacyID := chi.URLParam(r, "legacyID")
	if legacyID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Node ID is required")
		return
	}

	var req ClickNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	modifier := services.ClickModifier(req.Modifier)
	if modifier == "" {
		modifier = services.ClickPlain
	}

	if err := h.editor.ClickNode(r.Context(), legacyID, modifier); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Selection updated",
	})
}

// HoverNode handles POST /nodes/{legacyID}/hover
func (h *NodeHandler) HoverNode(w http.ResponseWriter, r *http.Request) {
	legacyID := chi.URLParam(r, "legacyID")
	if legacyID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Node ID is required")
		return
	}

	var req HoverNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	h.editor.HoverNode(r.Context(), legacyID, req.Entered)

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Hover applied",
	})
}

// UpdateHint handles PUT /nodes/{legacyID}/hint
func (h *NodeHandler) UpdateHint(w http.ResponseWriter, r *http.Request) {
	legacyID := chi.URLParam(r, "legacyID")
	if legacyID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Node ID is required")
		return
	}

	var req UpdateHintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.editor.UpdateNodeHint(r.Context(), legacyID, req.ShowDropdown); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Hint updated",
	})
}

// OpenEditWindow handles POST /nodes/{legacyID}/edit-window
func (h *NodeHandler) OpenEditWindow(w http.ResponseWriter, r *http.Request) {
	legacyID := chi.URLParam(r, "legacyID")
	if legacyID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Node ID is required")
		return
	}

	if err := h.editor.OpenEditWindow(r.Context(), legacyID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Edit window opened",
	})
}

func nodeResponse(node *entities.Node) NodeResponse {
	return NodeResponse{
		ID:           node.ID().String(),
		LegacyID:     node.LegacyID().String(),
		ContentID:    node.ContentID(),
		X:            node.Position().X(),
		Y:            node.Position().Y(),
		ShowDropdown: node.ShowDropdown(),
	}
}
