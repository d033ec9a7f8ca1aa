package handlers

import (
	"encoding/json"
	"net/http"

	"flowcanvas/application/services"

	"go.uber.org/zap"
)

// FlowHandler handles flow-level HTTP requests
type FlowHandler struct {
	editor *services.EditorService
	logger *zap.Logger
}

// NewFlowHandler creates a new flow handler
func NewFlowHandler(editor *services.EditorService, logger *zap.Logger) *FlowHandler {
	return &FlowHandler{
		editor: editor,
		logger: logger,
	}
}

// FlowResponse represents the full canvas state
type FlowResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Nodes []NodeResponse `json:"nodes"`
	Edges []EdgeResponse `json:"edges"`
}

// OrderResponse represents the linear playback order
type OrderResponse struct {
	Order     []string `json:"order"`
	OrphanIDs []string `json:"orphanIds"`
}

// TestModeRequest toggles preview test mode
type TestModeRequest struct {
	Active bool `json:"active"`
}

// CloseEditWindowRequest closes the open edit window
type CloseEditWindowRequest struct {
	Commit bool `json:"commit"`
}

// GetFlow handles GET /flow
func (h *FlowHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := h.editor.CurrentFlow(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	resp := FlowResponse{
		ID:    string(flow.ID()),
		Name:  flow.Name(),
		Nodes: make([]NodeResponse, 0, flow.NodeCount()),
		Edges: make([]EdgeResponse, 0, flow.EdgeCount()),
	}
	for _, node := range flow.Nodes() {
		resp.Nodes = append(resp.Nodes, nodeResponse(node))
	}
	for _, edge := range flow.Edges() {
		resp.Edges = append(resp.Edges, EdgeResponse{
			ID:       edge.ID.String(),
			SourceID: edge.SourceID.String(),
			TargetID: edge.TargetID.String(),
		})
	}

	respondJSON(w, h.logger, http.StatusOK, resp)
}

// GetOrder handles GET /flow/order
func (h *FlowHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.editor.Order(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, OrderResponse{
		Order:     order.Order,
		OrphanIDs: order.OrphanIDs,
	})
}

// GetMessages handles GET /flow/messages
func (h *FlowHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.editor.CurrentMessages(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// SetTestMode handles PUT /flow/test-mode
func (h *FlowHandler) SetTestMode(w http.ResponseWriter, r *http.Request) {
	var req TestModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	h.editor.SetTestMode(req.Active)

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Test mode updated",
		"active":  req.Active,
	})
}

// CloseEditWindow handles POST /flow/edit-window/close
func (h *FlowHandler) CloseEditWindow(w http.ResponseWriter, r *http.Request) {
	var req CloseEditWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.editor.CloseEditWindow(r.Context(), req.Commit); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Edit window closed",
	})
}
