package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"flowcanvas/application/services"
	"flowcanvas/domain/core/entities"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentHandler handles content-record HTTP requests from the editing
// forms and the asset picker
type ContentHandler struct {
	editor *services.EditorService
	logger *zap.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(editor *services.EditorService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		editor: editor,
		logger: logger,
	}
}

// CreateContentRequest represents the request body for creating a record
type CreateContentRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Slug        string          `json:"slug,omitempty" validate:"omitempty,max=200"`
	ToolType    string          `json:"toolType" validate:"required"`
	Content     json.RawMessage `json:"content" validate:"required"`
	AIGenerated bool            `json:"aiGenerated,omitempty"`
}

// UpdateContentRequest represents the request body for editing a record
type UpdateContentRequest struct {
	Name    string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Slug    string          `json:"slug,omitempty" validate:"omitempty,max=200"`
	Content json.RawMessage `json:"content,omitempty"`
}

// ContentResponse represents one content record
type ContentResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Slug        string                   `json:"slug,omitempty"`
	ToolType    string                   `json:"toolType"`
	Content     entities.ContentSnapshot `json:"content"`
	AIGenerated bool                     `json:"aiGenerated"`
	CreatedAt   string                   `json:"createdAt"`
	UpdatedAt   string                   `json:"updatedAt"`
}

// CreateContent handles POST /contents
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	content, err := entities.UnmarshalToolContent(entities.ToolType(req.ToolType), req.Content)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	record, err := h.editor.CreateContent(r.Context(), req.Name, req.Slug, content, req.AIGenerated)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, contentResponse(record))
}

// UpdateContent handles PUT /contents/{contentID}
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Content ID is required")
		return
	}

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var content entities.ToolContent
	if len(req.Content) > 0 {
		existing, err := h.editor.Content(r.Context(), contentID)
		if err != nil {
			respondDomainError(w, h.logger, err)
			return
		}
		content, err = entities.UnmarshalToolContent(existing.ToolType(), req.Content)
		if err != nil {
			respondDomainError(w, h.logger, err)
			return
		}
	}

	record, err := h.editor.UpdateContent(r.Context(), contentID, req.Name, req.Slug, content)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, contentResponse(record))
}

// GetContent handles GET /contents/{contentID}
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Content ID is required")
		return
	}

	record, err := h.editor.Content(r.Context(), contentID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, contentResponse(record))
}

// ListContents handles GET /contents
func (h *ContentHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	records, err := h.editor.Contents(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	responses := make([]ContentResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, contentResponse(record))
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"contents": responses,
		"total":    len(responses),
	})
}

// DeleteContent handles DELETE /contents/{contentID}
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Content ID is required")
		return
	}

	if err := h.editor.DeleteContent(r.Context(), contentID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Content deleted",
	})
}

func contentResponse(record *entities.ContentRecord) ContentResponse {
	return ContentResponse{
		ID:          record.ID(),
		Name:        record.Name(),
		Slug:        record.Slug(),
		ToolType:    string(record.ToolType()),
		Content:     record.Snapshot(),
		AIGenerated: record.AIGenerated(),
		CreatedAt:   record.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   record.UpdatedAt().Format(time.RFC3339),
	}
}
