package handlers

import (
	"encoding/json"
	"net/http"

	pkgerrors "flowcanvas/pkg/errors"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// respondDomainError maps application error types onto HTTP statuses
func respondDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case pkgerrors.IsValidation(err):
		respondError(w, logger, http.StatusBadRequest, err.Error())
	case pkgerrors.IsNotFound(err):
		respondError(w, logger, http.StatusNotFound, err.Error())
	case pkgerrors.IsConflict(err):
		respondError(w, logger, http.StatusConflict, err.Error())
	default:
		logger.Error("Unhandled error in HTTP handler", zap.Error(err))
		respondError(w, logger, http.StatusInternalServerError, "Internal server error")
	}
}
