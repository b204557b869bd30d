// Package handlers provides HTTP handlers for the REST API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps any error onto the structured error envelope. AppErrors
// carry their own status code; everything else is an internal error.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "An unexpected error occurred")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(appErr), zap.String("path", r.URL.Path))
	} else {
		logger.Info("Request rejected",
			zap.String("code", string(appErr.Code)),
			zap.String("path", r.URL.Path),
		)
	}

	requestID := middleware.GetReqID(r.Context())
	writeJSON(w, logger, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}
