package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/YoungCoderX/Recipe-Rack/internal/application/ai"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/http/middleware"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/monitoring"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"go.uber.org/zap"
)

// AIAPIHandlers handles AI generation API requests
type AIAPIHandlers struct {
	aiService *ai.Service
	metrics   *monitoring.Metrics
	logger    *zap.Logger
}

// NewAIAPIHandlers creates a new AI API handlers instance
func NewAIAPIHandlers(aiService *ai.Service, metrics *monitoring.Metrics, logger *zap.Logger) *AIAPIHandlers {
	return &AIAPIHandlers{
		aiService: aiService,
		metrics:   metrics,
		logger:    logger,
	}
}

// GenerateRecipeRequest represents an AI recipe generation request
type GenerateRecipeRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateRecipe handles POST /api/v1/ai/generate-recipe. The suggestion
// is returned to the caller for review; saving it is a normal recipe
// create with the ai_generated flag set.
func (h *AIAPIHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	var req GenerateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	suggestion, err := h.aiService.GenerateRecipe(r.Context(), userID, req.Prompt)
	if err != nil {
		h.metrics.AIGeneration("error")
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.AIGeneration("success")

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    suggestion,
	})
}
