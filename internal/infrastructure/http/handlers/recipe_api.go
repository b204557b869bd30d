package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/http/middleware"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/monitoring"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/inbound"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeAPIHandlers handles recipe API requests
type RecipeAPIHandlers struct {
	recipeService inbound.RecipeService
	metrics       *monitoring.Metrics
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(
	recipeService inbound.RecipeService,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		metrics:       metrics,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CreateRecipeRequest represents a recipe creation request. Ingredients
// and instructions are free text; only the name is required.
type CreateRecipeRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`

	// Present when the recipe is an accepted AI suggestion
	AIGenerated bool   `json:"ai_generated,omitempty"`
	AIPrompt    string `json:"ai_prompt,omitempty"`
	AIModel     string `json:"ai_model,omitempty"`
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeAPIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	recipes, err := h.recipeService.ListRecipes(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipes,
	})
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeAPIHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	var req CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	dto, err := h.recipeService.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		OwnerID:      userID,
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		AIGenerated:  req.AIGenerated,
		AIPrompt:     req.AIPrompt,
		AIModel:      req.AIModel,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.RecipeCreated()

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    dto,
		Message: "Recipe created successfully",
	})
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid recipe ID"))
		return
	}

	dto, err := h.recipeService.GetRecipeByID(r.Context(), recipeID, userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    dto,
	})
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}. The client shows its
// confirmation dialog before calling; the server only enforces ownership.
func (h *RecipeAPIHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid recipe ID"))
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), recipeID, userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.RecipeDeleted()

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Recipe deleted successfully",
	})
}

// HealthCheck handles GET /health
func (h *RecipeAPIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		},
	})
}
