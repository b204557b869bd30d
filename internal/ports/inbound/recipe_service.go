// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters). These are the use cases the HTTP layer drives.
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeService defines the use cases for recipe management
type RecipeService interface {
	// Commands
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error

	// Queries
	GetRecipeByID(ctx context.Context, recipeID, userID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]RecipeDTO, error)

	// Subscribe registers interest in a user's collection. The returned
	// channel receives a signal after every create or delete in that
	// collection; cancel releases the subscription.
	Subscribe(userID uuid.UUID) (updates <-chan struct{}, cancel func())
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	OwnerID      uuid.UUID
	Name         string
	Ingredients  string // newline-delimited free text
	Instructions string

	// Set when the recipe is an accepted AI suggestion
	AIGenerated bool
	AIPrompt    string
	AIModel     string
}

// RecipeDTO represents a recipe in API responses
type RecipeDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	AIGenerated  bool      `json:"ai_generated"`
	CreatedAt    time.Time `json:"created_at"`
}
