// Package outbound defines the interfaces for outbound ports
// (secondary/driven adapters): persistence, caching and the AI provider.
package outbound

import (
	"context"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/domain/recipe"
	"github.com/YoungCoderX/Recipe-Rack/internal/domain/user"
	"github.com/google/uuid"
)

// RecipeRepository defines the interface for recipe persistence. Recipes
// are created and deleted, never updated, matching the domain lifecycle.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// FindByOwnerID returns the user's whole collection, newest first.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*recipe.Recipe, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error
}

// CacheRepository defines the interface for caching operations. It backs
// session records, token revocation and the per-user generation lock.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// SetNX sets the key only if it does not exist and reports whether it
	// was set. Used as a lightweight lock.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

// AIService defines the interface for AI recipe generation
type AIService interface {
	GenerateRecipe(ctx context.Context, prompt string) (*AIRecipeResponse, error)
}

// AIRecipeResponse is the parsed result of one generation call. The wire
// schema requested from the provider is {recipeName, ingredients[],
// instructions}.
type AIRecipeResponse struct {
	Name         string
	Ingredients  []string
	Instructions string
	Model        string
}
