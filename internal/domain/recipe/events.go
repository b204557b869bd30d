package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Domain events raised by the recipe aggregate. The live subscription layer
// listens for these to push refreshed lists to connected clients.

// RecipeCreatedEvent is raised when a new recipe is created
type RecipeCreatedEvent struct {
	RecipeID  uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}

func (e RecipeCreatedEvent) EventName() string {
	return "recipe.created"
}

func (e RecipeCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// RecipeDeletedEvent is raised when a recipe is deleted
type RecipeDeletedEvent struct {
	RecipeID  uuid.UUID
	OwnerID   uuid.UUID
	DeletedAt time.Time
}

func (e RecipeDeletedEvent) EventName() string {
	return "recipe.deleted"
}

func (e RecipeDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}
