// Package recipe contains the core domain logic for recipe management.
// A recipe is a deliberately loose record: name, free-form ingredient
// text (newline-delimited) and free-form instruction text. Recipes are
// created and deleted, never updated in place.
package recipe

import (
	"strings"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/domain/shared"
	"github.com/google/uuid"
)

// Recipe is the aggregate root for a stored recipe.
type Recipe struct {
	id      uuid.UUID
	ownerID uuid.UUID

	name         string
	ingredients  string // newline-delimited free text
	instructions string

	// Set when the recipe was accepted from an AI suggestion
	aiGenerated bool
	aiPrompt    string
	aiModel     string

	createdAt time.Time

	events []shared.DomainEvent
}

// NewRecipe creates a new Recipe owned by ownerID. The creation timestamp
// is assigned here on the server; the store never overwrites it.
func NewRecipe(name, ingredients, instructions string, ownerID uuid.UUID) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, ErrNoOwner
	}

	r := &Recipe{
		id:           uuid.New(),
		ownerID:      ownerID,
		name:         strings.TrimSpace(name),
		ingredients:  ingredients,
		instructions: instructions,
		createdAt:    time.Now(),
	}

	r.addEvent(RecipeCreatedEvent{
		RecipeID:  r.id,
		OwnerID:   ownerID,
		Name:      r.name,
		CreatedAt: r.createdAt,
	})

	return r, nil
}

// MarkAIGenerated records that the recipe originated from an accepted AI
// suggestion, along with the prompt and model that produced it.
func (r *Recipe) MarkAIGenerated(prompt, model string) {
	r.aiGenerated = true
	r.aiPrompt = prompt
	r.aiModel = model
}

// Delete raises the deletion event. The caller must already have verified
// ownership via OwnedBy.
func (r *Recipe) Delete() {
	r.addEvent(RecipeDeletedEvent{
		RecipeID:  r.id,
		OwnerID:   r.ownerID,
		DeletedAt: time.Now(),
	})
}

// OwnedBy reports whether userID owns this recipe.
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.ownerID == userID
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// OwnerID returns the identifier of the owning user
func (r *Recipe) OwnerID() uuid.UUID {
	return r.ownerID
}

// Name returns the recipe's name
func (r *Recipe) Name() string {
	return r.name
}

// Ingredients returns the newline-delimited ingredient text
func (r *Recipe) Ingredients() string {
	return r.ingredients
}

// IngredientLines returns the ingredient text split into its non-empty lines.
func (r *Recipe) IngredientLines() []string {
	var lines []string
	for _, line := range strings.Split(r.ingredients, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// Instructions returns the free-form instruction text
func (r *Recipe) Instructions() string {
	return r.instructions
}

// IsAIGenerated returns whether the recipe was accepted from an AI suggestion
func (r *Recipe) IsAIGenerated() bool {
	return r.aiGenerated
}

// AIPrompt returns the prompt used for AI generation, if any
func (r *Recipe) AIPrompt() string {
	return r.aiPrompt
}

// AIModel returns the model that produced the AI suggestion, if any
func (r *Recipe) AIModel() string {
	return r.aiModel
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// addEvent adds a domain event to be dispatched
func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// Events returns and clears pending domain events
func (r *Recipe) Events() []shared.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// Reconstruct rebuilds a Recipe from persisted state. It bypasses creation
// validation and raises no events.
func Reconstruct(
	id, ownerID uuid.UUID,
	name, ingredients, instructions string,
	aiGenerated bool,
	aiPrompt, aiModel string,
	createdAt time.Time,
) *Recipe {
	return &Recipe{
		id:           id,
		ownerID:      ownerID,
		name:         name,
		ingredients:  ingredients,
		instructions: instructions,
		aiGenerated:  aiGenerated,
		aiPrompt:     aiPrompt,
		aiModel:      aiModel,
		createdAt:    createdAt,
	}
}

// validateName validates the recipe name. Ingredients and instructions are
// untyped free text and carry no validation at all.
func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameEmpty
	}
	if len(trimmed) > 200 {
		return ErrNameTooLong
	}
	return nil
}
