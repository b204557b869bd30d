// Package recipe provides the application layer for recipe management,
// implementing the use cases defined in the inbound ports.
package recipe

import (
	"context"
	"sort"

	"github.com/YoungCoderX/Recipe-Rack/internal/domain/recipe"
	"github.com/YoungCoderX/Recipe-Rack/internal/domain/shared"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/inbound"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/outbound"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	userRepo   outbound.UserRepository
	notifier   *notifier
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	userRepo outbound.UserRepository,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
		notifier:   newNotifier(),
		logger:     logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe in the caller's collection
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe",
		zap.String("name", cmd.Name),
		zap.String("owner_id", cmd.OwnerID.String()),
		zap.Bool("ai_generated", cmd.AIGenerated),
	)

	exists, err := s.userRepo.Exists(ctx, cmd.OwnerID)
	if err != nil {
		return nil, errors.NewDatabaseError("check user existence", err)
	}
	if !exists {
		return nil, errors.NewUserNotFoundError(cmd.OwnerID.String())
	}

	entity, err := recipe.NewRecipe(cmd.Name, cmd.Ingredients, cmd.Instructions, cmd.OwnerID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.AIGenerated {
		entity.MarkAIGenerated(cmd.AIPrompt, cmd.AIModel)
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.dispatchEvents(entity.Events(), cmd.OwnerID)

	dto := entityToDTO(entity)
	s.logger.Info("Recipe created successfully",
		zap.String("recipe_id", dto.ID.String()),
		zap.String("name", dto.Name),
	)

	return &dto, nil
}

// DeleteRecipe removes a recipe from the caller's collection. Only the
// owner may delete; the confirmation dialog is a client concern.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == recipe.ErrRecipeNotFound {
			return errors.NewRecipeNotFoundError(recipeID.String())
		}
		return errors.NewDatabaseError("find recipe", err)
	}

	if !entity.OwnedBy(userID) {
		return errors.NewNotRecipeOwnerError(recipeID.String())
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}

	entity.Delete()
	s.dispatchEvents(entity.Events(), userID)

	s.logger.Info("Recipe deleted",
		zap.String("recipe_id", recipeID.String()),
		zap.String("owner_id", userID.String()),
	)

	return nil
}

// GetRecipeByID fetches a single recipe, enforcing ownership
func (s *RecipeService) GetRecipeByID(ctx context.Context, recipeID, userID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == recipe.ErrRecipeNotFound {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}

	if !entity.OwnedBy(userID) {
		// Do not reveal another user's recipe ids
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}

	dto := entityToDTO(entity)
	return &dto, nil
}

// ListRecipes returns the caller's whole collection, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]inbound.RecipeDTO, error) {
	entities, err := s.recipeRepo.FindByOwnerID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	// The repository orders newest-first already; sort defensively in case
	// a backend returns insertion order.
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].CreatedAt().After(entities[j].CreatedAt())
	})

	dtos := make([]inbound.RecipeDTO, len(entities))
	for i, e := range entities {
		dtos[i] = entityToDTO(e)
	}
	return dtos, nil
}

// Subscribe registers a live subscription to the user's collection
func (s *RecipeService) Subscribe(userID uuid.UUID) (<-chan struct{}, func()) {
	return s.notifier.subscribe(userID)
}

// dispatchEvents turns domain events into subscriber notifications
func (s *RecipeService) dispatchEvents(events []shared.DomainEvent, userID uuid.UUID) {
	for _, event := range events {
		s.logger.Debug("Dispatching domain event",
			zap.String("event", event.EventName()),
			zap.String("user_id", userID.String()),
		)
	}
	if len(events) > 0 {
		s.notifier.notify(userID)
	}
}

func entityToDTO(e *recipe.Recipe) inbound.RecipeDTO {
	return inbound.RecipeDTO{
		ID:           e.ID(),
		Name:         e.Name(),
		Ingredients:  e.Ingredients(),
		Instructions: e.Instructions(),
		AIGenerated:  e.IsAIGenerated(),
		CreatedAt:    e.CreatedAt(),
	}
}
