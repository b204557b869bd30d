// Package ai provides the application layer for AI recipe generation.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/config"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/outbound"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service wraps the AI provider client with per-user serialization: at most
// one generation request in flight per user, enforced with a cache lock.
type Service struct {
	client outbound.AIService
	cache  outbound.CacheRepository
	config *config.Config
	logger *zap.Logger
}

// SuggestionDTO is a generated recipe suggestion, not yet saved
type SuggestionDTO struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Model        string   `json:"model"`
	Prompt       string   `json:"prompt"`
}

// NewService creates a new AI application service
func NewService(
	client outbound.AIService,
	cache outbound.CacheRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		client: client,
		cache:  cache,
		config: cfg,
		logger: logger.Named("ai-service"),
	}
}

// GenerateRecipe runs one generation request for the user. Exactly one
// request may be in flight per user; concurrent submissions are rejected.
func (s *Service) GenerateRecipe(ctx context.Context, userID uuid.UUID, prompt string) (*SuggestionDTO, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.NewValidationError("prompt must not be empty")
	}

	lockKey := fmt.Sprintf("ai_generation_lock:%s", userID)
	acquired, err := s.cache.SetNX(ctx, lockKey, []byte("1"), s.config.AI.GenerationLockTTL)
	if err != nil {
		s.logger.Warn("Failed to acquire generation lock, proceeding", zap.Error(err))
	} else if !acquired {
		return nil, errors.NewGenerationBusyError()
	}
	defer func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), lockKey); err != nil {
			s.logger.Warn("Failed to release generation lock", zap.Error(err))
		}
	}()

	s.logger.Info("AI recipe generation request",
		zap.String("user_id", userID.String()),
		zap.Int("prompt_len", len(prompt)),
	)

	response, err := s.client.GenerateRecipe(ctx, prompt)
	if err != nil {
		// No retries: the single failure is surfaced as one message.
		s.logger.Error("AI generation failed", zap.Error(err))
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewExternalServiceError("AI provider", err)
	}

	return &SuggestionDTO{
		Name:         response.Name,
		Ingredients:  response.Ingredients,
		Instructions: response.Instructions,
		Model:        response.Model,
		Prompt:       prompt,
	}, nil
}
