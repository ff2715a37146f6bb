package services

import (
	"context"
	"errors"
	"fmt"

	"recipebook/internal/logger"
	"recipebook/internal/models"
	"recipebook/internal/repositories"
)

// CreateRecipeInput carries the fields accepted by Create.
type CreateRecipeInput struct {
	Title             string
	Instructions      string
	MinutesToComplete *int
}

// RecipeService handles business logic related to recipes.
type RecipeService struct {
	repo   repositories.RecipeRepository
	events EventPublisher
	log    *logger.Logger
}

// NewRecipeService creates a new RecipeService. events may be nil.
func NewRecipeService(repo repositories.RecipeRepository, events EventPublisher, log *logger.Logger) *RecipeService {
	return &RecipeService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// ListForUser returns every recipe owned by userID.
func (s *RecipeService) ListForUser(ctx context.Context, userID string) ([]models.Recipe, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create validates and persists a recipe owned by userID. Both model
// validation failures and store constraint violations yield ErrInvalidRecipe.
func (s *RecipeService) Create(ctx context.Context, userID string, in CreateRecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:             in.Title,
		Instructions:      in.Instructions,
		MinutesToComplete: in.MinutesToComplete,
		UserID:            userID,
	}

	if err := recipe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		if errors.Is(err, repositories.ErrConstraintViolation) || errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
		}
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.log.Info().Str("recipe_id", recipe.ID).Str("user_id", userID).Msg("recipe created")
	publish(s.events, s.log, EventRecipeCreated, map[string]interface{}{
		"recipe_id": recipe.ID,
		"user_id":   userID,
		"title":     recipe.Title,
	})
	return recipe, nil
}
