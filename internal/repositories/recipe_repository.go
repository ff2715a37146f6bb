package repositories

import (
	"context"

	"recipebook/internal/models"
)

// RecipeRepository defines the interface for recipe data access.
type RecipeRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
}
