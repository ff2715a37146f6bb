package repositories

import (
	"context"
	"fmt"

	"recipebook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// ListByUser returns the user's recipes, oldest first, with User preloaded.
// The result is never nil.
func (r *GORMRecipeRepository) ListByUser(ctx context.Context, userID string) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes for user %s: %w", userID, err)
	}
	return recipes, nil
}

// Create inserts the recipe and reloads its owner inside one transaction.
// Associations are never written through a recipe.
func (r *GORMRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(recipe).Error; err != nil {
			return err
		}
		return tx.First(&recipe.User, "id = ?", recipe.UserID).Error
	})
	if err != nil {
		return wrapWriteError("failed to create recipe", err)
	}
	return nil
}
