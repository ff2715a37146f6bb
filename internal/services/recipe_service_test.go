package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"recipebook/internal/logger"
	"recipebook/internal/models"
	"recipebook/internal/repositories"
	"recipebook/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var validInstructions = strings.Repeat("Whisk the eggs. ", 4)

func TestRecipeService_ListForUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecipeRepository)
	service := services.NewRecipeService(mockRepo, nil, logger.Nop())

	expected := []models.Recipe{
		{ID: "r1", Title: "Omelette", UserID: "user-1"},
		{ID: "r2", Title: "Frittata", UserID: "user-1"},
	}
	mockRepo.On("ListByUser", ctx, "user-1").Return(expected, nil).Once()

	recipes, err := service.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, expected, recipes)
	mockRepo.AssertExpectations(t)
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecipeRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewRecipeService(mockRepo, mockEvents, logger.Nop())

	minutes := 10
	mockRepo.On("Create", ctx, mock.MatchedBy(func(r *models.Recipe) bool {
		return r.UserID == "user-1" && r.Title == "Omelette" && *r.MinutesToComplete == 10
	})).Return(nil).Once()
	mockEvents.On("PublishEvent", services.EventRecipeCreated, mock.Anything).Return(nil).Once()

	recipe, err := service.Create(ctx, "user-1", services.CreateRecipeInput{
		Title:             "Omelette",
		Instructions:      validInstructions,
		MinutesToComplete: &minutes,
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", recipe.UserID)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestRecipeService_CreateInvalid(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecipeRepository)
	service := services.NewRecipeService(mockRepo, nil, logger.Nop())

	tests := []struct {
		name string
		in   services.CreateRecipeInput
	}{
		{"missing title", services.CreateRecipeInput{Instructions: validInstructions}},
		{"short instructions", services.CreateRecipeInput{Title: "Eggs", Instructions: "Boil them."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, "user-1", tt.in)
			assert.ErrorIs(t, err, services.ErrInvalidRecipe)
		})
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecipeService_CreateConstraintViolation(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecipeRepository)
	service := services.NewRecipeService(mockRepo, nil, logger.Nop())

	violation := fmt.Errorf("failed to create recipe: %w", repositories.ErrConstraintViolation)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Recipe")).Return(violation).Once()

	_, err := service.Create(ctx, "ghost", services.CreateRecipeInput{Title: "Eggs", Instructions: validInstructions})
	assert.ErrorIs(t, err, services.ErrInvalidRecipe)
	mockRepo.AssertExpectations(t)
}

func TestRecipeService_CreateStoreFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecipeRepository)
	service := services.NewRecipeService(mockRepo, nil, logger.Nop())

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Recipe")).Return(errors.New("disk full")).Once()

	_, err := service.Create(ctx, "user-1", services.CreateRecipeInput{Title: "Eggs", Instructions: validInstructions})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidRecipe)
}
