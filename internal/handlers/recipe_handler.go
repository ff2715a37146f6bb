package handlers

import (
	"errors"

	"recipebook/internal/logger"
	"recipebook/internal/middleware"
	"recipebook/internal/services"
	"recipebook/internal/session"

	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for the caller's recipes.
type RecipeHandler struct {
	service *services.RecipeService
	log     *logger.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService, log *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the recipe routes. Both require a session.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/recipes", middleware.RequireSession(), middleware.WithSession(h.HandleListRecipes))
	router.Post("/recipes", middleware.RequireSession(), middleware.WithSession(h.HandleCreateRecipe))
}

// HandleListRecipes returns the session user's recipes.
func (h *RecipeHandler) HandleListRecipes(c *fiber.Ctx, sess session.Session) error {
	recipes, err := h.service.ListForUser(c.UserContext(), sess.UserID)
	if err != nil {
		return internalError(c, h.log, err, "error listing recipes")
	}
	return c.Status(fiber.StatusOK).JSON(NewRecipeListResponse(recipes))
}

// HandleCreateRecipe creates a recipe owned by the session user.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx, sess session.Session) error {
	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, h.log, err)
	}

	recipe, err := h.service.Create(c.UserContext(), sess.UserID, services.CreateRecipeInput{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidRecipe) {
			h.log.Info().Err(err).Str("user_id", sess.UserID).Msg("recipe rejected")
			return c.Status(fiber.StatusUnprocessableEntity).JSON(FieldErrorsResponse{Errors: recipeErrors})
		}
		return internalError(c, h.log, err, "error creating recipe")
	}

	return c.Status(fiber.StatusCreated).JSON(NewRecipeResponse(recipe))
}
