package handlers

import (
	"recipebook/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// Client-facing error messages.
const (
	msgInvalidBody        = "Invalid request body"
	msgInternal           = "Internal server error"
	msgUsernameTaken      = "Username already exists"
	msgInvalidCredentials = "Invalid username or password"
)

// recipeErrors is returned for every rejected recipe, whichever rule failed.
var recipeErrors = map[string][]string{
	"title":        {"Title is required"},
	"instructions": {"Instructions must be at least 50 characters"},
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

func badBody(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Debug().Err(err).Str("path", c.Path()).Msg("error parsing request body")
	return errorJSON(c, fiber.StatusBadRequest, msgInvalidBody)
}

func internalError(c *fiber.Ctx, log *logger.Logger, err error, msg string) error {
	log.Error().Err(err).Str("path", c.Path()).Msg(msg)
	return errorJSON(c, fiber.StatusInternalServerError, msgInternal)
}
