package server

import (
	"context"
	"errors"
	"time"

	"recipebook/internal/database"
	"recipebook/internal/handlers"
	"recipebook/internal/logger"
	"recipebook/internal/middleware"
	"recipebook/internal/repositories"
	"recipebook/internal/services"
	"recipebook/internal/session"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP app is built from.
type Deps struct {
	DB       *gorm.DB
	Sessions *session.Manager
	Events   services.EventPublisher // nil disables event publishing
	Log      *logger.Logger

	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// NewApp wires repositories, services and handlers into a Fiber app.
func NewApp(deps Deps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	userRepo := repositories.NewGORMUserRepository(deps.DB)
	recipeRepo := repositories.NewGORMRecipeRepository(deps.DB)

	authService := services.NewAuthService(userRepo, deps.Events, log)
	recipeService := services.NewRecipeService(recipeRepo, deps.Events, log)

	authHandler := handlers.NewAuthHandler(authService, deps.Sessions, log)
	recipeHandler := handlers.NewRecipeHandler(recipeService, log)

	app := fiber.New(fiber.Config{
		AppName:               "recipebook",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(middleware.LoadSession(deps.Sessions))

	app.Get("/health", healthHandler(deps.DB))

	authHandler.RegisterRoutes(app)
	recipeHandler.RegisterRoutes(app)

	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := database.Ping(ctx, db); err != nil {
			dbStatus = "down"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	}
}

// errorHandler renders errors that escape handlers, such as unknown routes
// and recovered panics, in the same JSON shape as handler errors.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		return c.Status(code).JSON(handlers.ErrorResponse{Error: msg})
	}
}
