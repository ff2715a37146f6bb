package handlers

import (
	"errors"

	"recipebook/internal/logger"
	"recipebook/internal/middleware"
	"recipebook/internal/services"
	"recipebook/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for signup, login and the session.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Manager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes. LoadSession must
// already be installed on router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/signup", h.HandleSignup)
	router.Post("/login", h.HandleLogin)
	router.Get("/check_session", middleware.RequireSession(), middleware.WithSession(h.HandleCheckSession))
	router.Delete("/logout", middleware.RequireSession(), middleware.WithSession(h.HandleLogout))
}

// HandleSignup creates a user and logs them in.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, h.log, err)
	}

	user, err := h.authService.Signup(c.UserContext(), services.SignupInput{
		Username: req.Username,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
		Password: req.Password,
	})
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(FieldErrorsResponse{Errors: verr.Fields})
		case errors.Is(err, services.ErrUsernameTaken):
			h.log.Info().Str("username", req.Username).Msg("signup rejected: username taken")
			return errorJSON(c, fiber.StatusUnprocessableEntity, msgUsernameTaken)
		default:
			return internalError(c, h.log, err, "error registering user")
		}
	}

	if err := h.sessions.Issue(c, user.ID); err != nil {
		return internalError(c, h.log, err, "error issuing session")
	}
	return c.Status(fiber.StatusCreated).JSON(NewUserResponse(user))
}

// HandleCheckSession returns the logged-in user.
func (h *AuthHandler) HandleCheckSession(c *fiber.Ctx, sess session.Session) error {
	user, err := h.authService.CurrentUser(c.UserContext(), sess.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.sessions.Clear(c)
			return middleware.Unauthorized(c)
		}
		return internalError(c, h.log, err, "error loading session user")
	}
	return c.Status(fiber.StatusOK).JSON(NewUserResponse(user))
}

// HandleLogin checks credentials and starts a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, h.log, err)
	}

	user, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.log.Info().Str("username", req.Username).Msg("login rejected")
			return errorJSON(c, fiber.StatusUnauthorized, msgInvalidCredentials)
		}
		return internalError(c, h.log, err, "error during login")
	}

	if err := h.sessions.Issue(c, user.ID); err != nil {
		return internalError(c, h.log, err, "error issuing session")
	}
	return c.Status(fiber.StatusOK).JSON(NewUserResponse(user))
}

// HandleLogout ends the session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx, _ session.Session) error {
	h.sessions.Clear(c)
	return c.SendStatus(fiber.StatusNoContent)
}
