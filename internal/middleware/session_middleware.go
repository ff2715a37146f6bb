package middleware

import (
	"recipebook/internal/session"

	"github.com/gofiber/fiber/v2"
)

const sessionLocalsKey = "session"

// NotLoggedInMessage is returned to clients without a valid session.
const NotLoggedInMessage = "Not logged in"

// SessionHandler is a Fiber handler that receives the request's session
// explicitly instead of reading ambient state.
type SessionHandler func(c *fiber.Ctx, sess session.Session) error

// LoadSession reads the session cookie once per request and stores the
// result in the Fiber context. Invalid cookies produce an anonymous session.
func LoadSession(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(sessionLocalsKey, manager.Load(c))
		return c.Next()
	}
}

// CurrentSession returns the session stored by LoadSession, or an anonymous
// session when none was stored.
func CurrentSession(c *fiber.Ctx) session.Session {
	sess, _ := c.Locals(sessionLocalsKey).(session.Session)
	return sess
}

// RequireSession rejects anonymous requests with 401.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentSession(c).Authenticated() {
			return Unauthorized(c)
		}
		return c.Next()
	}
}

// WithSession adapts a SessionHandler to a fiber.Handler.
func WithSession(h SessionHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h(c, CurrentSession(c))
	}
}

// Unauthorized writes the standard 401 payload.
func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": NotLoggedInMessage,
	})
}
