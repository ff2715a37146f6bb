// Package session keeps the authenticated user id in a signed cookie.
//
// The cookie value is an HS256 token holding the user id and an expiry, so
// the server stores no session state. A missing, tampered or expired cookie
// yields an anonymous Session.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

const userIDClaim = "user_id"

var ErrInvalidToken = errors.New("invalid session token")

// Session is the request-scoped view of who is logged in.
// The zero value is an anonymous session.
type Session struct {
	UserID string
}

// Authenticated reports whether the session carries a user id.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// Options configures a Manager.
type Options struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Manager issues, reads and clears session cookies.
type Manager struct {
	secret     []byte
	cookieName string
	maxAge     time.Duration
	secure     bool
	now        func() time.Time
}

// NewManager creates a Manager. Empty CookieName defaults to "session".
func NewManager(opts Options) *Manager {
	name := opts.CookieName
	if name == "" {
		name = "session"
	}
	return &Manager{
		secret:     []byte(opts.Secret),
		cookieName: name,
		maxAge:     opts.MaxAge,
		secure:     opts.Secure,
		now:        time.Now,
	}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Encode signs a token for userID.
func (m *Manager) Encode(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIDClaim: userID,
		"iat":       now.Unix(),
		"exp":       now.Add(m.maxAge).Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns the user id it carries.
func (m *Manager) Decode(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// Load reads the session cookie from the request.
func (m *Manager) Load(c *fiber.Ctx) Session {
	raw := c.Cookies(m.cookieName)
	if raw == "" {
		return Session{}
	}
	userID, err := m.Decode(raw)
	if err != nil {
		return Session{}
	}
	return Session{UserID: userID}
}

// Issue binds the response to userID by setting the session cookie.
func (m *Manager) Issue(c *fiber.Ctx, userID string) error {
	value, err := m.Encode(userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  m.now().Add(m.maxAge),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie on the client.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
