package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(Options{Secret: "test_session_secret", MaxAge: time.Hour})
}

func TestSession_ZeroValueIsAnonymous(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.True(t, Session{UserID: "u-1"}.Authenticated())
}

func TestManager_EncodeDecode(t *testing.T) {
	m := newTestManager()

	token, err := m.Encode("user-123")
	require.NoError(t, err)

	userID, err := m.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestManager_DecodeRejects(t *testing.T) {
	m := newTestManager()

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Decode("invalid.token.string")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager(Options{Secret: "someone_else", MaxAge: time.Hour})
		token, err := other.Encode("user-123")
		require.NoError(t, err)
		_, err = m.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := newTestManager()
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := expired.Encode("user-123")
		require.NoError(t, err)
		_, err = m.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("test_session_secret"))
		require.NoError(t, err)
		_, err = m.Decode(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"user_id": "user-123",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Decode(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestManager_CookieRoundTrip(t *testing.T) {
	m := newTestManager()
	app := fiber.New()
	app.Post("/in", func(c *fiber.Ctx) error {
		return m.Issue(c, "user-42")
	})
	app.Get("/who", func(c *fiber.Ctx) error {
		return c.SendString(m.Load(c).UserID)
	})
	app.Delete("/out", func(c *fiber.Ctx) error {
		m.Clear(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/in", nil), -1)
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	issued := cookies[0]
	assert.Equal(t, "session", issued.Name)
	assert.True(t, issued.HttpOnly)
	assert.NotEmpty(t, issued.Value)

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: issued.Name, Value: issued.Value})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-42", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/out", nil), -1)
	require.NoError(t, err)
	cleared := resp.Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.True(t, cleared[0].Expires.Before(time.Now()))
}

func TestManager_LoadWithoutCookieIsAnonymous(t *testing.T) {
	m := newTestManager()
	app := fiber.New()
	app.Get("/who", func(c *fiber.Ctx) error {
		if m.Load(c).Authenticated() {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.SendStatus(fiber.StatusUnauthorized)
	})

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tampered"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
