package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirphl/Sahel-Estates/models"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionApp(t *testing.T, secure bool) (*fiber.App, *SessionManagerImpl, uuid.UUID) {
	t.Helper()
	tokens, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	sessions := NewSessionManager(tokens, SessionCookieConfig{Name: "admin_session", Secure: secure})
	adminID := uuid.New()

	app := fiber.New()
	app.Post("/login", func(c fiber.Ctx) error {
		if _, err := sessions.CreateSession(c, adminID, "owner@sahel-estates.com", models.AdminRoleAdmin); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/whoami", func(c fiber.Ctx) error {
		cred := sessions.GetSession(c)
		if cred == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(cred.UserID.String())
	})
	app.Post("/logout", func(c fiber.Ctx) error {
		sessions.DeleteSession(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, sessions, adminID
}

func sessionCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSessionManager_CreateSessionSetsHardenedCookie(t *testing.T) {
	app, sessions, _ := newTestSessionApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	cookie := sessionCookie(t, resp, sessions.CookieName())
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour/time.Second), cookie.MaxAge)
}

func TestSessionManager_GetSession(t *testing.T) {
	app, sessions, adminID := newTestSessionApp(t, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	cookie := sessionCookie(t, resp, sessions.CookieName())

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := make([]byte, 64)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, adminID.String(), string(body[:n]))
	})

	t.Run("missing cookie", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "garbage"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSessionManager_DeleteSessionExpiresCookie(t *testing.T) {
	app, sessions, _ := newTestSessionApp(t, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)

	cookie := sessionCookie(t, resp, sessions.CookieName())
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}

func TestNewSessionManager_Defaults(t *testing.T) {
	tokens, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	sessions := NewSessionManager(tokens, SessionCookieConfig{})
	assert.NotEmpty(t, sessions.CookieName())
}
