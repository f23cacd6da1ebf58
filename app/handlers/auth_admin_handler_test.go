package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/middleware"
	"github.com/amirphl/Sahel-Estates/app/services"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authHandlerSecret = "auth-handler-secret-with-at-least-32-bytes"

// stubAuthFlow accepts one email and password pair
type stubAuthFlow struct {
	admin    *models.Admin
	password string
	logins   int
	logouts  []*services.SessionCredential
}

func (s *stubAuthFlow) Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *businessflow.ClientMetadata) (*models.Admin, error) {
	s.logins++
	if req.Email != s.admin.Email || req.Password != s.password {
		return nil, businessflow.NewBusinessError("INVALID_CREDENTIALS", "Invalid email or password", businessflow.ErrInvalidCredentials)
	}
	return s.admin, nil
}

func (s *stubAuthFlow) Logout(ctx context.Context, session *services.SessionCredential, metadata *businessflow.ClientMetadata) {
	s.logouts = append(s.logouts, session)
}

func (s *stubAuthFlow) CurrentAdmin(ctx context.Context, session *services.SessionCredential) (*models.Admin, error) {
	if session == nil || session.UserID != s.admin.UUID {
		return nil, businessflow.NewBusinessError("UNAUTHORIZED", "Unauthorized", businessflow.ErrAccountVanished)
	}
	return s.admin, nil
}

type authHandlerFixture struct {
	app    *fiber.App
	flow   *stubAuthFlow
	tokens *services.TokenServiceImpl
}

func newAuthHandlerFixture(t *testing.T, cookie services.SessionCookieConfig) *authHandlerFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := services.NewTokenService(authHandlerSecret, 24*time.Hour)
	require.NoError(t, err)
	sessions := services.NewSessionManager(tokens, cookie)

	flow := &stubAuthFlow{
		admin: &models.Admin{
			ID:    4,
			UUID:  uuid.New(),
			Email: "owner@sahel-estates.com",
			Name:  "Owner",
			Role:  models.AdminRoleSuperAdmin,
		},
		password: "S3curePassw0rd",
	}

	h := NewAdminAuthHandler(flow, sessions, logger)
	auth := middleware.NewAuthMiddleware(sessions, flow, logger)

	app := fiber.New()
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)
	app.Get("/me", auth.RequireAdmin(), h.Me)

	return &authHandlerFixture{app: app, flow: flow, tokens: tokens}
}

func (f *authHandlerFixture) login(t *testing.T, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAdminAuthHandler_LoginSetsSessionCookie(t *testing.T) {
	f := newAuthHandlerFixture(t, services.SessionCookieConfig{})

	resp := f.login(t, `{"email":"owner@sahel-estates.com","password":"S3curePassw0rd"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := findCookie(resp, "admin-session")
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 86400, cookie.MaxAge)

	cred, err := f.tokens.Decode(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, f.flow.admin.UUID, cred.UserID)
	assert.Equal(t, models.AdminRoleSuperAdmin, cred.Role)

	var body struct {
		Success bool                   `json:"success"`
		Data    dto.AdminLoginResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "owner@sahel-estates.com", body.Data.Admin.Email)
	assert.Equal(t, f.flow.admin.UUID.String(), body.Data.Admin.UUID)
	assert.InDelta(t, 86400, body.Data.Session.ExpiresIn, 5)
}

func TestAdminAuthHandler_LoginSecureCookie(t *testing.T) {
	f := newAuthHandlerFixture(t, services.SessionCookieConfig{Secure: true})

	resp := f.login(t, `{"email":"owner@sahel-estates.com","password":"S3curePassw0rd"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := findCookie(resp, "admin-session")
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestAdminAuthHandler_LoginFailures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantLogins int
	}{
		{name: "wrong password", body: `{"email":"owner@sahel-estates.com","password":"nope"}`, wantStatus: fiber.StatusUnauthorized, wantCode: "INVALID_CREDENTIALS", wantLogins: 1},
		{name: "unknown email", body: `{"email":"nobody@sahel-estates.com","password":"S3curePassw0rd"}`, wantStatus: fiber.StatusUnauthorized, wantCode: "INVALID_CREDENTIALS", wantLogins: 1},
		{name: "missing password", body: `{"email":"owner@sahel-estates.com"}`, wantStatus: fiber.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "malformed body", body: `{"email":`, wantStatus: fiber.StatusBadRequest, wantCode: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthHandlerFixture(t, services.SessionCookieConfig{})

			resp := f.login(t, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Nil(t, findCookie(resp, "admin-session"))
			assert.Equal(t, tt.wantCode, decodeResponse(t, resp).Code)
			assert.Equal(t, tt.wantLogins, f.flow.logins)
		})
	}
}

func TestAdminAuthHandler_LogoutExpiresCookie(t *testing.T) {
	f := newAuthHandlerFixture(t, services.SessionCookieConfig{})
	session := findCookie(f.login(t, `{"email":"owner@sahel-estates.com","password":"S3curePassw0rd"}`), "admin-session")
	require.NotNil(t, session)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.Name, Value: session.Value})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cleared := findCookie(resp, "admin-session")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))
	assert.True(t, cleared.HttpOnly)

	require.Len(t, f.flow.logouts, 1)
	require.NotNil(t, f.flow.logouts[0])
	assert.Equal(t, f.flow.admin.UUID, f.flow.logouts[0].UserID)
}

func TestAdminAuthHandler_LogoutWithoutSession(t *testing.T) {
	f := newAuthHandlerFixture(t, services.SessionCookieConfig{})

	resp, err := f.app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, findCookie(resp, "admin-session"))
	require.Len(t, f.flow.logouts, 1)
	assert.Nil(t, f.flow.logouts[0])
}

func TestAdminAuthHandler_Me(t *testing.T) {
	f := newAuthHandlerFixture(t, services.SessionCookieConfig{})

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	session := findCookie(f.login(t, `{"email":"owner@sahel-estates.com","password":"S3curePassw0rd"}`), "admin-session")
	require.NotNil(t, session)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: session.Name, Value: session.Value})
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.AdminLoginResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "super_admin", body.Data.Admin.Role)
}
