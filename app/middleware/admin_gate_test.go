package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gateSecret = "gate-test-secret-with-at-least-32-bytes"

func newGateApp(t *testing.T) (*fiber.App, *http.Cookie) {
	t.Helper()
	tokens, err := services.NewTokenService(gateSecret, time.Hour)
	require.NoError(t, err)
	sessions := services.NewSessionManager(tokens, services.SessionCookieConfig{Name: "admin_session"})

	token, err := tokens.Encode(services.SessionCredential{
		UserID: uuid.New(),
		Email:  "editor@sahel-estates.com",
		Role:   models.AdminRoleAdmin,
	})
	require.NoError(t, err)

	gate := NewAdminGate(sessions, AdminGateConfig{
		ProtectedPrefix: "/admin/",
		LoginPath:       "/admin/login",
	})

	app := fiber.New()
	app.Use(gate.Handler())
	app.Get("/*", func(c fiber.Ctx) error {
		if _, ok := GetSessionFromContext(c); ok {
			return c.SendString("page with session")
		}
		return c.SendString("page")
	})

	return app, &http.Cookie{Name: "admin_session", Value: token}
}

func TestAdminGate(t *testing.T) {
	app, cookie := newGateApp(t)

	tests := []struct {
		name         string
		path         string
		withCookie   bool
		badCookie    bool
		wantStatus   int
		wantLocation string
	}{
		{name: "public page passes", path: "/projects", wantStatus: fiber.StatusOK},
		{name: "similar prefix is not protected", path: "/administration", wantStatus: fiber.StatusOK},
		{name: "dashboard without session redirects to login", path: "/admin", wantStatus: fiber.StatusFound, wantLocation: "/admin/login?redirect=%2Fadmin"},
		{name: "nested page without session keeps target", path: "/admin/news/edit", wantStatus: fiber.StatusFound, wantLocation: "/admin/login?redirect=%2Fadmin%2Fnews%2Fedit"},
		{name: "invalid cookie counts as no session", path: "/admin/news", badCookie: true, wantStatus: fiber.StatusFound, wantLocation: "/admin/login?redirect=%2Fadmin%2Fnews"},
		{name: "login page without session passes", path: "/admin/login", wantStatus: fiber.StatusOK},
		{name: "login page with trailing slash passes", path: "/admin/login/", wantStatus: fiber.StatusOK},
		{name: "login page with session redirects to dashboard", path: "/admin/login", withCookie: true, wantStatus: fiber.StatusFound, wantLocation: "/admin"},
		{name: "protected page with session passes", path: "/admin/projects", withCookie: true, wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			switch {
			case tt.withCookie:
				req.AddCookie(cookie)
			case tt.badCookie:
				req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "not-a-token"})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
			}
		})
	}
}

func TestAdminGate_StoresSessionForDownstreamHandlers(t *testing.T) {
	app, cookie := newGateApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "page with session", string(body[:n]))
}

func TestNewAdminGate_DashboardDefaultsToPrefix(t *testing.T) {
	gate := NewAdminGate(nil, AdminGateConfig{ProtectedPrefix: "/cms/", LoginPath: "/cms/login"})
	assert.Equal(t, "/cms", gate.cfg.ProtectedPrefix)
	assert.Equal(t, "/cms", gate.cfg.DashboardPath)
	assert.True(t, gate.isProtected("/cms"))
	assert.True(t, gate.isProtected("/cms/x"))
	assert.False(t, gate.isProtected("/cmsx"))
	assert.True(t, gate.isProtected("/CMS/x"))
	assert.False(t, gate.isProtected("/CMSX"))
}

// newMountedGateApp mounts the gate on its prefix like the router does, with fiber's default case-insensitive routing
func newMountedGateApp(t *testing.T) (*fiber.App, *http.Cookie) {
	t.Helper()
	tokens, err := services.NewTokenService(gateSecret, time.Hour)
	require.NoError(t, err)
	sessions := services.NewSessionManager(tokens, services.SessionCookieConfig{})

	token, err := tokens.Encode(services.SessionCredential{
		UserID: uuid.New(),
		Email:  "owner@sahel-estates.com",
		Role:   models.AdminRoleSuperAdmin,
	})
	require.NoError(t, err)

	gate := NewAdminGate(sessions, AdminGateConfig{
		ProtectedPrefix: "/admin",
		LoginPath:       "/admin/login",
	})

	app := fiber.New()
	app.Use("/admin", gate.Handler())
	app.Get("/admin/*", func(c fiber.Ctx) error {
		return c.SendString("admin ui")
	})

	return app, &http.Cookie{Name: sessions.CookieName(), Value: token}
}

func TestAdminGate_MountedOnPrefixIgnoresCase(t *testing.T) {
	app, cookie := newMountedGateApp(t)

	tests := []struct {
		name         string
		path         string
		withCookie   bool
		wantStatus   int
		wantLocation string
	}{
		{name: "dashboard", path: "/admin/dashboard", wantStatus: fiber.StatusFound, wantLocation: "/admin/login?redirect=%2Fadmin%2Fdashboard"},
		{name: "upper case dashboard", path: "/ADMIN/dashboard", wantStatus: fiber.StatusFound, wantLocation: "/admin/login?redirect=%2FADMIN%2Fdashboard"},
		{name: "mixed case root", path: "/Admin", wantStatus: fiber.StatusFound, wantLocation: "/admin/login?redirect=%2FAdmin"},
		{name: "mixed case login page passes", path: "/Admin/Login", wantStatus: fiber.StatusOK},
		{name: "mixed case login page with session", path: "/ADMIN/LOGIN", withCookie: true, wantStatus: fiber.StatusFound, wantLocation: "/admin"},
		{name: "upper case page with session", path: "/ADMIN/news", withCookie: true, wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.withCookie {
				req.AddCookie(cookie)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
			}
		})
	}
}
