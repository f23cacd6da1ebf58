package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirphl/Sahel-Estates/app/handlers"
	"github.com/amirphl/Sahel-Estates/app/middleware"
	"github.com/amirphl/Sahel-Estates/app/services"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/config"
	"github.com/amirphl/Sahel-Estates/logging"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerSecret = "router-test-secret-with-at-least-32-bytes"

// knownAdmin resolves exactly one account
type knownAdmin struct {
	admin *models.Admin
}

func (k *knownAdmin) CurrentAdmin(ctx context.Context, session *services.SessionCredential) (*models.Admin, error) {
	if session == nil || session.UserID != k.admin.UUID {
		return nil, businessflow.NewBusinessError("UNAUTHORIZED", "Unauthorized", businessflow.ErrAccountVanished)
	}
	return k.admin, nil
}

func testConfig() *config.ProductionConfig {
	return &config.ProductionConfig{
		Server: config.ServerConfig{
			BodyLimit:    1 << 20,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  5 * time.Second,
		},
		Security: config.SecurityConfig{
			AllowedOrigins:   []string{"https://sahel-estates.test"},
			AllowedMethods:   []string{"GET", "POST"},
			AllowedHeaders:   []string{"Content-Type"},
			AuthRateLimit:    100,
			GlobalRateLimit:  100,
			ContactRateLimit: 100,
			RateLimitWindow:  time.Minute,
		},
		Session: config.SessionConfig{
			ProtectedPath: "/admin",
			LoginPath:     "/admin/login",
		},
		Deployment: config.DeploymentConfig{Environment: "test"},
	}
}

func newTestRouter(t *testing.T) (*fiber.App, *http.Cookie) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()

	tokens, err := services.NewTokenService(routerSecret, time.Hour)
	require.NoError(t, err)
	sessions := services.NewSessionManager(tokens, services.SessionCookieConfig{})

	admin := &models.Admin{ID: 1, UUID: uuid.New(), Email: "owner@sahel-estates.com", Name: "Owner", Role: models.AdminRoleSuperAdmin}
	token, err := tokens.Encode(services.SessionCredential{UserID: admin.UUID, Email: admin.Email, Role: admin.Role})
	require.NoError(t, err)

	gate := middleware.NewAdminGate(sessions, middleware.AdminGateConfig{
		ProtectedPrefix: cfg.Session.ProtectedPath,
		LoginPath:       cfg.Session.LoginPath,
	})
	auth := middleware.NewAuthMiddleware(sessions, &knownAdmin{admin: admin}, logger)

	h := Handlers{
		Auth:          handlers.NewAdminAuthHandler(nil, sessions, logger),
		Admins:        handlers.NewAdminManagementHandler(nil, logger),
		HeroSlides:    handlers.NewContentHandler[models.HeroSlide](models.SectionHeroSlides, nil, logger),
		Projects:      handlers.NewContentHandler[models.Project](models.SectionProjects, nil, logger),
		News:          handlers.NewNewsHandler(nil, logger),
		Services:      handlers.NewContentHandler[models.Service](models.SectionServices, nil, logger),
		Benefits:      handlers.NewContentHandler[models.Benefit](models.SectionBenefits, nil, logger),
		Facts:         handlers.NewContentHandler[models.Fact](models.SectionFacts, nil, logger),
		ShowcaseVideo: handlers.NewSettingsHandler[models.ShowcaseVideo](models.SectionShowcaseVideo, nil, logger),
		ContactInfo:   handlers.NewSettingsHandler[models.ContactInfo](models.SectionContactInfo, nil, logger),
		Contact:       handlers.NewContactHandler(nil, logger),
		Uploads:       handlers.NewUploadHandler(nil, logger),
		Site:          handlers.NewSiteHandler(nil, logger),
	}

	r := NewFiberRouter(cfg, &logging.Logs{Logger: logger}, h, gate, auth, nil)
	r.SetupRoutes()

	return r.GetApp(), &http.Cookie{Name: sessions.CookieName(), Value: token}
}

func TestFiberRouter_AdminPages(t *testing.T) {
	app, cookie := newTestRouter(t)

	tests := []struct {
		name         string
		path         string
		withCookie   bool
		wantStatus   int
		wantLocation string
	}{
		{name: "page without session redirects", path: "/admin/dashboard", wantStatus: fiber.StatusFound, wantLocation: "/admin/login?redirect=%2Fadmin%2Fdashboard"},
		{name: "root without session redirects", path: "/admin", wantStatus: fiber.StatusFound, wantLocation: "/admin/login?redirect=%2Fadmin"},
		{name: "login page passes", path: "/admin/login", wantStatus: fiber.StatusOK},
		{name: "login page with session goes to dashboard", path: "/admin/login", withCookie: true, wantStatus: fiber.StatusFound, wantLocation: "/admin"},
		{name: "page with session is served", path: "/admin/dashboard", withCookie: true, wantStatus: fiber.StatusOK},
		{name: "upper case path is not the admin ui", path: "/ADMIN/dashboard", wantStatus: fiber.StatusNotFound},
		{name: "mixed case root is not the admin ui", path: "/Admin", wantStatus: fiber.StatusNotFound},
		{name: "similar prefix is not gated", path: "/administration", wantStatus: fiber.StatusNotFound},
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
			assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
		})
	}
}

func TestFiberRouter_AdminAPIRequiresSession(t *testing.T) {
	app, cookie := newTestRouter(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/admin/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/auth/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stale := &http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/admins", nil)
	req.AddCookie(stale)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
