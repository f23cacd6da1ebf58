// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/handlers"
	"github.com/amirphl/Sahel-Estates/app/middleware"
	"github.com/amirphl/Sahel-Estates/config"
	_ "github.com/amirphl/Sahel-Estates/docs"
	"github.com/amirphl/Sahel-Estates/logging"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth          *handlers.AdminAuthHandler
	Admins        *handlers.AdminManagementHandler
	HeroSlides    *handlers.ContentHandler[models.HeroSlide]
	Projects      *handlers.ContentHandler[models.Project]
	News          *handlers.NewsHandler
	Services      *handlers.ContentHandler[models.Service]
	Benefits      *handlers.ContentHandler[models.Benefit]
	Facts         *handlers.ContentHandler[models.Fact]
	ShowcaseVideo *handlers.SettingsHandler[models.ShowcaseVideo]
	ContactInfo   *handlers.SettingsHandler[models.ContactInfo]
	Contact       *handlers.ContactHandler
	Uploads       *handlers.UploadHandler
	Site          *handlers.SiteHandler
}

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      *config.ProductionConfig
	logs     *logging.Logs
	handlers Handlers
	gate     *middleware.AdminGate
	auth     *middleware.AuthMiddleware
	checks   map[string]HealthCheck
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	logs *logging.Logs,
	h Handlers,
	gate *middleware.AdminGate,
	auth *middleware.AuthMiddleware,
	checks map[string]HealthCheck,
) *FiberRouter {
	r := &FiberRouter{
		cfg:      cfg,
		logs:     logs,
		handlers: h,
		gate:     gate,
		auth:     auth,
		checks:   checks,
	}

	r.app = fiber.New(fiber.Config{
		AppName:       "Sahel Estates CMS",
		ServerHeader:  "Sahel-Estates",
		ErrorHandler:  r.errorHandler,
		CaseSensitive: true,
		BodyLimit:     cfg.Server.BodyLimit,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		IdleTimeout:   cfg.Server.IdleTimeout,
		JSONEncoder:   json.Marshal,
		JSONDecoder:   json.Unmarshal,
		TrustProxy:    len(cfg.Server.TrustedProxies) > 0,
		TrustProxyConfig: fiber.TrustProxyConfig{
			Proxies: cfg.Server.TrustedProxies,
		},
		ProxyHeader: cfg.Server.ProxyHeader,
	})

	return r
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.logs.Logger.Info("Setting up routes")

	r.setupMiddleware()

	r.app.Get("/health", r.healthCheck)
	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api/v1")
	api.Get("/health", r.healthCheck)

	if !r.cfg.Deployment.IsProduction() {
		api.Get("/swagger.json", r.serveSwaggerJSON)
		r.logs.Logger.Info("API documentation enabled", "path", "/api/v1/swagger.json")
	}

	api.Use(limiter.New(limiter.Config{
		Max:          r.cfg.Security.GlobalRateLimit,
		Expiration:   r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
		LimitReached: rateLimited,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	r.setupSiteRoutes(api.Group("/site"))
	r.setupAdminRoutes(api.Group("/admin"))
	r.setupAdminUI()

	r.app.Use(r.notFoundHandler)

	r.logs.Logger.Info("Routes configured successfully")
}

func (r *FiberRouter) setupSiteRoutes(site fiber.Router) {
	h := r.handlers
	site.Get("/home", h.Site.Home)
	site.Get("/projects", h.Site.Projects)
	site.Get("/projects/:slug", h.Site.Project)
	site.Get("/news", h.Site.News)
	site.Get("/news/:slug", h.Site.NewsItem)

	contact := site.Group("/contact")
	contact.Get("/captcha", h.Contact.InitCaptcha)
	contact.Post("/", limiter.New(limiter.Config{
		Max:          r.cfg.Security.ContactRateLimit,
		Expiration:   r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
		LimitReached: rateLimited,
	}), h.Contact.Submit)
}

func (r *FiberRouter) setupAdminRoutes(admin fiber.Router) {
	h := r.handlers

	auth := admin.Group("/auth")
	auth.Post("/login", limiter.New(limiter.Config{
		Max:          r.cfg.Security.AuthRateLimit,
		Expiration:   r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
		LimitReached: rateLimited,
	}), h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)
	auth.Get("/me", r.auth.RequireAdmin(), h.Auth.Me)

	protected := admin.Group("", r.auth.RequireAdmin())

	admins := protected.Group("/admins")
	admins.Get("/", h.Admins.ListAdmins)
	admins.Post("/", h.Admins.CreateAdmin)
	admins.Put("/:id", h.Admins.UpdateAdmin)
	admins.Delete("/:id", h.Admins.DeleteAdmin)

	contentRoutes(protected.Group("/"+models.SectionHeroSlides), h.HeroSlides)
	contentRoutes(protected.Group("/"+models.SectionProjects), h.Projects)
	newsGroup := protected.Group("/" + models.SectionNews)
	contentRoutes(newsGroup, h.News.ContentHandler)
	newsGroup.Patch("/:id/pin", h.News.Pin)
	contentRoutes(protected.Group("/"+models.SectionServices), h.Services)
	contentRoutes(protected.Group("/"+models.SectionBenefits), h.Benefits)
	contentRoutes(protected.Group("/"+models.SectionFacts), h.Facts)

	settings := protected.Group("/settings")
	settings.Get("/"+models.SectionShowcaseVideo, h.ShowcaseVideo.Get)
	settings.Put("/"+models.SectionShowcaseVideo, h.ShowcaseVideo.Put)
	settings.Get("/"+models.SectionContactInfo, h.ContactInfo.Get)
	settings.Put("/"+models.SectionContactInfo, h.ContactInfo.Put)

	messages := protected.Group("/messages")
	messages.Get("/", h.Contact.List)
	messages.Get("/export", h.Contact.Export)
	messages.Patch("/:id/read", h.Contact.MarkRead)
	messages.Delete("/:id", h.Contact.Delete)

	uploads := protected.Group("/uploads")
	uploads.Post("/", h.Uploads.Upload)
	uploads.Delete("/", h.Uploads.Delete)
}

func contentRoutes[T any](g fiber.Router, h *handlers.ContentHandler[T]) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

// setupAdminUI mounts the admin pages behind the session gate
func (r *FiberRouter) setupAdminUI() {
	prefix := r.cfg.Session.ProtectedPath
	r.app.Use(prefix, r.gate.Handler())

	if dir := r.cfg.Server.AdminUIDir; dir != "" {
		r.app.Use(prefix, static.New(dir, static.Config{
			IndexNames: []string{"index.html"},
		}))
		return
	}

	// without a bundled UI the gate still decides access
	r.app.Get(prefix+"/*", func(c fiber.Ctx) error {
		return c.Type("html").SendString(`<!doctype html><title>Sahel Estates Admin</title>`)
	})
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	sec := r.cfg.Security

	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: generateRequestID,
	}))

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			r.logs.Logger.Error("panic recovered",
				"request_id", requestid.FromContext(c),
				"error", e,
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
			)
		},
	}))

	r.app.Use(middleware.Metrics())

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             sec.XFrameOptions,
		HSTSMaxAge:                sec.HSTSMaxAge,
		ContentSecurityPolicy:     sec.CSPPolicy,
		ReferrerPolicy:            sec.ReferrerPolicy,
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     sec.AllowedOrigins,
		AllowMethods:     sec.AllowedMethods,
		AllowHeaders:     sec.AllowedHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: sec.AllowCredentials,
		MaxAge:           sec.CORSMaxAge,
	}))

	if r.cfg.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
			Next: func(c fiber.Ctx) bool {
				contentType := c.Get("Content-Type")
				return strings.Contains(contentType, "image/") ||
					strings.Contains(contentType, "video/") ||
					strings.HasPrefix(c.Path(), "/api/v1/admin/uploads")
			},
		}))
	}

	if r.cfg.Logging.EnableAccessLog {
		r.app.Use(logger.New(logger.Config{
			Format:     `{"time":"${time}","request_id":"${respHeader:X-Request-ID}","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
			TimeFormat: time.RFC3339,
			TimeZone:   "UTC",
			Stream:     r.logs.Access,
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == r.cfg.Metrics.Path
			},
		}))
	}
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	r.logs.Logger.Info("Starting server", "address", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// healthCheck pings every registered dependency
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	status := fiber.StatusOK
	deps := make(map[string]string, len(r.checks))
	for name, check := range r.checks {
		if err := check(ctx); err != nil {
			deps[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	resp := dto.APIResponse{
		Success: status == fiber.StatusOK,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":       "ok",
			"timestamp":    utils.UTCNow().Unix(),
			"version":      r.cfg.Deployment.Version,
			"service":      "sahel-estates-cms",
			"dependencies": deps,
		},
	}
	if status != fiber.StatusOK {
		resp.Message = "Service is degraded"
		resp.Error = "One or more dependencies are unavailable"
	}
	return c.Status(status).JSON(resp)
}

func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
			Success: false,
			Message: "API documentation not found",
			Error:   "API documentation not found",
			Code:    "DOCS_NOT_FOUND",
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
}

// notFoundHandler answers every unmatched route
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error:   "Not found",
		Code:    "NOT_FOUND",
		Details: fiber.Map{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": requestid.FromContext(c),
		},
	})
}

// errorHandler is the global fiber error handler
func (r *FiberRouter) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	level := slog.LevelWarn
	if code >= fiber.StatusInternalServerError {
		level = slog.LevelError
	}
	r.logs.Logger.Log(context.Background(), level, "request failed",
		"status", code,
		"error", err,
		"path", c.Path(),
		"request_id", requestid.FromContext(c),
	)

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   message,
		Code:    "INTERNAL_ERROR",
		Details: fiber.Map{
			"timestamp":  utils.UTCNow().Unix(),
			"request_id": requestid.FromContext(c),
		},
	})
}

func rateLimited(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error:   "Too many requests. Please try again later.",
		Code:    "RATE_LIMIT_EXCEEDED",
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
