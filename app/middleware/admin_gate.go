package middleware

import (
	"net/url"
	"strings"

	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/gofiber/fiber/v3"
)

// AdminGateConfig describes the protected page area
type AdminGateConfig struct {
	// ProtectedPrefix is the path prefix that requires a session, e.g. /admin
	ProtectedPrefix string
	// LoginPath is the one page under the prefix reachable without a session
	LoginPath string
	// DashboardPath is where signed-in admins visiting the login page are sent
	DashboardPath string
}

// AdminGate redirects page requests under the protected prefix based on the session cookie.
// It only checks that the token decodes; it never consults the datastore.
type AdminGate struct {
	sessions services.SessionManager
	cfg      AdminGateConfig
}

// NewAdminGate creates the page gate
func NewAdminGate(sessions services.SessionManager, cfg AdminGateConfig) *AdminGate {
	cfg.ProtectedPrefix = trimSlash(cfg.ProtectedPrefix)
	cfg.LoginPath = trimSlash(cfg.LoginPath)
	if cfg.DashboardPath == "" {
		cfg.DashboardPath = cfg.ProtectedPrefix
	}
	return &AdminGate{
		sessions: sessions,
		cfg:      cfg,
	}
}

// Handler returns the fiber middleware
func (g *AdminGate) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		path := c.Path()
		if !g.isProtected(path) {
			return c.Next()
		}

		session := g.sessions.GetSession(c)

		if strings.EqualFold(trimSlash(path), g.cfg.LoginPath) {
			if session != nil {
				gateDecisions.WithLabelValues("login_redirect").Inc()
				return c.Redirect().Status(fiber.StatusFound).To(g.cfg.DashboardPath)
			}
			gateDecisions.WithLabelValues("login_pass").Inc()
			return c.Next()
		}

		if session == nil {
			gateDecisions.WithLabelValues("denied").Inc()
			return c.Redirect().Status(fiber.StatusFound).To(g.loginURL(path))
		}

		gateDecisions.WithLabelValues("allowed").Inc()
		c.Locals(sessionLocalsKey, session)
		return c.Next()
	}
}

// isProtected compares case-insensitively, like fiber's default routing
func (g *AdminGate) isProtected(path string) bool {
	path = strings.ToLower(path)
	prefix := strings.ToLower(g.cfg.ProtectedPrefix)
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g *AdminGate) loginURL(original string) string {
	q := url.Values{}
	q.Set("redirect", original)
	return g.cfg.LoginPath + "?" + q.Encode()
}

func trimSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimRight(p, "/")
	}
	return p
}
