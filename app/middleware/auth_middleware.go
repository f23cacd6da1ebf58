// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/gofiber/fiber/v3"
)

const (
	sessionLocalsKey = "admin_session"
	adminLocalsKey   = "admin"
)

// AdminResolver loads the persisted account behind a session
type AdminResolver interface {
	CurrentAdmin(ctx context.Context, session *services.SessionCredential) (*models.Admin, error)
}

// AuthMiddleware guards the admin JSON API with the session cookie
type AuthMiddleware struct {
	sessions services.SessionManager
	admins   AdminResolver
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(sessions services.SessionManager, admins AdminResolver, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		sessions: sessions,
		admins:   admins,
		logger:   logger,
	}
}

// RequireAdmin rejects requests without a decodable session whose account still exists.
// Unlike the page gate it consults the datastore on every request.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		session := m.sessions.GetSession(c)
		if session == nil {
			return unauthorized(c)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		admin, err := m.admins.CurrentAdmin(ctx, session)
		if err != nil {
			if businessflow.IsUnauthorized(err) {
				return unauthorized(c)
			}
			m.logger.ErrorContext(ctx, "failed to resolve session account", "admin_uuid", session.UserID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
				Success: false,
				Message: "Failed to verify session",
				Error:   "Internal server error",
				Code:    "SESSION_VERIFICATION_FAILED",
			})
		}

		c.Locals(sessionLocalsKey, session)
		c.Locals(adminLocalsKey, admin)
		return c.Next()
	}
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: "Authentication required",
		Error:   "Unauthorized",
		Code:    "UNAUTHORIZED",
	})
}

// GetSessionFromContext returns the session attached by the gate or RequireAdmin
func GetSessionFromContext(c fiber.Ctx) (*services.SessionCredential, bool) {
	session, ok := c.Locals(sessionLocalsKey).(*services.SessionCredential)
	return session, ok && session != nil
}

// GetAdminFromContext returns the account attached by RequireAdmin
func GetAdminFromContext(c fiber.Ctx) (*models.Admin, bool) {
	admin, ok := c.Locals(adminLocalsKey).(*models.Admin)
	return admin, ok && admin != nil
}
