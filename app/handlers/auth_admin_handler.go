package handlers

import (
	"log/slog"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/middleware"
	"github.com/amirphl/Sahel-Estates/app/services"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/gofiber/fiber/v3"
)

// AdminAuthHandlerInterface defines the contract for admin session handlers
type AdminAuthHandlerInterface interface {
	Login(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
	Me(c fiber.Ctx) error
}

// AdminAuthHandler implements AdminAuthHandlerInterface
type AdminAuthHandler struct {
	baseHandler
	flow     businessflow.AdminAuthFlow
	sessions services.SessionManager
}

func NewAdminAuthHandler(flow businessflow.AdminAuthFlow, sessions services.SessionManager, logger *slog.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		baseHandler: newBaseHandler(logger),
		flow:        flow,
		sessions:    sessions,
	}
}

// Login verifies credentials and sets the admin session cookie
// @Summary Admin login
// @Description Authenticate with email and password. On success the admin-session cookie is set.
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 401 {object} dto.APIResponse "Invalid email or password"
// @Failure 429 {object} dto.APIResponse "Too many attempts"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/login [post]
func (h *AdminAuthHandler) Login(c fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/auth/login")
	defer cancel()

	admin, err := h.flow.Login(ctx, &req, h.clientMetadata(c))
	if err != nil {
		middleware.ObserveLogin("failure")
		if businessflow.IsInvalidCredentials(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS", nil)
		}
		return h.internalError(c, ctx, "Login failed", err)
	}

	session, err := h.sessions.CreateSession(c, admin.UUID, admin.Email, admin.Role)
	if err != nil {
		return h.internalError(c, ctx, "Failed to create session", err)
	}
	middleware.ObserveLogin("success")

	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", dto.AdminLoginResponse{
		Admin:   businessflow.ToAdminDTO(*admin),
		Session: sessionDTO(session),
	})
}

// Logout clears the session cookie
// @Summary Admin logout
// @Tags Admin Authentication
// @Produce json
// @Success 200 {object} dto.APIResponse "Logged out"
// @Router /api/v1/admin/auth/logout [post]
func (h *AdminAuthHandler) Logout(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c, "/api/v1/admin/auth/logout")
	defer cancel()

	h.flow.Logout(ctx, h.sessions.GetSession(c), h.clientMetadata(c))
	h.sessions.DeleteSession(c)
	return h.SuccessResponse(c, fiber.StatusOK, "Logged out", nil)
}

// Me returns the signed-in account
// @Summary Current admin
// @Tags Admin Authentication
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Current admin"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/auth/me [get]
func (h *AdminAuthHandler) Me(c fiber.Ctx) error {
	admin := currentAdmin(c)
	session := currentSession(c)
	if admin == nil || session == nil {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Current admin", dto.AdminLoginResponse{
		Admin:   businessflow.ToAdminDTO(*admin),
		Session: sessionDTO(session),
	})
}

func sessionDTO(s *services.SessionCredential) dto.AdminSessionDTO {
	remaining := time.Until(s.ExpiresAt)
	if remaining < 0 {
		remaining = 0
	}
	return dto.AdminSessionDTO{
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
		ExpiresIn: int(remaining.Seconds()),
	}
}
