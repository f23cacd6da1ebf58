package handlers

import (
	"log/slog"

	"github.com/amirphl/Sahel-Estates/app/dto"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/gofiber/fiber/v3"
)

// AdminManagementHandlerInterface defines the contract for admin account handlers
type AdminManagementHandlerInterface interface {
	ListAdmins(c fiber.Ctx) error
	CreateAdmin(c fiber.Ctx) error
	UpdateAdmin(c fiber.Ctx) error
	DeleteAdmin(c fiber.Ctx) error
}

// AdminManagementHandler implements AdminManagementHandlerInterface
type AdminManagementHandler struct {
	baseHandler
	flow businessflow.AdminManagementFlow
}

func NewAdminManagementHandler(flow businessflow.AdminManagementFlow, logger *slog.Logger) *AdminManagementHandler {
	return &AdminManagementHandler{
		baseHandler: newBaseHandler(logger),
		flow:        flow,
	}
}

// ListAdmins lists every admin account
// @Summary List admins
// @Tags Admin Management
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminDTO} "Admins"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Only super admins can view admin accounts"
// @Router /api/v1/admin/admins [get]
func (h *AdminManagementHandler) ListAdmins(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c, "/api/v1/admin/admins")
	defer cancel()

	admins, err := h.flow.ListAdmins(ctx, currentSession(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to list admins")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Admins retrieved", admins)
}

// CreateAdmin adds an admin account
// @Summary Create admin
// @Tags Admin Management
// @Accept json
// @Produce json
// @Param request body dto.CreateAdminRequest true "Account"
// @Success 201 {object} dto.APIResponse{data=dto.AdminDTO} "Created"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Only super admins can create admin accounts"
// @Failure 409 {object} dto.APIResponse "Email already exists"
// @Router /api/v1/admin/admins [post]
func (h *AdminManagementHandler) CreateAdmin(c fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/admins")
	defer cancel()

	admin, err := h.flow.CreateAdmin(ctx, currentSession(c), &req, h.clientMetadata(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to create admin")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Admin created", admin)
}

// UpdateAdmin changes an admin account
// @Summary Update admin
// @Tags Admin Management
// @Accept json
// @Produce json
// @Param id path string true "Admin UUID"
// @Param request body dto.UpdateAdminRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.AdminDTO} "Updated"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Only super admins can update admin accounts"
// @Failure 404 {object} dto.APIResponse "Admin not found"
// @Failure 409 {object} dto.APIResponse "Email already exists"
// @Router /api/v1/admin/admins/{id} [put]
func (h *AdminManagementHandler) UpdateAdmin(c fiber.Ctx) error {
	id, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid admin id", "INVALID_ID", nil)
	}

	var req dto.UpdateAdminRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/admins/:id")
	defer cancel()

	admin, err := h.flow.UpdateAdmin(ctx, currentSession(c), id, &req, h.clientMetadata(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to update admin")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Admin updated", admin)
}

// DeleteAdmin removes an admin account other than the caller's own
// @Summary Delete admin
// @Tags Admin Management
// @Produce json
// @Param id path string true "Admin UUID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 400 {object} dto.APIResponse "Cannot delete your own account"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Only super admins can delete admin accounts"
// @Failure 404 {object} dto.APIResponse "Admin not found"
// @Router /api/v1/admin/admins/{id} [delete]
func (h *AdminManagementHandler) DeleteAdmin(c fiber.Ctx) error {
	id, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid admin id", "INVALID_ID", nil)
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/admins/:id")
	defer cancel()

	if err := h.flow.DeleteAdmin(ctx, currentSession(c), id, h.clientMetadata(c)); err != nil {
		return h.flowError(c, ctx, err, "Failed to delete admin")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Admin deleted", nil)
}
