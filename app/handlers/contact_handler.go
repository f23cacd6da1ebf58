package handlers

import (
	"log/slog"

	"github.com/amirphl/Sahel-Estates/app/dto"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/gofiber/fiber/v3"
)

// ContactHandlerInterface covers the public contact form and the admin inbox
type ContactHandlerInterface interface {
	InitCaptcha(c fiber.Ctx) error
	Submit(c fiber.Ctx) error
	List(c fiber.Ctx) error
	MarkRead(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

type ContactHandler struct {
	baseHandler
	flow businessflow.ContactMessageFlow
}

func NewContactHandler(flow businessflow.ContactMessageFlow, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		baseHandler: newBaseHandler(logger),
		flow:        flow,
	}
}

// InitCaptcha issues a rotate captcha for the contact form
// @Summary Contact captcha
// @Tags Public Site
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ContactCaptchaResponse} "Challenge"
// @Failure 503 {object} dto.APIResponse "Captcha disabled"
// @Router /api/v1/site/contact/captcha [get]
func (h *ContactHandler) InitCaptcha(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c, "/api/v1/site/contact/captcha")
	defer cancel()

	out, err := h.flow.InitCaptcha(ctx)
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to initialize captcha")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Captcha initialized", out)
}

// Submit stores a contact form message
// @Summary Submit contact message
// @Tags Public Site
// @Accept json
// @Produce json
// @Param request body dto.SubmitContactMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse "Message received"
// @Failure 400 {object} dto.APIResponse "Invalid request or captcha"
// @Failure 429 {object} dto.APIResponse "Too many submissions"
// @Router /api/v1/site/contact [post]
func (h *ContactHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitContactMessageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c, "/api/v1/site/contact")
	defer cancel()

	if _, err := h.flow.Submit(ctx, &req, h.clientMetadata(c)); err != nil {
		return h.flowError(c, ctx, err, "Failed to send message")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Message received", nil)
}

// List returns a page of the inbox
// @Summary List contact messages
// @Tags Admin Messages
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param unread_only query bool false "Only unread messages"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[dto.ContactMessageDTO]} "Messages"
// @Router /api/v1/admin/messages [get]
func (h *ContactHandler) List(c fiber.Ctx) error {
	var req dto.ListContactMessagesRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", nil)
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/messages")
	defer cancel()

	out, err := h.flow.List(ctx, &req)
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to list messages")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Messages retrieved", out)
}

// MarkRead sets the read flag of a message
// @Summary Mark contact message
// @Tags Admin Messages
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Param request body dto.MarkContactMessageRequest true "Read flag"
// @Success 200 {object} dto.APIResponse{data=dto.ContactMessageDTO} "Updated"
// @Failure 404 {object} dto.APIResponse "Message not found"
// @Router /api/v1/admin/messages/{id}/read [patch]
func (h *ContactHandler) MarkRead(c fiber.Ctx) error {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_ID", nil)
	}
	var req dto.MarkContactMessageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/messages/:id/read")
	defer cancel()

	out, err := h.flow.MarkRead(ctx, currentAdmin(c), id, *req.Read)
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to update message")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Message updated", out)
}

// Delete removes a message
// @Summary Delete contact message
// @Tags Admin Messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.APIResponse "Message not found"
// @Router /api/v1/admin/messages/{id} [delete]
func (h *ContactHandler) Delete(c fiber.Ctx) error {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_ID", nil)
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/messages/:id")
	defer cancel()

	if err := h.flow.Delete(ctx, currentAdmin(c), id, h.clientMetadata(c)); err != nil {
		return h.flowError(c, ctx, err, "Failed to delete message")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Message deleted", nil)
}

// Export downloads the inbox as an xlsx workbook
// @Summary Export contact messages
// @Tags Admin Messages
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Workbook"
// @Router /api/v1/admin/messages/export [get]
func (h *ContactHandler) Export(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c, "/api/v1/admin/messages/export")
	defer cancel()

	filename, data, err := h.flow.ExportXLSX(ctx, currentAdmin(c), h.clientMetadata(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to export messages")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(data)
}
