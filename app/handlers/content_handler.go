package handlers

import (
	"encoding/json"
	"log/slog"

	"github.com/amirphl/Sahel-Estates/app/dto"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/gofiber/fiber/v3"
)

// ContentHandler serves the admin CRUD endpoints of one content section
type ContentHandler[T any] struct {
	baseHandler
	section string
	flow    businessflow.ContentFlow[T]
}

func NewContentHandler[T any](section string, flow businessflow.ContentFlow[T], logger *slog.Logger) *ContentHandler[T] {
	return &ContentHandler[T]{
		baseHandler: newBaseHandler(logger),
		section:     section,
		flow:        flow,
	}
}

func (h *ContentHandler[T]) endpoint() string {
	return "/api/v1/admin/" + h.section
}

// List returns a page of the section, inactive items included
// @Summary List section items
// @Tags Admin Content
// @Produce json
// @Param section path string true "hero-slides, projects, news, services, benefits or facts"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse "Items"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/{section} [get]
func (h *ContentHandler[T]) List(c fiber.Ctx) error {
	var req dto.PaginationRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", nil)
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c, h.endpoint())
	defer cancel()

	out, err := h.flow.List(ctx, req)
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to list items")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Items retrieved", out)
}

// Get returns one item
// @Summary Get section item
// @Tags Admin Content
// @Produce json
// @Param section path string true "Section"
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse "Item"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Router /api/v1/admin/{section}/{id} [get]
func (h *ContentHandler[T]) Get(c fiber.Ctx) error {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_ID", nil)
	}

	ctx, cancel := h.requestContext(c, h.endpoint()+"/:id")
	defer cancel()

	item, err := h.flow.Get(ctx, id)
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to load item")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Item retrieved", item)
}

// Create adds an item
// @Summary Create section item
// @Tags Admin Content
// @Accept json
// @Produce json
// @Param section path string true "Section"
// @Success 201 {object} dto.APIResponse "Created"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 409 {object} dto.APIResponse "Slug already exists"
// @Router /api/v1/admin/{section} [post]
func (h *ContentHandler[T]) Create(c fiber.Ctx) error {
	item := new(T)
	if err := c.Bind().JSON(item); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}

	ctx, cancel := h.requestContext(c, h.endpoint())
	defer cancel()

	created, err := h.flow.Create(ctx, currentAdmin(c), item, h.clientMetadata(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to create item")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Item created", created)
}

// Update merges the given fields onto an item
// @Summary Update section item
// @Tags Admin Content
// @Accept json
// @Produce json
// @Param section path string true "Section"
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse "Updated"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Failure 409 {object} dto.APIResponse "Slug already exists"
// @Router /api/v1/admin/{section}/{id} [put]
func (h *ContentHandler[T]) Update(c fiber.Ctx) error {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_ID", nil)
	}
	body := c.Body()
	if !json.Valid(body) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}

	ctx, cancel := h.requestContext(c, h.endpoint()+"/:id")
	defer cancel()

	patch := make(json.RawMessage, len(body))
	copy(patch, body)

	updated, err := h.flow.Update(ctx, currentAdmin(c), id, patch, h.clientMetadata(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to update item")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Item updated", updated)
}

// Delete removes an item and the media it references
// @Summary Delete section item
// @Tags Admin Content
// @Produce json
// @Param section path string true "Section"
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Router /api/v1/admin/{section}/{id} [delete]
func (h *ContentHandler[T]) Delete(c fiber.Ctx) error {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_ID", nil)
	}

	ctx, cancel := h.requestContext(c, h.endpoint()+"/:id")
	defer cancel()

	if err := h.flow.Delete(ctx, currentAdmin(c), id, h.clientMetadata(c)); err != nil {
		return h.flowError(c, ctx, err, "Failed to delete item")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Item deleted", nil)
}

// NewsHandler adds pinning to the news endpoints
type NewsHandler struct {
	*ContentHandler[models.News]
	news businessflow.NewsFlow
}

func NewNewsHandler(flow businessflow.NewsFlow, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{
		ContentHandler: NewContentHandler[models.News](models.SectionNews, flow, logger),
		news:           flow,
	}
}

type pinNewsRequest struct {
	Pinned *bool `json:"pinned" validate:"required"`
}

// Pin pins or unpins a news item
// @Summary Pin news item
// @Tags Admin Content
// @Accept json
// @Produce json
// @Param id path int true "News ID"
// @Param request body object{pinned=bool} true "Pin state"
// @Success 200 {object} dto.APIResponse{data=models.News} "Updated"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Router /api/v1/admin/news/{id}/pin [patch]
func (h *NewsHandler) Pin(c fiber.Ctx) error {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_ID", nil)
	}
	var req pinNewsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/news/:id/pin")
	defer cancel()

	item, err := h.news.SetPinned(ctx, currentAdmin(c), id, *req.Pinned, h.clientMetadata(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to update pin")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pin updated", item)
}

// SettingsHandler serves a single-row settings section
type SettingsHandler[T any] struct {
	baseHandler
	section string
	flow    businessflow.SettingsFlow[T]
}

func NewSettingsHandler[T any](section string, flow businessflow.SettingsFlow[T], logger *slog.Logger) *SettingsHandler[T] {
	return &SettingsHandler[T]{
		baseHandler: newBaseHandler(logger),
		section:     section,
		flow:        flow,
	}
}

// Get returns the settings
// @Summary Get settings
// @Tags Admin Settings
// @Produce json
// @Param section path string true "showcase-video or contact-info"
// @Success 200 {object} dto.APIResponse "Settings"
// @Router /api/v1/admin/settings/{section} [get]
func (h *SettingsHandler[T]) Get(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c, "/api/v1/admin/settings/"+h.section)
	defer cancel()

	item, err := h.flow.Get(ctx)
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to load settings")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Settings retrieved", item)
}

// Put replaces the settings
// @Summary Replace settings
// @Tags Admin Settings
// @Accept json
// @Produce json
// @Param section path string true "showcase-video or contact-info"
// @Success 200 {object} dto.APIResponse "Saved"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Router /api/v1/admin/settings/{section} [put]
func (h *SettingsHandler[T]) Put(c fiber.Ctx) error {
	item := new(T)
	if err := c.Bind().JSON(item); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", nil)
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/settings/"+h.section)
	defer cancel()

	saved, err := h.flow.Put(ctx, currentAdmin(c), item, h.clientMetadata(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to save settings")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Settings saved", saved)
}
