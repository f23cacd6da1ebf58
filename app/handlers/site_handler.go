package handlers

import (
	"log/slog"

	"github.com/amirphl/Sahel-Estates/app/dto"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/gofiber/fiber/v3"
)

// SiteHandler serves the public, localized content API
type SiteHandler struct {
	baseHandler
	flow businessflow.PublicSiteFlow
}

func NewSiteHandler(flow businessflow.PublicSiteFlow, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		baseHandler: newBaseHandler(logger),
		flow:        flow,
	}
}

// locale prefers ?locale= and falls back to Accept-Language
func locale(c fiber.Ctx) models.Locale {
	if q := c.Query("locale"); q != "" {
		return models.ParseLocale(q)
	}
	return models.ParseLocale(c.AcceptsLanguages(string(models.LocaleEnglish), string(models.LocaleArabic)))
}

// Home returns every landing page section
// @Summary Home page
// @Tags Public Site
// @Produce json
// @Param locale query string false "en or ar"
// @Success 200 {object} dto.APIResponse{data=dto.HomePageResponse} "Home page"
// @Router /api/v1/site/home [get]
func (h *SiteHandler) Home(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c, "/api/v1/site/home")
	defer cancel()

	out, err := h.flow.Home(ctx, locale(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to load home page")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "OK", out)
}

// Projects lists active projects
// @Summary Projects
// @Tags Public Site
// @Produce json
// @Param locale query string false "en or ar"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[dto.ProjectView]} "Projects"
// @Router /api/v1/site/projects [get]
func (h *SiteHandler) Projects(c fiber.Ctx) error {
	var req dto.PaginationRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", nil)
	}

	ctx, cancel := h.requestContext(c, "/api/v1/site/projects")
	defer cancel()

	out, err := h.flow.Projects(ctx, locale(c), req)
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to load projects")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "OK", out)
}

// Project returns one active project
// @Summary Project by slug
// @Tags Public Site
// @Produce json
// @Param slug path string true "Project slug"
// @Param locale query string false "en or ar"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectView} "Project"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Router /api/v1/site/projects/{slug} [get]
func (h *SiteHandler) Project(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c, "/api/v1/site/projects/:slug")
	defer cancel()

	out, err := h.flow.ProjectBySlug(ctx, locale(c), c.Params("slug"))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to load project")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "OK", out)
}

// News lists active news, pinned first
// @Summary News
// @Tags Public Site
// @Produce json
// @Param locale query string false "en or ar"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[dto.NewsView]} "News"
// @Router /api/v1/site/news [get]
func (h *SiteHandler) News(c fiber.Ctx) error {
	var req dto.PaginationRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", nil)
	}

	ctx, cancel := h.requestContext(c, "/api/v1/site/news")
	defer cancel()

	out, err := h.flow.News(ctx, locale(c), req)
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to load news")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "OK", out)
}

// NewsItem returns one active news item with its body
// @Summary News item by slug
// @Tags Public Site
// @Produce json
// @Param slug path string true "News slug"
// @Param locale query string false "en or ar"
// @Success 200 {object} dto.APIResponse{data=dto.NewsView} "News item"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Router /api/v1/site/news/{slug} [get]
func (h *SiteHandler) NewsItem(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c, "/api/v1/site/news/:slug")
	defer cancel()

	out, err := h.flow.NewsBySlug(ctx, locale(c), c.Params("slug"))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to load news item")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "OK", out)
}
