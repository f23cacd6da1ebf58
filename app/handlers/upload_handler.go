package handlers

import (
	"log/slog"

	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/gofiber/fiber/v3"
)

type UploadHandler struct {
	baseHandler
	flow businessflow.UploadFlow
}

func NewUploadHandler(flow businessflow.UploadFlow, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		baseHandler: newBaseHandler(logger),
		flow:        flow,
	}
}

// Upload stores an image or video
// @Summary Upload media
// @Description Images (jpg, jpeg, png, webp, gif) up to 10 MB, videos (mp4, webm) up to 100 MB
// @Tags Admin Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Param folder formData string false "hero-slides, projects, news, services, showcase-video or misc"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "Stored"
// @Failure 400 {object} dto.APIResponse "Rejected file"
// @Failure 413 {object} dto.APIResponse "File too large"
// @Failure 503 {object} dto.APIResponse "Storage not configured"
// @Router /api/v1/admin/uploads [post]
func (h *UploadHandler) Upload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "File is required", "FILE_REQUIRED", nil)
	}
	file, err := fh.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read file", "FILE_READ_FAILED", nil)
	}
	defer file.Close()

	ctx, cancel := h.requestContext(c, "/api/v1/admin/uploads")
	defer cancel()

	out, err := h.flow.Upload(ctx, currentAdmin(c), businessflow.UploadInput{
		Folder:   c.FormValue("folder"),
		Filename: fh.Filename,
		Size:     fh.Size,
		Body:     file,
	}, h.clientMetadata(c))
	if err != nil {
		return h.flowError(c, ctx, err, "Failed to upload file")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "File uploaded", out)
}

// Delete removes a stored object
// @Summary Delete media
// @Tags Admin Uploads
// @Produce json
// @Param key query string true "Storage key returned by the upload"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 400 {object} dto.APIResponse "Invalid storage key"
// @Router /api/v1/admin/uploads [delete]
func (h *UploadHandler) Delete(c fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "key is required", "INVALID_STORAGE_KEY", nil)
	}

	ctx, cancel := h.requestContext(c, "/api/v1/admin/uploads")
	defer cancel()

	if err := h.flow.Delete(ctx, currentAdmin(c), key, h.clientMetadata(c)); err != nil {
		return h.flowError(c, ctx, err, "Failed to delete file")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "File deleted", nil)
}
