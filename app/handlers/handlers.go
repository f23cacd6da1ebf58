// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/middleware"
	"github.com/amirphl/Sahel-Estates/app/services"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

const defaultRequestTimeout = 30 * time.Second

// baseHandler carries what every handler needs for responses and request scoping
type baseHandler struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newBaseHandler(logger *slog.Logger) baseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return baseHandler{
		validator: utils.NewValidator(),
		logger:    logger,
	}
}

// ErrorResponse writes the standard JSON error; the error field always carries the message
func (h baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   message,
		Code:    errorCode,
		Details: details,
	})
}

// SuccessResponse writes the standard JSON success
func (h baseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// requestContext builds a context carrying request-scoped values for flows and audit logging
func (h baseHandler) requestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, requestID(c))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, defaultRequestTimeout)
	return ctx, cancel
}

func (h baseHandler) clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	md := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	md.SetRequestID(requestID(c))
	return md
}

// validate runs struct validation and writes a 400 when it fails
func (h baseHandler) validate(c fiber.Ctx, req any) (bool, error) {
	if err := h.validator.Struct(req); err != nil {
		return false, h.validationError(c, err)
	}
	return true, nil
}

func (h baseHandler) validationError(c fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = getValidationErrorMessage(fe)
	}
	return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", details)
}

// internalError logs err and writes a generic 500
func (h baseHandler) internalError(c fiber.Ctx, ctx context.Context, message string, err error) error {
	code := "INTERNAL_ERROR"
	if be, ok := businessflow.AsBusinessError(err); ok {
		code = be.Code
	}
	h.logger.ErrorContext(ctx, message, "error", err, "path", c.Path(), "request_id", requestID(c))
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}

// currentAdmin returns the account RequireAdmin attached to the request
func currentAdmin(c fiber.Ctx) *models.Admin {
	admin, _ := middleware.GetAdminFromContext(c)
	return admin
}

// currentSession returns the decoded session cookie, or nil
func currentSession(c fiber.Ctx) *services.SessionCredential {
	session, _ := middleware.GetSessionFromContext(c)
	return session
}

func requestID(c fiber.Ctx) string {
	if id := requestid.FromContext(c); id != "" {
		return id
	}
	return c.Get("X-Request-ID")
}

func parseUintParam(c fiber.Ctx, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "url":
		return err.Field() + " must be an absolute URL"
	case "slug":
		return err.Field() + " must contain only lowercase letters, digits and single hyphens"
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

// flowError maps business errors to HTTP statuses; anything unrecognized is a 500
func (h baseHandler) flowError(c fiber.Ctx, ctx context.Context, err error, fallback string) error {
	be, ok := businessflow.AsBusinessError(err)
	if !ok {
		return h.internalError(c, ctx, fallback, err)
	}

	switch {
	case businessflow.IsUnauthorized(err), businessflow.IsInvalidCredentials(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, be.Message, be.Code, nil)
	case businessflow.IsForbidden(err):
		return h.ErrorResponse(c, fiber.StatusForbidden, be.Message, be.Code, nil)
	case businessflow.IsAdminNotFound(err), businessflow.IsContentNotFound(err), businessflow.IsContactMessageNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, be.Message, be.Code, nil)
	case businessflow.IsEmailAlreadyExists(err), businessflow.IsSlugAlreadyExists(err):
		return h.ErrorResponse(c, fiber.StatusConflict, be.Message, be.Code, nil)
	case businessflow.IsUploadTooLarge(err):
		return h.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, be.Message, be.Code, nil)
	case businessflow.IsContentInvalid(err):
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return h.validationError(c, verrs)
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, nil)
	case businessflow.IsSelfActionRejected(err),
		businessflow.IsInvalidRole(err),
		businessflow.IsPasswordTooShort(err),
		businessflow.IsNothingToUpdate(err),
		businessflow.IsInvalidCaptcha(err),
		businessflow.IsUploadRejected(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, nil)
	case businessflow.IsStorageNotAvailable(err), businessflow.IsCaptchaNotAvailable(err):
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, be.Message, be.Code, nil)
	default:
		return h.internalError(c, ctx, fallback, err)
	}
}
