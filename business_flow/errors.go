// Package businessflow contains the core business logic and use cases of the CMS
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Session and authorization errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAccountVanished    = errors.New("session account no longer exists")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfActionRejected = errors.New("action not allowed on own account")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Admin account errors
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrNothingToUpdate    = errors.New("at least one field must be provided for update")

	// Content errors
	ErrContentNotFound   = errors.New("content not found")
	ErrContentInvalid    = errors.New("content is invalid")
	ErrSlugAlreadyExists = errors.New("slug already exists")

	// Contact form errors
	ErrInvalidCaptcha         = errors.New("invalid captcha")
	ErrContactMessageNotFound = errors.New("contact message not found")

	// Upload errors
	ErrUploadEmpty           = errors.New("uploaded file is empty")
	ErrUploadTooLarge        = errors.New("uploaded file is too large")
	ErrUploadTypeNotAllowed  = errors.New("uploaded file type is not allowed")
	ErrUploadCorrupt         = errors.New("uploaded image could not be decoded")
	ErrStorageNotAvailable   = errors.New("storage not available")
	ErrInvalidStorageKey     = errors.New("invalid storage key")
	ErrCaptchaNotAvailable   = errors.New("captcha not available")
	ErrExportGenerationError = errors.New("failed to generate export")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// AsBusinessError extracts the outermost BusinessError from an error chain
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsUnauthorized covers both a missing session and a session whose account vanished
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrAccountVanished)
}

func IsAccountVanished(err error) bool {
	return errors.Is(err, ErrAccountVanished)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsSelfActionRejected(err error) bool {
	return errors.Is(err, ErrSelfActionRejected)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsInvalidRole(err error) bool {
	return errors.Is(err, ErrInvalidRole)
}

func IsPasswordTooShort(err error) bool {
	return errors.Is(err, ErrPasswordTooShort)
}

func IsNothingToUpdate(err error) bool {
	return errors.Is(err, ErrNothingToUpdate)
}

func IsContentNotFound(err error) bool {
	return errors.Is(err, ErrContentNotFound)
}

func IsContentInvalid(err error) bool {
	return errors.Is(err, ErrContentInvalid)
}

func IsSlugAlreadyExists(err error) bool {
	return errors.Is(err, ErrSlugAlreadyExists)
}

func IsInvalidCaptcha(err error) bool {
	return errors.Is(err, ErrInvalidCaptcha)
}

func IsContactMessageNotFound(err error) bool {
	return errors.Is(err, ErrContactMessageNotFound)
}

func IsUploadRejected(err error) bool {
	return errors.Is(err, ErrUploadEmpty) ||
		errors.Is(err, ErrUploadTooLarge) ||
		errors.Is(err, ErrUploadTypeNotAllowed) ||
		errors.Is(err, ErrUploadCorrupt) ||
		errors.Is(err, ErrInvalidStorageKey)
}

func IsUploadTooLarge(err error) bool {
	return errors.Is(err, ErrUploadTooLarge)
}

func IsStorageNotAvailable(err error) bool {
	return errors.Is(err, ErrStorageNotAvailable)
}

func IsCaptchaNotAvailable(err error) bool {
	return errors.Is(err, ErrCaptchaNotAvailable)
}
