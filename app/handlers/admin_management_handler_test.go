package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdminFlow struct {
	err      error
	lastID   uuid.UUID
	creates  int
	admin    *dto.AdminDTO
	sessions []*services.SessionCredential
}

func (s *stubAdminFlow) ListAdmins(ctx context.Context, caller *services.SessionCredential) ([]dto.AdminDTO, error) {
	s.sessions = append(s.sessions, caller)
	if s.err != nil {
		return nil, s.err
	}
	return []dto.AdminDTO{*s.admin}, nil
}

func (s *stubAdminFlow) CreateAdmin(ctx context.Context, caller *services.SessionCredential, req *dto.CreateAdminRequest, metadata *businessflow.ClientMetadata) (*dto.AdminDTO, error) {
	s.creates++
	if s.err != nil {
		return nil, s.err
	}
	return s.admin, nil
}

func (s *stubAdminFlow) UpdateAdmin(ctx context.Context, caller *services.SessionCredential, id uuid.UUID, req *dto.UpdateAdminRequest, metadata *businessflow.ClientMetadata) (*dto.AdminDTO, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.admin, nil
}

func (s *stubAdminFlow) DeleteAdmin(ctx context.Context, caller *services.SessionCredential, id uuid.UUID, metadata *businessflow.ClientMetadata) error {
	s.lastID = id
	return s.err
}

func newAdminManagementApp(flow businessflow.AdminManagementFlow) *fiber.App {
	h := NewAdminManagementHandler(flow, slog.New(slog.NewTextHandler(io.Discard, nil)))
	app := fiber.New()
	app.Get("/admins", h.ListAdmins)
	app.Post("/admins", h.CreateAdmin)
	app.Put("/admins/:id", h.UpdateAdmin)
	app.Delete("/admins/:id", h.DeleteAdmin)
	return app
}

func decodeResponse(t *testing.T, resp *http.Response) dto.APIResponse {
	t.Helper()
	var out dto.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAdminManagementHandler_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "no session",
			err:        businessflow.NewBusinessError("UNAUTHORIZED", "Unauthorized", businessflow.ErrUnauthorized),
			wantStatus: fiber.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "vanished account",
			err:        businessflow.NewBusinessError("UNAUTHORIZED", "Unauthorized", businessflow.ErrAccountVanished),
			wantStatus: fiber.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "not a super admin",
			err:        businessflow.NewBusinessError("FORBIDDEN", "Only super admins can delete admin accounts", businessflow.ErrForbidden),
			wantStatus: fiber.StatusForbidden,
			wantError:  "Only super admins can delete admin accounts",
		},
		{
			name:       "own account",
			err:        businessflow.NewBusinessError("SELF_ACTION_REJECTED", "Cannot delete your own account", businessflow.ErrSelfActionRejected),
			wantStatus: fiber.StatusBadRequest,
			wantError:  "Cannot delete your own account",
		},
		{
			name:       "unknown target",
			err:        businessflow.NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", businessflow.ErrAdminNotFound),
			wantStatus: fiber.StatusNotFound,
			wantError:  "Admin not found",
		},
		{
			name:       "blank email",
			err:        businessflow.NewBusinessError("EMAIL_REQUIRED", "Email is required", businessflow.ErrContentInvalid),
			wantStatus: fiber.StatusBadRequest,
			wantError:  "Email is required",
		},
		{
			name:       "lookup failure",
			err:        businessflow.NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to load admin", io.ErrUnexpectedEOF),
			wantStatus: fiber.StatusInternalServerError,
			wantError:  "Failed to delete admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAdminManagementApp(&stubAdminFlow{err: tt.err})

			req := httptest.NewRequest(http.MethodDelete, "/admins/"+uuid.NewString(), nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeResponse(t, resp)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestAdminManagementHandler_CreateConflict(t *testing.T) {
	flow := &stubAdminFlow{err: businessflow.NewBusinessError("EMAIL_ALREADY_EXISTS", "An admin with this email already exists", businessflow.ErrEmailAlreadyExists)}
	app := newAdminManagementApp(flow)

	req := httptest.NewRequest(http.MethodPost, "/admins", strings.NewReader(
		`{"email":"editor@sahel-estates.com","name":"Editor","password":"longenough","role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", decodeResponse(t, resp).Code)
}

func TestAdminManagementHandler_CreateValidatesBeforeFlow(t *testing.T) {
	flow := &stubAdminFlow{}
	app := newAdminManagementApp(flow)

	req := httptest.NewRequest(http.MethodPost, "/admins", strings.NewReader(`{"email":"not-an-email","name":"E","password":"x","role":"root"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, resp).Code)
	assert.Zero(t, flow.creates)
}

func TestAdminManagementHandler_InvalidID(t *testing.T) {
	flow := &stubAdminFlow{}
	app := newAdminManagementApp(flow)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/admins/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, uuid.Nil, flow.lastID)
}

func TestAdminManagementHandler_Success(t *testing.T) {
	target := uuid.New()
	flow := &stubAdminFlow{admin: &dto.AdminDTO{UUID: target.String(), Email: "editor@sahel-estates.com", Role: "admin"}}
	app := newAdminManagementApp(flow)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admins", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decodeResponse(t, resp).Success)

	req := httptest.NewRequest(http.MethodPut, "/admins/"+target.String(), strings.NewReader(`{"name":"Senior Editor"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, target, flow.lastID)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/admins/"+target.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
