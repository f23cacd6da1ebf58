package businessflow

import (
	"context"
	"log/slog"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/amirphl/Sahel-Estates/utils"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthFlow verifies admin credentials and resolves sessions to accounts
type AdminAuthFlow interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*models.Admin, error)
	Logout(ctx context.Context, session *services.SessionCredential, metadata *ClientMetadata)
	CurrentAdmin(ctx context.Context, session *services.SessionCredential) (*models.Admin, error)
}

// AdminAuthFlowImpl implements AdminAuthFlow
type AdminAuthFlowImpl struct {
	adminRepo repository.AdminRepository
	audit     auditRecorder
	logger    *slog.Logger
	// dummyHash is compared against when the email is unknown so both failures cost the same
	dummyHash []byte
}

// NewAdminAuthFlow creates a new admin authentication flow
func NewAdminAuthFlow(adminRepo repository.AdminRepository, auditRepo repository.AuditLogRepository, bcryptCost int, logger *slog.Logger) *AdminAuthFlowImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("sahel-estates-unknown-account"), bcryptCost)
	return &AdminAuthFlowImpl{
		adminRepo: adminRepo,
		audit:     auditRecorder{repo: auditRepo, logger: logger},
		logger:    logger,
		dummyHash: dummy,
	}
}

// Login checks an email and password pair. Unknown email and wrong password are indistinguishable.
func (f *AdminAuthFlowImpl) Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*models.Admin, error) {
	invalid := NewBusinessError("INVALID_CREDENTIALS", "Invalid email or password", ErrInvalidCredentials)
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, invalid
	}

	admin, err := f.adminRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}

	if admin == nil {
		_ = bcrypt.CompareHashAndPassword(f.dummyHash, []byte(req.Password))
		msg := "unknown email"
		f.audit.record(ctx, nil, models.AuditActionLoginFailed, "Admin login failed", false, &msg, metadata,
			map[string]any{"email": models.NormalizeEmail(req.Email)})
		return nil, invalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		msg := "incorrect password"
		f.audit.record(ctx, &admin.ID, models.AuditActionLoginFailed, "Admin login failed", false, &msg, metadata, nil)
		return nil, invalid
	}

	admin.LastLoginAt = utils.UTCNowPtr()
	if err := f.adminRepo.TouchLastLogin(ctx, admin.ID, *admin.LastLoginAt); err != nil {
		// last_login_at is best effort
		f.logger.WarnContext(ctx, "failed to update last login time", "admin_id", admin.ID, "error", err)
	}

	f.audit.record(ctx, &admin.ID, models.AuditActionLoginSuccess, "Admin logged in", true, nil, metadata, nil)
	return admin, nil
}

// Logout records the sign-out; the cookie itself is cleared by the session manager
func (f *AdminAuthFlowImpl) Logout(ctx context.Context, session *services.SessionCredential, metadata *ClientMetadata) {
	if session == nil {
		return
	}
	admin, err := f.adminRepo.ByUUID(ctx, session.UserID)
	if err != nil || admin == nil {
		return
	}
	f.audit.record(ctx, &admin.ID, models.AuditActionLogout, "Admin logged out", true, nil, metadata, nil)
}

// CurrentAdmin resolves a session to its persisted account
func (f *AdminAuthFlowImpl) CurrentAdmin(ctx context.Context, session *services.SessionCredential) (*models.Admin, error) {
	return loadCaller(ctx, f.adminRepo, session)
}
