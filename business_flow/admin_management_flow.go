package businessflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminManagementFlow manages CMS operator accounts. Every operation re-reads the
// caller from the datastore and requires the persisted role to be super_admin.
type AdminManagementFlow interface {
	ListAdmins(ctx context.Context, caller *services.SessionCredential) ([]dto.AdminDTO, error)
	CreateAdmin(ctx context.Context, caller *services.SessionCredential, req *dto.CreateAdminRequest, metadata *ClientMetadata) (*dto.AdminDTO, error)
	UpdateAdmin(ctx context.Context, caller *services.SessionCredential, id uuid.UUID, req *dto.UpdateAdminRequest, metadata *ClientMetadata) (*dto.AdminDTO, error)
	DeleteAdmin(ctx context.Context, caller *services.SessionCredential, id uuid.UUID, metadata *ClientMetadata) error
}

// AdminManagementFlowImpl implements AdminManagementFlow
type AdminManagementFlowImpl struct {
	adminRepo         repository.AdminRepository
	audit             auditRecorder
	bcryptCost        int
	passwordMinLength int
	logger            *slog.Logger
}

// NewAdminManagementFlow creates a new admin management flow
func NewAdminManagementFlow(adminRepo repository.AdminRepository, auditRepo repository.AuditLogRepository, bcryptCost, passwordMinLength int, logger *slog.Logger) *AdminManagementFlowImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if passwordMinLength <= 0 {
		passwordMinLength = 8
	}
	return &AdminManagementFlowImpl{
		adminRepo:         adminRepo,
		audit:             auditRecorder{repo: auditRepo, logger: logger},
		bcryptCost:        bcryptCost,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

// loadCaller resolves the session to its persisted account.
// A missing session and a session whose account was deleted both end as unauthorized.
func loadCaller(ctx context.Context, repo repository.AdminRepository, caller *services.SessionCredential) (*models.Admin, error) {
	if caller == nil {
		return nil, NewBusinessError("UNAUTHORIZED", "Unauthorized", ErrUnauthorized)
	}

	admin, err := repo.ByUUID(ctx, caller.UserID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to load session account", err)
	}
	if admin == nil {
		return nil, NewBusinessError("UNAUTHORIZED", "Unauthorized", ErrAccountVanished)
	}
	return admin, nil
}

// authorize loads the caller and requires the super_admin role for the described action
func (f *AdminManagementFlowImpl) authorize(ctx context.Context, caller *services.SessionCredential, action string, metadata *ClientMetadata) (*models.Admin, error) {
	admin, err := loadCaller(ctx, f.adminRepo, caller)
	if err != nil {
		return nil, err
	}

	if !admin.IsSuperAdmin() {
		msg := "Only super admins can " + action
		f.audit.record(ctx, &admin.ID, models.AuditActionAccessDenied, msg, false, &msg, metadata, nil)
		return nil, NewBusinessError("FORBIDDEN", msg, ErrForbidden)
	}
	return admin, nil
}

// ListAdmins returns every account
func (f *AdminManagementFlowImpl) ListAdmins(ctx context.Context, caller *services.SessionCredential) ([]dto.AdminDTO, error) {
	if _, err := f.authorize(ctx, caller, "view admin accounts", nil); err != nil {
		return nil, err
	}

	admins, err := f.adminRepo.ByFilter(ctx, models.AdminFilter{}, "created_at ASC, id ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LIST_FAILED", "Failed to list admins", err)
	}

	out := make([]dto.AdminDTO, 0, len(admins))
	for _, a := range admins {
		out = append(out, ToAdminDTO(*a))
	}
	return out, nil
}

// CreateAdmin adds an account
func (f *AdminManagementFlowImpl) CreateAdmin(ctx context.Context, caller *services.SessionCredential, req *dto.CreateAdminRequest, metadata *ClientMetadata) (*dto.AdminDTO, error) {
	actor, err := f.authorize(ctx, caller, "create admin accounts", metadata)
	if err != nil {
		return nil, err
	}

	role := models.AdminRole(req.Role)
	if !role.IsValid() {
		return nil, NewBusinessErrorf("INVALID_ROLE", "Role must be one of: %s, %s", ErrInvalidRole, models.AdminRoleAdmin, models.AdminRoleSuperAdmin)
	}
	email := models.NormalizeEmail(req.Email)
	if email == "" {
		return nil, NewBusinessError("EMAIL_REQUIRED", "Email is required", ErrContentInvalid)
	}

	existing, err := f.adminRepo.ByEmail(ctx, email)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to check email", err)
	}
	if existing != nil {
		return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "An admin with this email already exists", ErrEmailAlreadyExists)
	}

	hash, err := f.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		UUID:         uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    utils.UTCNow(),
	}
	admin.UpdatedAt = admin.CreatedAt

	if err := f.adminRepo.Save(ctx, admin); err != nil {
		if isUniqueViolation(err) {
			return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "An admin with this email already exists", ErrEmailAlreadyExists)
		}
		return nil, NewBusinessError("ADMIN_CREATE_FAILED", "Failed to create admin", err)
	}

	f.audit.record(ctx, &actor.ID, models.AuditActionAdminCreated, "Admin account created", true, nil, metadata,
		map[string]any{"target_uuid": admin.UUID.String(), "role": string(admin.Role)})

	out := ToAdminDTO(*admin)
	return &out, nil
}

// UpdateAdmin changes an account
func (f *AdminManagementFlowImpl) UpdateAdmin(ctx context.Context, caller *services.SessionCredential, id uuid.UUID, req *dto.UpdateAdminRequest, metadata *ClientMetadata) (*dto.AdminDTO, error) {
	actor, err := f.authorize(ctx, caller, "update admin accounts", metadata)
	if err != nil {
		return nil, err
	}
	if req == nil || (req.Email == nil && req.Name == nil && req.Password == nil && req.Role == nil) {
		return nil, NewBusinessError("NOTHING_TO_UPDATE", "At least one field must be provided", ErrNothingToUpdate)
	}

	target, err := f.adminRepo.ByUUID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to load admin", err)
	}
	if target == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}

	if req.Role != nil {
		role := models.AdminRole(*req.Role)
		if !role.IsValid() {
			return nil, NewBusinessErrorf("INVALID_ROLE", "Role must be one of: %s, %s", ErrInvalidRole, models.AdminRoleAdmin, models.AdminRoleSuperAdmin)
		}
		if target.UUID == actor.UUID && role != target.Role {
			return nil, NewBusinessError("SELF_ACTION_REJECTED", "Cannot change your own role", ErrSelfActionRejected)
		}
		target.Role = role
	}

	if req.Email != nil {
		email := models.NormalizeEmail(*req.Email)
		if email == "" {
			return nil, NewBusinessError("EMAIL_REQUIRED", "Email is required", ErrContentInvalid)
		}
		if email != target.Email {
			other, err := f.adminRepo.ByEmail(ctx, email)
			if err != nil {
				return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to check email", err)
			}
			if other != nil && other.ID != target.ID {
				return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "An admin with this email already exists", ErrEmailAlreadyExists)
			}
			target.Email = email
		}
	}

	if req.Name != nil {
		target.Name = strings.TrimSpace(*req.Name)
	}

	if req.Password != nil {
		hash, err := f.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}

	target.UpdatedAt = utils.UTCNow()
	if err := f.adminRepo.Update(ctx, target); err != nil {
		if isUniqueViolation(err) {
			return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "An admin with this email already exists", ErrEmailAlreadyExists)
		}
		return nil, NewBusinessError("ADMIN_UPDATE_FAILED", "Failed to update admin", err)
	}

	f.audit.record(ctx, &actor.ID, models.AuditActionAdminUpdated, "Admin account updated", true, nil, metadata,
		map[string]any{"target_uuid": target.UUID.String(), "password_changed": req.Password != nil})

	out := ToAdminDTO(*target)
	return &out, nil
}

// DeleteAdmin removes an account other than the caller's own
func (f *AdminManagementFlowImpl) DeleteAdmin(ctx context.Context, caller *services.SessionCredential, id uuid.UUID, metadata *ClientMetadata) error {
	actor, err := f.authorize(ctx, caller, "delete admin accounts", metadata)
	if err != nil {
		return err
	}

	if id == caller.UserID || id == actor.UUID {
		return NewBusinessError("SELF_ACTION_REJECTED", "Cannot delete your own account", ErrSelfActionRejected)
	}

	target, err := f.adminRepo.ByUUID(ctx, id)
	if err != nil {
		return NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to load admin", err)
	}
	if target == nil {
		return NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}

	deleted, err := f.adminRepo.DeleteByID(ctx, target.ID)
	if err != nil {
		return NewBusinessError("ADMIN_DELETE_FAILED", "Failed to delete admin", err)
	}
	if !deleted {
		return NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}

	f.audit.record(ctx, &actor.ID, models.AuditActionAdminDeleted, "Admin account deleted", true, nil, metadata,
		map[string]any{"target_uuid": target.UUID.String(), "target_email": target.Email})
	return nil
}

func (f *AdminManagementFlowImpl) hashPassword(password string) (string, error) {
	if len(password) < f.passwordMinLength {
		return "", NewBusinessErrorf("PASSWORD_TOO_SHORT", "Password must be at least %d characters", ErrPasswordTooShort, f.passwordMinLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), f.bcryptCost)
	if err != nil {
		return "", NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}
	return string(hash), nil
}
