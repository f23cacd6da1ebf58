package businessflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdminInput describes an account created outside an admin session
type SeedAdminInput struct {
	Email    string
	Password string
	Name     string
	Role     models.AdminRole
}

// AdminSeeder creates accounts from trusted operator tooling (startup bootstrap, sahelctl)
type AdminSeeder struct {
	adminRepo         repository.AdminRepository
	audit             auditRecorder
	bcryptCost        int
	passwordMinLength int
	logger            *slog.Logger
}

func NewAdminSeeder(adminRepo repository.AdminRepository, auditRepo repository.AuditLogRepository, bcryptCost, passwordMinLength int, logger *slog.Logger) *AdminSeeder {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if passwordMinLength <= 0 {
		passwordMinLength = 8
	}
	return &AdminSeeder{
		adminRepo:         adminRepo,
		audit:             auditRecorder{repo: auditRepo, logger: logger},
		bcryptCost:        bcryptCost,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

// Create inserts a new account
func (s *AdminSeeder) Create(ctx context.Context, in SeedAdminInput) (*models.Admin, error) {
	if in.Role == "" {
		in.Role = models.AdminRoleAdmin
	}
	if !in.Role.IsValid() {
		return nil, NewBusinessErrorf("INVALID_ROLE", "Role must be one of: %s, %s", ErrInvalidRole, models.AdminRoleAdmin, models.AdminRoleSuperAdmin)
	}
	email := models.NormalizeEmail(in.Email)
	if email == "" {
		return nil, NewBusinessError("EMAIL_REQUIRED", "Email is required", ErrContentInvalid)
	}
	if len(in.Password) < s.passwordMinLength {
		return nil, NewBusinessErrorf("PASSWORD_TOO_SHORT", "Password must be at least %d characters", ErrPasswordTooShort, s.passwordMinLength)
	}

	existing, err := s.adminRepo.ByEmail(ctx, email)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to check email", err)
	}
	if existing != nil {
		return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "An admin with this email already exists", ErrEmailAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	admin := &models.Admin{
		UUID:         uuid.New(),
		Email:        email,
		Name:         name,
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    utils.UTCNow(),
	}
	admin.UpdatedAt = admin.CreatedAt

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		if isUniqueViolation(err) {
			return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "An admin with this email already exists", ErrEmailAlreadyExists)
		}
		return nil, NewBusinessError("ADMIN_CREATE_FAILED", "Failed to create admin", err)
	}

	s.audit.record(ctx, nil, models.AuditActionAdminCreated, "Admin account seeded", true, nil, nil,
		map[string]any{"target_uuid": admin.UUID.String(), "role": string(admin.Role)})
	return admin, nil
}

// EnsureSuperAdmin creates the bootstrap account when no super admin exists yet.
// It reports whether an account was created.
func (s *AdminSeeder) EnsureSuperAdmin(ctx context.Context, in SeedAdminInput) (bool, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return false, nil
	}

	role := models.AdminRoleSuperAdmin
	exists, err := s.adminRepo.Exists(ctx, models.AdminFilter{Role: &role})
	if err != nil {
		return false, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to look up super admins", err)
	}
	if exists {
		return false, nil
	}

	in.Role = models.AdminRoleSuperAdmin
	admin, err := s.Create(ctx, in)
	if err != nil {
		return false, err
	}
	s.logger.Info("Bootstrap super admin created", "email", admin.Email, "uuid", admin.UUID)
	return true, nil
}

// List returns every account, newest first
func (s *AdminSeeder) List(ctx context.Context) ([]*models.Admin, error) {
	admins, err := s.adminRepo.ByFilter(ctx, models.AdminFilter{}, "created_at DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LIST_FAILED", "Failed to list admins", err)
	}
	return admins, nil
}
