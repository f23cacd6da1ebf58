package repository

import (
	"context"
	"time"

	"github.com/amirphl/Sahel-Estates/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// AdminRepository defines operations for CMS operator accounts
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	ByUUID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	ByEmail(ctx context.Context, email string) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
	DeleteByID(ctx context.Context, id uint) (bool, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AuditLog, error)
	ListSecurityEvents(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}

// ContentListOptions narrows a content listing
type ContentListOptions struct {
	OnlyActive bool
	Limit      int
	Offset     int
}

// ContentRepository defines operations shared by every editable content section
type ContentRepository[T any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	BySlug(ctx context.Context, slug string, onlyActive bool) (*T, error)
	List(ctx context.Context, opts ContentListOptions) ([]*T, error)
	Count(ctx context.Context, opts ContentListOptions) (int64, error)
	Save(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	DeleteByID(ctx context.Context, id uint) (bool, error)
}

// NewsRepository adds pinning to the news section
type NewsRepository interface {
	ContentRepository[models.News]
	SetPinned(ctx context.Context, id uint, pinned bool) (bool, error)
}

// SingletonRepository reads and replaces a single-row settings table
type SingletonRepository[T any] interface {
	Get(ctx context.Context) (*T, error)
	Put(ctx context.Context, entity *T) error
}

// ContactMessageRepository defines operations for contact form submissions
type ContactMessageRepository interface {
	Repository[models.ContactMessage, models.ContactMessageFilter]
	MarkRead(ctx context.Context, id uint, read bool) (bool, error)
	DeleteByID(ctx context.Context, id uint) (bool, error)
}
