// Package models contains domain entities of the estates CMS
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminRole is the privilege level of a CMS operator
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

// IsValid checks if the role is one of the known roles
func (r AdminRole) IsValid() bool {
	switch r {
	case AdminRoleAdmin, AdminRoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for AdminRole.
func (r *AdminRole) Scan(value any) error {
	if value == nil {
		*r = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*r = AdminRole(v)
	case []byte:
		*r = AdminRole(string(v))
	default:
		return fmt.Errorf("cannot scan %T into AdminRole", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for AdminRole.
func (r AdminRole) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid AdminRole: %s", r)
	}
	return string(r), nil
}

type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_admins_uuid" json:"uuid"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uk_admins_email" json:"email"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Role         AdminRole `gorm:"type:admin_role_enum;not null;default:admin;index:idx_admins_role" json:"role"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_admins_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `gorm:"index:idx_admins_last_login_at" json:"last_login_at,omitempty"`
}

func (Admin) TableName() string {
	return "admins"
}

// BeforeCreate ensures UUID, normalized email and timestamps are set.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	a.Email = NormalizeEmail(a.Email)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	return nil
}

func (a *Admin) IsSuperAdmin() bool {
	return a != nil && a.Role == AdminRoleSuperAdmin
}

// NormalizeEmail lowercases and trims an email address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AdminFilter represents filter criteria for admin queries
type AdminFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Email         *string
	Role          *AdminRole
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
