package dto

type AdminDTO struct {
	ID          uint    `json:"id" example:"1"`
	UUID        string  `json:"uuid" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Email       string  `json:"email" example:"admin@sahel-estates.com"`
	Name        string  `json:"name" example:"Layla Haddad"`
	Role        string  `json:"role" example:"super_admin"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	LastLoginAt *string `json:"last_login_at,omitempty" example:"2024-01-16T08:00:00Z"`
}

// AdminLoginRequest is the payload of the login form
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"admin@sahel-estates.com"`
	Password string `json:"password" validate:"required,min=1,max=72" example:"S3curePassw0rd"`
}

type AdminSessionDTO struct {
	ExpiresAt string `json:"expires_at" example:"2024-01-16T10:30:00Z"`
	ExpiresIn int    `json:"expires_in" example:"86400"`
}

type AdminLoginResponse struct {
	Admin   AdminDTO        `json:"admin"`
	Session AdminSessionDTO `json:"session"`
}

// CreateAdminRequest creates a CMS operator account
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"editor@sahel-estates.com"`
	Name     string `json:"name" validate:"required,min=2,max=255" example:"Omar Khalil"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"An0therPassw0rd"`
	Role     string `json:"role" validate:"required,oneof=admin super_admin" example:"admin"`
}

// UpdateAdminRequest changes any subset of an account's fields
type UpdateAdminRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin super_admin"`
}
