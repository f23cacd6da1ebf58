package utils

import (
	"time"
)

// Session constants
const (
	// AdminSessionCookieName is the cookie carrying the signed admin session token
	AdminSessionCookieName = "admin-session"

	// AdminSessionTTL is the lifetime of an admin session (24 hours)
	AdminSessionTTL = 24 * time.Hour

	// DevelopmentSessionSecret is used only when no secret is configured outside production
	DevelopmentSessionSecret = "sahel-estates-development-session-secret"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Upload limits
const (
	MaxImageUploadBytes = 10 << 20
	MaxVideoUploadBytes = 100 << 20
)

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Public content cache
const (
	PublicContentCacheTTL = 10 * time.Minute
)
