package services

import (
	"fmt"
	"time"

	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// SessionManager binds session tokens to the admin-session cookie of a request
type SessionManager interface {
	CreateSession(c fiber.Ctx, adminID uuid.UUID, email string, role models.AdminRole) (*SessionCredential, error)
	GetSession(c fiber.Ctx) *SessionCredential
	DeleteSession(c fiber.Ctx)
	CookieName() string
}

// SessionCookieConfig controls the attributes of the session cookie
type SessionCookieConfig struct {
	Name   string
	Path   string
	Domain string
	// Secure is enabled in production so the cookie never travels over plain HTTP
	Secure bool
}

// SessionManagerImpl implements SessionManager on top of a TokenService
type SessionManagerImpl struct {
	tokens TokenService
	cookie SessionCookieConfig
}

// NewSessionManager creates a new cookie-backed session manager
func NewSessionManager(tokens TokenService, cookie SessionCookieConfig) *SessionManagerImpl {
	if cookie.Name == "" {
		cookie.Name = utils.AdminSessionCookieName
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &SessionManagerImpl{
		tokens: tokens,
		cookie: cookie,
	}
}

// CookieName returns the name of the session cookie
func (m *SessionManagerImpl) CookieName() string {
	return m.cookie.Name
}

// CreateSession issues a credential and stores it in the response cookie
func (m *SessionManagerImpl) CreateSession(c fiber.Ctx, adminID uuid.UUID, email string, role models.AdminRole) (*SessionCredential, error) {
	token, err := m.tokens.Encode(SessionCredential{
		UserID: adminID,
		Email:  email,
		Role:   role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	// decoding our own token yields the authoritative issue and expiry times
	cred, err := m.tokens.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode issued session: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.cookie.Name,
		Value:    token,
		Path:     m.cookie.Path,
		Domain:   m.cookie.Domain,
		Expires:  cred.ExpiresAt,
		MaxAge:   int(m.tokens.TTL() / time.Second),
		Secure:   m.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return cred, nil
}

// GetSession returns the credential of the request, or nil when the cookie is absent or invalid
func (m *SessionManagerImpl) GetSession(c fiber.Ctx) *SessionCredential {
	raw := c.Cookies(m.cookie.Name)
	if raw == "" {
		return nil
	}

	cred, err := m.tokens.Decode(raw)
	if err != nil {
		return nil
	}
	return cred
}

// DeleteSession instructs the client to drop the session cookie
func (m *SessionManagerImpl) DeleteSession(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     m.cookie.Path,
		Domain:   m.cookie.Domain,
		Expires:  time.Unix(0, 0).UTC(),
		Secure:   m.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
