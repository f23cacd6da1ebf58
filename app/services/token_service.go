// Package services provides technical concerns like session tokens, cookies, storage and caching
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid is the only failure Decode reports. Bad signatures, malformed input,
// unexpected algorithms and expired tokens all map to it.
var ErrTokenInvalid = errors.New("invalid token")

// DefaultSessionTTL is the lifetime of an admin session credential
const DefaultSessionTTL = 24 * time.Hour

// SessionCredential is the payload carried inside a signed session token
type SessionCredential struct {
	UserID    uuid.UUID
	Email     string
	Role      models.AdminRole
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsSuperAdmin reports whether the credential claims the super_admin role.
// Authorization decisions must use the persisted role, not this one.
func (s *SessionCredential) IsSuperAdmin() bool {
	return s != nil && s.Role == models.AdminRoleSuperAdmin
}

// TokenService encodes and decodes admin session tokens
type TokenService interface {
	Encode(cred SessionCredential) (string, error)
	Decode(token string) (*SessionCredential, error)
	TTL() time.Duration
}

// sessionClaims is the wire form of SessionCredential
type sessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenServiceImpl implements TokenService with HS256 compact JWS tokens
type TokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
	now       func() time.Time
	parser    *jwt.Parser
}

// TokenOption customizes a TokenServiceImpl
type TokenOption func(*TokenServiceImpl)

// WithClock replaces the wall clock used for issuing and validating tokens
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIssuer sets the iss claim written into every token
func WithIssuer(issuer string) TokenOption {
	return func(s *TokenServiceImpl) {
		s.issuer = issuer
	}
}

// NewTokenService creates a new token service
func NewTokenService(secretKey string, ttl time.Duration, opts ...TokenOption) (*TokenServiceImpl, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	s := &TokenServiceImpl{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       utils.UTCNow,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)

	return s, nil
}

// TTL returns how long issued tokens stay valid
func (s *TokenServiceImpl) TTL() time.Duration {
	return s.ttl
}

// Encode signs a credential. IssuedAt and ExpiresAt are always set from the service clock.
func (s *TokenServiceImpl) Encode(cred SessionCredential) (string, error) {
	if cred.UserID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}
	if !cred.Role.IsValid() {
		return "", fmt.Errorf("unknown role %q", cred.Role)
	}

	now := s.now()
	claims := sessionClaims{
		UserID: cred.UserID.String(),
		Email:  cred.Email,
		Role:   string(cred.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns its credential, or ErrTokenInvalid
func (s *TokenServiceImpl) Decode(token string) (*SessionCredential, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenInvalid
	}

	claims := &sessionClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return nil, ErrTokenInvalid
	}
	role := models.AdminRole(claims.Role)
	if claims.Email == "" || !role.IsValid() || claims.IssuedAt == nil {
		return nil, ErrTokenInvalid
	}

	return &SessionCredential{
		UserID:    userID,
		Email:     claims.Email,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
