package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"grinder_relay/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Credential lifetime for dashboard users.
const tokenTTL = 8 * time.Hour

// Domain errors for auth flows.
var (
	ErrAuthNotConfigured  = errors.New("auth not configured: admin credentials or jwt secret missing")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrGatewayTokenEmpty  = errors.New("gateway token missing")
	ErrGatewayForbidden   = errors.New("gateway token mismatch")
)

// AuthConfig carries the two static accounts and the signing secret. Either
// AdminPasswordHash (bcrypt) or AdminPassword (plaintext, dev only) must be
// set.
type AuthConfig struct {
	JWTSecret         string
	AdminUser         string
	AdminPasswordHash string
	AdminPassword     string
	GatewayToken      string
}

func (c AuthConfig) complete() bool {
	return c.JWTSecret != "" && c.AdminUser != "" &&
		(c.AdminPasswordHash != "" || c.AdminPassword != "")
}

// AuthService gates both trust domains: the static admin account issuing
// short-lived JWTs, and the gateway's long-lived shared secret.
type AuthService struct {
	cfg AuthConfig
}

func NewAuthService(cfg AuthConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// Claims defines JWT claims for dashboard users.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login validates the static admin credentials and returns a signed token
// plus the identity it encodes. Missing configuration surfaces as
// ErrAuthNotConfigured so the handler can report a server-side fault rather
// than a rejection.
func (s *AuthService) Login(username, password string) (string, models.UserIdentity, error) {
	if !s.cfg.complete() {
		return "", models.UserIdentity{}, ErrAuthNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUser)) != 1 {
		return "", models.UserIdentity{}, ErrInvalidCredentials
	}
	if err := s.verifyPassword(password); err != nil {
		return "", models.UserIdentity{}, ErrInvalidCredentials
	}

	identity := models.UserIdentity{Username: username, Role: models.RoleAdmin}
	token, err := s.issueToken(identity)
	if err != nil {
		return "", models.UserIdentity{}, err
	}
	return token, identity, nil
}

// ParseToken verifies a user bearer token and returns the identity.
func (s *AuthService) ParseToken(accessToken string) (models.UserIdentity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return models.UserIdentity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.UserIdentity{}, ErrInvalidToken
	}

	return models.UserIdentity{Username: claims.Username, Role: claims.Role}, nil
}

// VerifyGatewayToken checks the gateway's static shared secret by exact
// comparison. Empty input maps to ErrGatewayTokenEmpty (401), a mismatch to
// ErrGatewayForbidden (403).
func (s *AuthService) VerifyGatewayToken(token string) error {
	if token == "" {
		return ErrGatewayTokenEmpty
	}
	if s.cfg.GatewayToken == "" {
		return ErrAuthNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.GatewayToken)) != 1 {
		return ErrGatewayForbidden
	}
	return nil
}

// verifyPassword prefers the bcrypt hash; the plaintext key exists for dev
// parity with the original deployment's env-var compare.
func (s *AuthService) verifyPassword(password string) error {
	if s.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password))
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// issueToken signs a JWT carrying the identity with the configured lifetime.
func (s *AuthService) issueToken(identity models.UserIdentity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: identity.Username,
		Role:     identity.Role,
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
