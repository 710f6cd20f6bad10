package service

import (
	"errors"
	"testing"

	"grinder_relay/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func completeAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:     "test-secret",
		AdminUser:     "admin",
		AdminPassword: "hunter2",
		GatewayToken:  "gw-token",
	}
}

func TestAuthService_Login_NotConfigured(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  AuthConfig
	}{
		{"empty config", AuthConfig{}},
		{"missing secret", AuthConfig{AdminUser: "admin", AdminPassword: "x"}},
		{"missing password", AuthConfig{JWTSecret: "s", AdminUser: "admin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAuthService(tc.cfg)
			_, _, err := svc.Login("admin", "x")
			if !errors.Is(err, ErrAuthNotConfigured) {
				t.Fatalf("expected ErrAuthNotConfigured, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(completeAuthConfig())

	if _, _, err := svc.Login("intruder", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong username: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(completeAuthConfig())

	token, user, err := svc.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "admin" || user.Role != models.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", user)
	}

	parsed, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if parsed != user {
		t.Fatalf("identity did not round-trip: %+v vs %+v", parsed, user)
	}
}

func TestAuthService_Login_BcryptHash(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	cfg := completeAuthConfig()
	cfg.AdminPassword = ""
	cfg.AdminPasswordHash = string(hash)
	svc := NewAuthService(cfg)

	if _, _, err := svc.Login("admin", "hunter2"); err != nil {
		t.Fatalf("Login with hashed password: %v", err)
	}
	if _, _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ParseToken_RejectsForeignSecret(t *testing.T) {
	t.Parallel()

	issuer := NewAuthService(completeAuthConfig())
	token, _, err := issuer.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := completeAuthConfig()
	other.JWTSecret = "different-secret"
	verifier := NewAuthService(other)

	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}

func TestAuthService_VerifyGatewayToken(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(completeAuthConfig())

	if err := svc.VerifyGatewayToken("gw-token"); err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if err := svc.VerifyGatewayToken(""); !errors.Is(err, ErrGatewayTokenEmpty) {
		t.Fatalf("expected ErrGatewayTokenEmpty, got %v", err)
	}
	if err := svc.VerifyGatewayToken("nope"); !errors.Is(err, ErrGatewayForbidden) {
		t.Fatalf("expected ErrGatewayForbidden, got %v", err)
	}

	unconfigured := NewAuthService(AuthConfig{})
	if err := unconfigured.VerifyGatewayToken("anything"); !errors.Is(err, ErrAuthNotConfigured) {
		t.Fatalf("expected ErrAuthNotConfigured, got %v", err)
	}
}
