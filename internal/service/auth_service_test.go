package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miklean/internal/config"
	"miklean/internal/domain"
	"miklean/internal/service"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-tests",
		Issuer:    "https://auth.miklean.test",
		Audience:  "authenticated",
	}
}

func signToken(t *testing.T, secret string, claims jwt.Claims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func providerClaims(sub string, expires time.Time) *service.Claims {
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "https://auth.miklean.test",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: "owner@sparkle.test",
	}
}

func TestAuthService_ValidateToken_Success(t *testing.T) {
	cfg := testAuthConfig()
	svc := service.NewAuthService(cfg)
	bizID := uuid.New()

	token := signToken(t, cfg.JWTSecret, providerClaims(bizID.String(), time.Now().Add(time.Hour)), jwt.SigningMethodHS256)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@sparkle.test", claims.Email)
	got, err := claims.BusinessID()
	require.NoError(t, err)
	assert.Equal(t, bizID, got)
}

func TestAuthService_ValidateToken_Rejections(t *testing.T) {
	cfg := testAuthConfig()
	svc := service.NewAuthService(cfg)
	bizID := uuid.New().String()
	later := time.Now().Add(time.Hour)

	wrongAudience := providerClaims(bizID, later)
	wrongAudience.Audience = jwt.ClaimStrings{"anon"}

	noExpiry := providerClaims(bizID, later)
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{"expired", signToken(t, cfg.JWTSecret, providerClaims(bizID, time.Now().Add(-time.Minute)), jwt.SigningMethodHS256)},
		{"wrong secret", signToken(t, "other-secret", providerClaims(bizID, later), jwt.SigningMethodHS256)},
		{"wrong audience", signToken(t, cfg.JWTSecret, wrongAudience, jwt.SigningMethodHS256)},
		{"no expiry", signToken(t, cfg.JWTSecret, noExpiry, jwt.SigningMethodHS256)},
		{"non-uuid subject", signToken(t, cfg.JWTSecret, providerClaims("user-42", later), jwt.SigningMethodHS256)},
		{"other hmac", signToken(t, cfg.JWTSecret, providerClaims(bizID, later), jwt.SigningMethodHS512)},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
