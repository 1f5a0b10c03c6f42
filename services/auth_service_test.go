package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
)

const testSecret = "test-secret"

// signToken, harici auth platformunun ürettiği token'ı simüle eder.
func signToken(t *testing.T, secret string, claims *models.TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	svc := NewAuthService(testSecret)

	tokenString := signToken(t, testSecret, &models.TokenClaims{
		UserID:   "u-1",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewAuthService(testSecret)

	tokenString := signToken(t, "other-secret", &models.TokenClaims{
		UserID: "u-1", Username: "alice",
	})

	_, err := svc.ValidateToken(tokenString)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(testSecret)

	tokenString := signToken(t, testSecret, &models.TokenClaims{
		UserID:   "u-1",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := svc.ValidateToken(tokenString)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestValidateTokenMissingClaims(t *testing.T) {
	svc := NewAuthService(testSecret)

	// user_id olmayan token geçersizdir — imza doğru olsa bile.
	tokenString := signToken(t, testSecret, &models.TokenClaims{Username: "alice"})

	_, err := svc.ValidateToken(tokenString)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(testSecret)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}
