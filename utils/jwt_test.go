package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("secret", time.Hour, "Deepa", "deepa@example.com", "555-123-4567", "user")
	require.NoError(t, err)

	claims, err := ValidateJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "Deepa", claims.Name)
	assert.Equal(t, "deepa@example.com", claims.Email)
	assert.Equal(t, "555-123-4567", claims.PhoneNumber)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", time.Hour, "Deepa", "deepa@example.com", "", "user")
	require.NoError(t, err)

	_, err = ValidateJWT("other-secret", token)
	assert.Error(t, err)
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT("secret", -time.Minute, "Deepa", "deepa@example.com", "", "user")
	require.NoError(t, err)

	_, err = ValidateJWT("secret", token)
	require.Error(t, err)

	ve, ok := err.(*jwt.ValidationError)
	require.True(t, ok)
	assert.NotZero(t, ve.Errors&jwt.ValidationErrorExpired)
}

func TestDecodeJWTWithoutSecret(t *testing.T) {
	token, err := GenerateJWT("secret", time.Hour, "Deepa", "deepa@example.com", "", "admin")
	require.NoError(t, err)

	claims, err := DecodeJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}
