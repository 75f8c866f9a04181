// internal/utils/jwt_test.go
package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodmarket/marketplace-backend/internal/models"
)

func testUser() *models.User {
	return &models.User{
		BaseModel:  models.BaseModel{ID: uuid.New()},
		Email:      "user@example.test",
		Role:       models.RoleEditor,
		BusinessID: uuid.New(),
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	manager := NewJWTManager("secret", 15*time.Minute, 24*time.Hour)
	user := testUser()

	access, refresh, err := manager.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := manager.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleEditor, claims.Role)
	assert.Equal(t, user.BusinessID, claims.BusinessID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret", 15*time.Minute, 24*time.Hour)
	other := NewJWTManager("different", 15*time.Minute, 24*time.Hour)

	access, _, err := manager.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute, 24*time.Hour)

	access, _, err := manager.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = manager.ValidateToken(access)
	assert.Error(t, err)
}

func TestRefreshTokenAudience(t *testing.T) {
	manager := NewJWTManager("secret", 15*time.Minute, 24*time.Hour)

	access, refresh, err := manager.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(refresh)
	assert.NoError(t, err)

	_, err = manager.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestGenerateTemporaryPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pw, err := GenerateTemporaryPassword(12)
		require.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.False(t, seen[pw], "temporary passwords should not repeat")
		seen[pw] = true
	}

	// Short lengths are bumped to the minimum.
	pw, err := GenerateTemporaryPassword(4)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
}
