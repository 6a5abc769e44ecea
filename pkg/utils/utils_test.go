package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateOrderCode(t *testing.T) {
	at := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	code := GenerateOrderCode(at)

	assert.True(t, strings.HasPrefix(code, "ORD-20240131-"))
	assert.Len(t, code, len("ORD-20240131-")+8)
	assert.NotEqual(t, code, GenerateOrderCode(at))
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()
	parsed, err := ParseUUID(" " + id.String() + " ")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseUUID("not-a-uuid")
	assert.Error(t, err)
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	access, err := m.GenerateAccessToken(userID, "op@example.com", []string{"admin"}, []string{"manage-orders"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{"manage-orders"}, claims.Permissions)
	assert.Equal(t, "salesdesk-api", claims.Issuer)

	refresh, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)
	got, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	other := NewJWTManager("other-secret", time.Hour, time.Hour)
	_, err = other.ValidateAccessToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	t.Run("token types are not interchangeable", func(t *testing.T) {
		_, err := m.ValidateAccessToken(refresh)
		assert.ErrorIs(t, err, ErrTokenInvalid)

		_, err = m.ValidateRefreshToken(access)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, time.Hour)
	token, err := m.GenerateAccessToken(uuid.New(), "op@example.com", nil, nil)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
