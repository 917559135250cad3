package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	mgr := NewManager("secret", 15*time.Minute, 24*time.Hour)

	token, err := mgr.GenerateAccessToken("user-1", "alice", "admin")
	assert.NoError(t, err)

	claims, err := mgr.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenCarriesOnlyUserID(t *testing.T) {
	mgr := NewManager("secret", 15*time.Minute, 24*time.Hour)

	token, err := mgr.GenerateRefreshToken("user-1")
	assert.NoError(t, err)

	claims, err := mgr.VerifyRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Role)
}

func TestVerifyRefreshToken_RejectsAccessToken(t *testing.T) {
	mgr := NewManager("secret", 15*time.Minute, 24*time.Hour)

	token, err := mgr.GenerateAccessToken("user-1", "alice", "user")
	assert.NoError(t, err)

	_, err = mgr.VerifyRefreshToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_Expired(t *testing.T) {
	mgr := NewManager("secret", -time.Minute, 24*time.Hour)

	token, err := mgr.GenerateAccessToken("user-1", "alice", "user")
	assert.NoError(t, err)

	_, err = mgr.VerifyToken(token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	mgr := NewManager("secret", 15*time.Minute, 24*time.Hour)
	other := NewManager("other-secret", 15*time.Minute, 24*time.Hour)

	token, err := mgr.GenerateAccessToken("user-1", "alice", "user")
	assert.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_Garbage(t *testing.T) {
	mgr := NewManager("secret", 15*time.Minute, 24*time.Hour)

	_, err := mgr.VerifyToken("not.a.token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
