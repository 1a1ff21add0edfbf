package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplace/formaplace-backend/internal/config"
)

func testAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		BcryptCost:      4,
		AdminTokenTTL:   time.Hour,
		StaffTokenTTL:   2 * time.Hour,
		LearnerTokenTTL: 24 * time.Hour,
	}
	return NewAuthService(cfg)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	s := testAuthService()

	hash, err := s.HashPassword("motdepasse")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse", hash)

	assert.NoError(t, s.CheckPassword(hash, "motdepasse"))
	assert.ErrorIs(t, s.CheckPassword(hash, "autre"), ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	s := testAuthService()

	token, err := s.GenerateToken(RoleTrainer, 42)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleTrainer, claims.Role)
	assert.Equal(t, 42, claims.UserID)
}

func TestTokenExpiry(t *testing.T) {
	s := testAuthService()

	issued := time.Now()
	s.now = func() time.Time { return issued }

	token, err := s.GenerateToken(RoleAdmin, 1)
	require.NoError(t, err)

	// Still valid just before the admin TTL elapses.
	s.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = s.ValidateToken(token)
	assert.NoError(t, err)

	// Expired right after.
	s.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTTLPerRole(t *testing.T) {
	s := testAuthService()

	assert.Equal(t, time.Hour, s.TTLFor(RoleAdmin))
	assert.Equal(t, 2*time.Hour, s.TTLFor(RoleTrainer))
	assert.Equal(t, 2*time.Hour, s.TTLFor(RoleExpert))
	assert.Equal(t, 24*time.Hour, s.TTLFor(RoleLearner))
}

func TestTamperedTokenRejected(t *testing.T) {
	s := testAuthService()

	token, err := s.GenerateToken(RoleLearner, 7)
	require.NoError(t, err)

	_, err = s.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateInitialPassword(t *testing.T) {
	s := testAuthService()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pw, err := s.GenerateInitialPassword()
		require.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.False(t, seen[pw], "generated passwords must not repeat")
		seen[pw] = true
	}
}
