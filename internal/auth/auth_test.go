package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)

	hash, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "hunter2"))
	assert.Error(t, hasher.Compare(hash, "wrong"))
}

func TestBcryptHasherRejectsEmptyPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)
	_, err := hasher.Hash("")
	assert.Error(t, err)
}

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute)

	token, err := svc.GenerateToken()
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, OperatorRole, claims.Role)
}

func TestTokenServiceRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Minute).GenerateToken()
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Minute).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	// constructor clamps non-positive TTLs to an hour, so expire manually
	svc.expiresIn = -time.Minute

	token, err := svc.GenerateToken()
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

// low cost keeps the bcrypt tests fast
const bcryptTestCost = 4
