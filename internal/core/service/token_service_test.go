package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formotex/inventory-api/internal/core/domain"
)

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSigningKey)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc, err := NewTokenService("s", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, svc.ttl)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc, err := NewTokenService("s3cr3t", time.Hour)
	require.NoError(t, err)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	raw, err := svc.Issue("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.Equal(fixed.Add(time.Hour)))

	again, err := svc.Issue("user-1", domain.RoleAdmin)
	require.NoError(t, err)
	other, err := svc.Verify(again)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, other.ID, "every token needs its own id")
}

func TestTokenService_Expired(t *testing.T) {
	svc, err := NewTokenService("s3cr3t", time.Minute)
	require.NoError(t, err)
	issued := time.Now().Add(-2 * time.Minute)
	svc.now = func() time.Time { return issued }

	raw, err := svc.Issue("user-1", domain.RoleUser)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc, err := NewTokenService("s3cr3t", time.Hour)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cr3t"))
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RequiresExpiryAndSubject(t *testing.T) {
	svc, err := NewTokenService("s3cr3t", time.Hour)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString([]byte("s3cr3t"))
	require.NoError(t, err)
	_, err = svc.Verify(noExp)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("s3cr3t"))
	require.NoError(t, err)
	_, err = svc.Verify(noSub)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNewBcryptHasher_CostRange(t *testing.T) {
	_, err := NewBcryptHasher(3)
	assert.Error(t, err)
	_, err = NewBcryptHasher(32)
	assert.Error(t, err)

	h, err := NewBcryptHasher(4)
	require.NoError(t, err)
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
	assert.NoError(t, h.Compare(hash, "pw"))
	assert.Error(t, h.Compare(hash, "other"))
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	h, err := NewBcryptHasher(4)
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", domain.MaxPasswordBytes))
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", domain.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
}
