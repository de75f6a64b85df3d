package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "shopmall-test"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                testIssuer,
	})
}

// sign builds a token from claims that pass every check except the ones mutate breaks
func sign(t *testing.T, svc *JWTService, mutate func(*Claims)) string {
	t.Helper()
	now := time.Now()
	c := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testIssuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
		UserID: 1,
	}
	if mutate != nil {
		mutate(c)
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(svc.secret)
	require.NoError(t, err)
	return raw
}

func TestNewJWTService_DefaultExpiration(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s"})
	assert.Equal(t, time.Hour, svc.Expiration())
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateAccessToken(42, "alice", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 2*time.Second)

	claims, err := svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.RemainingTTL(), 14*time.Minute)
	assert.False(t, claims.IssuedAtTime().IsZero())
}

func TestGenerateAccessToken_WithoutIssuer(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-ch"})

	token, err := svc.GenerateAccessToken(7, "carol", "customer")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.Issuer)
	assert.Empty(t, claims.Audience)
}

func TestGenerateAccessToken_UniqueJTI(t *testing.T) {
	svc := newTestJWTService()

	a, err := svc.GenerateAccessToken(1, "a", "customer")
	require.NoError(t, err)
	b, err := svc.GenerateAccessToken(1, "a", "customer")
	require.NoError(t, err)

	ca, _ := svc.ValidateAccessToken(a.Token)
	cb, _ := svc.ValidateAccessToken(b.Token)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidateAccessToken_Errors(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-ch", Issuer: testIssuer})

	foreign, err := other.GenerateAccessToken(1, "bob", "customer")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not.a.token", ErrInvalidToken},
		{"empty", "", ErrInvalidToken},
		{"wrong secret", foreign.Token, ErrInvalidToken},
		{"expired", sign(t, svc, func(c *Claims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		}), ErrExpiredToken},
		{"not yet valid", sign(t, svc, func(c *Claims) {
			c.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
		}), ErrTokenNotYetValid},
		{"no expiry", sign(t, svc, func(c *Claims) { c.ExpiresAt = nil }), ErrInvalidToken},
		{"other issuer", sign(t, svc, func(c *Claims) { c.Issuer = "someone-else" }), ErrInvalidToken},
		{"other audience", sign(t, svc, func(c *Claims) { c.Audience = jwt.ClaimStrings{"admin-panel"} }), ErrInvalidToken},
		{"missing user", sign(t, svc, func(c *Claims) { c.UserID = 0 }), ErrMissingUserID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateAccessToken_UsesServiceClock(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateAccessToken(3, "dave", "customer")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(14 * time.Minute) }
	_, err = svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = svc.ValidateAccessToken(token.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_RejectsNonHMAC(t *testing.T) {
	svc := newTestJWTService()
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_RemainingTTLNeverNegative(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}}
	assert.Equal(t, time.Duration(0), c.RemainingTTL())
	assert.Equal(t, time.Duration(0), (&Claims{}).RemainingTTL())
}
