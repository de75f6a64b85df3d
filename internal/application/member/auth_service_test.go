package member

import (
	"context"
	"testing"
	"time"

	"github.com/shopmall/backend/internal/application/mocks"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/infrastructure/auth"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newAuthFixture(t *testing.T) (*AuthService, *mocks.Repos, *auth.InMemoryTokenBlacklist, *observer.ObservedLogs) {
	t.Helper()
	repos := mocks.NewRepos()
	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "unit-test-secret-with-enough-bytes", AccessTokenExpiration: time.Hour, Issuer: "shopmall"})
	blacklist := auth.NewInMemoryTokenBlacklist()
	core, logs := observer.New(zap.InfoLevel)
	return NewAuthService(repos.Users, jwtService, blacklist, zap.New(core)), repos, blacklist, logs
}

func seededUser(t *testing.T) *member.User {
	t.Helper()
	user, err := member.NewUser("carol", "correct-horse")
	require.NoError(t, err)
	user.ID = 11
	user.Role = member.RoleAdmin
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := seededUser(t)

	t.Run("valid credentials", func(t *testing.T) {
		svc, repos, _, logs := newAuthFixture(t)
		repos.Users.On("FindByUsername", ctx, "carol").Return(user, nil)

		resp, err := svc.Login(ctx, LoginRequest{Username: "carol", Password: "correct-horse"})

		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(11), resp.User.ID)

		claims, err := svc.Authenticate(ctx, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, member.RoleAdmin, claims.Role)
		assert.Equal(t, 1, logs.FilterMessage("User logged in successfully").Len())
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repos, _, logs := newAuthFixture(t)
		repos.Users.On("FindByUsername", ctx, "carol").Return(user, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "carol", Password: "wrong"})

		assert.Equal(t, shared.KindAccessDenied, shared.KindOf(err))
		assert.Equal(t, 1, logs.FilterMessage("Invalid password attempt").Len())
	})

	t.Run("unknown user looks the same as a wrong password", func(t *testing.T) {
		svc, repos, _, _ := newAuthFixture(t)
		repos.Users.On("FindByUsername", ctx, "nobody").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "x"})

		assert.EqualError(t, err, "invalid username or password")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, repos, blacklist, _ := newAuthFixture(t)
	repos.Users.On("FindByUsername", ctx, "carol").Return(seededUser(t), nil)

	resp, err := svc.Login(ctx, LoginRequest{Username: "carol", Password: "correct-horse"})
	require.NoError(t, err)
	claims, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, _ := blacklist.IsBlacklisted(ctx, claims.ID)
	assert.True(t, revoked)
	_, err = svc.Authenticate(ctx, resp.AccessToken)
	assert.EqualError(t, err, "token has been revoked")
}

func TestAuthService_InvalidateUser(t *testing.T) {
	ctx := context.Background()
	svc, _, blacklist, _ := newAuthFixture(t)

	require.NoError(t, svc.InvalidateUser(ctx, 11))

	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, 11, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, invalidated)
}

func TestAuthService_Authenticate_RejectsGarbage(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Authenticate(context.Background(), "garbage")

	assert.Equal(t, shared.KindAccessDenied, shared.KindOf(err))
}

func TestRecaptchaService(t *testing.T) {
	ctx := context.Background()

	disabled := NewRecaptchaService(nil, nil)
	assert.False(t, disabled.Enabled())
	assert.True(t, disabled.Verify(ctx, RecaptchaVerifyRequest{Token: "x"}).Success)
	assert.NoError(t, disabled.Require(ctx, ""))

	var nilService *RecaptchaService
	assert.NoError(t, nilService.Require(ctx, ""))

	enabled := NewRecaptchaService(&stubCaptcha{ok: true}, nil)
	assert.True(t, enabled.Verify(ctx, RecaptchaVerifyRequest{Token: "x"}).Success)
	assert.NoError(t, enabled.Require(ctx, "x"))
}
