package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	memberapp "github.com/shopmall/backend/internal/application/member"
	"github.com/shopmall/backend/internal/infrastructure/auth"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/shopmall/backend/internal/interfaces/http/middleware"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountMembers(t *testing.T) (*gin.Engine, *auth.InMemoryTokenBlacklist) {
	t.Helper()
	store := testutil.NewStore(t)
	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "handler-test-secret-with-enough-bytes", AccessTokenExpiration: time.Hour, Issuer: "shopmall"})
	authService := memberapp.NewAuthService(store.Repos.Users(), jwtService, blacklist, nil)

	users := NewUserHandler(memberapp.NewUserService(store.Repos.Users(), store.Scope, nil, authService, nil))
	authHandler := NewAuthHandler(authService)
	recaptcha := NewRecaptchaHandler(memberapp.NewRecaptchaService(nil, nil))

	engine := newEngine()
	engine.POST("/api/users", users.Create)
	engine.GET("/api/users/:id", users.GetByID)
	engine.POST("/api/auth/login", authHandler.Login)
	engine.POST("/api/auth/logout", middleware.RequireAuth(authService, true), authHandler.Logout)
	engine.POST("/api/recaptcha/verify", recaptcha.Verify)
	return engine, blacklist
}

func TestAuthHandler_LoginLogout(t *testing.T) {
	engine, _ := mountMembers(t)
	username := "user_" + gofakeit.LetterN(8)
	password := gofakeit.Password(true, true, true, false, false, 12)

	w := testutil.Do(t, engine, http.MethodPost, "/api/users", map[string]any{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := testutil.JSONResponseAs[memberapp.UserResponse](t, w)
	assert.NotContains(t, w.Body.String(), "password")

	w = testutil.Do(t, engine, http.MethodPost, "/api/auth/login", map[string]any{"username": username, "password": "wrong-password"}, nil)
	testutil.AssertErrorResponse(t, w, http.StatusForbidden, "ACCESS_DENIED")

	w = testutil.Do(t, engine, http.MethodPost, "/api/auth/login", map[string]any{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := testutil.JSONResponseAs[memberapp.LoginResponse](t, w)
	assert.Equal(t, created.ID, login.User.ID)
	require.NotEmpty(t, login.AccessToken)

	bearer := map[string]string{"Authorization": "Bearer " + login.AccessToken}
	w = testutil.Do(t, engine, http.MethodPost, "/api/auth/logout", nil, bearer)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = testutil.Do(t, engine, http.MethodPost, "/api/auth/logout", nil, bearer)
	testutil.AssertErrorResponse(t, w, http.StatusForbidden, "ACCESS_DENIED")
}

func TestUserHandler_Create_Validation(t *testing.T) {
	engine, _ := mountMembers(t)

	testutil.RunHTTPTestCases(t, engine, []testutil.HTTPTestCase{
		{
			Name:           "short password",
			Method:         http.MethodPost,
			Path:           "/api/users",
			Body:           map[string]any{"username": "alice", "password": "short"},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   map[string]any{"code": "VALIDATION_ERROR"},
		},
		{
			Name:           "bad email",
			Method:         http.MethodPost,
			Path:           "/api/users",
			Body:           map[string]any{"username": "alice", "password": "long-enough-1", "email": "nope"},
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name:           "unknown user",
			Path:           "/api/users/404",
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   map[string]any{"code": "NOT_FOUND"},
		},
	})
}

func TestRecaptchaHandler_Verify(t *testing.T) {
	engine, _ := mountMembers(t)

	w := testutil.Do(t, engine, http.MethodPost, "/api/recaptcha/verify", map[string]any{"token": "anything"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, testutil.JSONResponseAs[memberapp.RecaptchaVerifyResponse](t, w).Success)
}
