package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/infrastructure/auth"
	"github.com/shopmall/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
)

type stubAuthenticator map[string]*auth.Claims

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	if token == "revoked" {
		return nil, shared.NewAccessDeniedError("token has been revoked")
	}
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, auth.ErrInvalidToken
}

func authEngine(enabled bool, roles ...string) *gin.Engine {
	authn := stubAuthenticator{
		"admin-token":    {UserID: 1, Username: "root", Role: "admin"},
		"customer-token": {UserID: 2, Username: "amy", Role: "customer"},
	}
	r := gin.New()
	r.Use(RequestID(), RequireAuth(authn, enabled))
	handlers := []gin.HandlerFunc{}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(enabled, roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		if claims := GetClaims(c); claims != nil {
			c.String(http.StatusOK, claims.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/secret", handlers...)
	return r
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, dto.ErrCodeUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, dto.ErrCodeUnauthorized, ""},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, dto.ErrCodeUnauthorized, ""},
		{"revoked token", "Bearer revoked", http.StatusForbidden, dto.ErrCodeAccessDenied, ""},
		{"valid token", "Bearer customer-token", http.StatusOK, "", "amy"},
	}
	r := authEngine(true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secret", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
			} else {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_Disabled(t *testing.T) {
	w := httptest.NewRecorder()
	authEngine(false, "admin").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secret", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := authEngine(true, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer customer-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "insufficient role", decodeError(t, w).Message)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "root", w.Body.String())
}
