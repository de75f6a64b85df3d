package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/interfaces/http/dto"
	"github.com/shopmall/backend/internal/interfaces/http/middleware"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	return engine
}

type renameRequest struct {
	Name shared.Optional[string] `json:"name" binding:"omitempty,min=1,max=5"`
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	h := &BaseHandler{}
	engine := newEngine()
	engine.GET("/err/:kind", func(c *gin.Context) {
		switch c.Param("kind") {
		case "notfound":
			h.HandleDomainError(c, shared.NewNotFoundError("shop", 7))
		case "reference":
			h.HandleDomainError(c, shared.NewInvalidReferenceError("user not found: 3"))
		case "conflict":
			h.HandleDomainError(c, shared.NewConflictError("product exists"))
		case "denied":
			h.HandleDomainError(c, shared.NewAccessDeniedError("invalid username or password"))
		default:
			h.HandleDomainError(c, errors.New("connection reset"))
		}
	})

	tests := []struct {
		kind    string
		status  int
		code    string
		message string
	}{
		{"notfound", http.StatusBadRequest, "NOT_FOUND", "shop not found: 7"},
		{"reference", http.StatusBadRequest, "INVALID_REFERENCE", "user not found: 3"},
		{"conflict", http.StatusBadRequest, "CONFLICT", "product exists"},
		{"denied", http.StatusForbidden, "ACCESS_DENIED", "invalid username or password"},
		{"other", http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			w := testutil.Do(t, engine, http.MethodGet, "/err/"+tt.kind, nil, map[string]string{middleware.RequestIDHeader: "req-1"})
			resp := testutil.AssertErrorResponse(t, w, tt.status, tt.code)
			assert.Equal(t, tt.message, resp["message"])
			assert.Equal(t, "req-1", resp["request_id"])
		})
	}
}

func TestBaseHandler_IDs(t *testing.T) {
	h := &BaseHandler{}
	engine := newEngine()
	engine.GET("/items/:id", func(c *gin.Context) {
		if id, ok := h.PathID(c); ok {
			h.Success(c, gin.H{"id": id})
		}
	})
	engine.GET("/items/byShop", func(c *gin.Context) {
		if id, ok := h.QueryID(c, "shopId"); ok {
			h.Success(c, gin.H{"shopId": id})
		}
	})

	testutil.RunHTTPTestCases(t, engine, []testutil.HTTPTestCase{
		{Name: "valid path id", Path: "/items/12", ExpectedStatus: http.StatusOK, ExpectedBody: map[string]any{"id": float64(12)}},
		{Name: "non numeric path id", Path: "/items/abc", ExpectedStatus: http.StatusBadRequest, ExpectedBody: map[string]any{"code": "VALIDATION_ERROR", "message": "invalid id: abc"}},
		{Name: "zero path id", Path: "/items/0", ExpectedStatus: http.StatusBadRequest, ExpectedBody: map[string]any{"message": "invalid id: 0"}},
		{Name: "valid query id", Path: "/items/byShop?shopId=4", ExpectedStatus: http.StatusOK, ExpectedBody: map[string]any{"shopId": float64(4)}},
		{Name: "missing query id", Path: "/items/byShop", ExpectedStatus: http.StatusBadRequest, ExpectedBody: map[string]any{"message": "shopId is required"}},
		{Name: "negative query id", Path: "/items/byShop?shopId=-1", ExpectedStatus: http.StatusBadRequest, ExpectedBody: map[string]any{"message": "invalid shopId: -1"}},
	})
}

func TestBaseHandler_BindJSON(t *testing.T) {
	h := &BaseHandler{}
	engine := newEngine()
	engine.PUT("/rename", func(c *gin.Context) {
		var req renameRequest
		if !h.BindJSON(c, &req) {
			return
		}
		name, ok := req.Name.Get()
		h.Success(c, gin.H{"name": name, "present": ok})
	})

	t.Run("absent optional passes", func(t *testing.T) {
		w := testutil.Do(t, engine, http.MethodPut, "/rename", map[string]any{}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, testutil.JSONResponseAs[map[string]any](t, w)["present"])
	})

	t.Run("too long optional fails validation", func(t *testing.T) {
		w := testutil.Do(t, engine, http.MethodPut, "/rename", map[string]any{"name": "abcdefgh"}, nil)
		resp := testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		details, ok := resp["details"].([]any)
		if assert.True(t, ok) && assert.Len(t, details, 1) {
			assert.Equal(t, "name", details[0].(map[string]any)["field"])
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		w := testutil.Do(t, engine, http.MethodPut, "/rename", "{not json", nil)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
	})
}
