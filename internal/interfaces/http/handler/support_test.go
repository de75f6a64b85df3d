package handler

import (
	"fmt"
	"net/http"
	"testing"

	supportapp "github.com/shopmall/backend/internal/application/support"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatHandler(t *testing.T) {
	store := testutil.NewStore(t)
	h := NewChatHandler(supportapp.NewChatMessageService(store.Repos.ChatMessages(), store.Repos.Shops(), store.Repos.Users(), store.Scope))
	engine := newEngine()
	g := engine.Group("/api/chats")
	g.POST("", h.Create)
	g.GET("/byShop", h.GetByShop)
	g.GET("/byUser", h.GetByUser)
	g.GET("/byShopAndUser", h.GetByShopAndUser)

	owner := store.SeedUser(t)
	shop := store.SeedShop(t, owner.ID)
	alice := store.SeedUser(t)
	bob := store.SeedUser(t)

	for _, msg := range []struct {
		userID int64
		sender string
	}{{alice.ID, "user"}, {alice.ID, "shop"}, {bob.ID, "user"}} {
		w := testutil.Do(t, engine, http.MethodPost, "/api/chats",
			map[string]any{"shopId": shop.ID, "userId": msg.userID, "sender": msg.sender, "content": "hello"}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := testutil.Do(t, engine, http.MethodGet, fmt.Sprintf("/api/chats/byShop?shopId=%d", shop.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.JSONResponseAs[[]supportapp.ChatMessageResponse](t, w), 3)

	w = testutil.Do(t, engine, http.MethodGet, fmt.Sprintf("/api/chats/byShopAndUser?shopId=%d&userId=%d", shop.ID, alice.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	conversation := testutil.JSONResponseAs[[]supportapp.ChatMessageResponse](t, w)
	require.Len(t, conversation, 2)
	for _, m := range conversation {
		assert.Equal(t, alice.ID, m.UserID)
	}

	testutil.RunHTTPTestCases(t, engine, []testutil.HTTPTestCase{
		{
			Name:           "missing user id",
			Path:           fmt.Sprintf("/api/chats/byShopAndUser?shopId=%d", shop.ID),
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   map[string]any{"message": "userId is required"},
		},
		{
			Name:           "bad sender",
			Method:         http.MethodPost,
			Path:           "/api/chats",
			Body:           map[string]any{"shopId": shop.ID, "userId": bob.ID, "sender": "bot", "content": "hi"},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   map[string]any{"code": "VALIDATION_ERROR"},
		},
		{
			Name:           "unknown shop",
			Method:         http.MethodPost,
			Path:           "/api/chats",
			Body:           map[string]any{"shopId": 999, "userId": bob.ID, "sender": "user", "content": "hi"},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   map[string]any{"code": "INVALID_REFERENCE"},
		},
	})
}
