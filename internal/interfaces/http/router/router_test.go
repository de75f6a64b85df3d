package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "/api", r.prefix)
	assert.Empty(t, r.registrars)
}

func TestRouterWithPrefix(t *testing.T) {
	r := NewRouter(gin.New(), WithPrefix("/internal"))
	assert.Equal(t, "/internal", r.prefix)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	NewRouter(engine).Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		reply := func(status int) gin.HandlerFunc {
			return func(c *gin.Context) { c.Status(status) }
		}
		g := NewDomainGroup("test", "/test").
			GET("/items", reply(http.StatusOK)).
			POST("/items", reply(http.StatusCreated)).
			PUT("/items/:id", reply(http.StatusAccepted)).
			DELETE("/items/:id", reply(http.StatusNoContent))
		g.RegisterRoutes(engine.Group("/api"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/test/items").Code)
		assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/test/items").Code)
		assert.Equal(t, http.StatusAccepted, serve(engine, http.MethodPut, "/api/test/items/1").Code)
		assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodDelete, "/api/test/items/1").Code)
	})

	t.Run("group middleware runs for every route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test").
			Use(func(c *gin.Context) {
				c.Header("X-Group", "yes")
				c.Next()
			}).
			GET("/a", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group(""))

		w := serve(engine, http.MethodGet, "/test/a")
		assert.Equal(t, "yes", w.Header().Get("X-Group"))
	})

	t.Run("write guards skip reads", func(t *testing.T) {
		engine := gin.New()
		deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g := NewDomainGroup("test", "/test").
			GET("/x", ok).
			POST("/x", ok).
			PUT("/x", ok).
			DELETE("/x", ok).
			GuardWrites(deny)
		g.RegisterRoutes(engine.Group(""))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/test/x").Code)
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			assert.Equal(t, http.StatusForbidden, serve(engine, method, "/test/x").Code, method)
		}
	})
}

type recordingEntity struct{}

func (recordingEntity) GetAll(c *gin.Context)  { c.String(http.StatusOK, "all") }
func (recordingEntity) GetByID(c *gin.Context) { c.String(http.StatusOK, "one "+c.Param("id")) }
func (recordingEntity) Create(c *gin.Context)  { c.String(http.StatusCreated, "create") }
func (recordingEntity) Update(c *gin.Context)  { c.String(http.StatusOK, "update "+c.Param("id")) }
func (recordingEntity) Delete(c *gin.Context)  { c.Status(http.StatusNoContent) }

func TestEntity(t *testing.T) {
	g := Entity("shops", "/shops", recordingEntity{}).
		GET("/byOwner", func(c *gin.Context) { c.String(http.StatusOK, "owner "+c.Query("ownerId")) })

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/all"},
		{Method: http.MethodGet, Path: "/:id"},
		{Method: http.MethodPost, Path: ""},
		{Method: http.MethodPut, Path: "/:id"},
		{Method: http.MethodDelete, Path: "/:id"},
		{Method: http.MethodGet, Path: "/byOwner"},
	}, g.Routes())

	engine := gin.New()
	NewRouter(engine).Register(g).Setup()

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/api/shops/all", http.StatusOK, "all"},
		{http.MethodGet, "/api/shops/7", http.StatusOK, "one 7"},
		{http.MethodGet, "/api/shops/byOwner?ownerId=3", http.StatusOK, "owner 3"},
		{http.MethodPost, "/api/shops", http.StatusCreated, "create"},
		{http.MethodPut, "/api/shops/7", http.StatusOK, "update 7"},
		{http.MethodDelete, "/api/shops/7", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, tt.status, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.body, w.Body.String(), "%s %s", tt.method, tt.path)
	}
}
