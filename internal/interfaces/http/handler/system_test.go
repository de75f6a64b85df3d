package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopmall/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

func TestHealthHandler(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		ping   error
		status int
		want   HealthResponse
	}{
		{"healthy", nil, http.StatusOK, HealthResponse{Status: "healthy", Time: "2026-03-01T08:00:00Z", Database: "ok"}},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Time: "2026-03-01T08:00:00Z", Database: "error"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(pingerFunc(func() error { return tt.ping }))
			h.now = func() time.Time { return fixed }
			engine := newEngine()
			engine.GET("/health", h.Health)

			w := testutil.Do(t, engine, http.MethodGet, "/health", nil, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.want, testutil.JSONResponseAs[HealthResponse](t, w))
		})
	}
}

func TestHealthHandler_SQLHandle(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	engine := newEngine()
	engine.GET("/health", NewHealthHandler(mdb.SqlDB).Health)

	w := testutil.Do(t, engine, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", testutil.JSONResponseAs[HealthResponse](t, w).Status)

	mdb.Mock.ExpectClose()
	require.NoError(t, mdb.SqlDB.Close())
	w = testutil.Do(t, engine, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
