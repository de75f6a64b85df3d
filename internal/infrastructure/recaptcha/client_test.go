package recaptcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.RecaptchaConfig{Enabled: true, SecretKey: "s3cret", VerifyURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(config.RecaptchaConfig{})
	assert.ErrorIs(t, err, ErrMissingSecret)

	client, err := NewClient(config.RecaptchaConfig{SecretKey: "x"})
	require.NoError(t, err)
	assert.Equal(t, DefaultVerifyURL, client.verifyURL)
}

func TestClient_Verify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"accepted", `{"success":true,"hostname":"shop.example.com"}`, true},
		{"rejected", `{"success":false,"error-codes":["invalid-input-response"]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "s3cret", r.PostForm.Get("secret"))
				assert.Equal(t, "token-1", r.PostForm.Get("response"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			ok, err := client.Verify(context.Background(), "token-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestClient_Verify_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := client.Verify(context.Background(), "t")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("garbage body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		})
		ok, err := client.Verify(context.Background(), "t")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
