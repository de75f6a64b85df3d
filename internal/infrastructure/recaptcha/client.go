// Package recaptcha verifies Google reCAPTCHA tokens against the siteverify endpoint.
package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopmall/backend/internal/infrastructure/config"
)

// DefaultVerifyURL is Google's siteverify endpoint
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

var (
	// ErrMissingSecret is returned when the client is built without a secret key
	ErrMissingSecret = errors.New("recaptcha: missing secret key")
	// ErrUnavailable wraps transport failures talking to the verify endpoint
	ErrUnavailable = errors.New("recaptcha: verify endpoint unavailable")
)

type verifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Client calls the siteverify endpoint
type Client struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
}

// NewClient creates a reCAPTCHA client from configuration
func NewClient(cfg config.RecaptchaConfig) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		secret:     cfg.SecretKey,
		verifyURL:  verifyURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Verify reports whether Google accepted the token. A rejected token is (false, nil);
// an error means the answer could not be obtained.
func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("recaptcha: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 16<<10)).Decode(&out); err != nil {
		return false, fmt.Errorf("recaptcha: failed to decode response: %w", err)
	}
	return out.Success, nil
}
