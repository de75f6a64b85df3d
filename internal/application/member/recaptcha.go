package member

import (
	"context"

	"github.com/shopmall/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CaptchaVerifier checks a client captcha token with the provider
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

var errCaptchaFailed = shared.NewValidationError("recaptcha verification failed")

// RecaptchaService exposes captcha verification to clients and to sign-up
type RecaptchaService struct {
	verifier CaptchaVerifier
	logger   *zap.Logger
}

// NewRecaptchaService creates a RecaptchaService. A nil verifier disables checks.
func NewRecaptchaService(verifier CaptchaVerifier, logger *zap.Logger) *RecaptchaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecaptchaService{verifier: verifier, logger: logger}
}

// Enabled reports whether tokens are actually checked
func (s *RecaptchaService) Enabled() bool {
	return s != nil && s.verifier != nil
}

// Verify answers the standalone verification endpoint. Provider errors count as failure.
func (s *RecaptchaService) Verify(ctx context.Context, req RecaptchaVerifyRequest) RecaptchaVerifyResponse {
	if !s.Enabled() {
		return RecaptchaVerifyResponse{Success: true}
	}
	ok, err := s.verifier.Verify(ctx, req.Token)
	if err != nil {
		s.logger.Warn("reCAPTCHA verification error", zap.Error(err))
		return RecaptchaVerifyResponse{Success: false}
	}
	return RecaptchaVerifyResponse{Success: ok}
}

// Require fails with a validation error unless the token verifies
func (s *RecaptchaService) Require(ctx context.Context, token string) error {
	if !s.Enabled() {
		return nil
	}
	if token == "" {
		return shared.NewValidationError("recaptchaToken is required")
	}
	if !s.Verify(ctx, RecaptchaVerifyRequest{Token: token}).Success {
		return errCaptchaFailed
	}
	return nil
}
