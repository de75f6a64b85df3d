// Package media issues presigned URLs for product images and shop logos.
package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopmall/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Image content types accepted for upload. SVG is excluded since it can carry scripts.
var AllowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectStorageService is implemented by the infrastructure layer (S3 or the local stub)
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL and its expiration time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL and its expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// Config holds the URL lifetimes
type Config struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

// UploadURLRequest asks for a presigned upload URL
type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// UploadURLResponse carries the presigned PUT URL and the key to store on the entity afterwards
type UploadURLResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service signs image URLs
type Service struct {
	storage ObjectStorageService
	config  Config
	logger  *zap.Logger
}

// NewService creates a new media Service
func NewService(storage ObjectStorageService, config Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{storage: storage, config: config, logger: logger}
}

// UploadURL generates a storage key under folder/ownerID and a presigned PUT URL for it
func (s *Service) UploadURL(ctx context.Context, folder string, ownerID int64, req UploadURLRequest) (*UploadURLResponse, error) {
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, ok := AllowedContentTypes[contentType]
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("content type '%s' is not allowed", req.ContentType))
	}

	key := path.Join(folder, fmt.Sprint(ownerID), uuid.NewString()+ext)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}
	return &UploadURLResponse{
		Key:       key,
		UploadURL: url,
		Method:    "PUT",
		ExpiresAt: expiresAt,
	}, nil
}

// DownloadURL returns a presigned GET URL for key, or "" when key is empty or signing fails.
// A nil Service always returns "".
func (s *Service) DownloadURL(ctx context.Context, key string) string {
	if s == nil || key == "" {
		return ""
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, key, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Warn("Failed to sign download url", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}
