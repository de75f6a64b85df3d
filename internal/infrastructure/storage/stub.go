package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/shopmall/backend/internal/application/media"
)

var _ media.ObjectStorageService = (*StubObjectStorage)(nil)

// StubObjectStorage hands out unsigned URLs under BaseURL. It is used when storage is disabled.
type StubObjectStorage struct {
	BaseURL string
}

// NewStubObjectStorage creates a StubObjectStorage
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:9000/shop-media"
	}
	return &StubObjectStorage{BaseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateUploadURL returns BaseURL/key with an expiry marker
func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return s.url(storageKey, expiresIn)
}

// GenerateDownloadURL returns BaseURL/key with an expiry marker
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return s.url(storageKey, expiresIn)
}

func (s *StubObjectStorage) url(storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + storageKey + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339)), expiresAt, nil
}
