package cache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/infrastructure/auth"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var errRedisDisabled = errors.New("redis is disabled")

// StoreFactory creates the Redis-backed stores on one shared client, falling back
// to in-memory stores when Redis is disabled or unreachable
type StoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool

	once      sync.Once
	client    *redis.Client
	clientErr error
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores when Redis
// is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// redisClient connects on first use
func (f *StoreFactory) redisClient() (*redis.Client, error) {
	f.once.Do(func() {
		if !f.redisConfig.Enabled {
			f.clientErr = errRedisDisabled
			return
		}
		f.client, f.clientErr = NewRedisClient(f.redisConfig)
	})
	return f.client, f.clientErr
}

func (f *StoreFactory) fallback(store string, err error) error {
	if !f.allowInMemoryFallback {
		return fmt.Errorf("redis required for %s but unavailable: %w", store, err)
	}
	if errors.Is(err, errRedisDisabled) {
		f.logger.Info("Redis disabled, using in-memory store", zap.String("store", store))
		return nil
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory store. "+
		"State is not shared between instances.",
		zap.String("store", store),
		zap.Error(err),
	)
	return nil
}

// CreateIdempotencyStore returns the store used to de-duplicate payment notifications
func (f *StoreFactory) CreateIdempotencyStore() (shared.IdempotencyStore, error) {
	client, err := f.redisClient()
	if err == nil {
		f.logger.Info("Using Redis idempotency store")
		return NewRedisIdempotencyStore(client, DefaultIdempotencyKeyPrefix), nil
	}
	if err := f.fallback("idempotency", err); err != nil {
		return nil, err
	}
	return NewInMemoryIdempotencyStore(), nil
}

// CreateTokenBlacklist returns the store of revoked access tokens
func (f *StoreFactory) CreateTokenBlacklist() (auth.TokenBlacklist, error) {
	client, err := f.redisClient()
	if err == nil {
		f.logger.Info("Using Redis token blacklist")
		return auth.NewRedisTokenBlacklist(client), nil
	}
	if err := f.fallback("token blacklist", err); err != nil {
		return nil, err
	}
	return auth.NewInMemoryTokenBlacklist(), nil
}

// Client returns the shared Redis client, or nil when Redis is not in use
func (f *StoreFactory) Client() *redis.Client {
	client, _ := f.redisClient()
	return client
}

// Close closes the shared Redis client if one was opened
func (f *StoreFactory) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
