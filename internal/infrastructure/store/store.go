package store

import (
	"context"
	"fmt"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/rs/zerolog"
)

// Store types accepted in configuration
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// Store is a KeyValueStore that holds resources until closed
type Store interface {
	domain.KeyValueStore
	Close() error
}

// Config selects and configures a store
type Config struct {
	Type     string
	RedisURL string
}

// New builds the store named by cfg.Type
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (Store, error) {
	switch cfg.Type {
	case "", TypeMemory:
		return NewMemoryStore(), nil
	case TypeRedis:
		return NewRedisStore(ctx, RedisConfig{URL: cfg.RedisURL}, logger)
	}
	return nil, fmt.Errorf("unknown store type %q", cfg.Type)
}
