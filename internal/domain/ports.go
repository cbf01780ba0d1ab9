package domain

import (
	"context"
	"time"
)

// APIClient defines the interface for talking to the upstream pet-care API
type APIClient interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
	Token() string
}

// KeyValueStore defines the interface for opaque blob persistence
type KeyValueStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// StandardsCache defines the interface for caching fetched nutritional standards
type StandardsCache interface {
	Get(ctx context.Context, key string) ([]NutritionalStandard, error)
	Set(ctx context.Context, key string, standards []NutritionalStandard, ttl time.Duration) error
}

// WeightCache reports whether local weight data exists for a pet.
// The sync scheduler consults it on each pass.
type WeightCache interface {
	HasCachedData(petID string) bool
}
