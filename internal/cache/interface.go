package cache

import (
	"context"
	"time"
)

// Cache stores encoded responses. Values must survive a JSON round trip so
// memory and Redis backends behave alike.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	SetWithTTL(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Pinger is implemented by backends that live behind a network connection.
type Pinger interface {
	Ping(ctx context.Context) error
}
