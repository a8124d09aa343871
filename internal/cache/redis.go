package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisOpTimeout   = 2 * time.Second
	redisDialTimeout = 5 * time.Second
	defaultPrefix    = "realssa-news:"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key. Defaults to "realssa-news:".
	Prefix string
}

// RedisCache keeps encoded responses outside the process. Values are stored
// as JSON, so a string comes back as a string and a struct as a map.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis connects and pings before returning. The client is closed when the
// ping fails.
func NewRedis(cfg RedisConfig, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: redisDialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisCache{client: client, ttl: ttl, prefix: prefix}, nil
}

// op bounds a single command.
func (c *RedisCache) op() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisOpTimeout)
}

func (c *RedisCache) Get(key string) (interface{}, bool) {
	ctx, cancel := c.op()
	defer cancel()

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var value interface{}
	if json.Unmarshal(data, &value) != nil {
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value for ttl. Zero ttl means no expiry, matching
// go-redis; a negative ttl removes the key.
func (c *RedisCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl < 0 {
		c.Delete(key)
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	ctx, cancel := c.op()
	defer cancel()
	c.client.Set(ctx, c.prefix+key, data, ttl)
}

func (c *RedisCache) Delete(key string) {
	ctx, cancel := c.op()
	defer cancel()
	c.client.Del(ctx, c.prefix+key)
}

// Clear removes every key under the prefix and nothing else.
func (c *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*redisOpTimeout)
	defer cancel()

	var batch []string
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			c.client.Del(ctx, batch...)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		c.client.Del(ctx, batch...)
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache  = (*RedisCache)(nil)
	_ Pinger = (*RedisCache)(nil)
)
