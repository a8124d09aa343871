package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zagzy8776/realssa-news-agg/internal/scheduler"
	"github.com/zagzy8776/realssa-news-agg/internal/sources"
)

// Config holds all application configuration. It is built once at startup
// and passed by pointer; nothing mutates it afterwards.
type Config struct {
	Server  ServerConfig
	Fetch   FetchConfig
	Feeds   FeedsConfig
	Cache   CacheConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr           string
	MCPMode            bool
	RefreshOnceMode    bool
	RequestRate        float64
	RequestBurst       int
	NotificationWindow time.Duration
}

// FetchConfig controls refresh cycles and the feed transport.
type FetchConfig struct {
	RefreshInterval   time.Duration
	Timeout           time.Duration
	MaxItemsPerSource int
	Workers           int
	RateLimitDur      time.Duration
	UserAgent         string
	MaxBodyBytes      int64
}

type FeedsConfig struct {
	// Path to a feeds.json or feeds.yaml file. Empty means search the usual
	// locations, then fall back to the built-in registry.
	Path string
}

// CacheConfig holds response cache configuration
type CacheConfig struct {
	Backend       string // "memory" or "redis"
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load parses flags and environment variables to build configuration.
// Environment variables win over flags.
func Load() *Config {
	fetchDefaults := sources.DefaultConfig()

	httpAddr := flag.String("http", ":3000", "HTTP server address")
	mcpMode := flag.Bool("mcp", false, "Run in MCP stdio mode")
	refreshOnce := flag.Bool("refresh-once", false, "Run one refresh cycle, print the feed as JSON and exit")
	refreshInterval := flag.Duration("refresh-interval", time.Hour, "Time between refresh cycles")
	fetchTimeout := flag.Duration("fetch-timeout", fetchDefaults.Timeout, "Per-source fetch timeout")
	maxItems := flag.Int("max-items", fetchDefaults.MaxItems, "Maximum items kept per source")
	workers := flag.Int("workers", 0, "Concurrent fetches per cycle (0 = one per source)")
	rateLimitDur := flag.Duration("rate-limit", time.Second, "Minimum delay between requests to same host")
	feedsPath := flag.String("feeds", "", "Path to feeds.json or feeds.yaml")
	cacheBackend := flag.String("cache-backend", "memory", "Cache backend: memory or redis")
	cacheTTL := flag.Duration("cache-ttl", 5*time.Minute, "Cache TTL for encoded responses")
	redisAddr := flag.String("redis-addr", "localhost:6379", "Redis server address")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "json", "Log format (json, text)")

	flag.Parse()

	cfg := &Config{
		Server: ServerConfig{
			HTTPAddr:           *httpAddr,
			MCPMode:            *mcpMode,
			RefreshOnceMode:    *refreshOnce,
			RequestRate:        20,
			RequestBurst:       40,
			NotificationWindow: 2 * time.Hour,
		},
		Fetch: FetchConfig{
			RefreshInterval:   *refreshInterval,
			Timeout:           *fetchTimeout,
			MaxItemsPerSource: *maxItems,
			Workers:           *workers,
			RateLimitDur:      *rateLimitDur,
			UserAgent:         fetchDefaults.UserAgent,
			MaxBodyBytes:      fetchDefaults.MaxBodyBytes,
		},
		Feeds: FeedsConfig{
			Path: *feedsPath,
		},
		Cache: CacheConfig{
			Backend:   *cacheBackend,
			TTL:       *cacheTTL,
			RedisAddr: *redisAddr,
		},
		Logging: LoggingConfig{
			Level:  *logLevel,
			Format: *logFormat,
		},
	}

	applyEnvOverrides(cfg)
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.HTTPAddr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := os.Getenv("MCP_MODE"); v == "true" || v == "1" {
		cfg.Server.MCPMode = true
	}
	if v := os.Getenv("REFRESH_ONCE_MODE"); v == "true" || v == "1" {
		cfg.Server.RefreshOnceMode = true
	}
	envFloat("REQUEST_RATE", &cfg.Server.RequestRate)
	envInt("REQUEST_BURST", &cfg.Server.RequestBurst)
	envDuration("NOTIFICATION_WINDOW", &cfg.Server.NotificationWindow)

	envDuration("REFRESH_INTERVAL", &cfg.Fetch.RefreshInterval)
	envDuration("FETCH_TIMEOUT", &cfg.Fetch.Timeout)
	envInt("MAX_ITEMS_PER_SOURCE", &cfg.Fetch.MaxItemsPerSource)
	envInt("FETCH_WORKERS", &cfg.Fetch.Workers)
	envDuration("RATE_LIMIT", &cfg.Fetch.RateLimitDur)
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.Fetch.UserAgent = v
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Fetch.MaxBodyBytes = n
		}
	}

	if v := os.Getenv("FEEDS_CONFIG_PATH"); v != "" {
		cfg.Feeds.Path = v
	}

	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	envDuration("CACHE_TTL", &cfg.Cache.TTL)
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	envInt("REDIS_DB", &cfg.Cache.RedisDB)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

// Validate reports every setting that would make the service misbehave.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.MCPMode && c.Server.RefreshOnceMode {
		errs = append(errs, errors.New("mcp mode and refresh-once mode are mutually exclusive"))
	}
	if c.Server.HTTPAddr == "" && !c.Server.RefreshOnceMode && !c.Server.MCPMode {
		errs = append(errs, errors.New("http address must be set"))
	}
	if c.Fetch.RefreshInterval < scheduler.MinInterval {
		errs = append(errs, fmt.Errorf("refresh interval must be at least %s, got %s", scheduler.MinInterval, c.Fetch.RefreshInterval))
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch timeout must be positive, got %s", c.Fetch.Timeout))
	}
	if c.Fetch.MaxItemsPerSource <= 0 {
		errs = append(errs, fmt.Errorf("max items per source must be positive, got %d", c.Fetch.MaxItemsPerSource))
	}
	if c.Fetch.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Fetch.Workers))
	}
	if c.Fetch.RateLimitDur < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %s", c.Fetch.RateLimitDur))
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}
	if c.Server.RequestRate < 0 || c.Server.RequestBurst < 0 {
		errs = append(errs, errors.New("request rate and burst must not be negative"))
	}
	return errors.Join(errs...)
}
