package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/zagzy8776/realssa-news-agg/internal/aggregator"
	"github.com/zagzy8776/realssa-news-agg/internal/cache"
	"github.com/zagzy8776/realssa-news-agg/internal/config"
	"github.com/zagzy8776/realssa-news-agg/internal/extract"
	"github.com/zagzy8776/realssa-news-agg/internal/httpapi"
	"github.com/zagzy8776/realssa-news-agg/internal/logging"
	"github.com/zagzy8776/realssa-news-agg/internal/mcp"
	"github.com/zagzy8776/realssa-news-agg/internal/ratelimit"
	"github.com/zagzy8776/realssa-news-agg/internal/scheduler"
	"github.com/zagzy8776/realssa-news-agg/internal/sources"
)

const shutdownTimeout = 10 * time.Second

// App holds all application dependencies
type App struct {
	Config     *config.Config
	Logger     *logging.Logger
	Cache      cache.Cache
	Registry   *sources.Registry
	Aggregator *aggregator.Aggregator
	Scheduler  *scheduler.Scheduler
	HTTPServer *httpapi.Server
	MCPServer  *mcp.Server

	// out receives the feed in refresh-once mode.
	out io.Writer
}

// New creates and initializes a new App instance
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, out: os.Stdout}

	app.Logger = app.initLogger()

	registry, path, err := sources.LoadRegistry(cfg.Feeds.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed registry: %w", err)
	}
	app.Registry = registry
	if path != "" {
		app.Logger.Info("Loaded feeds configuration", logging.WithFields(map[string]interface{}{
			"path":    path,
			"sources": registry.Len(),
		}))
	} else {
		app.Logger.Info("No feeds config found, using default sources", logging.WithField("sources", registry.Len()))
	}

	limiter := ratelimit.New(cfg.Fetch.RateLimitDur)
	fetcherConfig := sources.DefaultConfig()
	fetcherConfig.Timeout = cfg.Fetch.Timeout
	fetcherConfig.MaxItems = cfg.Fetch.MaxItemsPerSource
	if cfg.Fetch.UserAgent != "" {
		fetcherConfig.UserAgent = cfg.Fetch.UserAgent
	}
	if cfg.Fetch.MaxBodyBytes > 0 {
		fetcherConfig.MaxBodyBytes = cfg.Fetch.MaxBodyBytes
	}
	transport := sources.NewHTTPTransport(limiter, fetcherConfig)

	dispatcher := aggregator.NewDispatcher(transport, extract.DefaultChain(), aggregator.DispatcherConfig{
		Timeout:  cfg.Fetch.Timeout,
		MaxItems: cfg.Fetch.MaxItemsPerSource,
		Workers:  cfg.Fetch.Workers,
	}, app.Logger)
	app.Aggregator = aggregator.New(registry, dispatcher, aggregator.NewSnapshotCache(), app.Logger)

	if cfg.Server.RefreshOnceMode {
		return app, nil
	}

	app.Scheduler, err = scheduler.New(app.Aggregator, cfg.Fetch.RefreshInterval, app.Logger)
	if err != nil {
		return nil, err
	}

	if cfg.Server.MCPMode {
		handler := mcp.NewHandler(app.Aggregator, app.Scheduler, cfg.Server.NotificationWindow, app.Logger)
		app.MCPServer = mcp.NewServer(handler, app.Logger)
		return app, nil
	}

	app.Cache = app.initCache()
	app.HTTPServer = httpapi.New(app.Aggregator.Snapshots(), registry, app.Cache, app.Logger, httpapi.Options{
		RequestRate:        cfg.Server.RequestRate,
		RequestBurst:       cfg.Server.RequestBurst,
		NotificationWindow: cfg.Server.NotificationWindow,
	})

	return app, nil
}

// Run starts the application in the appropriate mode
func (a *App) Run(ctx context.Context) error {
	switch {
	case a.Config.Server.RefreshOnceMode:
		return a.runRefreshOnce(ctx)
	case a.Config.Server.MCPMode:
		return a.runMCPMode(ctx)
	default:
		return a.runHTTPMode(ctx)
	}
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error("HTTP server shutdown error", logging.WithField("error", err.Error()))
		}
	}

	switch c := a.Cache.(type) {
	case *cache.RedisCache:
		if err := c.Close(); err != nil {
			a.Logger.Error("Redis close error", logging.WithField("error", err.Error()))
		}
	case *cache.MemoryCache:
		c.Stop()
	}

	return nil
}

func (a *App) initLogger() *logging.Logger {
	logger := logging.New(logging.ParseLevel(a.Config.Logging.Level))
	logger.SetFormat(a.Config.Logging.Format)
	if a.Config.Server.RefreshOnceMode || a.Config.Server.MCPMode {
		// stdout carries the feed or the protocol
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func (a *App) initCache() cache.Cache {
	switch a.Config.Cache.Backend {
	case "redis":
		a.Logger.Info("Using Redis cache backend", logging.WithField("addr", a.Config.Cache.RedisAddr))
		redisCache, err := cache.NewRedis(cache.RedisConfig{
			Addr:     a.Config.Cache.RedisAddr,
			Password: a.Config.Cache.RedisPassword,
			DB:       a.Config.Cache.RedisDB,
		}, a.Config.Cache.TTL)
		if err != nil {
			a.Logger.Error("Failed to connect to Redis, falling back to memory cache", logging.WithField("error", err.Error()))
			return cache.NewMemory(a.Config.Cache.TTL)
		}
		return redisCache
	default:
		a.Logger.Info("Using in-memory cache backend")
		return cache.NewMemory(a.Config.Cache.TTL)
	}
}

// runRefreshOnce runs a single cycle and writes the merged feed as JSON.
func (a *App) runRefreshOnce(ctx context.Context) error {
	a.Logger.Info("Running single refresh cycle")

	snap, err := a.Aggregator.Refresh(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap.Items()); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	return nil
}

func (a *App) runMCPMode(ctx context.Context) error {
	a.Logger.Info("Starting MCP server in stdio mode")

	if err := a.Scheduler.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer a.Scheduler.Stop()

	if err := a.MCPServer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) runHTTPMode(ctx context.Context) error {
	// The eager cycle publishes generation 1 before the listener opens.
	if err := a.Scheduler.Start(ctx); err != nil {
		a.shutdown()
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.HTTPServer.Start(a.Config.Server.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("Shutting down...")
		a.shutdown()
		return nil
	case err := <-errCh:
		a.shutdown()
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.Shutdown(ctx)
}
