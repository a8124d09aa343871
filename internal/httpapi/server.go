package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/zagzy8776/realssa-news-agg/internal/cache"
	"github.com/zagzy8776/realssa-news-agg/internal/logging"
	"github.com/zagzy8776/realssa-news-agg/internal/models"
	"github.com/zagzy8776/realssa-news-agg/internal/sources"
)

// SnapshotReader is the read side of the snapshot cache.
type SnapshotReader interface {
	Current() *models.Snapshot
}

type Options struct {
	// RequestRate is the allowed requests per second across all clients.
	// Zero disables rate limiting.
	RequestRate        float64
	RequestBurst       int
	NotificationWindow time.Duration
}

type Server struct {
	snapshots SnapshotReader
	registry  *sources.Registry
	cache     cache.Cache
	logger    *logging.Logger
	opts      Options
	now       func() time.Time
	server    *http.Server
	instance  string
}

// New wires the read API. c may be nil, in which case encoded responses are
// not cached.
func New(snapshots SnapshotReader, registry *sources.Registry, c cache.Cache, logger *logging.Logger, opts Options) *Server {
	if opts.NotificationWindow <= 0 {
		opts.NotificationWindow = 2 * time.Hour
	}
	return &Server{
		snapshots: snapshots,
		registry:  registry,
		cache:     c,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
		instance:  uuid.NewString(),
	}
}

// Handler builds the router with its middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)
	if s.opts.RequestRate > 0 {
		burst := s.opts.RequestBurst
		if burst <= 0 {
			burst = 1
		}
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.opts.RequestRate), burst)))
	}

	r.Get("/", s.handleIndex)
	r.Get("/news-feed", s.handleNewsFeed)
	r.Get("/health", s.handleHealth)
	r.Get("/notifications", s.handleNotifications)
	r.Get("/sources", s.handleSources)

	return r
}

func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info("HTTP API server starting", logging.WithField("addr", addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("Failed to encode response", logging.WithField("error", err.Error()))
	}
}
