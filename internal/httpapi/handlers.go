package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/zagzy8776/realssa-news-agg/internal/cache"
	"github.com/zagzy8776/realssa-news-agg/internal/logging"
	"github.com/zagzy8776/realssa-news-agg/internal/models"
)

// futureSkew tolerates feeds whose clocks run slightly ahead of ours.
const futureSkew = 15 * time.Minute

// feedCacheKey scopes a generation to this process. Generations restart at 1
// in every process while a Redis cache outlives it and may be shared.
func (s *Server) feedCacheKey(generation uint64) string {
	return "news-feed:" + s.instance + ":" + strconv.FormatUint(generation, 10)
}

func (s *Server) handleNewsFeed(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshots.Current()
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Feed-Generation", strconv.FormatUint(snap.Generation(), 10))

	if params := parseFilterParams(r); !params.IsZero() {
		s.writeJSON(w, http.StatusOK, snap.Filter(params).Items)
		return
	}

	key := s.feedCacheKey(snap.Generation())
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if body, ok := v.(string); ok {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(body))
				return
			}
		}
	}

	body, err := json.Marshal(snap.Items())
	if err != nil {
		s.logger.Error("Failed to encode news feed", logging.WithField("error", err.Error()))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": "failed to encode news feed",
		})
		return
	}
	if s.cache != nil {
		s.cache.Set(key, string(body))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshots.Current()

	lastRefresh := ""
	if !snap.PublishedAt().IsZero() {
		lastRefresh = snap.PublishedAt().UTC().Format(time.RFC3339)
	}

	resp := map[string]interface{}{
		"status":      "ok",
		"items":       snap.Len(),
		"timestamp":   strconv.FormatInt(s.now().Unix(), 10),
		"generation":  snap.Generation(),
		"lastRefresh": lastRefresh,
	}

	if p, ok := s.cache.(cache.Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			resp["cache"] = "unavailable"
		} else {
			resp["cache"] = "ok"
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	recent := s.snapshots.Current().Recent(s.now(), s.opts.NotificationWindow, futureSkew)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"notifications": recent,
	})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	infos := s.registry.Info()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sources": infos,
		"count":   len(infos),
	})
}

// parseFilterParams reads optional narrowing from the query string. Bad
// numbers are ignored.
func parseFilterParams(r *http.Request) models.FilterParams {
	q := r.URL.Query()
	params := models.FilterParams{
		Source:   q.Get("source"),
		Category: q.Get("category"),
		Country:  q.Get("country"),
		Query:    q.Get("q"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		params.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		params.Offset = v
	}
	return params
}
