package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/zagzy8776/realssa-news-agg/internal/logging"
	"github.com/zagzy8776/realssa-news-agg/internal/models"
	"github.com/zagzy8776/realssa-news-agg/internal/sources"
)

const (
	defaultNewsLimit = 20
	futureSkew       = 15 * time.Minute
)

// NewsSource is the read side the tools query.
type NewsSource interface {
	Current() *models.Snapshot
	Registry() *sources.Registry
}

// Refresher runs a cycle on demand.
type Refresher interface {
	RunOnce(ctx context.Context) (*models.Snapshot, error)
}

type Handler struct {
	news      NewsSource
	refresher Refresher
	window    time.Duration
	logger    *logging.Logger
	now       func() time.Time
}

func NewHandler(news NewsSource, refresher Refresher, window time.Duration, logger *logging.Logger) *Handler {
	if window <= 0 {
		window = 2 * time.Hour
	}
	return &Handler{
		news:      news,
		refresher: refresher,
		window:    window,
		logger:    logger,
		now:       time.Now,
	}
}

type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

func (h *Handler) GetTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "get_news",
			Description: "Get the latest aggregated news items, optionally filtered by source, category, country or search text.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"limit": {
						"type": "integer",
						"description": "Maximum number of items to return (default: 20)"
					},
					"offset": {
						"type": "integer",
						"description": "Number of matching items to skip"
					},
					"source": {
						"type": "string",
						"description": "Filter by source name"
					},
					"category": {
						"type": "string",
						"description": "Filter by category (e.g., Technology, Pan-African)"
					},
					"country": {
						"type": "string",
						"description": "Filter by country (e.g., Ghana, Nigeria, Global)"
					},
					"query": {
						"type": "string",
						"description": "Search text matched against title and description"
					}
				}
			}`),
		},
		{
			Name:        "get_breaking_news",
			Description: "Get items published within the notification window.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "get_news_sources",
			Description: "Get a list of all configured news feeds.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "refresh_news",
			Description: "Run a refresh cycle now and publish a new snapshot.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
	}
}

func (h *Handler) HandleToolCall(ctx context.Context, name string, arguments json.RawMessage) (interface{}, error) {
	switch name {
	case "get_news":
		return h.handleGetNews(arguments)
	case "get_breaking_news":
		return h.handleBreakingNews()
	case "get_news_sources":
		return h.handleGetSources()
	case "refresh_news":
		return h.handleRefresh(ctx)
	default:
		return nil, &ToolError{Message: "Unknown tool: " + name}
	}
}

func (h *Handler) handleGetNews(arguments json.RawMessage) (interface{}, error) {
	var params models.FilterParams
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &params); err != nil {
			return nil, &ToolError{Message: "Invalid arguments: " + err.Error()}
		}
	}

	if params.Limit <= 0 {
		params.Limit = defaultNewsLimit
	}

	return h.news.Current().Filter(params), nil
}

func (h *Handler) handleBreakingNews() (interface{}, error) {
	recent := h.news.Current().Recent(h.now(), h.window, futureSkew)
	return map[string]interface{}{
		"notifications": recent,
		"count":         len(recent),
		"window":        h.window.String(),
	}, nil
}

func (h *Handler) handleGetSources() (interface{}, error) {
	infos := h.news.Registry().Info()
	return map[string]interface{}{
		"sources": infos,
		"count":   len(infos),
	}, nil
}

func (h *Handler) handleRefresh(ctx context.Context) (interface{}, error) {
	snap, err := h.refresher.RunOnce(ctx)
	if err != nil {
		return nil, &ToolError{Message: "Failed to refresh: " + err.Error()}
	}

	return map[string]interface{}{
		"status":     "success",
		"message":    "Feed refreshed successfully",
		"generation": snap.Generation(),
		"items":      snap.Len(),
	}, nil
}

type ToolError struct {
	Message string
}

func (e *ToolError) Error() string {
	return e.Message
}
