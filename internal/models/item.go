package models

import "time"

// FeedSource is one row of the feed registry. URL is the identity.
type FeedSource struct {
	URL        string `json:"url" yaml:"url"`
	SourceName string `json:"source" yaml:"source"`
	Category   string `json:"category" yaml:"category"`
	Country    string `json:"country" yaml:"country"`
}

// RawFetchResult is the transport outcome for one source in one cycle.
// Body is nil when the fetch failed.
type RawFetchResult struct {
	Source    FeedSource
	Body      []byte
	FetchedAt time.Time
	Err       error
}

func (r RawFetchResult) OK() bool {
	return r.Err == nil && r.Body != nil
}

type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	Country     string `json:"country"`
	ImageURL    string `json:"imageUrl"`
}

// SourceInfo describes a registered feed for listing endpoints.
type SourceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Country  string `json:"country"`
}
