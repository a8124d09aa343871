package sources

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/zagzy8776/realssa-news-agg/internal/models"
)

// Registry is the fixed, ordered set of feeds. It is built once at startup
// and never modified; the order is the merge order of every cycle.
type Registry struct {
	sources []models.FeedSource
}

// NewRegistry validates feeds and keeps their order. URLs must be absolute
// http(s) URLs and unique.
func NewRegistry(feeds []models.FeedSource) (*Registry, error) {
	seen := make(map[string]bool, len(feeds))
	for i, f := range feeds {
		u, err := url.Parse(f.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: entry %d has url %q", ErrInvalidSource, i, f.URL)
		}
		if f.SourceName == "" {
			return nil, fmt.Errorf("%w: entry %d (%s) has no source name", ErrInvalidSource, i, f.URL)
		}
		if seen[f.URL] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSource, f.URL)
		}
		seen[f.URL] = true
	}
	return &Registry{sources: slices.Clone(feeds)}, nil
}

// Sources returns a copy of the registry rows in order.
func (r *Registry) Sources() []models.FeedSource {
	return slices.Clone(r.sources)
}

func (r *Registry) Len() int {
	return len(r.sources)
}

// Info lists the registry for display.
func (r *Registry) Info() []models.SourceInfo {
	out := make([]models.SourceInfo, 0, len(r.sources))
	for _, s := range r.sources {
		out = append(out, models.SourceInfo{
			ID:       sourceID(s.SourceName),
			Name:     s.SourceName,
			URL:      s.URL,
			Category: s.Category,
			Country:  s.Country,
		})
	}
	return out
}

// Categories returns the distinct categories in sorted order.
func (r *Registry) Categories() []string {
	return r.distinct(func(s models.FeedSource) string { return s.Category })
}

// Countries returns the distinct countries in sorted order.
func (r *Registry) Countries() []string {
	return r.distinct(func(s models.FeedSource) string { return s.Country })
}

func (r *Registry) distinct(key func(models.FeedSource) string) []string {
	set := make(map[string]bool)
	for _, s := range r.sources {
		if k := key(s); k != "" {
			set[k] = true
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sourceID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// LoadRegistry builds the registry from a feeds file when one is found,
// otherwise from DefaultFeeds. path overrides the search when set.
func LoadRegistry(path string) (*Registry, string, error) {
	if path == "" {
		path = FindFeedsConfig()
	}
	if path == "" {
		reg, err := NewRegistry(DefaultFeeds())
		return reg, "", err
	}

	cfg, err := LoadFeedsConfig(path)
	if err != nil {
		return nil, path, err
	}
	reg, err := NewRegistry(cfg.FeedSources())
	return reg, path, err
}
