package models

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// FilterParams narrows a snapshot. Zero values match everything.
type FilterParams struct {
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	Source   string `json:"source"`
	Category string `json:"category"`
	Country  string `json:"country"`
	Query    string `json:"query"`
}

func (p FilterParams) IsZero() bool {
	return p == FilterParams{}
}

type FilterResult struct {
	Items      []NewsItem `json:"items"`
	TotalCount int        `json:"totalCount"`
	Generation uint64     `json:"generation"`
}

// Filter returns matching items in merge order. TotalCount counts matches
// before Offset and Limit apply.
func (s *Snapshot) Filter(p FilterParams) FilterResult {
	query := strings.ToLower(strings.TrimSpace(p.Query))
	matched := make([]NewsItem, 0)
	s.Each(func(item NewsItem) bool {
		if p.matches(item, query) {
			matched = append(matched, item)
		}
		return true
	})

	total := len(matched)
	if p.Offset > 0 {
		if p.Offset >= len(matched) {
			matched = matched[:0]
		} else {
			matched = matched[p.Offset:]
		}
	}
	if p.Limit > 0 && len(matched) > p.Limit {
		matched = matched[:p.Limit]
	}

	return FilterResult{Items: matched, TotalCount: total, Generation: s.generation}
}

func (p FilterParams) matches(item NewsItem, query string) bool {
	if p.Source != "" && !strings.EqualFold(item.Source, p.Source) {
		return false
	}
	if p.Category != "" && !strings.EqualFold(item.Category, p.Category) {
		return false
	}
	if p.Country != "" && !strings.EqualFold(item.Country, p.Country) {
		return false
	}
	return query == "" ||
		strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Description), query)
}

// PublishedTime parses PubDate in any of the layouts feeds use. Dates
// without a zone are taken as UTC.
func (n NewsItem) PublishedTime() (time.Time, error) {
	return dateparse.ParseIn(strings.TrimSpace(n.PubDate), time.UTC)
}

// Recent returns items published in (now-window, now+skew], in merge order.
// Items whose date cannot be parsed are left out.
func (s *Snapshot) Recent(now time.Time, window, skew time.Duration) []NewsItem {
	recent := make([]NewsItem, 0)
	s.Each(func(item NewsItem) bool {
		published, err := item.PublishedTime()
		if err != nil {
			return true
		}
		if age := now.Sub(published); age <= window && age >= -skew {
			recent = append(recent, item)
		}
		return true
	})
	return recent
}
