package models

import (
	"slices"
	"time"
)

// Snapshot is the immutable result of one refresh cycle.
type Snapshot struct {
	generation  uint64
	items       []NewsItem
	publishedAt time.Time
}

// NewSnapshot copies items so later changes by the caller cannot leak in.
func NewSnapshot(generation uint64, items []NewsItem, publishedAt time.Time) *Snapshot {
	return &Snapshot{
		generation:  generation,
		items:       slices.Clone(items),
		publishedAt: publishedAt,
	}
}

// EmptySnapshot is what readers see before the first publish.
func EmptySnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) Generation() uint64 {
	return s.generation
}

func (s *Snapshot) PublishedAt() time.Time {
	return s.publishedAt
}

func (s *Snapshot) Len() int {
	return len(s.items)
}

// Items returns a copy of the snapshot's items in merge order.
func (s *Snapshot) Items() []NewsItem {
	if len(s.items) == 0 {
		return []NewsItem{}
	}
	return slices.Clone(s.items)
}

// Each visits items in order until fn returns false.
func (s *Snapshot) Each(fn func(item NewsItem) bool) {
	for _, item := range s.items {
		if !fn(item) {
			return
		}
	}
}
