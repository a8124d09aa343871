package aggregator

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/zagzy8776/realssa-news-agg/internal/models"
)

var (
	ErrStaleGeneration = errors.New("snapshot generation is not newer than the current one")
	ErrNilSnapshot     = errors.New("snapshot is nil")
)

// SnapshotCache holds the one published snapshot. Readers never block and
// always see a whole generation.
type SnapshotCache struct {
	current atomic.Pointer[models.Snapshot]
}

func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{}
}

// Publish swaps in s. Generations must strictly increase.
func (c *SnapshotCache) Publish(s *models.Snapshot) error {
	if s == nil {
		return ErrNilSnapshot
	}
	for {
		old := c.current.Load()
		var current uint64
		if old != nil {
			current = old.Generation()
		}
		if s.Generation() <= current {
			return ErrStaleGeneration
		}
		if c.current.CompareAndSwap(old, s) {
			return nil
		}
	}
}

// Current returns the latest snapshot, or an empty generation-0 snapshot
// before the first publish.
func (c *SnapshotCache) Current() *models.Snapshot {
	if s := c.current.Load(); s != nil {
		return s
	}
	return models.EmptySnapshot()
}

func (c *SnapshotCache) Generation() uint64 {
	return c.Current().Generation()
}

func (c *SnapshotCache) ItemCount() int {
	return c.Current().Len()
}

// LastRefresh is the publish time of the current snapshot, zero before the first.
func (c *SnapshotCache) LastRefresh() time.Time {
	return c.Current().PublishedAt()
}
