package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/zagzy8776/realssa-news-agg/internal/logging"
	"github.com/zagzy8776/realssa-news-agg/internal/models"
	"github.com/zagzy8776/realssa-news-agg/internal/sources"
)

// Aggregator runs refresh cycles over a fixed registry and publishes each
// merged result as the next snapshot generation.
type Aggregator struct {
	registry   *sources.Registry
	dispatcher *Dispatcher
	snapshots  *SnapshotCache
	logger     *logging.Logger
}

func New(registry *sources.Registry, dispatcher *Dispatcher, snapshots *SnapshotCache, logger *logging.Logger) *Aggregator {
	if snapshots == nil {
		snapshots = NewSnapshotCache()
	}
	return &Aggregator{
		registry:   registry,
		dispatcher: dispatcher,
		snapshots:  snapshots,
		logger:     logger,
	}
}

// Collect fans out over the registry and joins the results.
func (a *Aggregator) Collect(ctx context.Context) Cycle {
	return a.dispatcher.RunCycle(ctx, a.registry.Sources())
}

// Publish builds the next generation from cycle and makes it current. A cycle
// where every source failed publishes an empty snapshot.
func (a *Aggregator) Publish(cycle Cycle) (*models.Snapshot, error) {
	snap := models.NewSnapshot(a.snapshots.Generation()+1, cycle.Items(), time.Now())
	if err := a.snapshots.Publish(snap); err != nil {
		return nil, fmt.Errorf("failed to publish snapshot: %w", err)
	}

	a.logger.Info("Aggregation complete", logging.WithFields(map[string]interface{}{
		"cycle_id":     cycle.ID,
		"generation":   snap.Generation(),
		"total_items":  snap.Len(),
		"sources_used": len(cycle.Results),
		"failed":       cycle.Failed(),
	}))
	return snap, nil
}

func (a *Aggregator) Refresh(ctx context.Context) (*models.Snapshot, error) {
	return a.Publish(a.Collect(ctx))
}

func (a *Aggregator) Current() *models.Snapshot {
	return a.snapshots.Current()
}

func (a *Aggregator) Snapshots() *SnapshotCache {
	return a.snapshots
}

func (a *Aggregator) Registry() *sources.Registry {
	return a.registry
}
