package aggregator

import (
	"context"
	"testing"
	"time"

	"github.com/zagzy8776/realssa-news-agg/internal/extract"
	"github.com/zagzy8776/realssa-news-agg/internal/sources"
	"github.com/zagzy8776/realssa-news-agg/internal/testutil"
)

func newTestAggregator(t *testing.T, n, itemsPerSource int) (*Aggregator, *fakeTransport) {
	t.Helper()
	srcs, transport := newFixture(n, itemsPerSource)
	reg, err := sources.NewRegistry(srcs)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	logger := testutil.NullLogger()
	d := NewDispatcher(transport, extract.DefaultChain(), DispatcherConfig{Timeout: time.Second, MaxItems: extract.DefaultMaxItems}, logger)
	return New(reg, d, NewSnapshotCache(), logger), transport
}

func TestAggregator_Refresh(t *testing.T) {
	agg, _ := newTestAggregator(t, 3, 4)

	snap, err := agg.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if snap.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", snap.Generation())
	}
	if snap.Len() != 12 {
		t.Errorf("Len() = %d, want 12", snap.Len())
	}
	if agg.Current() != snap {
		t.Error("Current() should return the published snapshot")
	}

	for _, item := range snap.Items() {
		if item.Title == "" {
			t.Errorf("published item with empty title: %+v", item)
		}
	}

	snap2, err := agg.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}
	if snap2.Generation() != 2 {
		t.Errorf("second Generation() = %d, want 2", snap2.Generation())
	}
}

func TestAggregator_AllFailPublishesEmptySnapshot(t *testing.T) {
	agg, transport := newTestAggregator(t, 3, 2)

	if _, err := agg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if agg.Snapshots().ItemCount() != 6 {
		t.Fatalf("ItemCount() = %d, want 6", agg.Snapshots().ItemCount())
	}

	for _, s := range agg.Registry().Sources() {
		transport.errs[s.URL] = errUnreachable
	}

	snap, err := agg.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if snap.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after every source failed", snap.Len())
	}
	if snap.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", snap.Generation())
	}
	if items := agg.Current().Items(); items == nil || len(items) != 0 {
		t.Errorf("Items() = %v, want empty slice", items)
	}
}

func TestAggregator_CollectThenPublish(t *testing.T) {
	agg, _ := newTestAggregator(t, 2, 1)

	cycle := agg.Collect(context.Background())
	if agg.Current().Generation() != 0 {
		t.Error("Collect() must not publish")
	}

	snap, err := agg.Publish(cycle)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	got := titles(snap.Items())
	if len(got) != 2 || got[0] != "Feed 1 #1" || got[1] != "Feed 2 #1" {
		t.Errorf("Items() = %v", got)
	}
}
