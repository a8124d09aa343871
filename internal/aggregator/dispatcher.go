package aggregator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zagzy8776/realssa-news-agg/internal/extract"
	"github.com/zagzy8776/realssa-news-agg/internal/logging"
	"github.com/zagzy8776/realssa-news-agg/internal/models"
	"github.com/zagzy8776/realssa-news-agg/internal/sources"
)

type DispatcherConfig struct {
	// Timeout bounds each source's fetch. Zero means no per-task deadline.
	Timeout time.Duration
	// MaxItems caps kept items per source.
	MaxItems int
	// Workers bounds concurrent tasks. Zero or at least the number of
	// sources runs one goroutine per source.
	Workers int
}

// SourceResult is one task's outcome. Items is empty when Err is set.
type SourceResult struct {
	Source   models.FeedSource
	Items    []models.NewsItem
	Strategy string
	Err      error
	Duration time.Duration
}

// Cycle is the joined output of one fan-out over the registry. Results are
// indexed like the sources passed to RunCycle.
type Cycle struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Results   []SourceResult
}

// Items merges results by source index, keeping document order inside each source.
func (c Cycle) Items() []models.NewsItem {
	n := 0
	for _, r := range c.Results {
		n += len(r.Items)
	}
	items := make([]models.NewsItem, 0, n)
	for _, r := range c.Results {
		items = append(items, r.Items...)
	}
	return items
}

func (c Cycle) Failed() int {
	failed := 0
	for _, r := range c.Results {
		if r.Err != nil {
			failed++
		}
	}
	return failed
}

type Dispatcher struct {
	transport sources.Transport
	chain     extract.Chain
	config    DispatcherConfig
	logger    *logging.Logger
}

func NewDispatcher(transport sources.Transport, chain extract.Chain, config DispatcherConfig, logger *logging.Logger) *Dispatcher {
	if len(chain) == 0 {
		chain = extract.DefaultChain()
	}
	return &Dispatcher{
		transport: transport,
		chain:     chain,
		config:    config,
		logger:    logger,
	}
}

// RunCycle fetches and extracts every source, waits for all of them and
// returns the results in source order. A failing source contributes no
// items and never aborts the cycle.
func (d *Dispatcher) RunCycle(ctx context.Context, srcs []models.FeedSource) Cycle {
	cycle := Cycle{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Results:   make([]SourceResult, len(srcs)),
	}

	run := func(i int) {
		cycle.Results[i] = d.runTask(ctx, srcs[i])
	}

	var wg sync.WaitGroup
	if workers := d.config.Workers; workers > 0 && workers < len(srcs) {
		jobs := make(chan int)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					run(i)
				}
			}()
		}
		for i := range srcs {
			jobs <- i
		}
		close(jobs)
	} else {
		for i := range srcs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				run(i)
			}(i)
		}
	}
	wg.Wait()

	cycle.Duration = time.Since(cycle.StartedAt)
	d.logCycle(cycle)
	return cycle
}

func (d *Dispatcher) runTask(ctx context.Context, src models.FeedSource) (res SourceResult) {
	start := time.Now()
	res.Source = src
	defer func() {
		if r := recover(); r != nil {
			res.Items, res.Strategy = nil, ""
			res.Err = fmt.Errorf("extraction panicked: %v", r)
		}
		res.Duration = time.Since(start)
	}()

	raw := d.fetch(ctx, src)
	if !raw.OK() {
		res.Err = raw.Err
		return res
	}

	res.Items, res.Strategy = d.chain.Extract(raw.Body, src, d.config.MaxItems)
	return res
}

// fetch applies the per-task deadline to the transport call only. Extraction
// runs on bytes already in memory and is not cancelled.
func (d *Dispatcher) fetch(ctx context.Context, src models.FeedSource) models.RawFetchResult {
	fetchCtx := ctx
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	body, err := d.transport.Fetch(fetchCtx, src.URL)
	switch {
	case err != nil:
		body = nil
	case body == nil:
		body = []byte{}
	}
	return models.RawFetchResult{
		Source:    src,
		Body:      body,
		FetchedAt: time.Now(),
		Err:       err,
	}
}

func (d *Dispatcher) logCycle(cycle Cycle) {
	for _, r := range cycle.Results {
		if r.Err != nil {
			d.logger.Warn("Failed to fetch from source", logging.WithFields(map[string]interface{}{
				"cycle_id": cycle.ID,
				"source":   r.Source.SourceName,
				"url":      r.Source.URL,
				"error":    r.Err.Error(),
				"timeout":  sources.IsTimeout(r.Err),
			}))
			continue
		}

		d.logger.Debug("Fetched items from source", logging.WithFields(map[string]interface{}{
			"cycle_id":    cycle.ID,
			"source":      r.Source.SourceName,
			"count":       len(r.Items),
			"strategy":    r.Strategy,
			"duration_ms": r.Duration.Milliseconds(),
		}))
	}

	d.logger.Info("Fetch cycle complete", logging.WithFields(map[string]interface{}{
		"cycle_id":    cycle.ID,
		"sources":     len(cycle.Results),
		"failed":      cycle.Failed(),
		"duration_ms": cycle.Duration.Milliseconds(),
	}))
}
