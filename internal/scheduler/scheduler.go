// Package scheduler drives refresh cycles: one eager cycle at start, then one
// per interval, never two at once.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zagzy8776/realssa-news-agg/internal/aggregator"
	"github.com/zagzy8776/realssa-news-agg/internal/logging"
	"github.com/zagzy8776/realssa-news-agg/internal/models"
)

// MinInterval is the finest spacing the cron "@every" schedule honours.
const MinInterval = time.Second

var (
	ErrInvalidInterval = errors.New("refresh interval must be at least 1s")
	ErrAlreadyStarted  = errors.New("scheduler already started")
)

type State int32

const (
	Idle State = iota
	Fetching
	Merging
	Published
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Merging:
		return "merging"
	case Published:
		return "published"
	default:
		return "unknown"
	}
}

// Pipeline is the fetch-all and publish pair one cycle runs.
type Pipeline interface {
	Collect(ctx context.Context) aggregator.Cycle
	Publish(cycle aggregator.Cycle) (*models.Snapshot, error)
}

type Scheduler struct {
	pipeline Pipeline
	interval time.Duration
	logger   *logging.Logger
	cron     *cron.Cron

	// cycleMu serializes cycles, scheduled or manual.
	cycleMu sync.Mutex
	state   atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc

	lifeMu   sync.Mutex
	started  bool
	stopped  bool
	stopOnce sync.Once
}

func New(pipeline Pipeline, interval time.Duration, logger *logging.Logger) (*Scheduler, error) {
	if interval < MinInterval {
		return nil, ErrInvalidInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		pipeline: pipeline,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	cl := cronLogger{logger: logger}
	s.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := s.cron.AddFunc("@every "+interval.String(), s.tick); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to schedule refresh: %w", err)
	}
	return s, nil
}

// Start runs one cycle before returning, then hands off to the interval
// timer. Cancelling ctx has the same effect as Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	if s.started {
		s.lifeMu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.lifeMu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.ctx.Done():
		}
	}()

	s.logger.Info("Starting refresh scheduler", logging.WithField("interval", s.interval.String()))

	if _, err := s.RunOnce(ctx); err != nil {
		if s.ctx.Err() != nil || ctx.Err() != nil {
			return err
		}
		s.logger.Error("Initial refresh failed", logging.WithField("error", err.Error()))
	}

	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.stopped {
		return context.Canceled
	}
	s.cron.Start()
	return nil
}

// Stop cancels any in-flight cycle and waits for the timer to drain. It is
// safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()

		s.lifeMu.Lock()
		s.stopped = true
		s.lifeMu.Unlock()

		<-s.cron.Stop().Done()
		s.logger.Info("Refresh scheduler stopped")
	})
}

// Done is closed once Stop has been called.
func (s *Scheduler) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// RunOnce runs a full cycle now, waiting for any cycle already running. A
// cycle interrupted by Stop or by ctx is not published.
func (s *Scheduler) RunOnce(ctx context.Context) (*models.Snapshot, error) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	if err := s.ctx.Err(); err != nil {
		return nil, err
	}

	cycleCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	s.setState(Fetching)
	cycle := s.pipeline.Collect(cycleCtx)
	err := s.ctx.Err()
	if err == nil {
		err = cycleCtx.Err()
	}
	if err != nil {
		s.setState(Idle)
		return nil, err
	}

	s.setState(Merging)
	snap, err := s.pipeline.Publish(cycle)
	if err != nil {
		s.setState(Idle)
		return nil, err
	}

	s.setState(Published)
	return snap, nil
}

func (s *Scheduler) tick() {
	if _, err := s.RunOnce(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Scheduled refresh failed", logging.WithField("error", err.Error()))
	}
}

func (s *Scheduler) setState(state State) {
	s.state.Store(int32(state))
}
