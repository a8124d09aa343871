// Package ratelimit enforces a minimum delay between requests to the same host.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type Limiter struct {
	mu          sync.Mutex
	hosts       map[string]time.Time
	minInterval time.Duration
}

func New(minInterval time.Duration) *Limiter {
	return &Limiter{
		hosts:       make(map[string]time.Time),
		minInterval: minInterval,
	}
}

// WaitContext blocks until a request to host is allowed or ctx ends. The slot
// is reserved on entry and kept even when ctx ends first.
func (l *Limiter) WaitContext(ctx context.Context, host string) error {
	if l.minInterval <= 0 {
		return ctx.Err()
	}

	d := time.Until(l.reserve(host))
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Limiter) reserve(host string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	next := now
	if last, ok := l.hosts[host]; ok {
		if earliest := last.Add(l.minInterval); earliest.After(now) {
			next = earliest
		}
	}
	l.hosts[host] = next
	return next
}
