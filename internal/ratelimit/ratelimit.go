package ratelimit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// PageDelay spaces out requests to the search API. Each wait targets a random
// gap between min and max, measured from the previous call.
type PageDelay struct {
	mu       sync.Mutex
	lastCall time.Time
	min      time.Duration
	max      time.Duration
	rand     func() float64 // in [0, 1)
}

// NewPageDelay creates a delay that waits between min and max. If max is
// below min the gap is fixed at min.
func NewPageDelay(min, max time.Duration) *PageDelay {
	if max < min {
		max = min
	}
	return &PageDelay{
		min:  min,
		max:  max,
		rand: rand.Float64,
	}
}

// Next returns a random gap in [min, max].
func (d *PageDelay) Next() time.Duration {
	span := d.max - d.min
	if span <= 0 {
		return d.min
	}
	return d.min + time.Duration(d.rand()*float64(span+1))
}

// Wait blocks until the chosen gap has passed since the previous Wait.
// The first call returns immediately. Returns an error if ctx is cancelled.
func (d *PageDelay) Wait(ctx context.Context) error {
	d.mu.Lock()
	last := d.lastCall
	now := time.Now()
	if last.IsZero() {
		d.lastCall = now
		d.mu.Unlock()
		return nil
	}
	remaining := d.Next() - now.Sub(last)
	d.mu.Unlock()

	if remaining > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("page delay: %w", ctx.Err())
		case <-time.After(remaining):
		}
	}

	d.mu.Lock()
	d.lastCall = time.Now()
	d.mu.Unlock()
	return nil
}
