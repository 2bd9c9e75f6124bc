package utils

import (
	"context"
	"sync"
	"time"
)

var newTimer = time.NewTimer

// WaitFor blocks for d or until ctx is done.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := newTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pacer spaces consecutive calls to the same upstream by a fixed delay.
// The first call never waits.
type Pacer struct {
	delay time.Duration

	mu      sync.Mutex
	started bool
}

func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait blocks until the next call may proceed.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.started = true
		return ctx.Err()
	}
	return WaitFor(ctx, p.delay)
}
