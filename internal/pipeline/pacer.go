package pipeline

import (
	"context"
	"time"
)

// Clock abstracts time so pacing is testable without sleeping.
type Clock interface {
	Now() time.Time
	Wait(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SystemClock returns the real-time clock.
func SystemClock() Clock { return systemClock{} }

// Pacer schedules dispatches against the remote service. The next permitted
// dispatch is lastDispatch + max(minDelay, perResult × previous result
// count), so heavier batches earn longer pauses. The first dispatch is
// immediate.
type Pacer struct {
	clock     Clock
	minDelay  time.Duration
	perResult time.Duration
	last      time.Time
}

// NewPacer creates a Pacer. A nil clock selects the system clock.
func NewPacer(clock Clock, minDelay, perResult time.Duration) *Pacer {
	if clock == nil {
		clock = SystemClock()
	}
	return &Pacer{clock: clock, minDelay: minDelay, perResult: perResult}
}

// Wait blocks until the next permitted dispatch time and records the
// dispatch. previousResults is the size of the result set produced by the
// dispatch before this one.
func (p *Pacer) Wait(ctx context.Context, previousResults int) error {
	if !p.last.IsZero() {
		delay := p.perResult * time.Duration(previousResults)
		if delay < p.minDelay {
			delay = p.minDelay
		}
		if remaining := p.last.Add(delay).Sub(p.clock.Now()); remaining > 0 {
			if err := p.clock.Wait(ctx, remaining); err != nil {
				return err
			}
		}
	}
	p.last = p.clock.Now()
	return nil
}
