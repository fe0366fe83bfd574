package game

import (
	"context"
	"time"
)

// spinWindow is the tail of each wait spent polling the clock, since
// time.Sleep overshoots by up to a scheduler quantum.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces a loop to a fixed period: frames in the desktop host,
// ticks in the headless one when it runs in real time.
type FPSLimiter struct {
	period time.Duration
	next   time.Time
}

// NewFPSLimiter creates a limiter for limit frames per second; limit <= 0
// disables pacing.
func NewFPSLimiter(limit int) *FPSLimiter {
	if limit <= 0 {
		return &FPSLimiter{}
	}
	return NewTickLimiter(time.Second / time.Duration(limit))
}

// NewTickLimiter creates a limiter releasing one iteration per period.
func NewTickLimiter(period time.Duration) *FPSLimiter {
	return &FPSLimiter{period: max(period, 0)}
}

// Period is the target frame time, zero when pacing is off.
func (f *FPSLimiter) Period() time.Duration {
	return f.period
}

// Wait blocks until the next frame is due.
func (f *FPSLimiter) Wait() {
	_ = f.WaitContext(context.Background())
}

// WaitContext is Wait that gives up with ctx.Err() once ctx is done.
func (f *FPSLimiter) WaitContext(ctx context.Context) error {
	if f.period == 0 {
		return ctx.Err()
	}
	f.advance(time.Now())

	if d := time.Until(f.next) - spinWindow; d > 0 {
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	for time.Now().Before(f.next) {
	}
	return ctx.Err()
}

func (f *FPSLimiter) advance(now time.Time) {
	switch {
	case f.next.IsZero():
		f.next = now.Add(f.period)
	case now.Sub(f.next) > f.period:
		// More than a frame late after a hitch: resync instead of
		// bursting to catch up.
		f.next = now.Add(f.period)
	default:
		f.next = f.next.Add(f.period)
	}
}
