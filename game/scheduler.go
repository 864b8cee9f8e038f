package game

import (
	"context"
	"time"
)

// Scheduler decides when ticks run. tick returns false to stop.
type Scheduler interface {
	Run(ctx context.Context, tick func() bool) error
}

// StepScheduler runs a fixed number of ticks back to back.
// Zero Ticks means run until tick returns false or ctx is done.
type StepScheduler struct {
	Ticks int
}

// Run implements Scheduler.
func (s StepScheduler) Run(ctx context.Context, tick func() bool) error {
	for i := 0; s.Ticks <= 0 || i < s.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !tick() {
			return nil
		}
	}
	return nil
}

// TickerScheduler runs one tick per period of wall-clock time.
type TickerScheduler struct {
	Period time.Duration
}

// NewTickerScheduler creates a scheduler running fps ticks per second.
func NewTickerScheduler(fps int) TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return TickerScheduler{Period: time.Second / time.Duration(fps)}
}

// Run implements Scheduler.
func (s TickerScheduler) Run(ctx context.Context, tick func() bool) error {
	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !tick() {
				return nil
			}
		}
	}
}
