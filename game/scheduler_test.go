package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStepScheduler(t *testing.T) {
	tests := []struct {
		name   string
		ticks  int
		stopAt int
		want   int
	}{
		{"runs all ticks", 5, 0, 5},
		{"stops when tick returns false", 10, 3, 3},
		{"unbounded until stop", 0, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n int
			err := StepScheduler{Ticks: tt.ticks}.Run(context.Background(), func() bool {
				n++
				return tt.stopAt == 0 || n < tt.stopAt
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != tt.want {
				t.Errorf("expected %d ticks, got %d", tt.want, n)
			}
		})
	}
}

func TestStepSchedulerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var n int
	err := StepScheduler{}.Run(ctx, func() bool {
		n++
		if n == 4 {
			cancel()
		}
		return true
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 ticks before cancel, got %d", n)
	}
}

func TestTickerScheduler(t *testing.T) {
	var n int
	err := TickerScheduler{Period: time.Millisecond}.Run(context.Background(), func() bool {
		n++
		return n < 3
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 ticks, got %d", n)
	}
}

func TestTickerSchedulerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := TickerScheduler{Period: time.Hour}.Run(ctx, func() bool {
		t.Error("tick must not run after cancel")
		return true
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewTickerScheduler(t *testing.T) {
	if got := NewTickerScheduler(60).Period; got != time.Second/60 {
		t.Errorf("expected %v, got %v", time.Second/60, got)
	}
	if got := NewTickerScheduler(0).Period; got != time.Second/60 {
		t.Errorf("expected fallback to 60 fps, got %v", got)
	}
}

func TestSchedulerDrivesGame(t *testing.T) {
	g := newTestGame(t, testConfig(10), Options{})

	var s Scheduler = StepScheduler{Ticks: 25}
	if err := s.Run(context.Background(), func() bool {
		g.Update()
		return true
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Ticks() != 25 {
		t.Errorf("expected tick 25, got %d", g.Ticks())
	}
}
