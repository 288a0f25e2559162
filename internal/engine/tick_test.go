package engine

import (
	"context"
	"testing"
	"time"
)

func TestEngineRunsDays(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := NewEngine()
	e.Interval = time.Millisecond
	e.OnDay = func(context.Context) {
		if e.Days() >= 3 {
			cancel()
		}
	}

	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
	if e.Days() != 3 {
		t.Errorf("days = %d, want 3", e.Days())
	}
}

func TestEngineIdlesWhilePaused(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	e := NewEngine()
	e.Interval = time.Millisecond
	e.Pace = func() (bool, float64) { return true, 1 }
	e.OnDay = func(context.Context) { t.Error("day ran while paused") }
	e.Run(ctx)
	if e.Days() != 0 {
		t.Errorf("days = %d, want 0", e.Days())
	}
}
