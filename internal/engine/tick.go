package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// pausePoll is how often a paused scheduler rechecks the pace.
const pausePoll = 100 * time.Millisecond

// Engine drives simulated days in real time. At speed 1 one day passes per
// Interval; speed scales that, and a paused or zero-speed engine idles.
type Engine struct {
	Interval time.Duration // Real time per simulated day at speed 1

	// Pace reports whether the game is paused and its speed multiplier.
	Pace func() (paused bool, speed float64)
	// OnDay advances the game by one day.
	OnDay func(ctx context.Context)

	days atomic.Uint64
}

// NewEngine creates a scheduler with a one-second day.
func NewEngine() *Engine {
	return &Engine{
		Interval: time.Second,
		Pace:     func() (bool, float64) { return false, 1 },
	}
}

// Days returns how many days this engine has run.
func (e *Engine) Days() uint64 { return e.days.Load() }

// Run advances days until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	slog.Info("day scheduler started", "interval", e.Interval)
	for ctx.Err() == nil {
		paused, speed := e.Pace()
		if paused || speed <= 0 {
			if !sleep(ctx, pausePoll) {
				break
			}
			continue
		}

		start := time.Now()
		e.step(ctx)

		// Sleep for the rest of the day interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / speed)
		if elapsed < target && !sleep(ctx, target-elapsed) {
			break
		}
	}
	slog.Info("day scheduler stopped", "days", e.Days())
}

func (e *Engine) step(ctx context.Context) {
	e.days.Add(1)
	if e.OnDay != nil {
		e.OnDay(ctx)
	}
}

// sleep waits for d or until ctx is done, reporting whether it slept fully.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
