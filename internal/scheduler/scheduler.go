// Package scheduler runs wall-clock housekeeping for a live game: the
// periodic autosave.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Saver persists the running game, reporting success.
type Saver interface {
	Save(ctx context.Context) bool
}

// Scheduler manages the cron jobs of a serving process.
type Scheduler struct {
	Cron  *cron.Cron
	Saver Saver
	Ctx   context.Context

	saves, failures int
}

// NewScheduler creates a Scheduler. Cron expressions accept an optional
// seconds field and descriptors such as "@every 5m".
func NewScheduler(ctx context.Context, saver Saver) *Scheduler {
	return &Scheduler{
		Cron:  cron.New(cron.WithParser(cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
		Saver: saver,
		Ctx:   ctx,
	}
}

// RegisterAutosave schedules a save on the cron expression expr.
func (s *Scheduler) RegisterAutosave(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.autosave); err != nil {
		return fmt.Errorf("register autosave %q: %w", expr, err)
	}
	slog.Info("autosave scheduled", "cron", expr)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	slog.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	slog.Info("scheduler stopped", "saves", s.saves, "failures", s.failures)
}

// RunNow performs an autosave immediately.
func (s *Scheduler) RunNow() { s.autosave() }

func (s *Scheduler) autosave() {
	if s.Saver.Save(s.Ctx) {
		s.saves++
		slog.Debug("autosave complete")
		return
	}
	s.failures++
	slog.Warn("autosave failed")
}
