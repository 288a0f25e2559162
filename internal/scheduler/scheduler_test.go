package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingSaver struct {
	calls atomic.Int32
	ok    bool
}

func (c *countingSaver) Save(context.Context) bool {
	c.calls.Add(1)
	return c.ok
}

func TestRegisterAutosaveRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(context.Background(), &countingSaver{ok: true})
	if err := s.RegisterAutosave("every now and then"); err == nil {
		t.Fatal("expected error for bad schedule")
	}
}

func TestRegisterAutosaveAcceptsSchedules(t *testing.T) {
	for _, expr := range []string{"@every 5m", "0 */10 * * * *", "*/15 * * * *"} {
		s := NewScheduler(context.Background(), &countingSaver{ok: true})
		if err := s.RegisterAutosave(expr); err != nil {
			t.Errorf("schedule %q: %v", expr, err)
		}
	}
}

func TestRunNowCounts(t *testing.T) {
	saver := &countingSaver{ok: true}
	s := NewScheduler(context.Background(), saver)
	s.RunNow()
	s.RunNow()
	saver.ok = false
	s.RunNow()
	if saver.calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", saver.calls.Load())
	}
	if s.saves != 2 || s.failures != 1 {
		t.Errorf("saves %d failures %d", s.saves, s.failures)
	}
}

func TestAutosaveFires(t *testing.T) {
	saver := &countingSaver{ok: true}
	s := NewScheduler(context.Background(), saver)
	if err := s.RegisterAutosave("@every 1s"); err != nil {
		t.Fatal(err)
	}
	s.Start()
	deadline := time.Now().Add(5 * time.Second)
	for saver.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	s.Stop()
	if saver.calls.Load() == 0 {
		t.Fatal("autosave never ran")
	}
}
