// Simulation owns one running game: the current state behind a single mutex,
// its save store and month history, and the subscribers watching it.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/persistence"
)

// HistoryStore records month-end indicators.
type HistoryStore interface {
	AppendHistory(ctx context.Context, row persistence.HistoryRow) error
	RecentHistory(ctx context.Context, limit int) ([]persistence.HistoryRow, error)
	ClearHistory(ctx context.Context) error
}

// Simulation serialises every state change for one game session. All reads
// return clones, so callers may hold them freely.
type Simulation struct {
	rules   *Rules
	store   persistence.SaveStore
	history HistoryStore
	log     *slog.Logger

	// OnMonth is called, outside the lock, after every monthly tick.
	OnMonth func(g *city.GameState, report *MonthReport)
	// Now stamps saves and history rows.
	Now func() time.Time

	mu         sync.Mutex
	state      *city.GameState
	lastReport *MonthReport

	subMu sync.Mutex
	subs  map[chan *city.GameState]struct{}
}

// NewSimulation starts a fresh game. history may be nil.
func NewSimulation(rules *Rules, store persistence.SaveStore, history HistoryStore, logger *slog.Logger) *Simulation {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = persistence.NewMemoryStore()
	}
	return &Simulation{
		rules:   rules,
		store:   store,
		history: history,
		log:     logger,
		Now:     time.Now,
		state:   rules.NewGame(),
		subs:    make(map[chan *city.GameState]struct{}),
	}
}

// Rules returns the rule set driving this session.
func (s *Simulation) Rules() *Rules { return s.rules }

// Resume replaces the current game with the stored save, reporting whether
// one was loaded. Missing, unreadable or foreign-version saves leave the
// fresh game in place.
func (s *Simulation) Resume(ctx context.Context) bool {
	g, err := persistence.LoadGame(ctx, s.store)
	switch {
	case errors.Is(err, persistence.ErrNoSave):
		s.log.Info("no saved game, starting fresh")
		return false
	case err != nil:
		s.log.Error("failed to load game", "error", err)
		return false
	}

	s.mu.Lock()
	s.state = g
	s.mu.Unlock()
	s.log.Info("game resumed", "date", g.DateString(), "budget", g.Budget)
	s.publish(g)
	return true
}

// State returns a copy of the current game.
func (s *Simulation) State() *city.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// LastReport returns the most recent monthly report, or nil.
func (s *Simulation) LastReport() *MonthReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastReport == nil {
		return nil
	}
	r := *s.lastReport
	return &r
}

// Pace reports the paused flag and speed for the day scheduler.
func (s *Simulation) Pace() (paused bool, speed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.GameOver {
		return true, s.state.GameSpeed
	}
	return s.state.IsPaused, s.state.GameSpeed
}

// Day advances the game one day. A monthly report is returned on month
// rollover.
func (s *Simulation) Day(ctx context.Context) (*MonthReport, error) {
	s.mu.Lock()
	next, report, err := s.rules.AdvanceDay(s.state)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = next
	if report != nil {
		s.lastReport = report
	}
	snapshot := next.Clone()
	s.mu.Unlock()

	if report != nil {
		s.recordMonth(ctx, snapshot)
		if s.OnMonth != nil {
			s.OnMonth(snapshot, report)
		}
	}
	s.publish(snapshot)
	return report, nil
}

func (s *Simulation) recordMonth(ctx context.Context, g *city.GameState) {
	if s.history == nil {
		return
	}
	if err := s.history.AppendHistory(ctx, persistence.RowFromState(g, s.Now())); err != nil {
		s.log.Error("failed to record month", "error", err)
	}
}

// Do applies one player action. The resulting state is kept even when the
// action is rejected, so the rejection message stays visible until cleared.
func (s *Simulation) Do(action func(r *Rules, g *city.GameState) (*city.GameState, error)) (*city.GameState, error) {
	s.mu.Lock()
	next, err := action(s.rules, s.state)
	if next != nil {
		s.state = next
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.publish(snapshot)
	return snapshot, err
}

// ClearError dismisses the current error message.
func (s *Simulation) ClearError() *city.GameState {
	g, _ := s.Do(func(r *Rules, g *city.GameState) (*city.GameState, error) {
		return r.ClearError(g), nil
	})
	return g
}

// Save writes the current game to the store, reporting success.
func (s *Simulation) Save(ctx context.Context) bool {
	g := s.State()
	if err := persistence.SaveGame(ctx, s.store, g, s.Now()); err != nil {
		s.log.Error("failed to save game", "error", err)
		return false
	}
	s.log.Info("game saved", "date", g.DateString())
	return true
}

// Reset clears the stored save and history and starts a new game. It
// reports whether the store was cleared.
func (s *Simulation) Reset(ctx context.Context) bool {
	ok := true
	if err := persistence.ClearGame(ctx, s.store); err != nil {
		s.log.Error("failed to clear save", "error", err)
		ok = false
	}
	if s.history != nil {
		if err := s.history.ClearHistory(ctx); err != nil {
			s.log.Error("failed to clear history", "error", err)
		}
	}

	g := s.rules.NewGame()
	s.mu.Lock()
	s.state = g
	s.lastReport = nil
	s.mu.Unlock()

	s.log.Info("game reset")
	s.publish(g.Clone())
	return ok
}

// History returns up to limit recent month rows, oldest first.
func (s *Simulation) History(ctx context.Context, limit int) ([]persistence.HistoryRow, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.RecentHistory(ctx, limit)
}

// Subscribe returns a channel that receives the state after every change.
// Slow readers only see the latest state. Call cancel to unsubscribe.
func (s *Simulation) Subscribe() (updates <-chan *city.GameState, cancel func()) {
	ch := make(chan *city.GameState, 1)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, ch)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Simulation) publish(g *city.GameState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- g:
		default:
		}
	}
}
