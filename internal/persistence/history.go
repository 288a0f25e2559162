package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/talgya/mayor-sim/internal/city"
)

// HistoryRow is one month-end snapshot of the headline indicators.
type HistoryRow struct {
	Year           int       `db:"year" json:"year"`
	Month          int       `db:"month" json:"month"`
	Budget         int64     `db:"budget" json:"budget"`
	MayorRating    float64   `db:"mayor_rating" json:"mayorRating"`
	Happiness      float64   `db:"happiness" json:"happiness"`
	Ecology        float64   `db:"ecology" json:"ecology"`
	Infrastructure float64   `db:"infrastructure" json:"infrastructure"`
	Unemployment   float64   `db:"unemployment" json:"unemployment"`
	RecordedAt     time.Time `db:"recorded_at" json:"recordedAt"`
}

// RowFromState snapshots g.
func RowFromState(g *city.GameState, now time.Time) HistoryRow {
	return HistoryRow{
		Year:           g.CurrentYear,
		Month:          g.CurrentMonth,
		Budget:         g.Budget,
		MayorRating:    g.MayorRating,
		Happiness:      g.Happiness,
		Ecology:        g.Ecology,
		Infrastructure: g.Infrastructure,
		Unemployment:   g.Unemployment,
		RecordedAt:     now.UTC(),
	}
}

// AppendHistory records one month.
func (db *DB) AppendHistory(ctx context.Context, row HistoryRow) error {
	_, err := db.conn.NamedExecContext(ctx, `INSERT INTO monthly_history
		(year, month, budget, mayor_rating, happiness, ecology, infrastructure, unemployment, recorded_at)
		VALUES (:year, :month, :budget, :mayor_rating, :happiness, :ecology, :infrastructure, :unemployment, :recorded_at)`,
		row)
	if err != nil {
		return fmt.Errorf("append history %d-%02d: %w", row.Year, row.Month, err)
	}
	return nil
}

// RecentHistory returns up to limit of the latest rows, oldest first.
func (db *DB) RecentHistory(ctx context.Context, limit int) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := db.conn.SelectContext(ctx, &rows, db.conn.Rebind(`SELECT year, month, budget, mayor_rating, happiness,
		ecology, infrastructure, unemployment, recorded_at
		FROM monthly_history ORDER BY id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	slices.Reverse(rows)
	return rows, nil
}

// ClearHistory drops every row; used when a new game starts.
func (db *DB) ClearHistory(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, "DELETE FROM monthly_history"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// MemoryHistory keeps history rows in memory for the memory dialect.
type MemoryHistory struct {
	mu   sync.Mutex
	rows []HistoryRow
}

func (h *MemoryHistory) AppendHistory(_ context.Context, row HistoryRow) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rows = append(h.rows, row)
	return nil
}

func (h *MemoryHistory) RecentHistory(_ context.Context, limit int) ([]HistoryRow, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit <= 0 {
		limit = len(h.rows)
	}
	start := max(0, len(h.rows)-limit)
	return slices.Clone(h.rows[start:]), nil
}

func (h *MemoryHistory) ClearHistory(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rows = nil
	return nil
}
