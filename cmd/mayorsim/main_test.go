package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/config"
	"github.com/talgya/mayor-sim/internal/persistence"
)

var testNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunSimulationIsReproducible(t *testing.T) {
	ctx := context.Background()
	a, err := runSimulation(ctx, 90, 7, true, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	b, err := runSimulation(ctx, 90, 7, true, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if a.Days != b.Days || a.State.Budget != b.State.Budget || a.State.MayorRating != b.State.MayorRating {
		t.Errorf("runs differ: %d/%d/%v vs %d/%d/%v",
			a.Days, a.State.Budget, a.State.MayorRating, b.Days, b.State.Budget, b.State.MayorRating)
	}
	if !a.State.GameOver && a.Days != 90 {
		t.Errorf("days = %d, want 90", a.Days)
	}
	if !a.State.GameOver && len(a.History) != 3 {
		t.Errorf("history rows = %d, want 3", len(a.History))
	}
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true
	res, err := runSimulation(context.Background(), 30, 1, false, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printSummary(&buf, res)
	out := buf.String()
	for _, want := range []string{"30 days, seed 1", "Budget", "Mayor rating", "Recent months"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestOpenStores(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		wantErr bool
	}{
		{"memory", "memory", false},
		{"sqlite", "sqlite", false},
		{"unknown", "oracle", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Storage.Dialect = tt.dialect
			cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "nested", "mayorsim.db")

			st, err := openStores(context.Background(), cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("openStores: %v", err)
			}
			defer st.close()

			ctx := context.Background()
			if err := persistence.SaveGame(ctx, st.save, city.NewGame(), testNow); err != nil {
				t.Fatalf("save: %v", err)
			}
			if _, err := persistence.LoadGame(ctx, st.save); err != nil {
				t.Fatalf("load: %v", err)
			}
			if err := st.history.ClearHistory(ctx); err != nil {
				t.Fatalf("clear history: %v", err)
			}
		})
	}
}
