package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/talgya/mayor-sim/internal/city"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "mayor.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	stores := map[string]SaveStore{
		"memory": NewMemoryStore(),
		"sqlite": openTestDB(t),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			g := city.NewGame()
			g.CurrentDay = 17
			g.MayorRating = 63.5

			if err := SaveGame(ctx, store, g, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)); err != nil {
				t.Fatalf("SaveGame: %v", err)
			}
			got, err := LoadGame(ctx, store)
			if err != nil {
				t.Fatalf("LoadGame: %v", err)
			}
			if got.CurrentDay != 17 || got.MayorRating != 63.5 || got.Budget != g.Budget {
				t.Errorf("loaded day=%d rating=%v budget=%d", got.CurrentDay, got.MayorRating, got.Budget)
			}
			if got.Banking.Accounts[city.AccountCityChecking].Balance != g.Banking.Accounts[city.AccountCityChecking].Balance {
				t.Errorf("checking balance not restored")
			}

			if err := ClearGame(ctx, store); err != nil {
				t.Fatalf("ClearGame: %v", err)
			}
			if _, err := LoadGame(ctx, store); !errors.Is(err, ErrNoSave) {
				t.Errorf("after clear: err = %v, want ErrNoSave", err)
			}
		})
	}
}

func TestLoadRejectsBadSaves(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"version", `{"state":{"currentDay":3},"saveDate":"2025-01-01T00:00:00Z","version":"0.9"}`, ErrVersionMismatch},
		{"garbage", `{not json`, nil},
		{"no state", `{"saveDate":"2025-01-01T00:00:00Z","version":"1.0"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			store.Set(ctx, SaveKey, []byte(tt.raw))
			g, err := LoadGame(ctx, store)
			if err == nil || g != nil {
				t.Fatalf("LoadGame = %v, %v; want error", g, err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadNormalizesNullMaps(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Set(ctx, SaveKey, []byte(`{"state":{"currentDay":2,"currentMonth":1,"currentYear":2025},"saveDate":"x","version":"1.0"}`))
	g, err := LoadGame(ctx, store)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if g.Banking.Accounts == nil || g.Finance.CityBudget.ProjectExpenses == nil {
		t.Error("maps left nil after load")
	}
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	if err := db.Set(ctx, "k", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := db.Set(ctx, "k", []byte("two")); err != nil {
		t.Fatal(err)
	}
	got, err := db.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "two" {
		t.Errorf("Get = %q, want two", got)
	}
	if err := db.Clear(ctx, "missing"); err != nil {
		t.Errorf("Clear missing key: %v", err)
	}
}

func TestRecentHistory(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	mem := &MemoryHistory{}
	g := city.NewGame()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for m := 1; m <= 5; m++ {
		g.CurrentMonth = m
		row := RowFromState(g, now)
		if err := db.AppendHistory(ctx, row); err != nil {
			t.Fatalf("AppendHistory: %v", err)
		}
		mem.AppendHistory(ctx, row)
	}

	for name, rows := range map[string]func() ([]HistoryRow, error){
		"sqlite": func() ([]HistoryRow, error) { return db.RecentHistory(ctx, 3) },
		"memory": func() ([]HistoryRow, error) { return mem.RecentHistory(ctx, 3) },
	} {
		got, err := rows()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(got) != 3 {
			t.Fatalf("%s: len = %d, want 3", name, len(got))
		}
		if got[0].Month != 3 || got[2].Month != 5 {
			t.Errorf("%s: months = %d..%d, want 3..5", name, got[0].Month, got[2].Month)
		}
		if got[2].Budget != g.Budget {
			t.Errorf("%s: budget = %d, want %d", name, got[2].Budget, g.Budget)
		}
	}

	if err := db.ClearHistory(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := db.RecentHistory(ctx, 10); len(got) != 0 {
		t.Errorf("after clear: %d rows", len(got))
	}
}

func TestOpenRejectsUnknownDialect(t *testing.T) {
	if _, err := Open(context.Background(), "oracle", "x"); err == nil {
		t.Error("expected error for unknown dialect")
	}
	if _, err := Open(context.Background(), DialectPostgres, ""); err == nil {
		t.Error("expected error for empty postgres dsn")
	}
}
