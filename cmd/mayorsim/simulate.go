package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/talgya/mayor-sim/internal/advisor"
	"github.com/talgya/mayor-sim/internal/catalog"
	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/engine"
	"github.com/talgya/mayor-sim/internal/entropy"
	"github.com/talgya/mayor-sim/internal/ledger"
	"github.com/talgya/mayor-sim/internal/persistence"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func newSimulateCmd(cfgPath *string) *cobra.Command {
	var (
		days      int
		seed      uint64
		autopilot bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless seeded game and print a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			res, err := runSimulation(cmd.Context(), days, seed, autopilot, logger)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 360, "number of days to simulate")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().BoolVar(&autopilot, "autopilot", true, "answer pending events with the first affordable option")
	return cmd
}

// simResult is what a headless run reports.
type simResult struct {
	Days      int
	Seed      uint64
	State     *city.GameState
	Decisions int
	History   []persistence.HistoryRow
}

// runSimulation plays days on an in-memory game until the game ends.
func runSimulation(ctx context.Context, days int, seed uint64, autopilot bool, logger *slog.Logger) (*simResult, error) {
	rules := engine.NewRules(catalog.Default(), entropy.NewSeeded(seed), logger)
	history := &persistence.MemoryHistory{}
	sim := engine.NewSimulation(rules, persistence.NewMemoryStore(), history, logger)

	res := &simResult{Seed: seed}
	for res.Days < days {
		if _, err := sim.Day(ctx); err != nil {
			return nil, fmt.Errorf("day %d: %w", res.Days+1, err)
		}
		res.Days++
		if autopilot && decidePending(sim) {
			res.Decisions++
		}
		if sim.State().GameOver {
			break
		}
	}

	res.State = sim.State()
	rows, err := sim.History(ctx, 12)
	if err != nil {
		return nil, err
	}
	res.History = rows
	return res, nil
}

// decidePending answers a pending event with its first affordable option.
func decidePending(sim *engine.Simulation) bool {
	g := sim.State()
	if g.PendingEvent == nil {
		return false
	}
	for _, opt := range g.PendingEvent.Options {
		if opt.Cost > g.Budget {
			continue
		}
		id, optID := g.PendingEvent.ID, opt.ID
		if _, err := sim.Do(func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
			return r.DecideEvent(g, id, optID)
		}); err == nil {
			return true
		}
	}
	return false
}

func printSummary(w io.Writer, res *simResult) {
	g := res.State
	stats := engine.Stats(g)
	status := advisor.Status(g)

	accent.Fprintf(w, "Mayor simulation: %d days, seed %d\n", res.Days, res.Seed)
	neutral.Fprintf(w, "  Date            %s\n", advisor.CurrentDate(g))
	neutral.Fprintf(w, "  Budget          %s\n", ledger.FormatMoneyFull(g.Budget))
	if g.Finance.CityBudget.Arrears > 0 {
		warn.Fprintf(w, "  Arrears         %s\n", ledger.FormatMoneyFull(g.Finance.CityBudget.Arrears))
	}
	gauge(w, "Mayor rating", g.MayorRating)
	gauge(w, "Happiness", g.Happiness)
	gauge(w, "Ecology", g.Ecology)
	gauge(w, "Infrastructure", g.Infrastructure)
	neutral.Fprintf(w, "  Unemployment    %.1f%%\n", g.Unemployment)
	neutral.Fprintf(w, "  Projects        %d done, %d failed (%.0f%% success)\n",
		stats.SuccessfulProjects, stats.FailedProjects, stats.SuccessRate)
	neutral.Fprintf(w, "  Decisions       %d (%d by autopilot)\n", stats.TotalDecisions, res.Decisions)
	neutral.Fprintf(w, "  City            %s (%.0f)\n", status.Label, status.Score)

	if len(res.History) > 0 {
		accent.Fprintln(w, "Recent months")
		for _, row := range res.History {
			neutral.Fprintf(w, "  %d-%02d  %-22s rating %5.1f  happiness %5.1f\n",
				row.Year, row.Month, ledger.FormatMoneyFull(row.Budget), row.MayorRating, row.Happiness)
		}
	}

	switch {
	case g.GameResult == city.ResultVictory:
		success.Fprintf(w, "Victory: %s\n", g.GameOverReason)
	case g.GameOver:
		danger.Fprintf(w, "Defeat: %s\n", g.GameOverReason)
	default:
		accent.Fprintln(w, "Still in office.")
	}
}

func gauge(w io.Writer, label string, v float64) {
	c := success
	switch {
	case v < 30:
		c = danger
	case v < 50:
		c = warn
	}
	c.Fprintf(w, "  %-15s %.1f\n", label, v)
}
