package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/mayor-sim/internal/api"
	"github.com/talgya/mayor-sim/internal/catalog"
	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/engine"
	"github.com/talgya/mayor-sim/internal/entropy"
	"github.com/talgya/mayor-sim/internal/ledger"
	"github.com/talgya/mayor-sim/internal/scheduler"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the game in real time behind the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// ── Storage ─────────────────────────────────────────────────
			st, err := openStores(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer st.close()

			// ── Simulation ──────────────────────────────────────────────
			src := entropy.New(cfg.Simulation.Seed, cfg.Entropy.RandomOrgKey)
			if c, ok := src.(*entropy.Client); ok && c.Enabled() {
				logger.Info("random.org entropy enabled")
			}
			rules := engine.NewRules(catalog.Default(), src, logger)
			sim := engine.NewSimulation(rules, st.save, st.history, logger)
			if !sim.Resume(ctx) && cfg.Simulation.Speed != 1 {
				if _, err := sim.Do(func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
					return r.SetGameSpeed(g, cfg.Simulation.Speed)
				}); err != nil {
					logger.Warn("configured speed rejected", "error", err)
				}
			}
			sim.OnMonth = func(g *city.GameState, rep *engine.MonthReport) {
				logger.Info("month closed",
					"date", g.DateString(),
					"budget", ledger.FormatMoney(g.Budget),
					"net_income", ledger.FormatMoney(rep.NetIncome),
					"rating", g.MayorRating,
					"skips", len(rep.Skips),
				)
				if rep.GameOver {
					logger.Info("game over", "result", g.GameResult, "reason", g.GameOverReason)
				}
			}

			eng := engine.NewEngine()
			eng.Interval = cfg.Simulation.DayInterval
			eng.Pace = sim.Pace
			eng.OnDay = func(ctx context.Context) {
				if _, err := sim.Day(ctx); err != nil && !errors.Is(err, engine.ErrGameOver) {
					logger.Error("day failed", "error", err)
				}
			}

			// ── Autosave ────────────────────────────────────────────────
			sched := scheduler.NewScheduler(ctx, sim)
			if err := sched.RegisterAutosave(cfg.Simulation.AutosaveCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			// ── HTTP API ────────────────────────────────────────────────
			if cfg.Server.AdminKey == "" {
				logger.Warn("MAYORSIM_ADMIN_KEY not set, reset endpoint disabled")
			}
			srv := api.New(sim, api.Options{
				AdminKey:           cfg.Server.AdminKey,
				RateLimitPerMinute: cfg.Simulation.RateLimitPerMinute,
				CORSOrigins:        cfg.Server.CORSOrigins,
				TrustProxy:         cfg.Server.TrustProxy,
			}, logger)
			httpSrv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				logger.Info("HTTP API starting", "addr", cfg.Server.Addr, "admin_auth", cfg.Server.AdminKey != "")
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server error", "error", err)
					stop()
				}
			}()

			g := sim.State()
			fmt.Fprintf(cmd.OutOrStdout(), "\nMayor of a city of %d on %s, budget %s.\n",
				g.Population, g.DateString(), ledger.FormatMoneyFull(g.Budget))
			fmt.Fprintf(cmd.OutOrStdout(), "API: http://localhost%s/api/v1/state\n", cfg.Server.Addr)
			fmt.Fprintln(cmd.OutOrStdout(), "Starting simulation... (Ctrl+C to stop)")

			eng.Run(ctx)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP shutdown failed", "error", err)
			}

			logger.Info("final save...")
			if !sim.Save(shutdownCtx) {
				return errors.New("final save failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Simulation stopped. Game saved.")
			return nil
		},
	}
}
