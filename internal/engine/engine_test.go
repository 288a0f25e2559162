package engine

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/entropy"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// fixedSource returns the same draw every time. A draw of 0.99 makes every
// chance roll fail.
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }

func (s fixedSource) Intn(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRules(src entropy.Source) *Rules {
	if src == nil {
		src = fixedSource{f: 0.99}
	}
	return NewRules(nil, src, quietLogger())
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func setBalance(g *city.GameState, account city.BankAccountType, v int64) {
	acc := g.Banking.Accounts[account]
	acc.Balance = v
	g.Banking.Accounts[account] = acc
	ledger.SyncBudget(g)
}

func TestNewGame(t *testing.T) {
	g := newTestRules(nil).NewGame()
	if g.Budget != 50_000_000 {
		t.Errorf("budget = %d, want 50,000,000", g.Budget)
	}
	if g.Finance.CityBudget.Total != g.Budget {
		t.Errorf("cityBudget.total = %d, want %d", g.Finance.CityBudget.Total, g.Budget)
	}
	if g.MayorRating != 50 {
		t.Errorf("mayorRating = %v, want 50", g.MayorRating)
	}
	if g.CurrentDay != 1 || g.CurrentMonth != 1 || g.CurrentYear != 2025 {
		t.Errorf("date = %s, want 01.01.2025", g.DateString())
	}
	if len(g.ActiveProjects) != 0 {
		t.Errorf("active projects = %d, want 0", len(g.ActiveProjects))
	}
	if len(g.Security.Agencies) == 0 {
		t.Error("no agencies seated")
	}
}

func TestStartProjectDebitsInFundingOrder(t *testing.T) {
	tests := []struct {
		name                      string
		checking                  int64
		wantChecking, wantSavings int64
		wantInvestment            int64
	}{
		{"checking covers", 30_000_000, 15_000_000, 15_000_000, 5_000_000},
		{"spills to savings", 10_000_000, 0, 10_000_000, 5_000_000},
		{"spills to investment", 0, 0, 0, 5_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRules(nil)
			g := r.NewGame()
			setBalance(g, city.AccountCityChecking, tt.checking)
			if tt.checking == 0 {
				setBalance(g, city.AccountCitySavings, 10_000_000)
				setBalance(g, city.AccountCityInvestment, 10_000_000)
			}
			before := g.Budget

			next, err := r.StartProject(g, "green_zones")
			if err != nil {
				t.Fatalf("StartProject: %v", err)
			}
			if got := before - next.Budget; got != 15_000_000 {
				t.Errorf("debited %d, want 15,000,000", got)
			}
			b := next.Banking
			if got := b.Balance(city.AccountCityChecking); got != tt.wantChecking {
				t.Errorf("checking = %d, want %d", got, tt.wantChecking)
			}
			if got := b.Balance(city.AccountCitySavings); got != tt.wantSavings {
				t.Errorf("savings = %d, want %d", got, tt.wantSavings)
			}
			if got := b.Balance(city.AccountCityInvestment); got != tt.wantInvestment {
				t.Errorf("investment = %d, want %d", got, tt.wantInvestment)
			}
			if len(next.ActiveProjects) != 1 || next.ActiveProjects[0].Status != city.ProjectInProgress {
				t.Fatalf("active projects = %+v", next.ActiveProjects)
			}
			if len(g.ActiveProjects) != 0 {
				t.Error("input state was modified")
			}
		})
	}
}

func TestStartProjectRejections(t *testing.T) {
	r := newTestRules(nil)
	tests := []struct {
		name  string
		setup func(g *city.GameState)
		id    string
		want  error
	}{
		{"unknown", nil, "no_such_project", ErrUnknownProject},
		{"insufficient", func(g *city.GameState) {
			setBalance(g, city.AccountCityChecking, 1_000_000)
			setBalance(g, city.AccountCitySavings, 0)
			setBalance(g, city.AccountCityInvestment, 0)
		}, "green_zones", ErrInsufficientFunds},
		{"rating requirement", func(g *city.GameState) { g.MayorRating = 20 }, "school_renovation", ErrRequirementsNotMet},
		{"too many", func(g *city.GameState) {
			for range city.MaxActiveProjects {
				g.ActiveProjects = append(g.ActiveProjects, city.Project{ID: "filler", Status: city.ProjectInProgress, RemainingDays: 10})
			}
		}, "green_zones", ErrTooManyProjects},
		{"already running", func(g *city.GameState) {
			g.ActiveProjects = append(g.ActiveProjects, city.Project{ID: "green_zones", Status: city.ProjectInProgress, RemainingDays: 10})
		}, "green_zones", ErrRequirementsNotMet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := r.NewGame()
			if tt.setup != nil {
				tt.setup(g)
			}
			next, err := r.StartProject(g, tt.id)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if next.ErrorMessage == "" {
				t.Error("ErrorMessage not set")
			}
			if next.Budget != g.Budget || len(next.ActiveProjects) != len(g.ActiveProjects) {
				t.Error("rejected action changed state")
			}
		})
	}
}

func TestStartThenCancelRefundsHalf(t *testing.T) {
	r := newTestRules(nil)
	g := r.NewGame()
	setBalance(g, city.AccountCityChecking, 10_000_000)
	initial := g.Budget

	started, err := r.StartProject(g, "green_zones")
	if err != nil {
		t.Fatalf("StartProject: %v", err)
	}
	cancelled, err := r.CancelProject(started, "green_zones")
	if err != nil {
		t.Fatalf("CancelProject: %v", err)
	}

	const cost = 15_000_000
	if want := initial - cost + cost/2; cancelled.Budget != want {
		t.Errorf("budget = %d, want %d", cancelled.Budget, want)
	}
	// Funding was 10M checking + 5M savings; the refund splits 2:1.
	if got := cancelled.Banking.Balance(city.AccountCityChecking); got != 5_000_000 {
		t.Errorf("checking = %d, want 5,000,000", got)
	}
	if got := cancelled.Banking.Balance(city.AccountCitySavings); got != 12_500_000 {
		t.Errorf("savings = %d, want 12,500,000", got)
	}
	p := cancelled.ActiveProjects[0]
	if p.Status != city.ProjectCancelled || p.RemainingDays != 0 {
		t.Errorf("project = %s/%d, want cancelled/0", p.Status, p.RemainingDays)
	}
	if cancelled.FailedProjects != 1 {
		t.Errorf("failedProjects = %d, want 1", cancelled.FailedProjects)
	}
	if cancelled.MayorRating != 45 {
		t.Errorf("mayorRating = %v, want 45", cancelled.MayorRating)
	}
	if _, ok := cancelled.Finance.CityBudget.ProjectExpenses["green_zones"]; ok {
		t.Error("recurring expense survived cancellation")
	}

	if _, err := r.CancelProject(cancelled, "green_zones"); !errors.Is(err, ErrProjectNotActive) {
		t.Errorf("second cancel err = %v, want ErrProjectNotActive", err)
	}
}

func TestCancelReversesOnlyBookedSpend(t *testing.T) {
	tests := []struct {
		name       string
		allocated  int64
		spent      int64
		wantBooked int64
	}{
		{"room on the line", 40_000_000, 5_000_000, 15_000_000},
		{"capped at allocation", 17_200_000, 16_200_000, 1_000_000},
		{"already over allocation", 10_000_000, 12_000_000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRules(nil)
			g := r.NewGame()
			setBalance(g, city.AccountCityChecking, 50_000_000)
			b := &g.Finance.CityBudget
			b.Allocated[city.BudgetEcology] = tt.allocated
			b.Spent[city.BudgetEcology] = tt.spent

			started, err := r.StartProject(g, "green_zones")
			if err != nil {
				t.Fatalf("StartProject: %v", err)
			}
			p := started.ActiveProjects[started.ProjectIndex("green_zones")]
			if p.Financials.SpentBooked != tt.wantBooked {
				t.Errorf("spentBooked = %d, want %d", p.Financials.SpentBooked, tt.wantBooked)
			}
			if got, want := started.Finance.CityBudget.Spent[city.BudgetEcology], tt.spent+tt.wantBooked; got != want {
				t.Errorf("spent after start = %d, want %d", got, want)
			}

			cancelled, err := r.CancelProject(started, "green_zones")
			if err != nil {
				t.Fatalf("CancelProject: %v", err)
			}
			if got := cancelled.Finance.CityBudget.Spent[city.BudgetEcology]; got != tt.spent {
				t.Errorf("spent after cancel = %d, want %d", got, tt.spent)
			}
		})
	}
}

func TestCancelPenaltyClampsAtZero(t *testing.T) {
	r := newTestRules(nil)
	g, err := r.StartProject(r.NewGame(), "green_zones")
	if err != nil {
		t.Fatal(err)
	}
	g.MayorRating = 2
	next, err := r.CancelProject(g, "green_zones")
	if err != nil {
		t.Fatal(err)
	}
	if next.MayorRating != 0 {
		t.Errorf("mayorRating = %v, want 0", next.MayorRating)
	}
}

func TestRefundShares(t *testing.T) {
	funding := []city.Funding{
		{Account: city.AccountCityChecking, Amount: 1},
		{Account: city.AccountCitySavings, Amount: 1},
		{Account: city.AccountCityInvestment, Amount: 1},
	}
	got := refundShares(funding, 100)
	var sum int64
	for _, f := range got {
		sum += f.Amount
	}
	if sum != 100 {
		t.Errorf("shares sum to %d, want 100", sum)
	}
	if got[2].Amount != 34 {
		t.Errorf("last share = %d, want 34", got[2].Amount)
	}
	if refundShares(nil, 100) != nil {
		t.Error("refund with no funding should be nil")
	}
}

func TestMonthFiresOnceOnRollover(t *testing.T) {
	r := newTestRules(nil)
	g := r.NewGame()
	fired := 0
	for i := 1; i <= 30; i++ {
		var report *MonthReport
		var err error
		g, report, err = r.AdvanceDay(g)
		if err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		if report != nil {
			fired++
			if i != 30 {
				t.Errorf("month fired on call %d, want 30", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("month fired %d times, want 1", fired)
	}
	if g.CurrentDay != 1 || g.CurrentMonth != 2 || g.CurrentYear != 2025 {
		t.Errorf("date = %s, want 01.02.2025", g.DateString())
	}
}

func TestYearRollover(t *testing.T) {
	r := newTestRules(nil)
	g := r.NewGame()
	g.CurrentDay, g.CurrentMonth = 30, 12
	next, report, err := r.AdvanceDay(g)
	if err != nil {
		t.Fatal(err)
	}
	if report == nil {
		t.Fatal("no month report on year rollover")
	}
	if next.CurrentDay != 1 || next.CurrentMonth != 1 || next.CurrentYear != 2026 {
		t.Errorf("date = %s, want 01.01.2026", next.DateString())
	}
}

func TestCompletionEffectsApplyOnce(t *testing.T) {
	r := newTestRules(nil)
	g, err := r.StartProject(r.NewGame(), "green_zones")
	if err != nil {
		t.Fatal(err)
	}
	g.ActiveProjects[0].RemainingDays = 1
	ecology, happiness := g.Ecology, g.Happiness

	for range 5 {
		if g, _, err = r.AdvanceDay(g); err != nil {
			t.Fatal(err)
		}
	}
	p := g.ActiveProjects[0]
	if p.Status != city.ProjectCompleted || !p.EffectsApplied {
		t.Fatalf("project = %s applied=%v", p.Status, p.EffectsApplied)
	}
	if g.Ecology != ecology+12 || g.Happiness != happiness+6 {
		t.Errorf("ecology %v happiness %v, want %v %v", g.Ecology, g.Happiness, ecology+12, happiness+6)
	}
	if g.SuccessfulProjects != 1 {
		t.Errorf("successfulProjects = %d, want 1", g.SuccessfulProjects)
	}
}

func TestApplyEffectsClamps(t *testing.T) {
	r := newTestRules(nil)
	g := r.NewGame()
	g.Ecology = 95
	g.Happiness = 3
	skipped := r.applyEffects(g, map[city.Stat]float64{
		city.StatEcology:   20,
		city.StatHappiness: -10,
		"weather":          5,
	}, "test")
	if g.Ecology != 100 || g.Happiness != 0 {
		t.Errorf("ecology %v happiness %v, want 100 0", g.Ecology, g.Happiness)
	}
	if len(skipped) != 1 || skipped[0] != "weather" {
		t.Errorf("skipped = %v, want [weather]", skipped)
	}

	before := g.Budget
	r.applyEffects(g, map[city.Stat]float64{city.StatBudget: -1_000_000}, "test")
	if g.Budget != before-1_000_000 {
		t.Errorf("budget = %d, want %d", g.Budget, before-1_000_000)
	}
	r.applyEffects(g, map[city.Stat]float64{city.StatBudget: -1e12}, "test")
	if g.Budget != 0 {
		t.Errorf("budget = %d, want 0 after overdraw", g.Budget)
	}
}

func TestDecideEvent(t *testing.T) {
	r := newTestRules(nil)
	g, err := r.TriggerEvent(r.NewGame(), "waste_crisis_1")
	if err != nil {
		t.Fatalf("TriggerEvent: %v", err)
	}
	next, err := r.DecideEvent(g, "waste_crisis_1", "ignore_problem")
	if err != nil {
		t.Fatalf("DecideEvent: %v", err)
	}
	if next.Ecology != g.Ecology-10 || next.Happiness != g.Happiness-15 || next.MayorRating != g.MayorRating-8 {
		t.Errorf("ecology %v happiness %v rating %v", next.Ecology, next.Happiness, next.MayorRating)
	}
	if len(next.EventHistory) != 1 || next.EventHistory[0].OptionID != "ignore_problem" {
		t.Errorf("event history = %+v", next.EventHistory)
	}
	if next.PendingEvent != nil {
		t.Error("event still pending")
	}
	if next.TotalDecisions != 1 {
		t.Errorf("totalDecisions = %d, want 1", next.TotalDecisions)
	}

	g.Ecology, g.Happiness = 4, 100
	floored, err := r.DecideEvent(g, "waste_crisis_1", "ignore_problem")
	if err != nil {
		t.Fatal(err)
	}
	if floored.Ecology != 0 || floored.Happiness != 85 {
		t.Errorf("ecology %v happiness %v, want 0 85", floored.Ecology, floored.Happiness)
	}
}

func TestDecideEventRejections(t *testing.T) {
	r := newTestRules(nil)
	pending, err := r.TriggerEvent(r.NewGame(), "waste_crisis_1")
	if err != nil {
		t.Fatal(err)
	}
	broke := pending.Clone()
	setBalance(broke, city.AccountCityChecking, 0)
	setBalance(broke, city.AccountCitySavings, 0)
	setBalance(broke, city.AccountCityInvestment, 0)

	tests := []struct {
		name          string
		g             *city.GameState
		event, option string
		want          error
	}{
		{"not pending", r.NewGame(), "waste_crisis_1", "ignore_problem", ErrEventNotPending},
		{"unknown event", pending, "no_such_event", "x", ErrUnknownEvent},
		{"unknown option", pending, "waste_crisis_1", "pray", ErrUnknownOption},
		{"cannot afford", broke, "waste_crisis_1", "emergency_cleanup", ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := r.DecideEvent(tt.g, tt.event, tt.option)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if next.ErrorMessage == "" {
				t.Error("ErrorMessage not set")
			}
		})
	}

	if _, err := r.TriggerEvent(pending, "heating_failure"); !errors.Is(err, ErrEventPending) {
		t.Errorf("overwrite pending: err = %v, want ErrEventPending", err)
	}
}

func TestDecideEventWithDurationStartsProject(t *testing.T) {
	r := newTestRules(nil)
	g, err := r.TriggerEvent(r.NewGame(), "waste_crisis_1")
	if err != nil {
		t.Fatal(err)
	}
	next, err := r.DecideEvent(g, "waste_crisis_1", "build_sorting")
	if err != nil {
		t.Fatal(err)
	}
	if next.Budget != g.Budget-8_000_000 {
		t.Errorf("budget = %d, want %d", next.Budget, g.Budget-8_000_000)
	}
	i := eventProjectIndex(next, "waste_crisis_1_build_sorting_")
	if i < 0 || next.ActiveProjects[i].RemainingDays != 60 {
		t.Fatalf("follow-up project missing: %+v", next.ActiveProjects)
	}
}

func TestDecideEventTwiceGivesDistinctProjects(t *testing.T) {
	r := newTestRules(nil)
	g := r.NewGame()
	setBalance(g, city.AccountCityChecking, 50_000_000)
	for range 2 {
		var err error
		if g, err = r.TriggerEvent(g, "waste_crisis_1"); err != nil {
			t.Fatal(err)
		}
		if g, err = r.DecideEvent(g, "waste_crisis_1", "build_sorting"); err != nil {
			t.Fatal(err)
		}
	}
	seen := map[string]bool{}
	for _, p := range g.ActiveProjects {
		if !strings.HasPrefix(p.ID, "waste_crisis_1_build_sorting_") {
			continue
		}
		if seen[p.ID] {
			t.Errorf("duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) != 2 {
		t.Errorf("follow-up projects = %d, want 2 (%+v)", len(seen), g.ActiveProjects)
	}
}

func eventProjectIndex(g *city.GameState, prefix string) int {
	for i, p := range g.ActiveProjects {
		if strings.HasPrefix(p.ID, prefix) {
			return i
		}
	}
	return -1
}

func TestRandomEventNeverOverwritesPending(t *testing.T) {
	r := newTestRules(fixedSource{f: 0})
	g, err := r.TriggerEvent(r.NewGame(), "waste_crisis_1")
	if err != nil {
		t.Fatal(err)
	}
	m := &month{r: r, g: g, report: &MonthReport{}}
	m.randomEvent()
	if g.PendingEvent.ID != "waste_crisis_1" || m.report.Event != "" {
		t.Errorf("pending event replaced by %q", m.report.Event)
	}

	fresh := r.NewGame()
	m = &month{r: r, g: fresh, report: &MonthReport{}}
	m.randomEvent()
	if fresh.PendingEvent == nil {
		t.Fatal("a zero draw should always fire an event")
	}
	if !Triggerable(*fresh.PendingEvent, fresh) {
		t.Errorf("fired %q whose conditions do not hold", fresh.PendingEvent.ID)
	}
}

func TestNaturalDecay(t *testing.T) {
	g := city.NewGame()
	naturalDecay(g, fixedSource{f: 0.99})
	if !near(g.Infrastructure, 49.5) || !near(g.Ecology, 54.7) || !near(g.Happiness, 59.8) {
		t.Errorf("infra %v ecology %v happiness %v", g.Infrastructure, g.Ecology, g.Happiness)
	}
	if g.Unemployment != 6 {
		t.Errorf("unemployment drifted on a failed roll: %v", g.Unemployment)
	}
	naturalDecay(g, fixedSource{f: 0})
	if !near(g.Unemployment, 6.1) {
		t.Errorf("unemployment = %v, want 6.1", g.Unemployment)
	}

	g.Infrastructure, g.Unemployment = 0.2, 20
	naturalDecay(g, fixedSource{f: 0})
	if g.Infrastructure != 0 || g.Unemployment != 20 {
		t.Errorf("infra %v unemployment %v, want 0 20", g.Infrastructure, g.Unemployment)
	}
}

func TestInitialTaxRevenue(t *testing.T) {
	g := city.NewGame()
	refreshTaxation(g)
	if g.Taxation.Metrics.TotalRevenue != 5_767_500 {
		t.Errorf("tax revenue = %d, want 5,767,500", g.Taxation.Metrics.TotalRevenue)
	}
	if g.Finance.CityBudget.MonthlyIncome[city.IncomeTaxes] != 5_767_500 {
		t.Error("tax income not booked")
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(g *city.GameState)
		over   bool
		result city.GameResult
		reason string
	}{
		{"playing", func(*city.GameState) {}, false, "", ""},
		{"impeached", func(g *city.GameState) { g.MayorRating = 10 }, true, city.ResultDefeat, ReasonImpeached},
		{"bankrupt", func(g *city.GameState) {
			g.Budget = 0
			g.Finance.CityBudget.Arrears = 10_000_001
		}, true, city.ResultDefeat, ReasonBankrupt},
		{"at debt ceiling", func(g *city.GameState) {
			g.Budget = 0
			g.Finance.CityBudget.Arrears = 10_000_000
		}, false, "", ""},
		{"victory", func(g *city.GameState) {
			g.CurrentYear = 2026
			g.MayorRating, g.Happiness, g.Ecology, g.Infrastructure = 80, 75, 70, 70
		}, true, city.ResultVictory, ReasonVictory},
		{"victory too early", func(g *city.GameState) {
			g.MayorRating, g.Happiness, g.Ecology, g.Infrastructure = 90, 90, 90, 90
		}, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := city.NewGame()
			tt.setup(g)
			v := Evaluate(g)
			if v.Over != tt.over || v.Result != tt.result || v.Reason != tt.reason {
				t.Errorf("Evaluate = %+v", v)
			}
		})
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	r := newTestRules(nil)
	g := r.NewGame()
	g.MayorRating = 0
	g.CurrentDay = 30

	over, report, err := r.AdvanceDay(g)
	if err != nil {
		t.Fatal(err)
	}
	if report == nil || !report.GameOver || !over.GameOver {
		t.Fatalf("game not over: report=%+v", report)
	}
	if over.GameResult != city.ResultDefeat || over.GameOverReason != ReasonImpeached {
		t.Errorf("result %q reason %q", over.GameResult, over.GameOverReason)
	}

	after, _, err := r.AdvanceDay(over)
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("AdvanceDay after game over: err = %v", err)
	}
	if after.CurrentDay != over.CurrentDay || after.ErrorMessage == "" {
		t.Error("day advanced after game over")
	}
	if _, err := r.StartProject(over, "green_zones"); !errors.Is(err, ErrGameOver) {
		t.Errorf("StartProject after game over: err = %v", err)
	}
	if cleared := r.ClearError(after); cleared.ErrorMessage != "" {
		t.Error("ClearError did not clear after game over")
	}
	if _, rep := r.ProcessMonth(over); !rep.GameOver {
		t.Error("ProcessMonth ran on a finished game")
	}
}

func TestStats(t *testing.T) {
	g := city.NewGame()
	g.CurrentDay, g.CurrentMonth, g.CurrentYear = 1, 1, 2026
	g.SuccessfulProjects, g.FailedProjects = 3, 1
	st := Stats(g)
	if st.DaysInOffice != 360 || st.MonthsInOffice != 12 || st.YearsInOffice != 1 {
		t.Errorf("time in office = %d/%d/%d", st.DaysInOffice, st.MonthsInOffice, st.YearsInOffice)
	}
	if st.SuccessRate != 75 {
		t.Errorf("success rate = %v, want 75", st.SuccessRate)
	}
}

func TestSessionControls(t *testing.T) {
	r := newTestRules(nil)
	g := r.NewGame()

	paused, err := r.TogglePause(g)
	if err != nil || !paused.IsPaused {
		t.Fatalf("TogglePause = %v, %v", paused.IsPaused, err)
	}
	for _, speed := range []float64{0.25, 2, 10} {
		next, err := r.SetGameSpeed(g, speed)
		if err != nil || next.GameSpeed != speed {
			t.Errorf("SetGameSpeed(%v) = %v, %v", speed, next.GameSpeed, err)
		}
	}
	for _, speed := range []float64{0, 0.1, 11} {
		next, err := r.SetGameSpeed(g, speed)
		if !errors.Is(err, ErrInvalidSpeed) || next.GameSpeed != g.GameSpeed {
			t.Errorf("SetGameSpeed(%v) accepted", speed)
		}
	}
}

// TestSeededRunInvariants plays two years with a seeded source and checks
// the state bounds after every day.
func TestSeededRunInvariants(t *testing.T) {
	r := newTestRules(entropy.NewSeeded(42))
	g := r.NewGame()
	projects := r.Catalog().Projects

	for day := 0; day < 720 && !g.GameOver; day++ {
		if g.CurrentDay == 1 {
			next, _ := r.StartProject(g, projects[day%len(projects)].ID)
			g = r.ClearError(next)
		}
		if ev := g.PendingEvent; ev != nil {
			last := ev.Options[len(ev.Options)-1]
			next, _ := r.DecideEvent(g, ev.ID, last.ID)
			g = r.ClearError(next)
		}
		var err error
		if g, _, err = r.AdvanceDay(g); err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		checkInvariants(t, g)
	}
}

func checkInvariants(t *testing.T, g *city.GameState) {
	t.Helper()
	for name, acc := range g.Banking.Accounts {
		if acc.Balance < 0 {
			t.Fatalf("%s: account %s balance %d", g.DateString(), name, acc.Balance)
		}
	}
	if g.Budget < 0 || g.Finance.CityBudget.Total < 0 {
		t.Fatalf("%s: budget %d total %d", g.DateString(), g.Budget, g.Finance.CityBudget.Total)
	}
	if g.Budget != g.Banking.CityBalance() {
		t.Fatalf("%s: budget %d drifted from accounts %d", g.DateString(), g.Budget, g.Banking.CityBalance())
	}
	gauges := map[string]float64{
		"mayorRating":    g.MayorRating,
		"happiness":      g.Happiness,
		"ecology":        g.Ecology,
		"infrastructure": g.Infrastructure,
		"unemployment":   g.Unemployment,
	}
	for name, v := range gauges {
		if v < 0 || v > 100 {
			t.Fatalf("%s: %s = %v", g.DateString(), name, v)
		}
	}
	caps := []struct {
		name string
		n    int
		max  int
	}{
		{"eventHistory", len(g.EventHistory), city.EventHistoryCap},
		{"transactionHistory", len(g.Banking.TransactionHistory), city.TransactionHistoryCap},
		{"completedInvestments", len(g.Investment.CompletedInvestments), city.CompletedInvestmentsCap},
		{"activeThreats", len(g.Security.ActiveThreats), city.ActiveThreatsCap},
		{"activeIssues", len(g.Citizens.ActiveIssues), city.ActiveIssuesCap},
	}
	for _, c := range caps {
		if c.n > c.max {
			t.Fatalf("%s: %s has %d entries, cap %d", g.DateString(), c.name, c.n, c.max)
		}
	}
}
