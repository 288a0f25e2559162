// Monthly orchestration: the fixed sequence of subsystem steps run once per
// calendar month rollover.
package engine

import (
	"time"

	"github.com/talgya/mayor-sim/internal/city"
)

// monthMillis advances currentTimestamp by one simulated month.
const monthMillis = int64(city.DaysPerMonth) * int64(24*time.Hour/time.Millisecond)

// Skip records a reference the month could not resolve.
type Skip struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// MonthReport summarises what one monthly tick did.
type MonthReport struct {
	Year                 int      `json:"year"`
	Month                int      `json:"month"`
	NetIncome            int64    `json:"netIncome"`
	ArrearsAdded         int64    `json:"arrearsAdded"`
	LoanPayments         int64    `json:"loanPayments"`
	MissedPayments       int      `json:"missedPayments"`
	DepositInterest      int64    `json:"depositInterest"`
	MaturedDeposits      []string `json:"maturedDeposits,omitempty"`
	CompletedInvestments []string `json:"completedInvestments,omitempty"`
	CompletedPrograms    []string `json:"completedPrograms,omitempty"`
	NewThreat            string   `json:"newThreat,omitempty"`
	NewIssue             string   `json:"newIssue,omitempty"`
	Event                string   `json:"event,omitempty"`
	GameOver             bool     `json:"gameOver"`
	Skips                []Skip   `json:"skips,omitempty"`
}

// month is the mutable builder for one tick. g is a private clone; nothing
// outside the tick sees it until ProcessMonth returns.
type month struct {
	r      *Rules
	g      *city.GameState
	report *MonthReport
}

func (m *month) skip(kind, id, reason string) {
	m.report.Skips = append(m.report.Skips, Skip{Kind: kind, ID: id, Reason: reason})
	m.r.log.Warn("skipped reference", "kind", kind, "id", id, "reason", reason)
}

type step struct {
	name string
	run  func(*month)
}

// monthlySteps run in this order; later steps read what earlier ones wrote.
var monthlySteps = []step{
	{"project_expenses", (*month).projectExpenses},
	{"net_income", (*month).netIncome},
	{"category_spend", (*month).categorySpend},
	{"personal_finances", (*month).personalFinances},
	{"loans", (*month).serviceLoans},
	{"deposits", (*month).accrueDeposits},
	{"government", (*month).government},
	{"investments", (*month).investments},
	{"industry", (*month).industry},
	{"construction", (*month).construction},
	{"security", (*month).security},
	{"citizens", (*month).citizens},
	{"taxation", (*month).taxation},
	{"personal_spending", (*month).personalSpending},
	{"aggregates", (*month).aggregates},
	{"decay", (*month).decay},
	{"approval", (*month).approval},
	{"random_event", (*month).randomEvent},
	{"game_over", (*month).gameOver},
}

// ProcessMonth runs one monthly tick on a clone of g. The calendar is not
// touched here; AdvanceDay owns it.
func (r *Rules) ProcessMonth(g *city.GameState) (*city.GameState, *MonthReport) {
	if g == nil {
		panic("engine: nil game state")
	}
	report := &MonthReport{Year: g.CurrentYear, Month: g.CurrentMonth}
	if g.GameOver {
		report.GameOver = true
		return g.Clone(), report
	}

	m := &month{r: r, g: g.Clone(), report: report}
	m.g.CurrentTimestamp += monthMillis
	m.resetAccruals()
	for _, s := range monthlySteps {
		s.run(m)
		m.r.log.Debug("month step", "step", s.name, "budget", m.g.Budget)
	}

	r.log.Info("month processed",
		"date", m.g.DateString(),
		"budget", m.g.Budget,
		"net", report.NetIncome,
		"rating", round1(m.g.MayorRating),
		"happiness", round1(m.g.Happiness),
		"skips", len(report.Skips),
	)
	return m.g, report
}
