// Game over and summary statistics.
package engine

import (
	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// End-of-game thresholds.
const (
	ImpeachmentRating    = 10.0
	BankruptcyLimit      = int64(-10_000_000)
	VictoryRating        = 80.0
	VictoryHappiness     = 75.0
	VictoryEcology       = 70.0
	VictoryInfra         = 70.0
	ReasonImpeached      = "отстранили от должности"
	ReasonBankrupt       = "город обанкротился"
	ReasonVictory        = "город процветает"
	victoryNotBeforeYear = city.StartYear
)

// Verdict is the outcome of a game-over check.
type Verdict struct {
	Over   bool
	Result city.GameResult
	Reason string
}

// Evaluate decides whether g ends the game. It reads g only.
func Evaluate(g *city.GameState) Verdict {
	switch {
	case g.MayorRating <= ImpeachmentRating:
		return Verdict{Over: true, Result: city.ResultDefeat, Reason: ReasonImpeached}
	case g.NetPosition() < BankruptcyLimit:
		return Verdict{Over: true, Result: city.ResultDefeat, Reason: ReasonBankrupt}
	case g.CurrentYear > victoryNotBeforeYear &&
		g.MayorRating >= VictoryRating &&
		g.Happiness >= VictoryHappiness &&
		g.Ecology >= VictoryEcology &&
		g.Infrastructure >= VictoryInfra:
		return Verdict{Over: true, Result: city.ResultVictory, Reason: ReasonVictory}
	}
	return Verdict{}
}

func (m *month) gameOver() {
	v := Evaluate(m.g)
	if !v.Over {
		return
	}
	m.g.GameOver = true
	m.g.GameOverReason = v.Reason
	m.g.GameResult = v.Result
	m.report.GameOver = true
	m.r.log.Info("game over", "result", string(v.Result), "reason", v.Reason, "date", m.g.DateString())
}

// GameStats summarises a game for display.
type GameStats struct {
	DaysInOffice       int     `json:"daysInOffice"`
	MonthsInOffice     int     `json:"monthsInOffice"`
	YearsInOffice      int     `json:"yearsInOffice"`
	TotalProjects      int     `json:"totalProjects"`
	SuccessfulProjects int     `json:"successfulProjects"`
	FailedProjects     int     `json:"failedProjects"`
	SuccessRate        float64 `json:"successRate"`
	TotalDecisions     int     `json:"totalDecisions"`
	FinalBudget        int64   `json:"finalBudget"`
	FinalBudgetText    string  `json:"finalBudgetText"`
	MayorRating        float64 `json:"mayorRating"`
	Happiness          float64 `json:"happiness"`
	Ecology            float64 `json:"ecology"`
	Infrastructure     float64 `json:"infrastructure"`
	GameOver           bool    `json:"gameOver"`
	GameResult         string  `json:"gameResult,omitempty"`
	GameOverReason     string  `json:"gameOverReason,omitempty"`
}

// Stats derives the summary from g, assuming 30-day months and 12-month
// years from 1 January 2025.
func Stats(g *city.GameState) GameStats {
	days := g.DaysInOffice()
	finished := g.SuccessfulProjects + g.FailedProjects
	st := GameStats{
		DaysInOffice:       days,
		MonthsInOffice:     days / city.DaysPerMonth,
		YearsInOffice:      days / (city.DaysPerMonth * city.MonthsPerYear),
		TotalProjects:      len(g.ActiveProjects),
		SuccessfulProjects: g.SuccessfulProjects,
		FailedProjects:     g.FailedProjects,
		SuccessRate:        ledger.Percent(int64(g.SuccessfulProjects), int64(finished)),
		TotalDecisions:     g.TotalDecisions,
		FinalBudget:        g.Budget,
		FinalBudgetText:    ledger.FormatMoney(g.Budget),
		MayorRating:        g.MayorRating,
		Happiness:          g.Happiness,
		Ecology:            g.Ecology,
		Infrastructure:     g.Infrastructure,
		GameOver:           g.GameOver,
		GameResult:         string(g.GameResult),
		GameOverReason:     g.GameOverReason,
	}
	return st
}
