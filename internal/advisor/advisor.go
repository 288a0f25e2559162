// Package advisor derives the read-only views shown next to the game state:
// the calendar line, budget health, the overall city status and hints for
// the player. It is deterministic and never modifies the state.
package advisor

import (
	"fmt"

	"github.com/talgya/mayor-sim/internal/city"
)

// BudgetStatus grades how much of the year's allocation has been spent.
type BudgetStatus string

const (
	BudgetGood     BudgetStatus = "good"
	BudgetWarning  BudgetStatus = "warning"
	BudgetCritical BudgetStatus = "critical"
)

// Spend ratio thresholds.
const (
	warnSpendRatio     = 0.8
	criticalSpendRatio = 0.95
)

// CityLevel is the coarse verdict on how the city is doing.
type CityLevel string

const (
	CityThriving CityLevel = "thriving"
	CityStable   CityLevel = "stable"
	CityTroubled CityLevel = "troubled"
	CityCrisis   CityLevel = "crisis"
)

// CityStatus summarises the headline indicators.
type CityStatus struct {
	Level CityLevel `json:"level"`
	Label string    `json:"label"`
	Score float64   `json:"score"`
}

// Computed holds every derived view.
type Computed struct {
	CurrentDate  string       `json:"currentDate"`
	Season       city.Season  `json:"season"`
	BudgetStatus BudgetStatus `json:"budgetStatus"`
	SpendRatio   float64      `json:"spendRatio"`
	CityStatus   CityStatus   `json:"cityStatus"`
	GameTips     []string     `json:"gameTips"`
}

// Compute derives the views from g.
func Compute(g *city.GameState) *Computed {
	ratio := SpendRatio(g)
	return &Computed{
		CurrentDate:  CurrentDate(g),
		Season:       g.Season(),
		BudgetStatus: BudgetStatusFor(ratio),
		SpendRatio:   ratio,
		CityStatus:   Status(g),
		GameTips:     Tips(g),
	}
}

var monthNames = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// CurrentDate renders the in-game date, e.g. "1 января 2025".
func CurrentDate(g *city.GameState) string {
	m := g.CurrentMonth
	if m < 1 || m > len(monthNames) {
		return g.DateString()
	}
	return fmt.Sprintf("%d %s %d", g.CurrentDay, monthNames[m-1], g.CurrentYear)
}

// SpendRatio is total spent over total allocated across the budget lines.
func SpendRatio(g *city.GameState) float64 {
	b := &g.Finance.CityBudget
	var spent, allocated int64
	for _, v := range b.Spent {
		spent += v
	}
	for _, v := range b.Allocated {
		allocated += v
	}
	if allocated <= 0 {
		return 0
	}
	return float64(spent) / float64(allocated)
}

// BudgetStatusFor grades a spend ratio.
func BudgetStatusFor(ratio float64) BudgetStatus {
	switch {
	case ratio < warnSpendRatio:
		return BudgetGood
	case ratio < criticalSpendRatio:
		return BudgetWarning
	}
	return BudgetCritical
}

// Status scores the city on the mean of rating, happiness, ecology and
// infrastructure.
func Status(g *city.GameState) CityStatus {
	score := (g.MayorRating + g.Happiness + g.Ecology + g.Infrastructure) / 4
	st := CityStatus{Score: score}
	switch {
	case score >= 70:
		st.Level, st.Label = CityThriving, "Город процветает"
	case score >= 50:
		st.Level, st.Label = CityStable, "Ситуация стабильная"
	case score >= 30:
		st.Level, st.Label = CityTroubled, "Город испытывает трудности"
	default:
		st.Level, st.Label = CityCrisis, "Город в кризисе"
	}
	return st
}
