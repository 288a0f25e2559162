// Project lifecycle: start, cancel, daily progress and one-time completion
// effects.
package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// CancelPenalty is the mayor rating lost when a project is abandoned.
const CancelPenalty = 5.0

// StartProject funds a catalog project from the city accounts and puts it in
// progress.
func (r *Rules) StartProject(g *city.GameState, id string) (*city.GameState, error) {
	next, err := r.begin(g, "start_project")
	if err != nil {
		return next, err
	}
	def, ok := r.cat.Project(id)
	if !ok {
		return r.reject(g, "start_project", wrapf(ErrUnknownProject, "start project %q", id))
	}
	if g.InProgressCount() >= city.MaxActiveProjects {
		return r.reject(g, "start_project", wrapf(ErrTooManyProjects, "start project %q: limit %d", id, city.MaxActiveProjects))
	}
	if inProgressIndex(g, id) >= 0 {
		return r.reject(g, "start_project", wrapf(ErrRequirementsNotMet, "start project %q: already in progress", id))
	}
	if reason := unmetRequirement(g, def.Requirements); reason != "" {
		return r.reject(g, "start_project", wrapf(ErrRequirementsNotMet, "start project %q: %s", id, reason))
	}
	if g.Banking.CityBalance() < def.Cost {
		return r.reject(g, "start_project", wrapf(ErrInsufficientFunds, "start project %q: need %s", id, ledger.FormatMoney(def.Cost)))
	}

	funding := ledger.DebitCity(next, def.Cost)
	cat := def.Category.BudgetCategory()
	booked := addSpent(&next.Finance.CityBudget, cat, def.Cost)
	if def.MonthlyCost > 0 {
		next.Finance.CityBudget.ProjectExpenses[def.ID] = city.ProjectExpense{
			Amount:   def.MonthlyCost,
			Category: cat,
			Title:    def.Title,
		}
	}
	ledger.Record(next, "project_start", city.AccountCityChecking, -def.Cost, def.Title)

	p := city.Project{
		ID:             def.ID,
		Title:          def.Title,
		Category:       def.Category,
		Cost:           def.Cost,
		Duration:       def.Duration,
		MonthlyCost:    def.MonthlyCost,
		Requirements:   def.Requirements,
		Effects:        def.Effects,
		Status:         city.ProjectInProgress,
		RemainingDays:  def.Duration,
		StartDate:      next.DateString(),
		BudgetCategory: cat,
		Financials:     city.ProjectFinancials{Funding: funding, TotalSpent: def.Cost, SpentBooked: booked},
	}
	next.ActiveProjects = append(next.ActiveProjects, p.Clone())
	next.Government.MonthlyDecisions++

	r.log.Info("project started", "id", def.ID, "cost", def.Cost, "budget", next.Budget)
	return next, nil
}

// CancelProject abandons an in-progress project. Half of what was spent is
// refunded to the accounts that paid, in proportion to what each paid.
func (r *Rules) CancelProject(g *city.GameState, id string) (*city.GameState, error) {
	next, err := r.begin(g, "cancel_project")
	if err != nil {
		return next, err
	}
	idx := inProgressIndex(next, id)
	if idx < 0 {
		return r.reject(g, "cancel_project", wrapf(ErrProjectNotActive, "cancel project %q", id))
	}
	p := &next.ActiveProjects[idx]

	spent := p.Financials.TotalSpent
	if spent == 0 {
		spent = p.Cost
	}
	refund := spent / 2
	for _, share := range refundShares(p.Financials.Funding, refund) {
		ledger.Move(next, share.Account, share.Amount)
	}
	if len(p.Financials.Funding) == 0 && refund > 0 {
		ledger.Move(next, city.AccountCityChecking, refund)
	}

	b := &next.Finance.CityBudget
	b.Spent[p.BudgetCategory] = ledger.FloorZeroInt(b.Spent[p.BudgetCategory] - p.Financials.SpentBooked)
	delete(b.ProjectExpenses, p.ID)
	ledger.Record(next, "project_refund", city.AccountCityChecking, refund, p.Title)

	p.Status = city.ProjectCancelled
	p.RemainingDays = 0
	next.FailedProjects++
	next.MayorRating = ledger.ClampPercent(next.MayorRating - CancelPenalty)
	next.Government.MonthlyDecisions++

	r.log.Info("project cancelled", "id", id, "refund", refund)
	return next, nil
}

// refundShares splits refund across the funding accounts in proportion to
// their contributions. The last account absorbs the rounding remainder.
func refundShares(funding []city.Funding, refund int64) []city.Funding {
	var total int64
	for _, f := range funding {
		total += f.Amount
	}
	if total <= 0 || refund <= 0 {
		return nil
	}
	out := make([]city.Funding, len(funding))
	var given int64
	for i, f := range funding {
		share := refund * f.Amount / total
		if i == len(funding)-1 {
			share = refund - given
		}
		out[i] = city.Funding{Account: f.Account, Amount: share}
		given += share
	}
	return out
}

// progressProjects counts every running project down by one day and
// completes the ones that reach zero.
func (r *Rules) progressProjects(g *city.GameState) {
	for i := range g.ActiveProjects {
		p := &g.ActiveProjects[i]
		if p.Status != city.ProjectInProgress {
			continue
		}
		p.RemainingDays--
		if p.RemainingDays > 0 {
			continue
		}
		p.RemainingDays = 0
		p.Status = city.ProjectCompleted
		p.CompletionDate = g.DateString()
		delete(g.Finance.CityBudget.ProjectExpenses, p.ID)
		r.log.Info("project completed", "id", p.ID, "date", p.CompletionDate)
	}
	r.applyCompletionEffects(g)
}

// applyCompletionEffects applies each completed project's effects exactly
// once, gated on EffectsApplied.
func (r *Rules) applyCompletionEffects(g *city.GameState) {
	for i := range g.ActiveProjects {
		p := &g.ActiveProjects[i]
		if p.Status != city.ProjectCompleted || p.EffectsApplied {
			continue
		}
		r.applyEffects(g, p.Effects, "project "+p.ID)
		p.EffectsApplied = true
		g.SuccessfulProjects++
	}
}

// applyEffects adds each delta to its stat. Percentage gauges are clamped to
// [0, 100], budget and population floor at zero. Budget deltas move money
// through the city accounts. Unknown stats are skipped and returned.
func (r *Rules) applyEffects(g *city.GameState, effects map[city.Stat]float64, source string) []city.Stat {
	var skipped []city.Stat
	for _, s := range slices.Sorted(maps.Keys(effects)) {
		delta := effects[s]
		switch {
		case s == city.StatBudget:
			applyBudgetDelta(g, ledger.Round(delta))
		case !s.Known():
			skipped = append(skipped, s)
			r.log.Warn("unknown stat in effects", "source", source, "stat", string(s))
		default:
			cur, _ := g.Stat(s)
			v := ledger.FloorZero(cur + delta)
			if s.Capped() {
				v = ledger.ClampPercent(v)
			}
			g.SetStat(s, v)
		}
	}
	return skipped
}

// applyBudgetDelta credits city checking or debits the city accounts in
// funding order. Debits never take balances below zero.
func applyBudgetDelta(g *city.GameState, delta int64) {
	switch {
	case delta > 0:
		ledger.Move(g, city.AccountCityChecking, delta)
	case delta < 0:
		ledger.DebitCity(g, min(-delta, g.Banking.CityBalance()))
	}
}

// unmetRequirement returns a description of the first failed requirement, or
// "" when all hold.
func unmetRequirement(g *city.GameState, req city.Requirements) string {
	if req.MinBudget > 0 && g.Budget < req.MinBudget {
		return fmt.Sprintf("budget below %s", ledger.FormatMoney(req.MinBudget))
	}
	if req.MinMayorRating > 0 && g.MayorRating < req.MinMayorRating {
		return fmt.Sprintf("mayor rating below %.0f", req.MinMayorRating)
	}
	for _, s := range slices.Sorted(maps.Keys(req.Stats)) {
		v, ok := g.Stat(s)
		if !ok {
			continue
		}
		if !req.Stats[s].Contains(v) {
			return fmt.Sprintf("%s out of range", s)
		}
	}
	return ""
}

func inProgressIndex(g *city.GameState, id string) int {
	for i := range g.ActiveProjects {
		if g.ActiveProjects[i].ID == id && g.ActiveProjects[i].Status == city.ProjectInProgress {
			return i
		}
	}
	return -1
}

// addSpent books amount against a budget line, capped at its allocation,
// and returns the amount actually booked.
func addSpent(b *city.CityBudget, cat city.BudgetCategory, amount int64) int64 {
	before := b.Spent[cat]
	v := before + amount
	if limit, ok := b.Allocated[cat]; ok && limit > 0 && v > limit {
		v = max(limit, before)
	}
	b.Spent[cat] = v
	return v - before
}
