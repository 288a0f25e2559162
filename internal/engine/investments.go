// Investments: city money placed into catalog opportunities, re-marked at
// milestones and paid out on completion.
package engine

import (
	"math"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/mayor-sim/internal/catalog"
	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// investments advances every active investment by one month.
func (m *month) investments() {
	g := m.g
	inv := &g.Investment
	keep := make([]city.Investment, 0, len(inv.ActiveInvestments))
	for _, it := range inv.ActiveInvestments {
		opp, ok := m.r.cat.Opportunity(it.OpportunityID)
		if !ok {
			m.skip("investment", it.ID, "opportunity "+it.OpportunityID+" not in catalog")
			keep = append(keep, it)
			continue
		}
		it.MonthsPassed++
		it.Progress = ledger.ClampPercent(float64(it.MonthsPassed) / float64(opp.Duration) * 100)
		if atMilestone(it.MonthsPassed, opp) {
			it.CurrentValue = valuation(it, opp)
		}
		if it.MonthsPassed < opp.Duration {
			keep = append(keep, it)
			continue
		}

		payout := ledger.FloorZeroInt(it.CurrentValue)
		profit := payout - it.Amount
		if payout > 0 {
			ledger.Move(g, city.AccountCityChecking, payout)
			ledger.Record(g, "investment_payout", city.AccountCityChecking, payout, it.Title)
		}
		if profit > 0 {
			g.Finance.CityBudget.PassiveIncome[city.IncomeInvestmentReturns] += profit
		}
		inv.Portfolio.TotalReturns += profit
		inv.CompletedInvestments = ledger.Prepend(inv.CompletedInvestments, city.CompletedInvestment{
			Investment:     it,
			Payout:         payout,
			Profit:         profit,
			CompletedYear:  g.CurrentYear,
			CompletedMonth: g.CurrentMonth,
		}, city.CompletedInvestmentsCap)
		m.r.applyEffects(g, opp.Benefits, "investment "+opp.ID)
		m.report.CompletedInvestments = append(m.report.CompletedInvestments, it.ID)
		m.r.log.Info("investment completed", "opportunity", opp.ID, "payout", payout, "profit", profit)
	}
	inv.ActiveInvestments = keep
	refreshPortfolio(inv)
}

// atMilestone reports whether months falls on a re-marking point. The final
// month is always one.
func atMilestone(months int, opp catalog.Opportunity) bool {
	if months >= opp.Duration {
		return true
	}
	n := max(opp.Milestones, 1)
	step := max(opp.Duration/n, 1)
	return months%step == 0
}

// valuation marks an investment to its expected path plus seeded simplex
// noise scaled by the opportunity's volatility.
func valuation(it city.Investment, opp catalog.Opportunity) int64 {
	frac := float64(it.MonthsPassed) / float64(opp.Duration)
	frac = math.Min(frac, 1)
	noise := opensimplex.NewNormalized(it.Seed)
	swing := octaveNoise(noise, float64(it.MonthsPassed)*0.35, float64(it.Seed%97), 3, 1, 0.5)*2 - 1
	growth := opp.ExpectedReturn/100*frac + opp.Volatility/100*swing*frac
	return ledger.FloorZeroInt(ledger.Round(float64(it.Amount) * (1 + growth)))
}

// octaveNoise layers several simplex frequencies into one value in [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

func refreshPortfolio(inv *city.InvestmentState) {
	var invested, value int64
	for _, it := range inv.ActiveInvestments {
		invested += it.Amount
		value += it.CurrentValue
	}
	inv.Portfolio.TotalInvested = invested
	inv.Portfolio.ActiveValue = value

	if len(inv.CompletedInvestments) == 0 {
		inv.Metrics = city.InvestmentMetrics{}
		return
	}
	wins := 0
	var returns float64
	for _, c := range inv.CompletedInvestments {
		if c.Profit > 0 {
			wins++
		}
		if c.Amount > 0 {
			returns += float64(c.Profit) / float64(c.Amount) * 100
		}
	}
	n := float64(len(inv.CompletedInvestments))
	inv.Metrics.SuccessRate = float64(wins) / n * 100
	inv.Metrics.AverageReturn = returns / n
}

// MakeInvestment places city money into a catalog opportunity, drawing on
// the investment account before checking.
func (r *Rules) MakeInvestment(g *city.GameState, opportunityID string, amount int64) (*city.GameState, error) {
	next, err := r.begin(g, "make_investment")
	if err != nil {
		return next, err
	}
	opp, ok := r.cat.Opportunity(opportunityID)
	if !ok {
		return r.reject(g, "make_investment", wrapf(ErrUnknownOpportunity, "invest in %q", opportunityID))
	}
	if amount < opp.MinAmount || (opp.MaxAmount > 0 && amount > opp.MaxAmount) || amount <= 0 {
		return r.reject(g, "make_investment", wrapf(ErrAmountOutOfRange, "invest in %q: %s", opportunityID, ledger.FormatMoney(amount)))
	}
	pool := next.Banking.Balance(city.AccountCityInvestment) + next.Banking.Balance(city.AccountCityChecking)
	if pool < amount {
		return r.reject(g, "make_investment", wrapf(ErrInsufficientFunds, "invest in %q", opportunityID))
	}

	fromInvestment := min(amount, next.Banking.Balance(city.AccountCityInvestment))
	ledger.Move(next, city.AccountCityInvestment, -fromInvestment)
	if rest := amount - fromInvestment; rest > 0 {
		ledger.Move(next, city.AccountCityChecking, -rest)
	}

	next.Investment.ActiveInvestments = append(next.Investment.ActiveInvestments, city.Investment{
		ID:            uuid.NewString(),
		OpportunityID: opp.ID,
		Title:         opp.Title,
		Amount:        amount,
		CurrentValue:  amount,
		Seed:          int64(r.rand.Intn(math.MaxInt32)),
		StartYear:     next.CurrentYear,
		StartMonth:    next.CurrentMonth,
	})
	refreshPortfolio(&next.Investment)
	ledger.Record(next, "investment", city.AccountCityInvestment, -amount, opp.Title)
	next.Government.MonthlyDecisions++

	r.log.Info("investment made", "opportunity", opp.ID, "amount", amount)
	return next, nil
}
