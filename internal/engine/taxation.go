// Taxation: revenue from rates, bases and collection, the revenue and
// expenditure structure, and municipal debt.
package engine

import (
	"slices"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// TaxRevenue is base × rate% × efficiency% for one tax.
func TaxRevenue(base int64, ratePct, efficiencyPct float64) int64 {
	return ledger.Round(float64(base) * ratePct / 100 * efficiencyPct / 100)
}

func (m *month) taxation() { refreshTaxation(m.g) }

// refreshTaxation recomputes revenue by type and books it as the next
// month's tax income, then rebuilds the structures and debt figures.
func refreshTaxation(g *city.GameState) {
	tx := &g.Taxation
	var total int64
	var effSum float64
	tx.Metrics.RevenueByType = make(map[city.TaxType]int64, len(city.AllTaxTypes))
	for _, t := range city.AllTaxTypes {
		rev := TaxRevenue(tx.TaxBase[t], tx.CurrentRates[t], tx.CollectionEfficiency[t])
		tx.Metrics.RevenueByType[t] = rev
		total += rev
		effSum += tx.CollectionEfficiency[t]
	}
	tx.Metrics.TotalRevenue = total
	tx.Metrics.CollectionRate = effSum / float64(len(city.AllTaxTypes))
	g.Finance.CityBudget.MonthlyIncome[city.IncomeTaxes] = total

	b := &g.Finance.CityBudget
	income := make(map[string]int64, len(b.MonthlyIncome))
	for k, v := range b.MonthlyIncome {
		income[string(k)] = v
	}
	tx.RevenueStructure = shares(income)
	spend := map[string]int64{}
	for k, v := range b.ExpenseBreakdown() {
		spend[string(k)] = v
	}
	tx.ExpenditureStructure = shares(spend)

	refreshDebt(g)
}

// shares turns raw amounts into amount + percentage-of-total pairs.
func shares(amounts map[string]int64) map[string]city.Share {
	var total int64
	for _, v := range amounts {
		total += v
	}
	out := make(map[string]city.Share, len(amounts))
	for k, v := range amounts {
		out[k] = city.Share{Amount: v, Percentage: ledger.Percent(v, total)}
	}
	return out
}

// refreshDebt recomputes debt as open city loans plus arrears.
func refreshDebt(g *city.GameState) {
	d := &g.Taxation.Debt
	d.TotalDebt = g.Banking.CityDebt() + g.Finance.CityBudget.Arrears
	var service int64
	for _, l := range g.Banking.Loans {
		if l.Open() && l.Account.IsCity() {
			service += l.MonthlyPayment * int64(min(l.RemainingMonths, city.MonthsPerYear))
		}
	}
	d.AnnualService = service
	d.DebtToRevenue = ledger.Percent(d.TotalDebt, g.Finance.CityBudget.TotalMonthlyIncome()*city.MonthsPerYear)
}

// AdoptTaxPolicy applies a catalog reform: its rate and collection changes
// and one-time effects. A policy can be adopted once.
func (r *Rules) AdoptTaxPolicy(g *city.GameState, id string) (*city.GameState, error) {
	next, err := r.begin(g, "adopt_tax_policy")
	if err != nil {
		return next, err
	}
	pol, ok := r.cat.TaxPolicy(id)
	if !ok {
		return r.reject(g, "adopt_tax_policy", wrapf(ErrUnknownPolicy, "adopt %q", id))
	}
	if slices.Contains(next.Taxation.ActivePolicies, id) {
		return r.reject(g, "adopt_tax_policy", wrapf(ErrAlreadyAdopted, "adopt %q", id))
	}
	if next.Banking.CityBalance() < pol.Cost {
		return r.reject(g, "adopt_tax_policy", wrapf(ErrInsufficientFunds, "adopt %q", id))
	}

	if pol.Cost > 0 {
		ledger.DebitCity(next, pol.Cost)
		ledger.Record(next, "tax_policy", city.AccountCityChecking, -pol.Cost, pol.Title)
	}
	tx := &next.Taxation
	for t, delta := range pol.RateChanges {
		tx.CurrentRates[t] = ledger.FloorZero(tx.CurrentRates[t] + delta)
	}
	for t, delta := range pol.EfficiencyChanges {
		tx.CollectionEfficiency[t] = ledger.ClampPercent(tx.CollectionEfficiency[t] + delta)
	}
	r.applyEffects(next, pol.Effects, "tax policy "+pol.ID)
	tx.ActivePolicies = append(tx.ActivePolicies, pol.ID)
	refreshTaxation(next)
	next.Government.MonthlyDecisions++

	r.log.Info("tax policy adopted", "policy", pol.ID, "revenue", tx.Metrics.TotalRevenue)
	return next, nil
}
