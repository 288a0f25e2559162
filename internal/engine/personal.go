// Personal spending: the mayor's assets, upkeep and how conspicuous they are.
package engine

import (
	"github.com/google/uuid"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// Lifestyle quality with no assets at all.
const baseLifestyle = 40.0

// personalSpending books the month's upkeep (already paid from checking by
// personalFinances) and recomputes the derived lifestyle gauges.
func (m *month) personalSpending() {
	g := m.g
	ps := &g.PersonalSpending
	if upkeep := ps.RecurringTotal(); upkeep > 0 {
		ps.TotalSpent += upkeep
		ps.SpendingHistory = ledger.Prepend(ps.SpendingHistory, city.SpendingRecord{
			Year:        g.CurrentYear,
			Month:       g.CurrentMonth,
			Amount:      upkeep,
			Description: "Monthly upkeep",
			Category:    "recurring",
		}, city.SpendingHistoryCap)
	}
	refreshLifestyle(g)
	risks := &g.Finance.Risks
	risks.PublicSuspicion = ledger.ClampPercent(0.9*risks.PublicSuspicion + 0.1*ps.DetectionRisk)
}

// refreshLifestyle derives asset totals, detection risk, lifestyle quality
// and family happiness from the asset list. Detection risk compares visible
// wealth with a year of declared salary.
func refreshLifestyle(g *city.GameState) {
	ps := &g.PersonalSpending
	var total int64
	var visible, lifestyle float64
	for _, a := range ps.Assets {
		total += a.Value
		visible += float64(a.Value) * a.Visibility / 100
		lifestyle += a.Lifestyle
	}
	ps.TotalAssets = total

	salary := float64(g.Finance.PersonalFinances.MonthlyIncome * city.MonthsPerYear)
	if salary <= 0 {
		salary = 1
	}
	ps.DetectionRisk = ledger.ClampPercent(visible / salary * 20)
	ps.LifestyleQuality = ledger.ClampPercent(baseLifestyle + lifestyle)
	ps.FamilyHappiness = ledger.ClampPercent(0.8*ps.FamilyHappiness + 0.2*(ps.LifestyleQuality+100-ps.DetectionRisk)/2)
}

// PurchaseAsset buys a catalog asset from one of the mayor's accounts and
// registers its upkeep.
func (r *Rules) PurchaseAsset(g *city.GameState, assetID string, account city.BankAccountType) (*city.GameState, error) {
	next, err := r.begin(g, "purchase_asset")
	if err != nil {
		return next, err
	}
	def, ok := r.cat.Asset(assetID)
	if !ok {
		return r.reject(g, "purchase_asset", wrapf(ErrUnknownAsset, "purchase %q", assetID))
	}
	if _, ok := next.Banking.Accounts[account]; !ok || account.IsCity() {
		return r.reject(g, "purchase_asset", wrapf(ErrUnknownAccount, "purchase %q from %q", assetID, account))
	}
	if next.Banking.Balance(account) < def.Price {
		return r.reject(g, "purchase_asset", wrapf(ErrInsufficientFunds, "purchase %q", assetID))
	}

	ledger.Move(next, account, -def.Price)
	ledger.Record(next, "purchase", account, -def.Price, def.Name)
	ps := &next.PersonalSpending
	ps.Assets = append(ps.Assets, city.Asset{
		ID:         uuid.NewString(),
		CatalogID:  def.ID,
		Name:       def.Name,
		Category:   def.Category,
		Value:      def.Price,
		Visibility: def.Visibility,
		Lifestyle:  def.Lifestyle,
		Year:       next.CurrentYear,
		Month:      next.CurrentMonth,
	})
	if def.MonthlyUpkeep > 0 {
		ps.RecurringExpenses = append(ps.RecurringExpenses, city.RecurringExpense{
			ID:       uuid.NewString(),
			Name:     def.Name + " upkeep",
			Category: def.Category,
			Amount:   def.MonthlyUpkeep,
		})
	}
	ps.TotalSpent += def.Price
	ps.SpendingHistory = ledger.Prepend(ps.SpendingHistory, city.SpendingRecord{
		Year:        next.CurrentYear,
		Month:       next.CurrentMonth,
		Amount:      def.Price,
		Description: def.Name,
		Category:    def.Category,
	}, city.SpendingHistoryCap)
	refreshLifestyle(next)

	r.log.Info("asset purchased", "asset", def.ID, "price", def.Price, "detection_risk", round1(ps.DetectionRisk))
	return next, nil
}
