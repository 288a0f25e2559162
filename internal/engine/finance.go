// City and personal finance steps of the monthly tick.
package engine

import (
	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// projectExpenses rebuilds the recurring project charges from the projects
// still in progress.
func (m *month) projectExpenses() {
	b := &m.g.Finance.CityBudget
	b.ProjectExpenses = make(map[string]city.ProjectExpense)
	for _, p := range m.g.ActiveProjects {
		if p.Status != city.ProjectInProgress || p.MonthlyCost == 0 {
			continue
		}
		cat := p.BudgetCategory
		if cat == "" {
			cat = p.Category.BudgetCategory()
		}
		b.ProjectExpenses[p.ID] = city.ProjectExpense{Amount: p.MonthlyCost, Category: cat, Title: p.Title}
	}
}

// resetAccruals zeroes the passive income report; it covers one month.
func (m *month) resetAccruals() {
	m.g.Finance.CityBudget.PassiveIncome = make(map[city.IncomeType]int64)
	m.g.Finance.PersonalFinances.PassiveIncome = 0
}

// netIncome settles the month's income against expenses through the city
// accounts. A deficit the accounts cannot cover becomes arrears; a surplus
// pays arrears down before it reaches checking.
func (m *month) netIncome() {
	b := &m.g.Finance.CityBudget
	net := b.TotalMonthlyIncome() - b.TotalMonthlyExpenses()
	m.g.BudgetBalance = net
	m.report.NetIncome = net

	switch {
	case net > 0:
		pay := min(b.Arrears, net)
		b.Arrears -= pay
		if credit := net - pay; credit > 0 {
			ledger.Move(m.g, city.AccountCityChecking, credit)
		}
	case net < 0:
		deficit := -net
		covered := min(deficit, m.g.Banking.CityBalance())
		ledger.DebitCity(m.g, covered)
		if short := deficit - covered; short > 0 {
			b.Arrears += short
			m.report.ArrearsAdded = short
			m.r.log.Warn("deficit not covered", "shortfall", short, "arrears", b.Arrears)
		}
	}
	ledger.SyncBudget(m.g)
	ledger.Record(m.g, "monthly_balance", city.AccountCityChecking, net, "Monthly income and expenses")
}

// categorySpend books this month's expenses against each budget line.
func (m *month) categorySpend() {
	b := &m.g.Finance.CityBudget
	for cat, amount := range b.ExpenseBreakdown() {
		addSpent(b, cat, amount)
	}
}

// personalFinances nets the mayor's salary against living costs and
// recurring spending into personal checking.
func (m *month) personalFinances() {
	pf := &m.g.Finance.PersonalFinances
	net := pf.MonthlyIncome - pf.MonthlyExpenses - m.g.PersonalSpending.RecurringTotal()
	if net != 0 {
		ledger.Move(m.g, city.AccountPersonalChecking, net)
	}
}
