package city

import (
	"maps"
	"slices"
)

// Clone returns a deep copy that shares no mutable memory with g.
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	c := *g

	c.ActiveProjects = make([]Project, len(g.ActiveProjects))
	for i, p := range g.ActiveProjects {
		c.ActiveProjects[i] = p.Clone()
	}
	c.EventHistory = make([]EventDecision, len(g.EventHistory))
	for i, d := range g.EventHistory {
		d.Effects = maps.Clone(d.Effects)
		c.EventHistory[i] = d
	}
	if g.PendingEvent != nil {
		ev := g.PendingEvent.Clone()
		c.PendingEvent = &ev
	}

	c.Finance = g.Finance.Clone()
	c.Banking = g.Banking.Clone()
	c.Government = g.Government.Clone()
	c.Investment = g.Investment.Clone()
	c.Industry = g.Industry.Clone()
	c.Construction = g.Construction.Clone()
	c.Security = g.Security.Clone()
	c.Citizens = g.Citizens.Clone()
	c.Taxation = g.Taxation.Clone()
	c.PersonalSpending = g.PersonalSpending.Clone()

	c.PersonalFinances = maps.Clone(g.PersonalFinances)
	c.CitizenGroups = maps.Clone(g.CitizenGroups)
	c.Normalize()
	return &c
}

// Normalize allocates any nil map so reducers can write without checks.
// Decoded saves may carry null for empty maps.
func (g *GameState) Normalize() {
	b := &g.Finance.CityBudget
	initMap(&b.Allocated)
	initMap(&b.Spent)
	initMap(&b.MonthlyIncome)
	initMap(&b.MonthlyExpenses)
	initMap(&b.PassiveIncome)
	initMap(&b.ProjectExpenses)
	initMap(&g.Finance.PersonalFinances.Accounts)
	initMap(&g.Banking.Accounts)
	initMap(&g.Banking.StockPortfolio.City)
	initMap(&g.Banking.StockPortfolio.Personal)
	initMap(&g.Government.Departments)
	initMap(&g.Security.Agencies)
	initMap(&g.Citizens.Groups)
	initMap(&g.Taxation.CurrentRates)
	initMap(&g.Taxation.TaxBase)
	initMap(&g.Taxation.CollectionEfficiency)
	initMap(&g.Taxation.RevenueStructure)
	initMap(&g.Taxation.ExpenditureStructure)
	initMap(&g.Taxation.Metrics.RevenueByType)
	initMap(&g.PersonalFinances)
	initMap(&g.CitizenGroups)
}

func initMap[M ~map[K]V, K comparable, V any](m *M) {
	if *m == nil {
		*m = make(M)
	}
}

// Clone deep-copies a project.
func (p Project) Clone() Project {
	p.Effects = maps.Clone(p.Effects)
	p.Requirements.Stats = maps.Clone(p.Requirements.Stats)
	p.Financials.Funding = slices.Clone(p.Financials.Funding)
	return p
}

// Clone deep-copies an event and its options.
func (e Event) Clone() Event {
	e.TriggerConditions = maps.Clone(e.TriggerConditions)
	opts := make([]EventOption, len(e.Options))
	for i, o := range e.Options {
		o.Effects = maps.Clone(o.Effects)
		opts[i] = o
	}
	e.Options = opts
	return e
}

// Clone deep-copies the finance slice.
func (f FinanceState) Clone() FinanceState {
	b := &f.CityBudget
	b.Allocated = maps.Clone(b.Allocated)
	b.Spent = maps.Clone(b.Spent)
	b.MonthlyIncome = maps.Clone(b.MonthlyIncome)
	b.MonthlyExpenses = maps.Clone(b.MonthlyExpenses)
	b.PassiveIncome = maps.Clone(b.PassiveIncome)
	b.ProjectExpenses = maps.Clone(b.ProjectExpenses)
	f.PersonalFinances.Accounts = maps.Clone(f.PersonalFinances.Accounts)
	f.CorruptionHistory = slices.Clone(f.CorruptionHistory)
	return f
}

// Clone deep-copies the banking slice.
func (b BankingState) Clone() BankingState {
	b.Accounts = maps.Clone(b.Accounts)
	loans := make([]Loan, len(b.Loans))
	for i, l := range b.Loans {
		l.PaymentHistory = slices.Clone(l.PaymentHistory)
		loans[i] = l
	}
	b.Loans = loans
	b.Deposits = slices.Clone(b.Deposits)
	b.CompletedDeposits = slices.Clone(b.CompletedDeposits)
	b.StockPortfolio.City = maps.Clone(b.StockPortfolio.City)
	b.StockPortfolio.Personal = maps.Clone(b.StockPortfolio.Personal)
	b.TransactionHistory = slices.Clone(b.TransactionHistory)
	return b
}

// Clone deep-copies the government slice.
func (g GovernmentState) Clone() GovernmentState {
	deps := make(map[string]Department, len(g.Departments))
	for id, d := range g.Departments {
		d.Employees = slices.Clone(d.Employees)
		deps[id] = d
	}
	g.Departments = deps
	return g
}

// Clone deep-copies the investment slice.
func (s InvestmentState) Clone() InvestmentState {
	s.ActiveInvestments = slices.Clone(s.ActiveInvestments)
	s.CompletedInvestments = slices.Clone(s.CompletedInvestments)
	return s
}

// Clone deep-copies a programme slice.
func (s ProgramState) Clone() ProgramState {
	s.Active = slices.Clone(s.Active)
	s.Completed = slices.Clone(s.Completed)
	return s
}

// Clone deep-copies the security slice.
func (s SecurityState) Clone() SecurityState {
	agencies := make(map[string]Agency, len(s.Agencies))
	for id, a := range s.Agencies {
		a.AvailableOperations = slices.Clone(a.AvailableOperations)
		a.OperationHistory = slices.Clone(a.OperationHistory)
		agencies[id] = a
	}
	s.Agencies = agencies
	s.ActiveThreats = slices.Clone(s.ActiveThreats)
	return s
}

// Clone deep-copies the citizens slice.
func (s CitizensState) Clone() CitizensState {
	s.Groups = maps.Clone(s.Groups)
	s.ActiveIssues = slices.Clone(s.ActiveIssues)
	return s
}

// Clone deep-copies the taxation slice.
func (s TaxationState) Clone() TaxationState {
	s.CurrentRates = maps.Clone(s.CurrentRates)
	s.TaxBase = maps.Clone(s.TaxBase)
	s.CollectionEfficiency = maps.Clone(s.CollectionEfficiency)
	s.RevenueStructure = maps.Clone(s.RevenueStructure)
	s.ExpenditureStructure = maps.Clone(s.ExpenditureStructure)
	s.ActivePolicies = slices.Clone(s.ActivePolicies)
	s.Metrics.RevenueByType = maps.Clone(s.Metrics.RevenueByType)
	return s
}

// Clone deep-copies the personal spending slice.
func (s PersonalSpendingState) Clone() PersonalSpendingState {
	s.Assets = slices.Clone(s.Assets)
	s.RecurringExpenses = slices.Clone(s.RecurringExpenses)
	s.SpendingHistory = slices.Clone(s.SpendingHistory)
	return s
}
