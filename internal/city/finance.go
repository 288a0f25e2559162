package city

// ProjectExpense is a recurring monthly charge registered by a running project.
type ProjectExpense struct {
	Amount   int64          `json:"amount"`
	Category BudgetCategory `json:"category"`
	Title    string         `json:"title"`
}

// CityBudget is the municipal ledger.
type CityBudget struct {
	Allocated       map[BudgetCategory]int64  `json:"allocated"`
	Spent           map[BudgetCategory]int64  `json:"spent"`
	MonthlyIncome   map[IncomeType]int64      `json:"monthlyIncome"`
	MonthlyExpenses map[BudgetCategory]int64  `json:"monthlyExpenses"`
	PassiveIncome   map[IncomeType]int64      `json:"passiveIncome"` // Reported accruals, not cash
	ProjectExpenses map[string]ProjectExpense `json:"projectExpenses"`
	Total           int64                     `json:"total"`
	Arrears         int64                     `json:"arrears"` // Deficit the accounts could not cover
}

// TotalMonthlyIncome sums every cash income line.
func (b *CityBudget) TotalMonthlyIncome() int64 {
	var total int64
	for _, v := range b.MonthlyIncome {
		total += v
	}
	return total
}

// TotalMonthlyExpenses sums the departmental lines plus running project costs.
func (b *CityBudget) TotalMonthlyExpenses() int64 {
	var total int64
	for _, v := range b.MonthlyExpenses {
		total += v
	}
	for _, pe := range b.ProjectExpenses {
		total += pe.Amount
	}
	return total
}

// ExpenseBreakdown returns this month's spend per budget category, project
// charges included.
func (b *CityBudget) ExpenseBreakdown() map[BudgetCategory]int64 {
	out := make(map[BudgetCategory]int64, len(b.MonthlyExpenses))
	for cat, v := range b.MonthlyExpenses {
		out[cat] += v
	}
	for _, pe := range b.ProjectExpenses {
		out[pe.Category] += pe.Amount
	}
	return out
}

// PersonalFinances is the mayor's private ledger.
type PersonalFinances struct {
	Accounts        map[PersonalAccountType]int64 `json:"accounts"`
	MonthlyIncome   int64                         `json:"monthlyIncome"`
	MonthlyExpenses int64                         `json:"monthlyExpenses"`
	PassiveIncome   int64                         `json:"passiveIncome"`
}

// CorruptionRecord is one line of the append-only corruption log.
type CorruptionRecord struct {
	ID          string `json:"id"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Amount      int64  `json:"amount"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// Risks are the exposure gauges, each 0..100.
type Risks struct {
	InvestigationRisk float64 `json:"investigationRisk"`
	PublicSuspicion   float64 `json:"publicSuspicion"`
	FederalAttention  float64 `json:"federalAttention"`
	MediaAttention    float64 `json:"mediaAttention"`
}

// FinanceState owns the city and personal ledgers.
type FinanceState struct {
	CityBudget        CityBudget         `json:"cityBudget"`
	PersonalFinances  PersonalFinances   `json:"personalFinances"`
	CorruptionHistory []CorruptionRecord `json:"corruptionHistory"`
	Risks             Risks              `json:"risks"`
}
