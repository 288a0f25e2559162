package city

// Investment is a city stake in a catalog opportunity.
type Investment struct {
	ID            string  `json:"id"`
	OpportunityID string  `json:"opportunityId"`
	Title         string  `json:"title"`
	Amount        int64   `json:"amount"`
	MonthsPassed  int     `json:"monthsPassed"`
	Progress      float64 `json:"progress"` // 0..100
	CurrentValue  int64   `json:"currentValue"`
	Seed          int64   `json:"seed"` // Valuation noise seed
	StartYear     int     `json:"startYear"`
	StartMonth    int     `json:"startMonth"`
}

// CompletedInvestment is a paid-out investment.
type CompletedInvestment struct {
	Investment
	Payout         int64 `json:"payout"`
	Profit         int64 `json:"profit"`
	CompletedYear  int   `json:"completedYear"`
	CompletedMonth int   `json:"completedMonth"`
}

// InvestmentPortfolio aggregates the active book.
type InvestmentPortfolio struct {
	TotalInvested int64 `json:"totalInvested"`
	TotalReturns  int64 `json:"totalReturns"`
	ActiveValue   int64 `json:"activeValue"`
}

// InvestmentMetrics are derived ratios over completed investments.
type InvestmentMetrics struct {
	SuccessRate   float64 `json:"successRate"`   // Percent of completions with profit > 0
	AverageReturn float64 `json:"averageReturn"` // Mean profit as percent of amount
}

// InvestmentState owns the investment book.
type InvestmentState struct {
	ActiveInvestments    []Investment          `json:"activeInvestments"`
	CompletedInvestments []CompletedInvestment `json:"completedInvestments"`
	Portfolio            InvestmentPortfolio   `json:"portfolio"`
	Metrics              InvestmentMetrics     `json:"investmentMetrics"`
}
