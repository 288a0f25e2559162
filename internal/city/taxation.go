package city

// Share is an amount and its derived percentage of the whole.
type Share struct {
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Debt summarises city borrowing.
type Debt struct {
	TotalDebt     int64   `json:"totalDebt"`
	DebtToRevenue float64 `json:"debtToRevenue"` // Percent of annual revenue
	InterestRate  float64 `json:"interestRate"`
	AnnualService int64   `json:"annualService"`
}

// TaxMetrics are recomputed every month.
type TaxMetrics struct {
	TotalRevenue   int64             `json:"totalRevenue"` // Monthly
	CollectionRate float64           `json:"collectionRate"`
	RevenueByType  map[TaxType]int64 `json:"revenueByType"`
}

// TaxationState owns tax rates and the revenue picture.
type TaxationState struct {
	CurrentRates         map[TaxType]float64 `json:"currentRates"` // Percent
	TaxBase              map[TaxType]int64   `json:"taxBase"`      // Monthly base
	CollectionEfficiency map[TaxType]float64 `json:"collectionEfficiency"`
	RevenueStructure     map[string]Share    `json:"revenueStructure"`
	ExpenditureStructure map[string]Share    `json:"expenditureStructure"`
	ActivePolicies       []string            `json:"activePolicies"`
	Debt                 Debt                `json:"debt"`
	Metrics              TaxMetrics          `json:"taxMetrics"`
}
