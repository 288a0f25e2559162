package city

// Asset is something the mayor owns.
type Asset struct {
	ID         string  `json:"id"`
	CatalogID  string  `json:"catalogId"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Value      int64   `json:"value"`
	Visibility float64 `json:"visibility"` // 0..100, how conspicuous
	Lifestyle  float64 `json:"lifestyle"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
}

// RecurringExpense is a monthly personal charge.
type RecurringExpense struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// SpendingRecord is one line of personal spending history.
type SpendingRecord struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// PersonalSpendingState owns the mayor's lifestyle.
type PersonalSpendingState struct {
	Assets            []Asset            `json:"assets"`
	RecurringExpenses []RecurringExpense `json:"recurringExpenses"`
	SpendingHistory   []SpendingRecord   `json:"spendingHistory"`
	TotalSpent        int64              `json:"totalSpent"`
	TotalAssets       int64              `json:"totalAssets"`
	DetectionRisk     float64            `json:"detectionRisk"`
	LifestyleQuality  float64            `json:"lifestyleQuality"`
	FamilyHappiness   float64            `json:"familyHappiness"`
}

// RecurringTotal sums the monthly recurring expenses.
func (p *PersonalSpendingState) RecurringTotal() int64 {
	var total int64
	for _, e := range p.RecurringExpenses {
		total += e.Amount
	}
	return total
}
