package city

// BankAccount is one account at a bank.
type BankAccount struct {
	Balance       int64   `json:"balance"`
	Bank          string  `json:"bank"`
	AccountNumber string  `json:"accountNumber"`
	InterestRate  float64 `json:"interestRate"`
	Currency      string  `json:"currency"`
}

// LoanStatus is the servicing state of a loan.
type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanOverdue   LoanStatus = "overdue"
	LoanCompleted LoanStatus = "completed"
)

// LoanPayment is one serviced instalment.
type LoanPayment struct {
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	Amount    int64 `json:"amount"`
	Interest  int64 `json:"interest"`
	Principal int64 `json:"principal"`
}

// Loan is a borrowed sum repaid in monthly instalments from Account.
type Loan struct {
	ID              string          `json:"id"`
	OfferID         string          `json:"offerId"`
	Bank            string          `json:"bank"`
	Account         BankAccountType `json:"account"`
	Principal       int64           `json:"principal"`
	RemainingAmount int64           `json:"remainingAmount"`
	InterestRate    float64         `json:"interestRate"` // Annual percent
	TermMonths      int             `json:"termMonths"`
	RemainingMonths int             `json:"remainingMonths"`
	MonthlyPayment  int64           `json:"monthlyPayment"`
	Status          LoanStatus      `json:"status"`
	MissedPayments  int             `json:"missedPayments"`
	PaymentHistory  []LoanPayment   `json:"paymentHistory"`
	StartYear       int             `json:"startYear"`
	StartMonth      int             `json:"startMonth"`
}

// Open reports whether the loan still needs servicing.
func (l *Loan) Open() bool {
	return l.Status == LoanActive || l.Status == LoanOverdue
}

// Deposit is a fixed-term deposit accruing monthly interest.
type Deposit struct {
	ID              string          `json:"id"`
	OfferID         string          `json:"offerId"`
	Bank            string          `json:"bank"`
	Account         BankAccountType `json:"account"`
	Amount          int64           `json:"amount"`
	InterestRate    float64         `json:"interestRate"` // Annual percent
	TermMonths      int             `json:"termMonths"`
	RemainingMonths int             `json:"remainingMonths"`
	AccruedInterest int64           `json:"accruedInterest"`
	StartYear       int             `json:"startYear"`
	StartMonth      int             `json:"startMonth"`
}

// StockHolding is a position in one stock.
type StockHolding struct {
	Quantity     int64 `json:"quantity"`
	AveragePrice int64 `json:"averagePrice"`
}

// StockPortfolio splits holdings between the city and the mayor.
type StockPortfolio struct {
	City     map[string]StockHolding `json:"city"`
	Personal map[string]StockHolding `json:"personal"`
}

// Transaction is one line of the bank statement.
type Transaction struct {
	ID          string          `json:"id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Day         int             `json:"day"`
	Type        string          `json:"type"`
	Account     BankAccountType `json:"account"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
}

// BankingState owns accounts, loans, deposits and the statement.
type BankingState struct {
	Accounts           map[BankAccountType]BankAccount `json:"accounts"`
	Loans              []Loan                          `json:"loans"`
	Deposits           []Deposit                       `json:"deposits"`
	CompletedDeposits  []Deposit                       `json:"completedDeposits"`
	StockPortfolio     StockPortfolio                  `json:"stockPortfolio"`
	TransactionHistory []Transaction                   `json:"transactionHistory"`
}

// CityBalance sums the three city accounts.
func (b *BankingState) CityBalance() int64 {
	var total int64
	for _, t := range CityFundingOrder {
		total += b.Accounts[t].Balance
	}
	return total
}

// Balance returns the balance of an account, zero when it does not exist.
func (b *BankingState) Balance(t BankAccountType) int64 {
	return b.Accounts[t].Balance
}

// CityDebt sums the outstanding principal of open loans drawn into city accounts.
func (b *BankingState) CityDebt() int64 {
	var total int64
	for i := range b.Loans {
		if b.Loans[i].Open() && b.Loans[i].Account.IsCity() {
			total += b.Loans[i].RemainingAmount
		}
	}
	return total
}
