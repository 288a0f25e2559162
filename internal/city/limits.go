package city

// Calendar and list bounds shared by every subsystem.
const (
	DaysPerMonth      = 30
	MonthsPerYear     = 12
	StartYear         = 2025
	StartBudget       = int64(50_000_000)
	StartRating       = 50.0
	MaxActiveProjects = 10

	EventHistoryCap         = 50
	TransactionHistoryCap   = 100
	PaymentHistoryCap       = 12
	CompletedDepositsCap    = 20
	CompletedInvestmentsCap = 25
	CompletedProgramsCap    = 20
	ActiveThreatsCap        = 5
	ActiveIssuesCap         = 10
	OperationHistoryCap     = 10
	SpendingHistoryCap      = 50
)
