package city

// GameResult is the terminal outcome of a session.
type GameResult string

const (
	ResultVictory GameResult = "victory"
	ResultDefeat  GameResult = "defeat"
)

// GameState is the whole simulation at one instant. The engine never mutates a
// GameState it was handed; it clones, mutates the clone, and returns it.
type GameState struct {
	// Headline indicators.
	Budget          int64   `json:"budget"` // Sum of city bank accounts
	MayorRating     float64 `json:"mayorRating"`
	Happiness       float64 `json:"happiness"`
	Ecology         float64 `json:"ecology"`
	Infrastructure  float64 `json:"infrastructure"`
	Unemployment    float64 `json:"unemployment"` // Percent
	Population      int64   `json:"population"`
	CorruptionLevel float64 `json:"corruption_level"`
	MediaAttention  float64 `json:"media_attention"`
	BudgetBalance   int64   `json:"budget_balance"` // Last month's net city income

	// Calendar. Months are always DaysPerMonth long.
	CurrentDay       int   `json:"currentDay"`
	CurrentMonth     int   `json:"currentMonth"`
	CurrentYear      int   `json:"currentYear"`
	CurrentTimestamp int64 `json:"currentTimestamp"` // Unix ms, advanced one month per monthly tick

	ActiveProjects     []Project       `json:"activeProjects"`
	EventHistory       []EventDecision `json:"eventHistory"`
	PendingEvent       *Event          `json:"pendingEvent"`
	TotalDecisions     int             `json:"totalDecisions"`
	SuccessfulProjects int             `json:"successfulProjects"`
	FailedProjects     int             `json:"failedProjects"`

	Finance          FinanceState          `json:"financeState"`
	Banking          BankingState          `json:"bankingState"`
	Government       GovernmentState       `json:"governmentState"`
	Investment       InvestmentState       `json:"investmentState"`
	Industry         ProgramState          `json:"industryState"`
	Construction     ProgramState          `json:"constructionState"`
	Security         SecurityState         `json:"securityState"`
	Citizens         CitizensState         `json:"citizensState"`
	Taxation         TaxationState         `json:"taxationState"`
	PersonalSpending PersonalSpendingState `json:"personalSpendingState"`

	// Denormalized read views, refreshed at the end of every monthly tick.
	PersonalFinances map[PersonalAccountType]int64 `json:"personalFinances"`
	CitizenGroups    map[string]CitizenGroup       `json:"citizenGroups"`

	IsPaused     bool    `json:"isPaused"`
	GameSpeed    float64 `json:"gameSpeed"`
	ErrorMessage string  `json:"errorMessage,omitempty"`

	GameOver       bool       `json:"gameOver"`
	GameOverReason string     `json:"gameOverReason,omitempty"`
	GameResult     GameResult `json:"gameResult,omitempty"`
}

// InProgressCount returns the number of projects currently being built.
func (g *GameState) InProgressCount() int {
	n := 0
	for _, p := range g.ActiveProjects {
		if p.Status == ProjectInProgress {
			n++
		}
	}
	return n
}

// ProjectIndex returns the index of the project with the given id, or -1.
func (g *GameState) ProjectIndex(id string) int {
	for i := range g.ActiveProjects {
		if g.ActiveProjects[i].ID == id {
			return i
		}
	}
	return -1
}

// NetPosition is cash on hand minus unpaid arrears. Bankruptcy is judged on it.
func (g *GameState) NetPosition() int64 {
	return g.Budget - g.Finance.CityBudget.Arrears
}
