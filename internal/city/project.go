package city

// ProjectStatus is the lifecycle position of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
	ProjectFailed     ProjectStatus = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s ProjectStatus) Terminal() bool {
	return s == ProjectCompleted || s == ProjectCancelled || s == ProjectFailed
}

// CanTransition reports whether moving from s to next goes forward.
func (s ProjectStatus) CanTransition(next ProjectStatus) bool {
	switch s {
	case ProjectPlanning:
		return next == ProjectInProgress || next == ProjectCancelled
	case ProjectInProgress:
		return next.Terminal()
	}
	return false
}

// Requirements gate the start of a project.
type Requirements struct {
	MinBudget      int64          `yaml:"min_budget,omitempty" json:"minBudget,omitempty"`
	MinMayorRating float64        `yaml:"min_mayor_rating,omitempty" json:"minMayorRating,omitempty"`
	Stats          map[Stat]Bound `yaml:"stats,omitempty" json:"stats,omitempty"`
}

// Funding records how much one account paid towards a project.
type Funding struct {
	Account BankAccountType `json:"accountType"`
	Amount  int64           `json:"amount"`
}

// ProjectFinancials tracks who paid for a project.
type ProjectFinancials struct {
	Funding    []Funding `json:"funding"`
	TotalSpent int64     `json:"totalSpent"`
	// SpentBooked is the part of TotalSpent booked against the budget line.
	SpentBooked int64 `json:"spentBooked"`
}

// Project is a running or finished city project.
type Project struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Category       ProjectCategory   `json:"category"`
	Cost           int64             `json:"cost"`
	Duration       int               `json:"duration"` // Days
	MonthlyCost    int64             `json:"monthlyCost"`
	Requirements   Requirements      `json:"requirements"`
	Effects        map[Stat]float64  `json:"effects"`
	Status         ProjectStatus     `json:"status"`
	RemainingDays  int               `json:"remainingDays"`
	StartDate      string            `json:"startDate"`
	CompletionDate string            `json:"completionDate,omitempty"`
	BudgetCategory BudgetCategory    `json:"budgetCategory"`
	Financials     ProjectFinancials `json:"financials"`
	EffectsApplied bool              `json:"effectsApplied"`
	FromEvent      string            `json:"fromEvent,omitempty"`
}
