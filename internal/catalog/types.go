package catalog

import "github.com/talgya/mayor-sim/internal/city"

// ProjectDef is a city project the mayor can start.
type ProjectDef struct {
	ID           string                `yaml:"id" json:"id"`
	Title        string                `yaml:"title" json:"title"`
	Description  string                `yaml:"description" json:"description"`
	Category     city.ProjectCategory  `yaml:"category" json:"category"`
	Cost         int64                 `yaml:"cost" json:"cost"`
	Duration     int                   `yaml:"duration" json:"duration"` // Days
	MonthlyCost  int64                 `yaml:"monthly_cost" json:"monthlyCost"`
	Requirements city.Requirements     `yaml:"requirements" json:"requirements"`
	Effects      map[city.Stat]float64 `yaml:"effects" json:"effects"`
}

// Opportunity is an investment the city can place money into.
type Opportunity struct {
	ID             string                `yaml:"id" json:"id"`
	Title          string                `yaml:"title" json:"title"`
	Sector         string                `yaml:"sector" json:"sector"`
	MinAmount      int64                 `yaml:"min_amount" json:"minAmount"`
	MaxAmount      int64                 `yaml:"max_amount" json:"maxAmount"`
	ExpectedReturn float64               `yaml:"expected_return" json:"expectedReturn"` // Percent over the whole term
	Volatility     float64               `yaml:"volatility" json:"volatility"`          // Percent swing around the expected path
	Duration       int                   `yaml:"duration" json:"duration"`              // Months
	Milestones     int                   `yaml:"milestones" json:"milestones"`
	Benefits       map[city.Stat]float64 `yaml:"benefits" json:"benefits"`
}

// LoanOffer is a credit line available from a bank.
type LoanOffer struct {
	ID           string               `yaml:"id" json:"id"`
	Bank         string               `yaml:"bank" json:"bank"`
	Title        string               `yaml:"title" json:"title"`
	MinAmount    int64                `yaml:"min_amount" json:"minAmount"`
	MaxAmount    int64                `yaml:"max_amount" json:"maxAmount"`
	InterestRate float64              `yaml:"interest_rate" json:"interestRate"` // Annual percent
	TermMonths   int                  `yaml:"term_months" json:"termMonths"`
	Account      city.BankAccountType `yaml:"account" json:"account"`
	MinRating    float64              `yaml:"min_rating,omitempty" json:"minRating,omitempty"`
}

// DepositOffer is a fixed-term deposit product.
type DepositOffer struct {
	ID           string  `yaml:"id" json:"id"`
	Bank         string  `yaml:"bank" json:"bank"`
	Title        string  `yaml:"title" json:"title"`
	MinAmount    int64   `yaml:"min_amount" json:"minAmount"`
	InterestRate float64 `yaml:"interest_rate" json:"interestRate"` // Annual percent
	TermMonths   int     `yaml:"term_months" json:"termMonths"`
}

// TaxPolicy is a one-off reform of rates and collection.
type TaxPolicy struct {
	ID                string                   `yaml:"id" json:"id"`
	Title             string                   `yaml:"title" json:"title"`
	Description       string                   `yaml:"description" json:"description"`
	Cost              int64                    `yaml:"cost" json:"cost"`
	RateChanges       map[city.TaxType]float64 `yaml:"rate_changes" json:"rateChanges"`
	EfficiencyChanges map[city.TaxType]float64 `yaml:"efficiency_changes" json:"efficiencyChanges"`
	Effects           map[city.Stat]float64    `yaml:"effects" json:"effects"`
}

// AgencyDef seeds one law-enforcement or oversight agency.
type AgencyDef struct {
	ID         string              `yaml:"id" json:"id"`
	Name       string              `yaml:"name" json:"name"`
	Influence  float64             `yaml:"influence" json:"influence"`
	Attitude   city.AgencyAttitude `yaml:"attitude" json:"attitude"`
	Budget     int64               `yaml:"budget" json:"budget"`
	Personnel  int                 `yaml:"personnel" json:"personnel"`
	Operations []string            `yaml:"operations" json:"operations"`
	Head       city.AgencyHead     `yaml:"head" json:"head"`
}

// ThreatTemplate is a kind of investigation that can open against the mayor.
type ThreatTemplate struct {
	Type       string  `yaml:"type" json:"type"`
	Title      string  `yaml:"title" json:"title"`
	AgencyID   string  `yaml:"agency" json:"agency"`
	Severity   float64 `yaml:"severity" json:"severity"`
	Escalation bool    `yaml:"escalation" json:"escalation"`
}

// IssueTemplate is a complaint a citizen group can raise.
type IssueTemplate struct {
	ID       string  `yaml:"id" json:"id"`
	GroupID  string  `yaml:"group" json:"group"`
	Title    string  `yaml:"title" json:"title"`
	Category string  `yaml:"category" json:"category"`
	Severity float64 `yaml:"severity" json:"severity"`
}

// ProgramDef is an industrial or construction project run on month counts.
type ProgramDef struct {
	ID           string                `yaml:"id" json:"id"`
	Title        string                `yaml:"title" json:"title"`
	Cost         int64                 `yaml:"cost" json:"cost"`
	Duration     int                   `yaml:"duration" json:"duration"`          // Months
	KickbackRate float64               `yaml:"kickback_rate" json:"kickbackRate"` // Percent of cost
	Jobs         int64                 `yaml:"jobs" json:"jobs"`
	Revenue      int64                 `yaml:"revenue" json:"revenue"` // Monthly income added on completion
	Effects      map[city.Stat]float64 `yaml:"effects" json:"effects"`
}

// AssetDef is something the mayor can buy privately.
type AssetDef struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	Category      string  `yaml:"category" json:"category"`
	Price         int64   `yaml:"price" json:"price"`
	Visibility    float64 `yaml:"visibility" json:"visibility"`
	MonthlyUpkeep int64   `yaml:"monthly_upkeep" json:"monthlyUpkeep"`
	Lifestyle     float64 `yaml:"lifestyle" json:"lifestyle"`
}
