package city

// AgencyAttitude is how an agency stands towards the mayor.
type AgencyAttitude string

const (
	AttitudeHostile    AgencyAttitude = "hostile"
	AttitudeNeutral    AgencyAttitude = "neutral"
	AttitudeFriendly   AgencyAttitude = "friendly"
	AttitudeControlled AgencyAttitude = "controlled"
)

// Protective reports whether the agency shields the mayor.
func (a AgencyAttitude) Protective() bool {
	return a == AttitudeFriendly || a == AttitudeControlled
}

// AgencyHead is the person in charge of an agency.
type AgencyHead struct {
	Name           string  `json:"name"`
	Loyalty        float64 `json:"loyalty"`
	Corruptibility float64 `json:"corruptibility"`
	Competence     float64 `json:"competence"`
	Connections    float64 `json:"connections"`
}

// AgencyOperation is one recorded interaction with an agency.
type AgencyOperation struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Amount  int64  `json:"amount"`
	Success bool   `json:"success"`
}

// Agency is a law-enforcement or oversight body.
type Agency struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Influence             float64           `json:"influence"` // Mayor's influence over it, 0..100
	Attitude              AgencyAttitude    `json:"attitude"`
	Head                  AgencyHead        `json:"head"`
	Budget                int64             `json:"budget"`
	Personnel             int               `json:"personnel"`
	CurrentInvestigations int               `json:"currentInvestigations"`
	AvailableOperations   []string          `json:"availableOperations"`
	TotalBribes           int64             `json:"totalBribes"`
	OperationHistory      []AgencyOperation `json:"operationHistory"`
}

// Threat is an active investigation or exposure risk.
type Threat struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	AgencyID   string  `json:"agencyId"`
	Severity   float64 `json:"severity"` // 1..5
	Progress   float64 `json:"progress"` // 0..100
	Age        int     `json:"age"`      // Months
	Escalation bool    `json:"escalation"`
}

// SecurityMetrics are recomputed every month.
type SecurityMetrics struct {
	InvestigationProbability float64 `json:"investigationProbability"`
	CorruptionRisk           float64 `json:"corruptionRisk"`
	OverallThreatLevel       float64 `json:"overallThreatLevel"`
	ProtectionLevel          float64 `json:"protectionLevel"`
}

// SecurityState owns agencies and threats.
type SecurityState struct {
	Agencies      map[string]Agency `json:"agencies"`
	ActiveThreats []Threat          `json:"activeThreats"`
	Metrics       SecurityMetrics   `json:"securityMetrics"`
}
