package city

// CitizenGroup is a demographic with its own satisfaction.
type CitizenGroup struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Size         int64   `json:"size"`
	Satisfaction float64 `json:"satisfaction"`
	Influence    float64 `json:"influence"`
}

// CitizenIssue is an open complaint raised by a group.
type CitizenIssue struct {
	ID       string  `json:"id"`
	GroupID  string  `json:"groupId"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Severity float64 `json:"severity"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
}

// CommunicationStats track how the mayor answers citizens.
type CommunicationStats struct {
	Appeals      int     `json:"appeals"`
	Responded    int     `json:"responded"`
	ResponseRate float64 `json:"responseRate"`
}

// CitizenMetrics are recomputed every month.
type CitizenMetrics struct {
	OverallSatisfaction float64 `json:"overallSatisfaction"`
	ComplaintRate       float64 `json:"complaintRate"`
}

// CitizensState owns groups and issues.
type CitizensState struct {
	Groups             map[string]CitizenGroup `json:"groups"`
	ActiveIssues       []CitizenIssue          `json:"activeIssues"`
	CommunicationStats CommunicationStats      `json:"communicationStats"`
	Metrics            CitizenMetrics          `json:"citizenMetrics"`
}
