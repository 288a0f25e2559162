package city

// ProgramProject is an industrial or construction programme that progresses
// one month at a time against a catalog duration.
type ProgramProject struct {
	ID             string  `json:"id"`
	CatalogID      string  `json:"catalogId"`
	Title          string  `json:"title"`
	Cost           int64   `json:"cost"`
	Duration       int     `json:"duration"` // Months
	MonthsPassed   int     `json:"monthsPassed"`
	Progress       float64 `json:"progress"` // 0..100
	Phase          string  `json:"phase"`
	Kickback       int64   `json:"kickback"`
	StartYear      int     `json:"startYear"`
	StartMonth     int     `json:"startMonth"`
	CompletedYear  int     `json:"completedYear,omitempty"`
	CompletedMonth int     `json:"completedMonth,omitempty"`
}

// ProgramState is shared by the industry and construction slices.
type ProgramState struct {
	Active         []ProgramProject `json:"activeProjects"`
	Completed      []ProgramProject `json:"completedProjects"`
	TotalKickbacks int64            `json:"totalKickbacks"`
	JobsCreated    int64            `json:"jobsCreated"`
	AddedRevenue   int64            `json:"addedRevenue"` // Monthly income added by completions
}
