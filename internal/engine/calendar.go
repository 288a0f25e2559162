package engine

import "github.com/talgya/mayor-sim/internal/city"

// AdvanceDay moves the calendar forward one day. Projects progress every day;
// when day 30 rolls over to day 1 the monthly tick runs and its report is
// returned, otherwise the report is nil.
func (r *Rules) AdvanceDay(g *city.GameState) (*city.GameState, *MonthReport, error) {
	next, err := r.begin(g, "advance_day")
	if err != nil {
		return next, nil, err
	}

	r.progressProjects(next)

	next.CurrentDay++
	if next.CurrentDay <= city.DaysPerMonth {
		return next, nil, nil
	}
	next.CurrentDay = 1
	next.CurrentMonth++
	if next.CurrentMonth > city.MonthsPerYear {
		next.CurrentMonth = 1
		next.CurrentYear++
	}

	out, report := r.ProcessMonth(next)
	return out, report, nil
}
