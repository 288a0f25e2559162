// Governance: city hall departments and their staff.
package engine

import (
	"maps"
	"slices"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// Monthly drift of staff gauges.
const (
	workloadRelief = 5.0
	moodDecay      = 2.0
)

// government relieves workload, wears down mood and recomputes efficiency
// for every department, then resets the monthly decision counter.
func (m *month) government() {
	gov := &m.g.Government
	var moodSum, effSum float64
	staff := 0
	for _, id := range slices.Sorted(maps.Keys(gov.Departments)) {
		d := gov.Departments[id]
		for i := range d.Employees {
			e := &d.Employees[i]
			e.Workload = ledger.ClampPercent(e.Workload - workloadRelief)
			e.Mood = ledger.ClampPercent(e.Mood - moodDecay)
			moodSum += e.Mood
			staff++
		}
		d.Efficiency = departmentEfficiency(d.Employees)
		effSum += d.Efficiency
		gov.Departments[id] = d
	}
	if staff > 0 {
		gov.EmployeeSatisfaction = moodSum / float64(staff)
	}
	if n := len(gov.Departments); n > 0 {
		gov.DepartmentEfficiency = effSum / float64(n)
	}
	gov.MonthlyDecisions = 0
}

// departmentEfficiency blends staff competence, mood and spare capacity.
// An empty department runs at zero.
func departmentEfficiency(staff []city.Employee) float64 {
	if len(staff) == 0 {
		return 0
	}
	var sum float64
	for _, e := range staff {
		sum += 0.5*e.Competence + 0.3*e.Mood + 0.2*(100-e.Workload)
	}
	return ledger.ClampPercent(sum / float64(len(staff)))
}
