// Citizens: group satisfaction, complaints and how they feed city happiness.
package engine

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/entropy"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// Happiness follows satisfaction with this much weight on the old value.
const happinessInertia = 0.7

// citizens may raise a new complaint, drifts every group toward the current
// conditions and blends the result into happiness.
func (m *month) citizens() {
	g := m.g
	cs := &g.Citizens

	chance := 0.2 + (100-cs.Metrics.OverallSatisfaction)/250
	if len(m.r.cat.Issues) > 0 && entropy.Chance(m.r.rand, chance) {
		tpl := m.r.cat.Issues[m.r.rand.Intn(len(m.r.cat.Issues))]
		issue := city.CitizenIssue{
			ID:       uuid.NewString(),
			GroupID:  tpl.GroupID,
			Title:    tpl.Title,
			Category: tpl.Category,
			Severity: tpl.Severity,
			Year:     g.CurrentYear,
			Month:    g.CurrentMonth,
		}
		cs.ActiveIssues = ledger.Prepend(cs.ActiveIssues, issue, city.ActiveIssuesCap)
		cs.CommunicationStats.Appeals++
		if grp, ok := cs.Groups[tpl.GroupID]; ok {
			grp.Satisfaction = ledger.ClampPercent(grp.Satisfaction - tpl.Severity/2)
			cs.Groups[tpl.GroupID] = grp
		} else {
			m.skip("issue", tpl.ID, "group "+tpl.GroupID+" does not exist")
		}
		m.report.NewIssue = issue.Title
	}

	open := map[string]int{}
	for _, is := range cs.ActiveIssues {
		open[is.GroupID]++
	}
	target := (g.Happiness + g.Infrastructure + g.Ecology + ledger.ClampPercent(100-g.Unemployment*5)) / 4
	for _, id := range slices.Sorted(maps.Keys(cs.Groups)) {
		grp := cs.Groups[id]
		grp.Satisfaction = ledger.ClampPercent(0.9*grp.Satisfaction + 0.1*target - 0.5*float64(open[id]))
		cs.Groups[id] = grp
	}

	refreshCitizenMetrics(cs)
	g.Happiness = ledger.ClampPercent(happinessInertia*g.Happiness + (1-happinessInertia)*cs.Metrics.OverallSatisfaction)
}

// refreshCitizenMetrics recomputes the size-weighted satisfaction and the
// complaint and response rates.
func refreshCitizenMetrics(cs *city.CitizensState) {
	var weighted float64
	var people int64
	for _, id := range slices.Sorted(maps.Keys(cs.Groups)) {
		grp := cs.Groups[id]
		weighted += grp.Satisfaction * float64(grp.Size)
		people += grp.Size
	}
	if people > 0 {
		cs.Metrics.OverallSatisfaction = weighted / float64(people)
	}
	cs.Metrics.ComplaintRate = float64(len(cs.ActiveIssues)) / city.ActiveIssuesCap * 100
	st := &cs.CommunicationStats
	if st.Appeals > 0 {
		st.ResponseRate = ledger.ClampPercent(float64(st.Responded) / float64(st.Appeals) * 100)
	}
}

// RespondToIssue resolves an open complaint, restoring the group's
// satisfaction by the issue's severity.
func (r *Rules) RespondToIssue(g *city.GameState, issueID string) (*city.GameState, error) {
	next, err := r.begin(g, "respond_issue")
	if err != nil {
		return next, err
	}
	cs := &next.Citizens
	idx := slices.IndexFunc(cs.ActiveIssues, func(is city.CitizenIssue) bool { return is.ID == issueID })
	if idx < 0 {
		return r.reject(g, "respond_issue", wrapf(ErrUnknownIssue, "respond to %q", issueID))
	}
	issue := cs.ActiveIssues[idx]
	cs.ActiveIssues = slices.Delete(cs.ActiveIssues, idx, idx+1)
	if grp, ok := cs.Groups[issue.GroupID]; ok {
		grp.Satisfaction = ledger.ClampPercent(grp.Satisfaction + issue.Severity)
		cs.Groups[issue.GroupID] = grp
	}
	cs.CommunicationStats.Responded++
	refreshCitizenMetrics(cs)
	next.CitizenGroups = maps.Clone(cs.Groups)
	next.Government.MonthlyDecisions++

	r.log.Info("issue resolved", "issue", issue.Title, "group", issue.GroupID)
	return next, nil
}
