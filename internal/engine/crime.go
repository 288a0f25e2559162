// Security threats: investigations that open, escalate and fade against the
// mayor, and the metrics summarising them.
package engine

import (
	"github.com/google/uuid"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/entropy"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// Threat dynamics per month.
const (
	threatFade        = 10.0
	threatEscalation  = 15.0
	threatStart       = 40.0
	threatBaseChance  = 0.25
	threatMediaImpact = 10.0
)

// security ages threats, may open a new one and recomputes the metrics.
func (m *month) security() {
	g := m.g
	sec := &g.Security

	kept := make([]city.Threat, 0, len(sec.ActiveThreats))
	for _, t := range sec.ActiveThreats {
		t.Age++
		if t.Escalation {
			t.Progress = ledger.ClampPercent(t.Progress + threatEscalation)
		} else {
			t.Progress -= threatFade
			if t.Progress <= 0 {
				continue
			}
		}
		kept = append(kept, t)
	}
	sec.ActiveThreats = kept

	chance := threatBaseChance * sec.Metrics.InvestigationProbability / 100
	if len(m.r.cat.Threats) > 0 && entropy.Chance(m.r.rand, chance) {
		tpl := m.r.cat.Threats[m.r.rand.Intn(len(m.r.cat.Threats))]
		t := city.Threat{
			ID:         uuid.NewString(),
			Type:       tpl.Type,
			Title:      tpl.Title,
			AgencyID:   tpl.AgencyID,
			Severity:   ledger.Clamp(tpl.Severity, 1, 5),
			Progress:   threatStart,
			Escalation: tpl.Escalation,
		}
		if a, ok := sec.Agencies[tpl.AgencyID]; ok && a.Attitude.Protective() {
			t.Escalation = false
		}
		sec.ActiveThreats = ledger.Prepend(sec.ActiveThreats, t, city.ActiveThreatsCap)
		g.MediaAttention = ledger.ClampPercent(g.MediaAttention + threatMediaImpact)
		m.report.NewThreat = t.Title
		m.r.log.Info("threat opened", "type", t.Type, "agency", t.AgencyID, "severity", t.Severity)
	}

	risks := g.Finance.Risks
	target := (risks.InvestigationRisk+risks.PublicSuspicion+risks.FederalAttention)/3 +
		5*float64(len(sec.ActiveThreats)) - sec.Metrics.ProtectionLevel/10
	sec.Metrics.InvestigationProbability = ledger.ClampPercent(0.8*sec.Metrics.InvestigationProbability + 0.2*target)
	refreshSecurityMetrics(g)
}

// refreshSecurityMetrics recomputes the metrics that follow directly from
// current threats, risks and agency attitudes.
func refreshSecurityMetrics(g *city.GameState) {
	sec := &g.Security
	var severity float64
	perAgency := map[string]int{}
	for _, t := range sec.ActiveThreats {
		severity = max(severity, t.Severity)
		perAgency[t.AgencyID]++
	}
	sec.Metrics.OverallThreatLevel = severity
	sec.Metrics.CorruptionRisk = ledger.ClampPercent(g.Finance.Risks.InvestigationRisk*0.5 + 10*float64(len(sec.ActiveThreats)))

	var total, protective int64
	for id, a := range sec.Agencies {
		a.CurrentInvestigations = perAgency[id]
		sec.Agencies[id] = a
		total += a.Budget
		if a.Attitude.Protective() {
			protective += a.Budget
		}
	}
	sec.Metrics.ProtectionLevel = ledger.Percent(protective, total)
}
