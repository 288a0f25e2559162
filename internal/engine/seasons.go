// End-of-month upkeep: denormalised views, risk drift, natural decay and the
// approval pull on the mayor's rating.
package engine

import (
	"maps"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/entropy"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// Natural decay per monthly tick.
const (
	InfrastructureDecay = 0.5
	EcologyDecay        = 0.3
	HappinessDecay      = 0.2

	unemploymentDriftChance = 0.1
	unemploymentDrift       = 0.1
	unemploymentDriftCap    = 20.0
)

// Media attention per month: fades by mediaFade, grows per open threat.
const (
	mediaFade      = 2.0
	mediaPerThreat = 3.0
	riskFade       = 0.5
)

// approvalPull is how far the mayor rating moves toward approval each month.
const approvalPull = 0.1

// aggregates refreshes the denormalised views and the corruption and media
// gauges that summarise the other slices.
func (m *month) aggregates() {
	g := m.g
	ledger.SyncBudget(g)
	g.PersonalFinances = maps.Clone(g.Finance.PersonalFinances.Accounts)
	g.CitizenGroups = maps.Clone(g.Citizens.Groups)

	risks := &g.Finance.Risks
	risks.InvestigationRisk = ledger.ClampPercent(risks.InvestigationRisk - riskFade)
	risks.FederalAttention = ledger.ClampPercent(risks.FederalAttention - riskFade)
	g.CorruptionLevel = ledger.ClampPercent((risks.InvestigationRisk + risks.PublicSuspicion) / 2)

	g.MediaAttention = ledger.ClampPercent(g.MediaAttention - mediaFade + mediaPerThreat*float64(len(g.Security.ActiveThreats)))
	risks.MediaAttention = g.MediaAttention
}

func (m *month) decay() { naturalDecay(m.g, m.r.rand) }

// naturalDecay wears down infrastructure, ecology and happiness, and with a
// small chance nudges unemployment up.
func naturalDecay(g *city.GameState, src entropy.Source) {
	g.Infrastructure = ledger.FloorZero(g.Infrastructure - InfrastructureDecay)
	g.Ecology = ledger.FloorZero(g.Ecology - EcologyDecay)
	g.Happiness = ledger.FloorZero(g.Happiness - HappinessDecay)
	if entropy.Chance(src, unemploymentDriftChance) && g.Unemployment < unemploymentDriftCap {
		g.Unemployment = min(g.Unemployment+unemploymentDrift, unemploymentDriftCap)
	}
}

// approval moves the mayor rating a step toward public approval.
func (m *month) approval() {
	g := m.g
	g.MayorRating = ledger.ClampPercent(g.MayorRating + approvalPull*(Approval(g)-g.MayorRating))
}

// Approval is the mean of happiness, infrastructure, ecology and the absence
// of corruption.
func Approval(g *city.GameState) float64 {
	return (g.Happiness + g.Infrastructure + g.Ecology + (100 - g.CorruptionLevel)) / 4
}
