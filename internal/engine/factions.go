// Agencies: the mayor's leverage over law enforcement, bought with bribes.
package engine

import (
	"math"

	"github.com/google/uuid"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// Influence thresholds at which an agency turns friendly or controlled.
const (
	friendlyInfluence   = 50.0
	controlledInfluence = 80.0
)

// BribeAgency pays amount from the mayor's offshore account, then checking,
// to buy influence with an agency. A refused bribe keeps the money and
// draws federal attention.
func (r *Rules) BribeAgency(g *city.GameState, agencyID string, amount int64) (*city.GameState, error) {
	next, err := r.begin(g, "bribe_agency")
	if err != nil {
		return next, err
	}
	a, ok := next.Security.Agencies[agencyID]
	if !ok {
		return r.reject(g, "bribe_agency", wrapf(ErrUnknownAgency, "bribe %q", agencyID))
	}
	if amount <= 0 {
		return r.reject(g, "bribe_agency", wrapf(ErrAmountOutOfRange, "bribe %q", agencyID))
	}
	offshore := next.Banking.Balance(city.AccountPersonalOffshore)
	checking := next.Banking.Balance(city.AccountPersonalChecking)
	if offshore+checking < amount {
		return r.reject(g, "bribe_agency", wrapf(ErrInsufficientFunds, "bribe %q", agencyID))
	}

	fromOffshore := min(amount, offshore)
	ledger.Move(next, city.AccountPersonalOffshore, -fromOffshore)
	if rest := amount - fromOffshore; rest > 0 {
		ledger.Move(next, city.AccountPersonalChecking, -rest)
	}

	accepted := r.rand.Float64() < math.Min(0.95, a.Head.Corruptibility/100+0.2)
	if accepted {
		gain := a.Head.Corruptibility / 5 * math.Min(float64(amount)/float64(ledger.Million), 3)
		a.Influence = ledger.ClampPercent(a.Influence + gain)
		a.Attitude = attitudeFor(a.Influence, a.Attitude)
		sm := &next.Security.Metrics
		sm.InvestigationProbability = ledger.ClampPercent(sm.InvestigationProbability - 5)
	} else {
		risks := &next.Finance.Risks
		risks.FederalAttention = ledger.ClampPercent(risks.FederalAttention + 5)
		risks.InvestigationRisk = ledger.ClampPercent(risks.InvestigationRisk + 5)
	}
	a.TotalBribes += amount
	a.OperationHistory = ledger.Prepend(a.OperationHistory, city.AgencyOperation{
		ID:      uuid.NewString(),
		Type:    "bribe",
		Year:    next.CurrentYear,
		Month:   next.CurrentMonth,
		Amount:  amount,
		Success: accepted,
	}, city.OperationHistoryCap)
	next.Security.Agencies[agencyID] = a
	recordCorruption(next, "bribe", amount, "Payment to "+a.Name)
	refreshSecurityMetrics(next)
	next.Government.MonthlyDecisions++

	r.log.Info("agency bribed", "agency", agencyID, "amount", amount, "accepted", accepted, "influence", round1(a.Influence))
	return next, nil
}

// attitudeFor upgrades an attitude once influence crosses a threshold. It
// never downgrades.
func attitudeFor(influence float64, cur city.AgencyAttitude) city.AgencyAttitude {
	switch {
	case influence >= controlledInfluence:
		return city.AttitudeControlled
	case influence >= friendlyInfluence && cur != city.AttitudeControlled:
		return city.AttitudeFriendly
	case cur == city.AttitudeHostile && influence >= friendlyInfluence/2:
		return city.AttitudeNeutral
	}
	return cur
}
