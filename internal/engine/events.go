// Event engine: picking triggerable scripted events and resolving the
// player's choice.
package engine

import (
	"maps"

	"github.com/google/uuid"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/entropy"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// EventChance is the monthly probability of a random event.
const EventChance = 0.3

// Triggerable reports whether e's stat bounds and season gate hold for g.
func Triggerable(e city.Event, g *city.GameState) bool {
	if e.SeasonalTrigger != "" && e.SeasonalTrigger != g.Season() {
		return false
	}
	for s, b := range e.TriggerConditions {
		v, ok := g.Stat(s)
		if !ok || !b.Contains(v) {
			return false
		}
	}
	return true
}

// EligibleEvents lists the catalog events that could fire now, in catalog
// order.
func (r *Rules) EligibleEvents(g *city.GameState) []city.Event {
	var out []city.Event
	for _, e := range r.cat.Events {
		if Triggerable(e, g) {
			out = append(out, e)
		}
	}
	return out
}

// randomEvent rolls for a new event unless one is already waiting.
func (m *month) randomEvent() {
	g := m.g
	if g.PendingEvent != nil || !entropy.Chance(m.r.rand, EventChance) {
		return
	}
	pool := m.r.EligibleEvents(g)
	if len(pool) == 0 {
		return
	}
	ev := pool[m.r.rand.Intn(len(pool))].Clone()
	g.PendingEvent = &ev
	m.report.Event = ev.ID
	m.r.log.Info("event pending", "event", ev.ID, "title", ev.Title)
}

// TriggerEvent makes a catalog event pending regardless of its conditions.
func (r *Rules) TriggerEvent(g *city.GameState, eventID string) (*city.GameState, error) {
	next, err := r.begin(g, "trigger_event")
	if err != nil {
		return next, err
	}
	if next.PendingEvent != nil {
		return r.reject(g, "trigger_event", wrapf(ErrEventPending, "trigger %q", eventID))
	}
	ev, ok := r.cat.Event(eventID)
	if !ok {
		return r.reject(g, "trigger_event", wrapf(ErrUnknownEvent, "trigger %q", eventID))
	}
	next.PendingEvent = &ev
	return next, nil
}

// DecideEvent resolves the pending event with one of its options. An option
// with a cost is refused while the budget is below it; the money itself moves
// through the option's budget effect.
func (r *Rules) DecideEvent(g *city.GameState, eventID, optionID string) (*city.GameState, error) {
	next, err := r.begin(g, "decide_event")
	if err != nil {
		return next, err
	}
	if g.PendingEvent == nil || g.PendingEvent.ID != eventID {
		if _, known := r.cat.Event(eventID); !known {
			return r.reject(g, "decide_event", wrapf(ErrUnknownEvent, "decide %q", eventID))
		}
		return r.reject(g, "decide_event", wrapf(ErrEventNotPending, "decide %q", eventID))
	}
	ev := next.PendingEvent
	opt, ok := ev.Option(optionID)
	if !ok {
		return r.reject(g, "decide_event", wrapf(ErrUnknownOption, "decide %q option %q", eventID, optionID))
	}
	if opt.Cost > 0 && next.Budget < opt.Cost {
		return r.reject(g, "decide_event", wrapf(ErrInsufficientFunds, "decide %q option %q: need %s", eventID, optionID, ledger.FormatMoney(opt.Cost)))
	}

	r.applyEffects(next, opt.Effects, "event "+ev.ID)
	if opt.Duration > 0 {
		cat := opt.Category
		if cat == "" {
			cat = city.ProjectCategory(ev.Category)
		}
		next.ActiveProjects = append(next.ActiveProjects, city.Project{
			ID:             ev.ID + "_" + opt.ID + "_" + uuid.NewString()[:8],
			Title:          ev.Title + ": " + opt.Text,
			Category:       cat,
			Duration:       opt.Duration,
			Effects:        map[city.Stat]float64{},
			Status:         city.ProjectInProgress,
			RemainingDays:  opt.Duration,
			StartDate:      next.DateString(),
			BudgetCategory: cat.BudgetCategory(),
			FromEvent:      ev.ID,
		})
	}

	next.EventHistory = ledger.Prepend(next.EventHistory, city.EventDecision{
		EventID:    ev.ID,
		OptionID:   opt.ID,
		Title:      ev.Title,
		OptionText: opt.Text,
		Effects:    maps.Clone(opt.Effects),
		Year:       next.CurrentYear,
		Month:      next.CurrentMonth,
		Day:        next.CurrentDay,
	}, city.EventHistoryCap)
	next.TotalDecisions++
	next.Government.MonthlyDecisions++
	next.PendingEvent = nil

	r.log.Info("event resolved", "event", ev.ID, "option", opt.ID)
	return next, nil
}
