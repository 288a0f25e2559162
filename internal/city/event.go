package city

// EventOption is one choice the mayor can make on an event.
type EventOption struct {
	ID       string           `yaml:"id" json:"id"`
	Text     string           `yaml:"text" json:"text"`
	Effects  map[Stat]float64 `yaml:"effects" json:"effects"`
	Cost     int64            `yaml:"cost,omitempty" json:"cost,omitempty"` // Gate only; money moves through effects.budget
	Duration int              `yaml:"duration,omitempty" json:"duration,omitempty"`
	Category ProjectCategory  `yaml:"category,omitempty" json:"category,omitempty"`
}

// Event is a scripted situation awaiting a decision.
type Event struct {
	ID                string         `yaml:"id" json:"id"`
	Title             string         `yaml:"title" json:"title"`
	Description       string         `yaml:"description" json:"description"`
	Category          string         `yaml:"category" json:"category"`
	TriggerConditions map[Stat]Bound `yaml:"trigger_conditions,omitempty" json:"triggerConditions,omitempty"`
	SeasonalTrigger   Season         `yaml:"seasonal_trigger,omitempty" json:"seasonalTrigger,omitempty"`
	Options           []EventOption  `yaml:"options" json:"options"`
}

// Option looks up a choice by id.
func (e *Event) Option(id string) (EventOption, bool) {
	for _, o := range e.Options {
		if o.ID == id {
			return o, true
		}
	}
	return EventOption{}, false
}

// EventDecision is one resolved event in the history.
type EventDecision struct {
	EventID    string           `json:"eventId"`
	OptionID   string           `json:"optionId"`
	Title      string           `json:"title"`
	OptionText string           `json:"optionText"`
	Effects    map[Stat]float64 `json:"effects"`
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	Day        int              `json:"day"`
}
