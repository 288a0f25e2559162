// Package city defines the mayor's game state: headline indicators, the
// calendar, and one slice per subsystem. Everything here is plain data; the
// engine package owns the rules that move it forward.
package city

import "strings"

// Stat names a top-level indicator that catalog effects and requirements can
// address.
type Stat string

const (
	StatBudget          Stat = "budget"
	StatMayorRating     Stat = "mayorRating"
	StatHappiness       Stat = "happiness"
	StatEcology         Stat = "ecology"
	StatInfrastructure  Stat = "infrastructure"
	StatUnemployment    Stat = "unemployment"
	StatPopulation      Stat = "population"
	StatCorruptionLevel Stat = "corruption_level"
	StatMediaAttention  Stat = "media_attention"
)

// AllStats lists every addressable indicator.
var AllStats = []Stat{
	StatBudget, StatMayorRating, StatHappiness, StatEcology, StatInfrastructure,
	StatUnemployment, StatPopulation, StatCorruptionLevel, StatMediaAttention,
}

// Capped reports whether the stat is a percentage gauge kept in [0, 100].
// Budget and population only floor at zero.
func (s Stat) Capped() bool {
	switch s {
	case StatBudget, StatPopulation:
		return false
	}
	return s.Known()
}

// Known reports whether s names an indicator on GameState.
func (s Stat) Known() bool {
	for _, k := range AllStats {
		if k == s {
			return true
		}
	}
	return false
}

// Bound is an optional inclusive [Min, Max] range on a stat.
type Bound struct {
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// Contains reports whether v lies inside the bound.
func (b Bound) Contains(v float64) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// Stat returns the current value of a named indicator.
func (g *GameState) Stat(s Stat) (float64, bool) {
	switch s {
	case StatBudget:
		return float64(g.Budget), true
	case StatMayorRating:
		return g.MayorRating, true
	case StatHappiness:
		return g.Happiness, true
	case StatEcology:
		return g.Ecology, true
	case StatInfrastructure:
		return g.Infrastructure, true
	case StatUnemployment:
		return g.Unemployment, true
	case StatPopulation:
		return float64(g.Population), true
	case StatCorruptionLevel:
		return g.CorruptionLevel, true
	case StatMediaAttention:
		return g.MediaAttention, true
	}
	return 0, false
}

// SetStat overwrites a named indicator. Budget is derived from the city bank
// accounts and cannot be set here; callers move money through an account.
func (g *GameState) SetStat(s Stat, v float64) bool {
	switch s {
	case StatMayorRating:
		g.MayorRating = v
	case StatHappiness:
		g.Happiness = v
	case StatEcology:
		g.Ecology = v
	case StatInfrastructure:
		g.Infrastructure = v
	case StatUnemployment:
		g.Unemployment = v
	case StatPopulation:
		g.Population = int64(v)
	case StatCorruptionLevel:
		g.CorruptionLevel = v
	case StatMediaAttention:
		g.MediaAttention = v
	default:
		return false
	}
	return true
}

// ParseStat maps a loose name ("mayor_rating", "MayorRating") onto a Stat.
func ParseStat(name string) (Stat, bool) {
	norm := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	for _, s := range AllStats {
		if strings.ToLower(strings.ReplaceAll(string(s), "_", "")) == norm {
			return s, true
		}
	}
	return "", false
}
