// Session controls the player can use at any time: pause, speed and
// dismissing the last error.
package engine

import (
	"math"

	"github.com/talgya/mayor-sim/internal/city"
)

// TogglePause flips the paused flag the day scheduler consults.
func (r *Rules) TogglePause(g *city.GameState) (*city.GameState, error) {
	next, err := r.begin(g, "toggle_pause")
	if err != nil {
		return next, err
	}
	next.IsPaused = !next.IsPaused
	r.log.Info("pause toggled", "paused", next.IsPaused)
	return next, nil
}

// SetGameSpeed sets the day scheduler's speed multiplier.
func (r *Rules) SetGameSpeed(g *city.GameState, speed float64) (*city.GameState, error) {
	next, err := r.begin(g, "set_game_speed")
	if err != nil {
		return next, err
	}
	if math.IsNaN(speed) || speed < MinGameSpeed || speed > MaxGameSpeed {
		return r.reject(g, "set_game_speed", wrapf(ErrInvalidSpeed, "speed %.2f", speed))
	}
	next.GameSpeed = speed
	r.log.Info("game speed set", "speed", speed)
	return next, nil
}

// ClearError dismisses the last rejection message. It works after game over.
func (r *Rules) ClearError(g *city.GameState) *city.GameState {
	next := g.Clone()
	next.ErrorMessage = ""
	return next
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
