// Package engine runs the city simulation: the monthly reducer and its
// subsystem steps, the event engine, the project lifecycle, player actions,
// game-over checks and the real-time day scheduler that drives them.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/mayor-sim/internal/catalog"
	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/entropy"
)

// Domain rejections. Actions wrap these with context and also leave the
// message on state.ErrorMessage.
var (
	ErrUnknownProject     = errors.New("unknown project")
	ErrUnknownOffer       = errors.New("unknown offer")
	ErrUnknownOpportunity = errors.New("unknown investment opportunity")
	ErrUnknownPolicy      = errors.New("unknown tax policy")
	ErrUnknownAgency      = errors.New("unknown agency")
	ErrUnknownIssue       = errors.New("unknown citizen issue")
	ErrUnknownAsset       = errors.New("unknown asset")
	ErrUnknownAccount     = errors.New("unknown account")
	ErrUnknownEvent       = errors.New("unknown event")
	ErrUnknownOption      = errors.New("unknown option")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrRequirementsNotMet = errors.New("requirements not met")
	ErrTooManyProjects    = errors.New("too many active projects")
	ErrProjectNotActive   = errors.New("project is not in progress")
	ErrEventNotPending    = errors.New("event is not pending")
	ErrEventPending       = errors.New("another event is already pending")
	ErrAmountOutOfRange   = errors.New("amount out of range")
	ErrAlreadyAdopted     = errors.New("policy already adopted")
	ErrInvalidSpeed       = errors.New("game speed out of range")
	ErrGameOver           = errors.New("game is over")
)

// Game speed bounds accepted by SetGameSpeed.
const (
	MinGameSpeed = 0.25
	MaxGameSpeed = 10.0
)

// Rules applies the simulation to game states. It holds no game state of its
// own; every method takes a state and returns a new one.
type Rules struct {
	cat  *catalog.Catalog
	rand entropy.Source
	log  *slog.Logger
}

// NewRules wires the catalog, random source and logger. Nil arguments fall
// back to the embedded catalog, crypto randomness and slog.Default.
func NewRules(cat *catalog.Catalog, src entropy.Source, logger *slog.Logger) *Rules {
	if cat == nil {
		cat = catalog.Default()
	}
	if src == nil {
		src = entropy.Crypto{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rules{cat: cat, rand: src, log: logger}
}

// Catalog returns the reference tables in use.
func (r *Rules) Catalog() *catalog.Catalog { return r.cat }

// NewGame returns the opening state with the catalog's agencies seated.
func (r *Rules) NewGame() *city.GameState {
	g := city.NewGame()
	g.Security.Agencies = make(map[string]city.Agency, len(r.cat.Agencies))
	for _, def := range r.cat.Agencies {
		g.Security.Agencies[def.ID] = city.Agency{
			ID:                  def.ID,
			Name:                def.Name,
			Influence:           def.Influence,
			Attitude:            def.Attitude,
			Head:                def.Head,
			Budget:              def.Budget,
			Personnel:           def.Personnel,
			AvailableOperations: append([]string(nil), def.Operations...),
		}
	}
	refreshSecurityMetrics(g)
	return g
}

// reject returns a copy of g carrying err as its error message.
func (r *Rules) reject(g *city.GameState, action string, err error) (*city.GameState, error) {
	next := g.Clone()
	next.ErrorMessage = err.Error()
	r.log.Warn("action rejected", "action", action, "error", err)
	return next, err
}

// begin clones g for an action, refusing once the game has ended.
func (r *Rules) begin(g *city.GameState, action string) (*city.GameState, error) {
	if g == nil {
		panic("engine: nil game state")
	}
	if g.GameOver {
		return r.reject(g, action, ErrGameOver)
	}
	next := g.Clone()
	next.ErrorMessage = ""
	return next, nil
}

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
