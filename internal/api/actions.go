// Player action handlers. Every action runs through Simulation.Do, so a
// rejection leaves its message on the game state as well as in the response.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/engine"
)

type action = func(r *engine.Rules, g *city.GameState) (*city.GameState, error)

// apply runs a and writes the resulting state, or the rejection.
func (s *Server) apply(w http.ResponseWriter, name string, a action) {
	g, err := s.sim.Do(a)
	if err != nil {
		s.log.Debug("action rejected", "action", name, "error", err)
		writeError(w, statusFor(err), g.ErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleStartProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, "start_project", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.StartProject(g, id)
	})
}

func (s *Server) handleCancelProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, "cancel_project", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.CancelProject(g, id)
	})
}

func (s *Server) handleDecideEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		OptionID string `json:"optionId"`
	}
	if err := decodeJSON(r, &req); err != nil || req.OptionID == "" {
		writeError(w, http.StatusBadRequest, "body must be {\"optionId\": \"...\"}")
		return
	}
	s.apply(w, "decide_event", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.DecideEvent(g, id, req.OptionID)
	})
}

func (s *Server) handlePause(w http.ResponseWriter, _ *http.Request) {
	s.apply(w, "toggle_pause", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.TogglePause(g)
	})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	s.apply(w, "set_speed", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.SetGameSpeed(g, req.Speed)
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if !s.sim.Save(r.Context()) {
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	cleared := s.sim.Reset(r.Context())
	s.log.Info("game reset over HTTP", "cleared", cleared)
	writeJSON(w, http.StatusOK, map[string]any{"reset": true, "saveCleared": cleared})
}

func (s *Server) handleClearError(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.ClearError())
}

func (s *Server) handleTakeLoan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OfferID string `json:"offerId"`
		Amount  int64  `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil || req.OfferID == "" {
		writeError(w, http.StatusBadRequest, "body must be {\"offerId\", \"amount\"}")
		return
	}
	s.apply(w, "take_loan", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.TakeLoan(g, req.OfferID, req.Amount)
	})
}

func (s *Server) handleOpenDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OfferID string               `json:"offerId"`
		Account city.BankAccountType `json:"account"`
		Amount  int64                `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil || req.OfferID == "" {
		writeError(w, http.StatusBadRequest, "body must be {\"offerId\", \"account\", \"amount\"}")
		return
	}
	s.apply(w, "open_deposit", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.OpenDeposit(g, req.OfferID, req.Account, req.Amount)
	})
}

func (s *Server) handleMakeInvestment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OpportunityID string `json:"opportunityId"`
		Amount        int64  `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil || req.OpportunityID == "" {
		writeError(w, http.StatusBadRequest, "body must be {\"opportunityId\", \"amount\"}")
		return
	}
	s.apply(w, "make_investment", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.MakeInvestment(g, req.OpportunityID, req.Amount)
	})
}

func (s *Server) handleStartIndustry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, "start_industry", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.StartIndustrialProject(g, id)
	})
}

func (s *Server) handleStartConstruction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, "start_construction", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.StartConstruction(g, id)
	})
}

func (s *Server) handleAdoptTaxPolicy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, "adopt_tax_policy", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.AdoptTaxPolicy(g, id)
	})
}

func (s *Server) handleBribeAgency(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "body must be {\"amount\"}")
		return
	}
	s.apply(w, "bribe_agency", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.BribeAgency(g, id, req.Amount)
	})
}

func (s *Server) handleRespondToIssue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, "respond_to_issue", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.RespondToIssue(g, id)
	})
}

func (s *Server) handlePurchaseAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Account city.BankAccountType `json:"account"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "body must be {\"account\"}")
		return
	}
	if req.Account == "" {
		req.Account = city.AccountPersonalChecking
	}
	s.apply(w, "purchase_asset", func(r *engine.Rules, g *city.GameState) (*city.GameState, error) {
		return r.PurchaseAsset(g, id, req.Account)
	})
}
