// Package api serves the game over HTTP.
// GET endpoints read the current game; POST endpoints are player actions and
// go through the per-IP rate limiter. Reset requires the admin bearer token.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/talgya/mayor-sim/internal/advisor"
	"github.com/talgya/mayor-sim/internal/catalog"
	"github.com/talgya/mayor-sim/internal/engine"
	"github.com/talgya/mayor-sim/internal/persistence"
)

const (
	maxStreamConns      = 8
	defaultHistoryLimit = 24
	maxHistoryLimit     = 1000
)

// Options configures a Server.
type Options struct {
	AdminKey           string // Bearer token for reset. Empty = reset disabled.
	RateLimitPerMinute int    // Per-IP action limit. Zero disables limiting.
	CORSOrigins        []string
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	TrustProxy bool
}

// Server exposes one Simulation over HTTP.
type Server struct {
	sim      *engine.Simulation
	log      *slog.Logger
	adminKey string
	limiter  *RateLimiter
	origins  map[string]bool
	proxied  bool
	mux      *chi.Mux

	streams atomic.Int32
}

// New builds the router.
func New(sim *engine.Simulation, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		sim:      sim,
		log:      logger,
		adminKey: opts.AdminKey,
		proxied:  opts.TrustProxy,
		origins: map[string]bool{
			"http://localhost:5173": true,
			"http://localhost:3000": true,
		},
		mux: chi.NewRouter(),
	}
	for _, o := range opts.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			s.origins[o] = true
		}
	}
	if opts.RateLimitPerMinute > 0 {
		s.limiter = NewRateLimiter(opts.RateLimitPerMinute)
	}
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	if s.proxied {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/computed", s.handleComputed)
		r.Get("/stats", s.handleStats)
		r.Get("/stats/history", s.handleStatsHistory)
		r.Get("/report", s.handleReport)
		r.Get("/catalog", s.handleCatalogKinds)
		r.Get("/catalog/{kind}", s.handleCatalog)
		r.Get("/stream", s.handleStream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			if s.limiter != nil {
				r.Use(s.limiter.Middleware)
			}

			r.Post("/projects/{id}/start", s.handleStartProject)
			r.Post("/projects/{id}/cancel", s.handleCancelProject)
			r.Post("/events/{id}/decide", s.handleDecideEvent)
			r.Post("/pause", s.handlePause)
			r.Post("/speed", s.handleSpeed)
			r.Post("/save", s.handleSave)
			r.Post("/error/clear", s.handleClearError)
			r.Post("/loans", s.handleTakeLoan)
			r.Post("/deposits", s.handleOpenDeposit)
			r.Post("/investments", s.handleMakeInvestment)
			r.Post("/industry/{id}/start", s.handleStartIndustry)
			r.Post("/construction/{id}/start", s.handleStartConstruction)
			r.Post("/tax-policies/{id}/adopt", s.handleAdoptTaxPolicy)
			r.Post("/agencies/{id}/bribe", s.handleBribeAgency)
			r.Post("/issues/{id}/respond", s.handleRespondToIssue)
			r.Post("/assets/{id}/purchase", s.handlePurchaseAsset)

			r.With(s.adminOnly).Post("/reset", s.handleReset)
		})
	})
}

// cors adds CORS headers for allowed frontend origins.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if s.origins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminOnly requires the admin bearer token.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminKey == "" {
			writeError(w, http.StatusForbidden, "admin endpoints disabled (no MAYORSIM_ADMIN_KEY set)")
			return
		}
		if bearerToken(r.Header.Get("Authorization")) != s.adminKey {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.State())
}

func (s *Server) handleComputed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, advisor.Compute(s.sim.State()))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, engine.Stats(s.sim.State()))
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	rep := s.sim.LastReport()
	if rep == nil {
		writeError(w, http.StatusNotFound, "no month has closed yet")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleStatsHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= maxHistoryLimit {
			limit = v
		}
	}

	rows, err := s.sim.History(r.Context(), limit)
	if err != nil {
		s.log.Error("stats history query failed", "error", err)
		// Empty rather than failing; the table may not exist yet.
		writeJSON(w, http.StatusOK, []persistence.HistoryRow{})
		return
	}
	if rows == nil {
		rows = []persistence.HistoryRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCatalogKinds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"kinds": catalog.Kinds})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	table, ok := s.sim.Rules().Catalog().Table(kind)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown catalog "+kind)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// notFound are the rejections that mean the addressed id does not exist.
var notFound = []error{
	engine.ErrUnknownProject,
	engine.ErrUnknownOffer,
	engine.ErrUnknownOpportunity,
	engine.ErrUnknownPolicy,
	engine.ErrUnknownAgency,
	engine.ErrUnknownIssue,
	engine.ErrUnknownAsset,
	engine.ErrUnknownEvent,
	engine.ErrUnknownOption,
}

func statusFor(err error) int {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	return http.StatusUnprocessableEntity
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
