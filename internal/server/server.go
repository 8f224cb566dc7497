// Package server exposes the simulation over a local HTTP API. All reads
// return snapshots; all writes go through driver commands and are
// persisted before the response is sent.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
	"github.com/GamingDebugged/starkiller-sub002/internal/store"
)

// Server is the starkiller relations HTTP API server.
type Server struct {
	driver  *sim.Driver
	db      *store.DB
	ledger  *store.Ledger
	router  chi.Router
	version string
	started time.Time

	// mu serializes all API requests: the simulation is strictly
	// turn-based, so one operation runs to completion at a time.
	mu sync.Mutex

	// startingCredits is the ledger balance a new campaign begins with.
	startingCredits int64
}

// New creates a Server around a driver and its backing database.
func New(driver *sim.Driver, db *store.DB, ledger *store.Ledger, startingCredits int64, version string) *Server {
	s := &Server{
		driver:          driver,
		db:              db,
		ledger:          ledger,
		startingCredits: startingCredits,
		version:         version,
		started:         time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(s.serialize)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleStatus)

		r.Get("/family", s.handleFamily)
		r.Get("/family/{role}", s.handleFamilyMember)
		r.Get("/captains", s.handleCaptains)
		r.Get("/captains/{captainID}", s.handleCaptain)
		r.Get("/crises", s.handleCrises)
		r.Get("/events", s.handleEvents)
		r.Get("/report", s.handleReport)

		r.Post("/day/advance", s.handleAdvanceDay)
		r.Post("/decisions", s.handleDecision)
		r.Post("/crises/{crisisID}/resolve", s.handleResolveCrisis)
		r.Post("/emergencies/{role}/rescue", s.handleRescue)
		r.Post("/messages/ignored", s.handleIgnored)
		r.Post("/campaign/new", s.handleNewCampaign)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

// serialize takes the simulation lock for the whole request. AdvanceDay
// must run to completion before any other read or mutation is allowed.
func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// AdvanceNextDay advances the simulation one day and persists the result.
// Used by the cron auto-advance path, which bypasses HTTP.
func (s *Server) AdvanceNextDay() (sim.DayReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.driver.AdvanceDay(s.driver.Day() + 1)
	if err != nil {
		return sim.DayReport{}, err
	}
	if err := s.db.SaveCampaign(s.driver.ExportState()); err != nil {
		return sim.DayReport{}, err
	}
	return report, nil
}

// persist writes the current simulation state through to the database.
// Called after every successful mutation so a crash never loses a
// committed day.
func (s *Server) persist(w http.ResponseWriter) bool {
	if err := s.db.SaveCampaign(s.driver.ExportState()); err != nil {
		log.Printf("server: persist failed: %v", err)
		http.Error(w, `{"error":"persist failed"}`, http.StatusInternalServerError)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
