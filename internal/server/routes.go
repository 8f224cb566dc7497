package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	balance, err := s.ledger.Balance()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	living := 0
	for _, m := range s.driver.FamilySnapshots() {
		if m.Alive {
			living++
		}
	}
	writeJSON(w, map[string]any{
		"day":            s.driver.Day(),
		"phase":          sim.PhaseForDay(s.driver.Day()),
		"living_members": living,
		"known_captains": len(s.driver.CaptainSnapshots()),
		"open_crises":    len(s.driver.OpenCrises()),
		"credits":        balance,
	})
}

func (s *Server) handleFamily(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.driver.FamilySnapshots())
}

func (s *Server) handleFamilyMember(w http.ResponseWriter, r *http.Request) {
	role := sim.Role(chi.URLParam(r, "role"))
	snap, err := s.driver.FamilySnapshot(role)
	if err != nil {
		http.Error(w, `{"error":"unknown role"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleCaptains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.driver.CaptainSnapshots())
}

func (s *Server) handleCaptain(w http.ResponseWriter, r *http.Request) {
	snap, err := s.driver.CaptainSnapshot(chi.URLParam(r, "captainID"))
	if err != nil {
		http.Error(w, `{"error":"unknown captain"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleCrises(w http.ResponseWriter, r *http.Request) {
	type openCrisis struct {
		sim.Crisis
		Responses []sim.CrisisResponse `json:"responses"`
	}
	var out []openCrisis
	for _, c := range s.driver.OpenCrises() {
		out = append(out, openCrisis{Crisis: c, Responses: sim.ResponsesFor(c.Type)})
	}
	writeJSON(w, out)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.driver.Journal())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.driver.LastReport()
	if !ok {
		http.Error(w, `{"error":"no day has run yet"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day int `json:"day"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Day == 0 {
		req.Day = s.driver.Day() + 1
	}

	report, err := s.driver.AdvanceDay(req.Day)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
		return
	}
	if !s.persist(w) {
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntityID string `json:"entity_id"`
		Kind     string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.EntityID == "" || req.Kind == "" {
		http.Error(w, `{"error":"entity_id and kind required"}`, http.StatusBadRequest)
		return
	}

	if err := s.driver.RecordDecision(req.EntityID, sim.DecisionKind(req.Kind)); err != nil {
		writeSimError(w, err)
		return
	}
	if !s.persist(w) {
		return
	}
	writeJSON(w, map[string]any{"recorded": true})
}

func (s *Server) handleResolveCrisis(w http.ResponseWriter, r *http.Request) {
	crisisID := chi.URLParam(r, "crisisID")

	var req struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	if err := s.driver.ResolveCrisis(crisisID, sim.CrisisResponse(req.Response)); err != nil {
		writeSimError(w, err)
		return
	}
	if !s.persist(w) {
		return
	}
	writeJSON(w, map[string]any{"resolved": crisisID})
}

func (s *Server) handleRescue(w http.ResponseWriter, r *http.Request) {
	role := sim.Role(chi.URLParam(r, "role"))
	if err := s.driver.RescueMember(role); err != nil {
		writeSimError(w, err)
		return
	}
	if !s.persist(w) {
		return
	}
	writeJSON(w, map[string]any{"rescued": role})
}

func (s *Server) handleIgnored(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MessageID string `json:"message_id"`
		Role      string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.MessageID == "" {
		http.Error(w, `{"error":"message_id required"}`, http.StatusBadRequest)
		return
	}

	if err := s.driver.RecordIgnored(req.MessageID, sim.Role(req.Role)); err != nil {
		writeSimError(w, err)
		return
	}
	if !s.persist(w) {
		return
	}
	writeJSON(w, map[string]any{"tracked": req.MessageID})
}

// handleNewCampaign resets everything, shown-id set included, and swaps in
// a fresh driver. This is the only reset path in the system.
func (s *Server) handleNewCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed int64 `json:"seed"`
	}
	// Body is optional; ignore decode errors from an empty body.
	json.NewDecoder(r.Body).Decode(&req)

	fresh, err := NewCampaignDriver(s.db, s.ledger, req.Seed, s.startingCredits, s.driver)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	s.driver = fresh
	writeJSON(w, map[string]any{"day": 0, "seed": fresh.Seed()})
}

// writeSimError maps driver errors to HTTP statuses: invalid references
// are 404s, bad inputs 400s, credit shortfalls 402s.
func writeSimError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sim.ErrUnknownEntity), errors.Is(err, sim.ErrUnknownCrisis):
		status = http.StatusNotFound
	case errors.Is(err, sim.ErrUnknownDecision), errors.Is(err, sim.ErrUnknownResponse):
		status = http.StatusBadRequest
	case errors.Is(err, sim.ErrInsufficientCredits):
		status = http.StatusPaymentRequired
	case errors.Is(err, sim.ErrDayNotAfterCurrent):
		status = http.StatusConflict
	}
	http.Error(w, `{"error":"`+err.Error()+`"}`, status)
}
