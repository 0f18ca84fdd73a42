// Package api is the view/intent boundary: a read-only snapshot surface
// plus the four intent endpoints, served over HTTP for the browser front
// end. The presentation layer never mutates state directly — every write
// goes through an engine intent, and every read is a snapshot clone.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/talgya/madangkara/internal/engine"
	"github.com/talgya/madangkara/internal/game"
)

// Server serves the game state and intents over HTTP.
type Server struct {
	Eng         *engine.Engine
	Hub         *Hub
	Port        int
	CORSOrigins []string
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	intents := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Read-only snapshot surface.
	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("GET /api/v1/bonuses", s.handleBonuses)
	mux.HandleFunc("GET /api/v1/event", s.handleEvent)
	mux.HandleFunc("GET /api/v1/monsters", s.handleMonsters)

	// Intents.
	mux.HandleFunc("POST /api/v1/upgrade", intents.Limit(s.handleUpgrade))
	mux.HandleFunc("POST /api/v1/train", intents.Limit(s.handleTrain))
	mux.HandleFunc("POST /api/v1/research", intents.Limit(s.handleResearch))
	mux.HandleFunc("POST /api/v1/attack", intents.Limit(s.handleAttack))
	mux.HandleFunc("POST /api/v1/event/choose", intents.Limit(s.handleEventChoose))
	mux.HandleFunc("POST /api/v1/event/dismiss", intents.Limit(s.handleEventDismiss))

	// Live snapshot push.
	mux.HandleFunc("/ws", s.Hub.ServeWS)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		handler := s.corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware allows the configured frontend origins. Localhost dev
// servers are always allowed.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range s.CORSOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Snapshot())
}

func (s *Server) handleBonuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Bonuses())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	ev := s.Eng.PendingEvent()
	if ev == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, ev)
}

func (s *Server) handleMonsters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Catalog().Monsters)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BuildingID int `json:"building_id"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.Eng.StartUpgrade(req.BuildingID); err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BuildingID int            `json:"building_id"`
		Troop      game.TroopType `json:"troop"`
		Quantity   int            `json:"quantity"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.Eng.StartTraining(req.BuildingID, req.Troop, req.Quantity); err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TechID string `json:"tech_id"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.Eng.StartResearch(req.TechID); err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Monster string `json:"monster"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	report, err := s.Eng.Attack(req.Monster)
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleEventChoose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.Eng.ChooseEvent(req.Choice); err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleEventDismiss(w http.ResponseWriter, r *http.Request) {
	s.Eng.DismissEvent()
	writeJSON(w, map[string]any{"ok": true})
}

// writeRejection maps engine errors onto status codes: unknown subjects
// are 404, everything else in the validation taxonomy is 422. Rejections
// are expected gameplay, so they are not logged as errors.
func writeRejection(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, game.ErrUnknownBuilding),
		errors.Is(err, game.ErrUnknownTech),
		errors.Is(err, game.ErrUnknownTroop),
		errors.Is(err, game.ErrUnknownMonster):
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}
