// Package server exposes the session manager over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/strainfour/contagion/internal/game/action"
	"github.com/strainfour/contagion/internal/game/engine"
	"github.com/strainfour/contagion/internal/session"
	"github.com/strainfour/contagion/internal/storage"
)

type Server struct {
	manager *session.Manager
}

func New(manager *session.Manager) *Server {
	return &Server{manager: manager}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", s.createGame)
	mux.HandleFunc("GET /games", s.listGames)
	mux.HandleFunc("GET /games/{id}", s.getGame)
	mux.HandleFunc("POST /games/{id}/act", s.act)
	mux.HandleFunc("GET /games/{id}/events", s.listEvents)
	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

type createGameRequest struct {
	Players   []string `json:"players"`
	Epidemics int      `json:"epidemics"`
}

type createGameResponse struct {
	ID        string          `json:"id"`
	Situation json.RawMessage `json:"situation"`
}

type actRequest struct {
	Player string          `json:"player"`
	Action json.RawMessage `json:"action"`
}

type actResponse struct {
	Accepted  bool            `json:"accepted"`
	Situation json.RawMessage `json:"situation,omitempty"`
}

type eventEnvelope struct {
	Seq     int64           `json:"seq"`
	Payload json.RawMessage `json:"payload"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	log.Printf("storage: %v", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	settings := engine.Settings{NumberOfEpidemics: req.Epidemics}
	id, situation, err := s.manager.CreateGame(r.Context(), req.Players, settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := json.Marshal(situation)
	if err != nil {
		log.Printf("marshal situation: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, createGameResponse{ID: id, Situation: raw})
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.manager.Games(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if games == nil {
		games = []storage.GameRecord{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	situation, err := s.manager.Situation(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, situation)
}

func (s *Server) act(w http.ResponseWriter, r *http.Request) {
	var req actRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Player == "" {
		writeError(w, http.StatusBadRequest, "player is required")
		return
	}
	a, err := action.Decode(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, situation, err := s.manager.Act(r.Context(), r.PathValue("id"), req.Player, a)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, actResponse{Accepted: false})
		return
	}

	raw, err := json.Marshal(situation)
	if err != nil {
		log.Printf("marshal situation: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, actResponse{Accepted: true, Situation: raw})
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	var afterSeq int64
	if q := r.URL.Query().Get("after_seq"); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "after_seq must be a non-negative integer")
			return
		}
		afterSeq = n
	}

	records, err := s.manager.Events(r.Context(), r.PathValue("id"), afterSeq)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	envelopes := make([]eventEnvelope, len(records))
	for i, rec := range records {
		envelopes[i] = eventEnvelope{Seq: rec.Seq, Payload: json.RawMessage(rec.Payload)}
	}
	writeJSON(w, http.StatusOK, envelopes)
}
