package handlers

import (
	"net/http"

	"euchre-server/internal/domain"
	"euchre-server/internal/ws"
	"github.com/go-chi/chi/v5"
)

// SimulateHandler implements the development-only POST
// /rooms/<name>/simulate endpoint (§11), adapted from the teacher's
// handlers/simulation.go SimulateMatch: fills every open seat with bots
// and lets the real scheduler carry the room to game-over, giving
// Scenario D (§8) an HTTP entry point without four fake websocket
// clients.
type SimulateHandler struct {
	hub *ws.Hub
}

func NewSimulateHandler(hub *ws.Hub) *SimulateHandler {
	return &SimulateHandler{hub: hub}
}

func (h *SimulateHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	difficulty := domain.BotDifficulty(r.URL.Query().Get("botDifficulty"))

	snapshot, err := h.hub.Simulate(name, difficulty)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
