package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"euchre-server/internal/domain"
	"euchre-server/internal/ws"
	"github.com/go-chi/chi/v5"
)

// RoomsHandler serves the two plain-HTTP room endpoints; the websocket
// upgrade itself lives in websocket.go. Grounded on the teacher's
// handlers/room.go split between a JSON CRUD handler and a dedicated
// websocket handler, trimmed to this module's two-endpoint surface.
type RoomsHandler struct {
	hub *ws.Hub
}

func NewRoomsHandler(hub *ws.Hub) *RoomsHandler {
	return &RoomsHandler{hub: hub}
}

// List implements GET /rooms.
func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries := h.hub.ListRooms()
	writeJSON(w, http.StatusOK, struct {
		Rooms []ws.RoomSummary `json:"rooms"`
	}{Rooms: summaries})
}

// Delete implements DELETE /rooms/<name>?creatorToken=<tok>. A missing
// creatorToken is rejected here with the same creator-mismatch error the
// room actor gives, without forwarding the request to the hub.
func (h *RoomsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	token := r.URL.Query().Get("creatorToken")
	if token == "" {
		writeError(w, domain.ErrCreatorMismatch)
		return
	}

	if err := h.hub.DeleteRoom(name, token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps a domain.Error's Kind to the HTTP status spec §7
// assigns it, defaulting unrecognized errors to 500. ErrRoomNotFound is
// singled out to 404 even though it shares domain's Conflict kind with
// "room already exists," since spec §6 promises DELETE only ever
// answers 403 or 404.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		status = http.StatusNotFound
	default:
		switch domain.KindOf(err) {
		case domain.KindValidation:
			status = http.StatusBadRequest
		case domain.KindAuthorization:
			status = http.StatusForbidden
		case domain.KindConflict:
			status = http.StatusConflict
		case domain.KindPhase:
			status = http.StatusConflict
		case domain.KindTransport:
			status = http.StatusBadRequest
		}
	}
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}
