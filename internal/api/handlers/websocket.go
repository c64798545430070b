package handlers

import (
	"log"
	"net/http"

	"euchre-server/internal/domain"
	"euchre-server/internal/ws"
	gorilla "github.com/gorilla/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // development: no fixed client origin to check against.
	},
}

// WebSocketHandler implements GET /websocket: it resolves every query
// param spec §4.5 defines, lets the hub perform every pre-upgrade check,
// and only then upgrades the connection, grounded on the teacher's
// handlers/websocket.go Handle split between auth-before-upgrade and
// pump startup after.
type WebSocketHandler struct {
	hub *ws.Hub
}

func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ws.ConnectParams{
		RoomName:     q.Get("room"),
		PlayerName:   q.Get("name"),
		Password:     q.Get("password"),
		Create:       q.Get("create") == "1",
		CreatorToken: q.Get("creatorToken"),
	}
	if diff := domain.BotDifficulty(q.Get("botDifficulty")); diff.Valid() {
		params.BotDifficulty = diff
	}

	room, playerID, err := h.hub.Connect(params)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := ws.NewClient(conn, room)
	room.Attach(playerID, client)

	go client.WritePump()
	go client.ReadPump()
}
