package api

import (
	"net/http"

	"euchre-server/internal/api/handlers"
	"euchre-server/internal/api/middleware"
	"euchre-server/internal/ws"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the full HTTP surface, grounded on the teacher's
// internal/api/router.go: global middleware first, then one handler per
// concern, mounted directly at root rather than under /api/v1 since
// spec §6 names the three routes unprefixed.
func NewRouter(hub *ws.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	roomsHandler := handlers.NewRoomsHandler(hub)
	wsHandler := handlers.NewWebSocketHandler(hub)
	botIdentityHandler := handlers.NewBotIdentityHandler()
	simulateHandler := handlers.NewSimulateHandler(hub)

	r.Get("/rooms", roomsHandler.List)
	r.Delete("/rooms/{name}", roomsHandler.Delete)
	r.Post("/rooms/{name}/simulate", simulateHandler.Simulate)
	r.Get("/bot-identities", botIdentityHandler.List)
	r.Get("/websocket", wsHandler.Handle)

	return r
}
