package handlers

import (
	"net/http"

	"euchre-server/internal/domain"
)

// BotIdentityHandler serves the static bot name/avatar roster, adapted
// from the teacher's champion catalog handler (a small reference table
// served read-only over HTTP, no repository needed since the roster
// never changes at runtime).
type BotIdentityHandler struct{}

func NewBotIdentityHandler() *BotIdentityHandler { return &BotIdentityHandler{} }

func (h *BotIdentityHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Identities []domain.BotIdentity `json:"identities"`
	}{Identities: domain.DefaultBotIdentities()})
}
