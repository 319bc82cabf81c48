package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lukemarsh/sentichat/internal/hub"
	"github.com/lukemarsh/sentichat/pkg/utils"
)

// Handler reports liveness and the connected client count.
type Handler struct {
	hub *hub.Hub
}

// New creates the health handler.
func New(h *hub.Hub) *Handler {
	return &Handler{hub: h}
}

// RegisterRoutes registers the health endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"clients": h.hub.ClientCount(),
	})
}
