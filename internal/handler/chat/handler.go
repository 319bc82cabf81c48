package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/lukemarsh/sentichat/internal/model/chat"
	chatservice "github.com/lukemarsh/sentichat/internal/service/chat"
	"github.com/lukemarsh/sentichat/pkg/utils"
)

// Handler exposes read-only access to the chat log.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes registers chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chatHistory", h.handleHistory)
}

// handleHistory returns the full log in append order. No pagination: the
// log is demo-sized by definition.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]chatmodel.Message{
		"history": h.chatSvc.History(r.Context()),
	})
}
