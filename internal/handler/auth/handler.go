package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "github.com/lukemarsh/sentichat/internal/service/auth"
	"github.com/lukemarsh/sentichat/pkg/utils"
)

// Handler exposes the login endpoint.
type Handler struct {
	authSvc *authservice.Service
}

// New creates the auth handler.
func New(authSvc *authservice.Service) *Handler {
	return &Handler{authSvc: authSvc}
}

// RegisterRoutes registers auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

// handleLogin checks a credential pair. Validation failures are reported in
// the body with a 200 status, matching the client contract.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.authSvc.Login(payload.Email, payload.Password))
}
