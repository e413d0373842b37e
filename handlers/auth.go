package handlers

import (
	"net/http"

	"netify/internal/auth"
	"netify/models"
)

type profileService interface {
	Profile(identity auth.Identity) (*models.Profile, error)
}

// AuthHandler serves the profile endpoint plus the legacy signup/login routes,
// which answer 410 because account management lives in the identity provider.
type AuthHandler struct {
	Service profileService
}

func NewAuthHandler(service profileService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Me returns the caller's profile, creating the user record on first sight.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	profile, err := h.Service.Profile(identity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

// Signup rejects direct account creation.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusGone, "Signup is handled by the identity provider")
}

// Login rejects direct credential login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusGone, "Login is handled by the identity provider")
}
