package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zatekoja/satisfaction-feedback/internal/api/middleware"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// SessionService defines the session operations used by the handler.
type SessionService interface {
	Login(ctx context.Context, idToken string) (*entities.AdminSession, error)
	Logout(ctx context.Context, id string) error
	LoginConfig() entities.LoginConfig
	TTL() time.Duration
}

// CookieSettings controls the admin session cookie.
type CookieSettings struct {
	Name   string
	Secure bool
}

// AdminAuthHandler handles admin login and logout.
type AdminAuthHandler struct {
	service SessionService
	cookie  CookieSettings
}

// NewAdminAuthHandler creates a new admin auth handler.
func NewAdminAuthHandler(service SessionService, cookie CookieSettings) *AdminAuthHandler {
	return &AdminAuthHandler{service: service, cookie: cookie}
}

type loginRequest struct {
	IDToken string `json:"idToken"`
}

type meResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Email    string `json:"email,omitempty"`
	UID      string `json:"uid,omitempty"`
}

// LoginConfig handles GET /admin/login/config
func (h *AdminAuthHandler) LoginConfig(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.LoginConfig())
}

// Login handles POST /admin/login
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	session, err := h.service.Login(r.Context(), payload.IDToken)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(h.service.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"email":   session.Email,
	})
}

// Logout handles POST /admin/logout
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookie.Name); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			respondWithAppError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me handles GET /admin/me
func (h *AdminAuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.AdminSessionFromContext(r.Context())
	if session == nil {
		respondWithJSON(w, http.StatusOK, meResponse{LoggedIn: false})
		return
	}
	respondWithJSON(w, http.StatusOK, meResponse{LoggedIn: true, Email: session.Email, UID: session.UID})
}
