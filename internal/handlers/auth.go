package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gagan0803/cook-proj/internal/middleware"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gagan0803/cook-proj/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	userRepo    repository.UserRepository
}

func NewAuthHandler(authService *services.AuthService, userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{authService: authService, userRepo: userRepo}
}

func (handler *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := handler.authService.Register(r.Context(), request.Username, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if err := handler.authService.SetSession(w, user.ID); err != nil {
		slog.Error("failed to set session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (handler *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := handler.authService.Authenticate(r.Context(), request.Email, request.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := handler.authService.SetSession(w, user.ID); err != nil {
		slog.Error("failed to set session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (handler *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	handler.authService.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	writeJSON(w, http.StatusOK, user)
}

func (handler *AuthHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	preferences, err := handler.userRepo.GetPreferences(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to load preferences", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	writeJSON(w, http.StatusOK, preferences)
}

func (handler *AuthHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var preferences models.Preferences
	if err := decodeJSON(r, &preferences); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := handler.userRepo.UpdatePreferences(r.Context(), user.ID, preferences); err != nil {
		slog.Error("failed to update preferences", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}
	writeJSON(w, http.StatusOK, preferences)
}

func (handler *AuthHandler) OIDCLogin(w http.ResponseWriter, r *http.Request) {
	if !handler.authService.OIDCConfigured() {
		writeError(w, http.StatusNotFound, "SSO not configured")
		return
	}

	state, err := handler.authService.GenerateState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   300,
	})
	http.Redirect(w, r, handler.authService.LoginURL(state), http.StatusFound)
}

func (handler *AuthHandler) OIDCCallback(w http.ResponseWriter, r *http.Request) {
	if !handler.authService.OIDCConfigured() {
		writeError(w, http.StatusNotFound, "SSO not configured")
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, "state mismatch")
		return
	}

	user, err := handler.authService.HandleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		slog.Error("SSO callback failed", "error", err)
		writeError(w, http.StatusUnauthorized, "login failed")
		return
	}

	if err := handler.authService.SetSession(w, user.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
