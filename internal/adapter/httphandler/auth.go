package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

type AuthHandler struct {
	auth port.Authenticator
}

func RegisterAuth(mux *http.ServeMux, auth port.Authenticator) {
	h := AuthHandler{auth}
	mux.HandleFunc("POST /v1/auth/login", h.PostLogin)
	mux.HandleFunc("POST /v1/auth/signup", h.PostSignup)
	mux.HandleFunc("POST /v1/auth/logout", h.PostLogout)
	mux.HandleFunc("GET /v1/auth/session", h.GetSession)
	mux.HandleFunc("PATCH /v1/auth/profile", h.PatchProfile)
}

// The stores expose only success/failure for domain-rule violations, so
// login mismatch maps to a bare 401 and duplicate signup to a bare 409.
func (h AuthHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostLogin"
	log := slog.With("op", op)

	var v LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if !h.auth.Login(r.Context(), v.Email, v.Password) {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	u, _ := h.auth.Session()
	writeJSON(w, log, userFromDomain(u))
}

func (h AuthHandler) PostSignup(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostSignup"
	log := slog.With("op", op)

	var v SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	role, ok := domain.ParseRole(v.Role)
	if !ok {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}

	if !h.auth.Signup(r.Context(), v.Name, v.Email, v.Password, role) {
		http.Error(w, "email already exists", http.StatusConflict)
		return
	}

	u, _ := h.auth.Session()
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, log, userFromDomain(u))
}

func (h AuthHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.GetSession"
	log := slog.With("op", op)

	u, ok := h.auth.Session()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, log, userFromDomain(u))
}

func (h AuthHandler) PatchProfile(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PatchProfile"
	log := slog.With("op", op)

	var v ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	upd := domain.ProfileUpdate{Name: v.Name, Email: v.Email}
	if !h.auth.UpdateProfile(r.Context(), upd) {
		http.Error(w, "no active session", http.StatusUnauthorized)
		return
	}

	u, _ := h.auth.Session()
	writeJSON(w, log, userFromDomain(u))
}
