package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/ionecenter/marketplace/internal/core/port"
)

type AdminHandler struct {
	auth port.Authenticator
}

func RegisterAdmin(mux *http.ServeMux, auth port.Authenticator) {
	h := AdminHandler{auth}
	mux.HandleFunc("GET /v1/admin/users", h.GetUsers)
}

func (h AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetUsers"
	log := slog.With("op", op)

	us := h.auth.Users()
	vs := make([]User, 0, len(us))
	for _, u := range us {
		vs = append(vs, userFromDomain(u))
	}
	writeJSON(w, log, vs)
}

type ActivityHandler struct {
	activity port.ActivityReader
}

// RegisterActivity is wired only when the activity view is running.
func RegisterActivity(mux *http.ServeMux, activity port.ActivityReader) {
	h := ActivityHandler{activity}
	mux.HandleFunc("GET /v1/admin/activity/{user}", h.GetActivity)
}

func (h ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	const op = "ActivityHandler.GetActivity"
	log := slog.With("op", op)

	userID := r.PathValue("user")
	n, err := h.activity.UserActivity(userID)
	if err != nil {
		http.Error(w, "failed to read activity", http.StatusServiceUnavailable)
		log.Error("failed to read activity", "userID", userID, "err", err)
		return
	}
	writeJSON(w, log, UserActivity{UserID: userID, Events: n})
}
