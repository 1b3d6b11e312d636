package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paperdesk/paperdesk/internal/httpserver/deps"
	"github.com/paperdesk/paperdesk/internal/logger"
)

type sessionRequest struct {
	Username string `json:"username"`
}

// CreateSession mints a session for a display name. The id returned
// here goes into X-Session-ID on every write call. Usernames are
// letters and digits only, at most 23 characters.
func CreateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		sess, err := d.Sessions.Create(r.Context(), req.Username)
		if err != nil {
			writeError(w, err)
			return
		}

		d.Logger.Info("session created",
			logger.String("username", sess.Username))
		writeJSON(w, http.StatusCreated, sess)
	}
}

// DeleteSession drops a session and its vote guards.
func DeleteSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		if id == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "session required"})
			return
		}
		if err := d.Sessions.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
