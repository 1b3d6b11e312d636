package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paperdesk/paperdesk/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels onto HTTP status codes. Anything
// unrecognized is a 500 with a generic body; the real error goes to the
// logs, not the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "paper not found"})
	case errors.Is(err, domain.ErrAlreadyVoted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already voted"})
	case errors.Is(err, domain.ErrNoUsername):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "session required"})
	case errors.Is(err, domain.ErrInvalidUsername):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid username"})
	case errors.Is(err, domain.ErrEmptyText):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "comment text must not be empty"})
	case errors.Is(err, domain.ErrSourceUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "catalog source unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// sessionID reads the caller's session from the request header.
func sessionID(r *http.Request) string {
	return r.Header.Get("X-Session-ID")
}
