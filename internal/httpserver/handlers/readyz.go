package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paperdesk/paperdesk/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports readiness: the index must have completed at least one
// refresh before the service takes traffic.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := !d.MemoryIndex.GetLastRefresh().IsZero()

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: ready})
	}
}
