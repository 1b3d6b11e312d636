package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/paperdesk/paperdesk/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	PapersIndexed *int   `json:"papers_indexed,omitempty"`
	LastRefresh   string `json:"last_refresh,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the health of each moving part: the paper index, and
// the Redis session backend when one is configured.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		papersCount := d.MemoryIndex.Count()
		lastRefresh := d.MemoryIndex.GetLastRefresh()
		lastRefreshStr := "never"
		if !lastRefresh.IsZero() {
			lastRefreshStr = lastRefresh.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:            papersCount > 0,
				PapersIndexed: &papersCount,
				LastRefresh:   lastRefreshStr,
			},
			"database": checkDatabase(d),
			"sessions": checkSessions(d),
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if catalog, exists := components["catalog"]; exists && !catalog.OK {
		return "critical" // nothing to serve
	}
	if db, exists := components["database"]; exists && !db.OK {
		return "degraded" // reads served from the index, writes failing
	}
	if sessions, exists := components["sessions"]; exists && !sessions.OK {
		return "degraded" // reads fine, writes failing
	}
	return "ok"
}

func checkDatabase(d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: false, Error: "store not initialized"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true}
}

func checkSessions(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: true, Mode: "memory"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Mode: "redis", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "redis"}
}
