package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paperdesk/paperdesk/internal/domain"
	"github.com/paperdesk/paperdesk/internal/httpserver/deps"
	"github.com/paperdesk/paperdesk/internal/logger"
)

type listResponse struct {
	Papers []*domain.Paper `json:"papers"`
	Count  int             `json:"count"`
	Range  string          `json:"range"`
	Sort   string          `json:"sort"`
}

// ListPapers serves the filtered, sorted reading list.
//
//	GET /papers?q=<title substring>&range=<today|3days|week|month|year>&sort=<date|title|upvotes|downvotes|comments>
//
// Missing parameters fall back to the configured defaults, never to an
// error.
func ListPapers(d deps.Deps) http.HandlerFunc {
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		rangeParam := q.Get("range")
		if rangeParam == "" {
			rangeParam = d.DefaultDateRange
		}
		dateRange := domain.ParseDateRange(rangeParam)
		sortBy := domain.ParseSortOption(q.Get("sort"))

		papers := d.Service.Query(q.Get("q"), dateRange.Since(now()), sortBy)

		writeJSON(w, http.StatusOK, listResponse{
			Papers: papers,
			Count:  len(papers),
			Range:  string(dateRange),
			Sort:   string(sortBy),
		})
	}
}

// GetPaper serves one paper with its full comment list.
func GetPaper(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := d.Service.GetPaper(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// Upvote adds one upvote for the caller's session.
func Upvote(d deps.Deps) http.HandlerFunc {
	return vote(d, domain.VoteUp)
}

// Downvote adds one downvote for the caller's session.
func Downvote(d deps.Deps) http.HandlerFunc {
	return vote(d, domain.VoteDown)
}

func vote(d deps.Deps, kind domain.VoteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "id")

		var err error
		if kind == domain.VoteUp {
			err = d.Service.Upvote(r.Context(), sessionID(r), paperID)
		} else {
			err = d.Service.Downvote(r.Context(), sessionID(r), paperID)
		}
		if err != nil {
			writeError(w, err)
			return
		}

		p, err := d.Service.GetPaper(r.Context(), paperID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

type commentRequest struct {
	Text string `json:"text"`
}

// PostComment appends a comment to a paper on behalf of the caller's
// session and returns the stored comment.
func PostComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		c, err := d.Service.PostComment(r.Context(), sessionID(r), chi.URLParam(r, "id"), req.Text)
		if err != nil {
			writeError(w, err)
			return
		}

		d.Logger.Info("comment posted",
			logger.String("paper", c.PaperID),
			logger.String("user", c.Username))
		writeJSON(w, http.StatusCreated, c)
	}
}
