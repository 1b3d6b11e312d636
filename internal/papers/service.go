// Package papers orchestrates the read and write paths of the reading
// list: catalog refresh with reconciliation, votes, comments, and the
// filtered/sorted list queries. All mutations go through the SQLite
// store first; the memory index and observers are updated only after a
// successful commit.
package papers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paperdesk/paperdesk/internal/domain"
	"github.com/paperdesk/paperdesk/internal/index"
	"github.com/paperdesk/paperdesk/internal/logger"
	"github.com/paperdesk/paperdesk/internal/metrics"
	"github.com/paperdesk/paperdesk/internal/session"
	"github.com/paperdesk/paperdesk/internal/sources/arxiv"
	"github.com/paperdesk/paperdesk/internal/store/sqlite"
)

// Observer is invoked after every committed mutation, outside any lock.
// Clients that mirror the list (a UI, a cache) hook in here.
type Observer func()

type Service struct {
	store    *sqlite.Store
	index    *index.MemoryIndex
	sessions session.Store
	source   arxiv.Source
	logger   logger.Logger

	obsMu     sync.Mutex
	observers []Observer
}

func New(
	store *sqlite.Store,
	idx *index.MemoryIndex,
	sessions session.Store,
	source arxiv.Source,
	log logger.Logger,
) *Service {
	return &Service{
		store:    store,
		index:    idx,
		sessions: sessions,
		source:   source,
		logger:   log,
	}
}

// Subscribe registers an observer for post-commit notifications.
func (s *Service) Subscribe(fn Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Service) notify() {
	s.obsMu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.obsMu.Unlock()

	for _, fn := range observers {
		fn()
	}
	metrics.PapersIndexed.Set(float64(s.index.Count()))
}

// SyncIndex rebuilds the memory index from the store. Called at startup
// and after each reconcile commit.
func (s *Service) SyncIndex(ctx context.Context) error {
	all, err := s.store.ListPapers(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync index from store: %w", err)
	}
	s.index.UpdatePapers(all)
	metrics.PapersIndexed.Set(float64(len(all)))
	return nil
}

// Query derives the visible paper list from the index snapshot. Pure
// read; never touches the store.
func (s *Service) Query(searchText string, minDate time.Time, sortBy domain.SortOption) []*domain.Paper {
	return domain.QueryPapers(s.index.GetAllPapers(), searchText, minDate, sortBy)
}

// GetPaper returns one paper with comments, straight from the store.
func (s *Service) GetPaper(ctx context.Context, id string) (*domain.Paper, error) {
	return s.store.GetPaper(ctx, id)
}

// Refresh fetches candidates published at or after since and reconciles
// them into the store: known ids get their descriptive fields updated,
// votes and comments untouched; unknown ids are inserted fresh. The
// whole batch commits in one transaction, then the index is rebuilt and
// observers fire. Applying the same fetch twice is a no-op the second
// time.
func (s *Service) Refresh(ctx context.Context, since time.Time) error {
	fetched, err := s.source.FetchSince(ctx, since)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("refresh failed: %w", err)
	}

	s.logger.Info("fetched papers from source",
		logger.Int("count", len(fetched)),
		logger.Time("since", since))

	inserted, updated, err := s.store.ReconcileBatch(ctx, dedupeLastWins(fetched))
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("reconcile failed: %w", err)
	}

	if err := s.SyncIndex(ctx); err != nil {
		return err
	}
	s.notify()

	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	s.logger.Info("catalog reconciled",
		logger.Int("inserted", inserted),
		logger.Int("updated", updated))
	return nil
}

// Upvote records one upvote for the session on the paper. A session may
// upvote each paper once; the guard resets with the session.
func (s *Service) Upvote(ctx context.Context, sessionID, paperID string) error {
	return s.vote(ctx, sessionID, paperID, domain.VoteUp)
}

// Downvote is symmetric to Upvote on the downvote counter.
func (s *Service) Downvote(ctx context.Context, sessionID, paperID string) error {
	return s.vote(ctx, sessionID, paperID, domain.VoteDown)
}

func (s *Service) vote(ctx context.Context, sessionID, paperID string, kind domain.VoteKind) error {
	if _, err := s.resolveSession(ctx, sessionID); err != nil {
		return err
	}

	voted, err := s.sessions.HasVoted(ctx, sessionID, paperID, kind)
	if err != nil {
		return s.mapSessionErr(err)
	}
	if voted {
		return domain.ErrAlreadyVoted
	}

	if err := s.store.AddVote(ctx, paperID, kind); err != nil {
		return err
	}
	if err := s.sessions.MarkVoted(ctx, sessionID, paperID, kind); err != nil {
		// The counter is committed; losing the guard only risks one
		// extra vote from this session.
		s.logger.Warn("vote recorded but guard update failed",
			logger.String("paper", paperID),
			logger.Error(err))
	}

	s.refreshIndexEntry(ctx, paperID)
	s.notify()
	metrics.VotesTotal.WithLabelValues(string(kind)).Inc()
	return nil
}

// PostComment appends a comment to a paper on behalf of a session. The
// comment id and timestamp are minted here, never supplied by the
// caller, and the display name is frozen onto the comment.
func (s *Service) PostComment(ctx context.Context, sessionID, paperID, text string) (*domain.Comment, error) {
	sess, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}

	c := &domain.Comment{
		ID:        uuid.NewString(),
		PaperID:   paperID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		UserID:    sess.ID,
		Username:  sess.Username,
	}

	if err := s.store.AppendComment(ctx, paperID, c); err != nil {
		return nil, err
	}

	s.refreshIndexEntry(ctx, paperID)
	s.notify()
	metrics.CommentsTotal.Inc()
	return c, nil
}

// Delete removes a paper and, by cascade, its comments. No UI path
// reaches this; it exists for completeness and operations.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeletePaper(ctx, id); err != nil {
		return err
	}
	s.index.Delete(id)
	s.notify()
	return nil
}

func (s *Service) resolveSession(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrNoUsername
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, s.mapSessionErr(err)
	}
	if sess.Username == "" {
		return nil, domain.ErrNoUsername
	}
	return sess, nil
}

func (s *Service) mapSessionErr(err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return domain.ErrNoUsername
	}
	return err
}

// refreshIndexEntry re-reads one paper so the index mirrors the store.
func (s *Service) refreshIndexEntry(ctx context.Context, id string) {
	p, err := s.store.GetPaper(ctx, id)
	if err != nil {
		s.logger.Warn("failed to refresh index entry",
			logger.String("paper", id),
			logger.Error(err))
		return
	}
	s.index.Put(p)
}

// dedupeLastWins collapses duplicate ids in one fetch batch: the last
// occurrence in the sequence wins.
func dedupeLastWins(papers []*domain.Paper) []*domain.Paper {
	byID := make(map[string]int, len(papers))
	out := make([]*domain.Paper, 0, len(papers))
	for _, p := range papers {
		if i, ok := byID[p.ID]; ok {
			out[i] = p
			continue
		}
		byID[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}
