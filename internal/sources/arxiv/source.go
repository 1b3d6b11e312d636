package arxiv

import (
	"context"
	"fmt"
	"time"

	"github.com/paperdesk/paperdesk/internal/domain"
)

// Source provides candidate paper records published at or after a date.
// Implementations may be slow (the real catalog lives across a network);
// callers pass a context and must not assume a prompt answer.
type Source interface {
	FetchSince(ctx context.Context, since time.Time) ([]*domain.Paper, error)
}

// CatalogSource serves papers from a local YAML catalog, standing in for
// the remote arXiv API. A configurable delay simulates network latency.
// The file is re-read on every fetch, so edits show up on the next
// refresh like upstream changes would.
type CatalogSource struct {
	loader *Loader
	mapper *Mapper
	delay  time.Duration
	now    func() time.Time
}

// NewCatalogSource creates a source backed by the catalog file at path.
func NewCatalogSource(path string, delay time.Duration) *CatalogSource {
	return &CatalogSource{
		loader: NewLoader(path),
		mapper: NewMapper(),
		delay:  delay,
		now:    time.Now,
	}
}

// FetchSince returns every catalog paper whose publication date is at or
// after since, in catalog order. The simulated latency respects context
// cancellation. Failures are wrapped in domain.ErrSourceUnavailable.
func (s *CatalogSource) FetchSince(ctx context.Context, since time.Time) ([]*domain.Paper, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	config, err := s.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	papers, err := s.mapper.MapPapers(config, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	out := make([]*domain.Paper, 0, len(papers))
	for _, p := range papers {
		if p.PublishedDate.Before(since) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
