package index

import (
	"sync"
	"time"

	"github.com/paperdesk/paperdesk/internal/domain"
)

// MemoryIndex is the in-memory read snapshot of the paper catalog.
// The query path reads from here; the papers service replaces or
// updates entries after each committed store mutation, so the index
// never runs ahead of the database.
type MemoryIndex struct {
	mu          sync.RWMutex
	papers      map[string]*domain.Paper // ID -> Paper
	lastRefresh time.Time                // Timestamp of last full catalog refresh
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		papers: make(map[string]*domain.Paper),
	}
}

// UpdatePapers replaces all papers in the index.
func (idx *MemoryIndex) UpdatePapers(papers []*domain.Paper) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Clear and rebuild
	idx.papers = make(map[string]*domain.Paper, len(papers))
	for _, p := range papers {
		idx.papers[p.ID] = p
	}
	idx.lastRefresh = time.Now()
}

// GetPaper retrieves a paper by ID.
func (idx *MemoryIndex) GetPaper(id string) (*domain.Paper, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	p, ok := idx.papers[id]
	return p, ok
}

// GetAllPapers returns all papers as a fresh slice.
func (idx *MemoryIndex) GetAllPapers() []*domain.Paper {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	papers := make([]*domain.Paper, 0, len(idx.papers))
	for _, p := range idx.papers {
		papers = append(papers, p)
	}
	return papers
}

// Put adds or replaces a single paper.
func (idx *MemoryIndex) Put(p *domain.Paper) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.papers[p.ID] = p
}

// Delete removes a paper from the index.
func (idx *MemoryIndex) Delete(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.papers, id)
}

// Count returns the number of papers in the index.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.papers)
}

// GetLastRefresh returns the timestamp of the last full refresh.
func (idx *MemoryIndex) GetLastRefresh() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastRefresh
}
