package arxiv

import (
	"fmt"
	"net/url"
	"time"

	"github.com/paperdesk/paperdesk/internal/domain"
)

// Mapper converts catalog entries to domain.Paper records.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapPapers converts a CatalogConfig to []*domain.Paper. Entries without
// an id or with an unparseable publication date or PDF URL are skipped,
// mirroring how a real feed drops malformed records. Relative ages are
// resolved against now.
func (m *Mapper) MapPapers(config *CatalogConfig, now time.Time) ([]*domain.Paper, error) {
	var papers []*domain.Paper

	for _, entry := range config.Papers {
		if entry.ID == "" || entry.Title == "" {
			continue
		}

		published, ok := resolvePublished(entry, now)
		if !ok {
			continue
		}

		if entry.PDFURL != "" {
			if _, err := url.ParseRequestURI(entry.PDFURL); err != nil {
				continue
			}
		}

		papers = append(papers, &domain.Paper{
			ID:            entry.ID,
			Title:         entry.Title,
			Authors:       append([]string(nil), entry.Authors...),
			Summary:       entry.Summary,
			PublishedDate: published,
			PDFURL:        entry.PDFURL,
		})
	}

	if len(papers) == 0 {
		return nil, fmt.Errorf("no valid papers found in catalog")
	}

	return papers, nil
}

func resolvePublished(entry PaperEntry, now time.Time) (time.Time, bool) {
	if entry.AgeDays != nil {
		return now.AddDate(0, 0, -*entry.AgeDays), true
	}
	if entry.Published != "" {
		t, err := time.Parse(time.RFC3339, entry.Published)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}
