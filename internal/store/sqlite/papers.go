package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paperdesk/paperdesk/internal/domain"
	"github.com/paperdesk/paperdesk/internal/utils"
)

// GetPaper retrieves one paper with its comments, or domain.ErrNotFound.
func (s *Store) GetPaper(ctx context.Context, id string) (*domain.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, authors, summary, published_date, pdf_url, upvotes, downvotes
		 FROM papers WHERE id = ?`, id)

	p, err := scanPaper(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get paper %s: %w", id, err)
	}

	comments, err := s.commentsFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p.Comments = comments[id]
	if p.Comments == nil {
		p.Comments = []*domain.Comment{}
	}
	return p, nil
}

// ListPapers retrieves every paper with its comments.
func (s *Store) ListPapers(ctx context.Context) ([]*domain.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, authors, summary, published_date, pdf_url, upvotes, downvotes
		 FROM papers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}
	defer utils.Close(rows)

	var papers []*domain.Paper
	var ids []string
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		p.Comments = []*domain.Comment{}
		papers = append(papers, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate papers: %w", err)
	}

	if len(papers) == 0 {
		return []*domain.Paper{}, nil
	}

	byPaper, err := s.commentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range papers {
		if cs, ok := byPaper[p.ID]; ok {
			p.Comments = cs
		}
	}
	return papers, nil
}

// InsertPaper stores a new paper. Fails with domain.ErrDuplicateID when the
// id is already present.
func (s *Store) InsertPaper(ctx context.Context, p *domain.Paper) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return insertPaperTx(tx, p)
	})
}

// UpdatePaperMeta overwrites the descriptive fields of a stored paper.
// Votes and comments are left alone. Fails with domain.ErrNotFound.
func (s *Store) UpdatePaperMeta(ctx context.Context, p *domain.Paper) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return updateMetaTx(tx, p)
	})
}

// AddVote increments one vote counter by one. Fails with domain.ErrNotFound.
func (s *Store) AddVote(ctx context.Context, id string, kind domain.VoteKind) error {
	column := "upvotes"
	if kind == domain.VoteDown {
		column = "downvotes"
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			fmt.Sprintf(`UPDATE papers SET %s = %s + 1 WHERE id = ?`, column, column), id)
		if err != nil {
			return fmt.Errorf("failed to record %s vote: %w", kind, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// DeletePaper removes a paper; its comments go with it (cascade).
func (s *Store) DeletePaper(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM papers WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete paper %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ReconcileBatch merges a fetch result into the store in one transaction:
// known ids get their descriptive fields overwritten, unknown ids are
// inserted with zero votes and no comments. The input must already be
// deduplicated by id.
func (s *Store) ReconcileBatch(ctx context.Context, fetched []*domain.Paper) (inserted, updated int, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		for _, p := range fetched {
			var exists int
			if err := tx.QueryRow(`SELECT COUNT(1) FROM papers WHERE id = ?`, p.ID).Scan(&exists); err != nil {
				return fmt.Errorf("failed to probe paper %s: %w", p.ID, err)
			}
			if exists > 0 {
				if err := updateMetaTx(tx, p); err != nil {
					return err
				}
				updated++
				continue
			}
			if err := insertPaperTx(tx, p); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}

func insertPaperTx(tx *sql.Tx, p *domain.Paper) error {
	authors, err := json.Marshal(p.Authors)
	if err != nil {
		return fmt.Errorf("failed to marshal authors: %w", err)
	}
	// New papers always start with their natural construction defaults.
	_, err = tx.Exec(
		`INSERT INTO papers(id, title, authors, summary, published_date, pdf_url, upvotes, downvotes)
		 VALUES(?, ?, ?, ?, ?, ?, 0, 0)`,
		p.ID, p.Title, string(authors), p.Summary, p.PublishedDate.UnixNano(), p.PDFURL)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert paper %s: %w", p.ID, err)
	}
	return nil
}

func updateMetaTx(tx *sql.Tx, p *domain.Paper) error {
	authors, err := json.Marshal(p.Authors)
	if err != nil {
		return fmt.Errorf("failed to marshal authors: %w", err)
	}
	res, err := tx.Exec(
		`UPDATE papers SET title = ?, authors = ?, summary = ?, published_date = ?, pdf_url = ?
		 WHERE id = ?`,
		p.Title, string(authors), p.Summary, p.PublishedDate.UnixNano(), p.PDFURL, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update paper %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (*domain.Paper, error) {
	var (
		p         domain.Paper
		authors   string
		published int64
	)
	if err := row.Scan(&p.ID, &p.Title, &authors, &p.Summary, &published, &p.PDFURL,
		&p.Upvotes, &p.Downvotes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(authors), &p.Authors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal authors for %s: %w", p.ID, err)
	}
	p.PublishedDate = time.Unix(0, published).UTC()
	return &p, nil
}

// isUniqueViolation sniffs the driver error text; modernc.org/sqlite does not
// export typed constraint errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
