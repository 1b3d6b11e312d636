package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/paperdesk/paperdesk/internal/domain"
	"github.com/paperdesk/paperdesk/internal/utils"
)

// AppendComment attaches a comment to a paper. Fails with
// domain.ErrNotFound when the paper does not exist; nothing is written
// in that case.
func (s *Store) AppendComment(ctx context.Context, paperID string, c *domain.Comment) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(1) FROM papers WHERE id = ?`, paperID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to probe paper %s: %w", paperID, err)
		}
		if exists == 0 {
			return domain.ErrNotFound
		}
		_, err := tx.Exec(
			`INSERT INTO comments(id, paper_id, body, created_at, user_id, username)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			c.ID, paperID, c.Text, c.CreatedAt.UnixNano(), c.UserID, c.Username)
		if err != nil {
			return fmt.Errorf("failed to append comment to %s: %w", paperID, err)
		}
		return nil
	})
}

// commentsFor loads the comments of the given papers in append order,
// keyed by paper id.
func (s *Store) commentsFor(ctx context.Context, paperIDs []string) (map[string][]*domain.Comment, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(paperIDs)), ",")
	args := make([]any, len(paperIDs))
	for i, id := range paperIDs {
		args[i] = id
	}

	// rowid preserves insertion order even when timestamps collide.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, paper_id, body, created_at, user_id, username
		 FROM comments WHERE paper_id IN (`+placeholders+`) ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	defer utils.Close(rows)

	out := make(map[string][]*domain.Comment, len(paperIDs))
	for rows.Next() {
		var (
			c       domain.Comment
			created int64
		)
		if err := rows.Scan(&c.ID, &c.PaperID, &c.Text, &created, &c.UserID, &c.Username); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.CreatedAt = time.Unix(0, created).UTC()
		out[c.PaperID] = append(out[c.PaperID], &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return out, nil
}
