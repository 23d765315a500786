package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rideaware/landing"
)

type newsletterService struct {
	db *DB
}

// ListNewsletters returns all newsletters ordered by sent_at descending
func (ns *newsletterService) ListNewsletters(ctx context.Context) ([]landing.Newsletter, error) {
	rows, err := ns.db.sqlDB.QueryContext(ctx, "SELECT id, subject, body, sent_at FROM newsletters ORDER BY sent_at DESC, id DESC")
	if err != nil {
		return nil, classify("ListNewsletters", err)
	}
	defer rows.Close()

	newsletters := make([]landing.Newsletter, 0)
	for rows.Next() {
		var n landing.Newsletter
		if err := rows.Scan(&n.ID, &n.Subject, &n.Body, &n.SentAt); err != nil {
			return nil, classify("ListNewsletters", err)
		}
		newsletters = append(newsletters, n)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("ListNewsletters", err)
	}

	return newsletters, nil
}

// GetNewsletter finds a newsletter by id
func (ns *newsletterService) GetNewsletter(ctx context.Context, id int) (*landing.Newsletter, error) {
	var n landing.Newsletter
	err := ns.db.sqlDB.QueryRowContext(ctx, "SELECT id, subject, body, sent_at FROM newsletters WHERE id = ?", id).
		Scan(&n.ID, &n.Subject, &n.Body, &n.SentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("GetNewsletter", err)
	}

	return &n, nil
}
