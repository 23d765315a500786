package postgres

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/rideaware/landing"
)

type newsletterService struct {
	db *DB
}

// ListNewsletters returns all newsletters ordered by sent_at descending
func (ns *newsletterService) ListNewsletters(ctx context.Context) ([]landing.Newsletter, error) {
	rows, err := ns.db.pool.Query(ctx, "SELECT id, subject, body, sent_at FROM newsletters ORDER BY sent_at DESC, id DESC")
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
	// ids are SERIAL, anything outside int4 cannot be a row.
	if id < 1 || id > math.MaxInt32 {
		return nil, nil
	}

	var n landing.Newsletter
	err := ns.db.pool.QueryRow(ctx, "SELECT id, subject, body, sent_at FROM newsletters WHERE id = $1", id).
		Scan(&n.ID, &n.Subject, &n.Body, &n.SentAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("GetNewsletter", err)
	}

	return &n, nil
}
