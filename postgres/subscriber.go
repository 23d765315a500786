package postgres

import (
	"context"

	"github.com/rideaware/landing"
)

type subscriberService struct {
	db *DB
}

// AddSubscriber inserts a subscriber. The UNIQUE constraint on email decides duplicates.
func (ss *subscriberService) AddSubscriber(ctx context.Context, email string) (*landing.Subscriber, error) {
	s := &landing.Subscriber{Email: email}
	err := ss.db.pool.QueryRow(ctx, "INSERT INTO subscribers (email) VALUES ($1) RETURNING id", email).Scan(&s.ID)
	if err != nil {
		return nil, classify("AddSubscriber", err)
	}

	return s, nil
}

// RemoveSubscriber deletes a subscriber by email
func (ss *subscriberService) RemoveSubscriber(ctx context.Context, email string) error {
	tag, err := ss.db.pool.Exec(ctx, "DELETE FROM subscribers WHERE email = $1", email)
	if err != nil {
		return classify("RemoveSubscriber", err)
	}
	if tag.RowsAffected() == 0 {
		return landing.Errorf(landing.ErrNotFound, "Email %s was not found or already unsubscribed", email)
	}

	return nil
}
