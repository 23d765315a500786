package sqlite

import (
	"context"

	"github.com/rideaware/landing"
)

type subscriberService struct {
	db *DB
}

// AddSubscriber inserts a subscriber. The UNIQUE constraint on email decides duplicates.
func (ss *subscriberService) AddSubscriber(ctx context.Context, email string) (*landing.Subscriber, error) {
	res, err := ss.db.sqlDB.ExecContext(ctx, "INSERT INTO subscribers (email) VALUES (?)", email)
	if err != nil {
		return nil, classify("AddSubscriber", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, classify("AddSubscriber", err)
	}

	return &landing.Subscriber{
		ID:    int(id),
		Email: email,
	}, nil
}

// RemoveSubscriber deletes a subscriber by email
func (ss *subscriberService) RemoveSubscriber(ctx context.Context, email string) error {
	res, err := ss.db.sqlDB.ExecContext(ctx, "DELETE FROM subscribers WHERE email = ?", email)
	if err != nil {
		return classify("RemoveSubscriber", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return classify("RemoveSubscriber", err)
	}
	if n == 0 {
		return landing.Errorf(landing.ErrNotFound, "Email %s was not found or already unsubscribed", email)
	}

	return nil
}
