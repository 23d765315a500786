package bolt

import (
	"context"

	"github.com/asdine/storm/v3"
	"github.com/go-errors/errors"

	"github.com/rideaware/landing"
)

type subscriberService struct {
	db *DB
}

// AddSubscriber saves a new subscriber. The unique index on Email rejects duplicates.
func (ss *subscriberService) AddSubscriber(_ context.Context, email string) (*landing.Subscriber, error) {
	s := &landing.Subscriber{Email: email}
	if err := ss.db.stormDB.Save(s); err != nil {
		if errors.Is(err, storm.ErrAlreadyExists) {
			return nil, &landing.Error{Code: landing.ErrConflict, Op: "AddSubscriber", Err: err}
		}
		return nil, errors.Errorf("failed to save: %v", err)
	}

	return s, nil
}

// RemoveSubscriber deletes the subscriber with email inside a single write transaction.
func (ss *subscriberService) RemoveSubscriber(_ context.Context, email string) error {
	tx, err := ss.db.stormDB.Begin(true)
	if err != nil {
		return errors.Errorf("failed to begin: %v", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var s landing.Subscriber
	if err := tx.One("Email", email, &s); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return landing.Errorf(landing.ErrNotFound, "Email %s was not found or already unsubscribed", email)
		}
		return errors.Errorf("failed to find by email: %v", err)
	}

	if err := tx.DeleteStruct(&s); err != nil {
		return errors.Errorf("failed to delete: %v", err)
	}

	return tx.Commit()
}
