package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/rideaware/landing"
)

type subscriberService struct {
	db *DB
}

// AddSubscriber inserts a subscriber. The unique index on email decides duplicates.
func (ss *subscriberService) AddSubscriber(ctx context.Context, email string) (*landing.Subscriber, error) {
	id, err := ss.db.nextID(ctx, subscribersCollection)
	if err != nil {
		return nil, classify("AddSubscriber", err)
	}

	s := &landing.Subscriber{ID: id, Email: email}
	if _, err := ss.db.db.Collection(subscribersCollection).InsertOne(ctx, s); err != nil {
		return nil, classify("AddSubscriber", err)
	}

	return s, nil
}

// RemoveSubscriber deletes a subscriber by email
func (ss *subscriberService) RemoveSubscriber(ctx context.Context, email string) error {
	res, err := ss.db.db.Collection(subscribersCollection).DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return classify("RemoveSubscriber", err)
	}
	if res.DeletedCount == 0 {
		return landing.Errorf(landing.ErrNotFound, "Email %s was not found or already unsubscribed", email)
	}

	return nil
}
