package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rideaware/landing"
)

type newsletterService struct {
	db *DB
}

// ListNewsletters returns all newsletters ordered by sent_at descending
func (ns *newsletterService) ListNewsletters(ctx context.Context) ([]landing.Newsletter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := ns.db.db.Collection(newslettersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify("ListNewsletters", err)
	}
	defer cursor.Close(ctx)

	newsletters := make([]landing.Newsletter, 0)
	if err := cursor.All(ctx, &newsletters); err != nil {
		return nil, classify("ListNewsletters", err)
	}

	return newsletters, nil
}

// GetNewsletter finds a newsletter by id
func (ns *newsletterService) GetNewsletter(ctx context.Context, id int) (*landing.Newsletter, error) {
	var n landing.Newsletter
	err := ns.db.db.Collection(newslettersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, classify("GetNewsletter", err)
	}

	return &n, nil
}
