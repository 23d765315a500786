package mongo

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rideaware/landing"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "landing"

	subscribersCollection = "subscribers"
	newslettersCollection = "newsletters"
	contactCollection     = "contact_messages"
	countersCollection    = "counters"
)

// DB represents a connection to a MongoDB deployment.
type DB struct {
	client *mongo.Client
	db     *mongo.Database

	uri     string
	name    string
	timeout time.Duration
}

// NewDB returns new database. An empty name selects "landing".
func NewDB(uri, name string, timeout time.Duration) *DB {
	if name == "" {
		name = defaultDatabase
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &DB{
		uri:     uri,
		name:    name,
		timeout: timeout,
	}
}

// Open connects to the deployment and creates the indexes the store relies on.
func (db *DB) Open() error {
	if db.uri == "" {
		return errors.New("uri required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), db.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(db.uri).SetTimeout(db.timeout))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return pkgerrors.Wrap(err, "failed to ping")
	}
	db.client = client
	db.db = client.Database(db.name)

	indexes := map[string]mongo.IndexModel{
		subscribersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		newslettersCollection: {
			Keys: bson.D{{Key: "sent_at", Value: -1}},
		},
	}
	for coll, model := range indexes {
		if _, err := db.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return pkgerrors.Wrapf(err, "failed to create index on %s", coll)
		}
	}

	return nil
}

// Close disconnects the client
func (db *DB) Close() error {
	if db.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), db.timeout)
	defer cancel()

	return db.client.Disconnect(ctx)
}

// nextID returns the next integer id of a collection from the counters collection.
func (db *DB) nextID(ctx context.Context, coll string) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := db.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": coll},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}

	return counter.Seq, nil
}

// classify turns a driver error into an application error.
func classify(op string, err error) error {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return &landing.Error{Code: landing.ErrConflict, Op: op, Err: err}
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, context.DeadlineExceeded):
		return &landing.Error{Code: landing.ErrUnavailable, Op: op, Err: err}
	}

	return pkgerrors.Wrap(err, op)
}

type store struct {
	*DB
	*subscriberService
	*newsletterService
	*contactService
}

// NewStore returns a landing.Store backed by the given database.
func NewStore(db *DB) landing.Store {
	return &store{
		DB:                db,
		subscriberService: &subscriberService{db: db},
		newsletterService: &newsletterService{db: db},
		contactService:    &contactService{db: db},
	}
}
