package bolt

import (
	"context"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/go-errors/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/rideaware/landing"
)

const openTimeout = 10 * time.Second

// DB represents a database
type DB struct {
	path    string
	stormDB *storm.DB
	ctx     context.Context
	cancel  func()
}

// NewDB returns new database
func NewDB(path string) *DB {
	db := &DB{
		path: path,
	}

	db.ctx, db.cancel = context.WithCancel(context.Background())

	return db
}

// Open opens the bolt file and initializes buckets and indexes for every
// stored type. Both steps are no-ops on an existing file.
func (db *DB) Open() error {
	if db.path == "" {
		return errors.New("path required")
	}

	stormDB, err := storm.Open(db.path, storm.BoltOptions(0600, &bolt.Options{Timeout: openTimeout}))
	if err != nil {
		return errors.Errorf("failed to open %s: %v", db.path, err)
	}
	db.stormDB = stormDB

	for _, data := range []interface{}{
		&landing.Subscriber{},
		&landing.Newsletter{},
		&landing.ContactMessage{},
	} {
		if err := db.stormDB.Init(data); err != nil {
			return errors.Errorf("failed to init %T: %v", data, err)
		}
	}

	return nil
}

// Close closes database connection
func (db *DB) Close() error {
	db.cancel()

	if db.stormDB != nil {
		return db.stormDB.Close()
	}

	return nil
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
