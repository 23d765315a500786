package sqlite

import "github.com/rideaware/landing"

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
