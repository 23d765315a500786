package mongo

import (
	"context"
	"time"

	"github.com/rideaware/landing"
)

type contactService struct {
	db *DB
}

func (cs *contactService) AddContactMessage(ctx context.Context, m *landing.ContactMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	id, err := cs.db.nextID(ctx, contactCollection)
	if err != nil {
		return classify("AddContactMessage", err)
	}
	m.ID = id

	if _, err := cs.db.db.Collection(contactCollection).InsertOne(ctx, m); err != nil {
		return classify("AddContactMessage", err)
	}

	return nil
}
