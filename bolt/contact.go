package bolt

import (
	"context"
	"time"

	"github.com/go-errors/errors"

	"github.com/rideaware/landing"
)

type contactService struct {
	db *DB
}

func (cs *contactService) AddContactMessage(_ context.Context, m *landing.ContactMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := cs.db.stormDB.Save(m); err != nil {
		return errors.Errorf("failed to save contact message: %v", err)
	}

	return nil
}
