package sqlite

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

	res, err := cs.db.sqlDB.ExecContext(ctx,
		"INSERT INTO contact_messages (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)",
		m.Name, m.Email, m.Subject, m.Message, m.CreatedAt)
	if err != nil {
		return classify("AddContactMessage", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return classify("AddContactMessage", err)
	}
	m.ID = int(id)

	return nil
}
