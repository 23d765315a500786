package postgres

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

	err := cs.db.pool.QueryRow(ctx,
		"INSERT INTO contact_messages (name, email, subject, message, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		m.Name, m.Email, m.Subject, m.Message, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return classify("AddContactMessage", err)
	}

	return nil
}
