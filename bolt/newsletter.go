package bolt

import (
	"context"

	"github.com/asdine/storm/v3"
	"github.com/go-errors/errors"

	"github.com/rideaware/landing"
)

type newsletterService struct {
	db *DB
}

// ListNewsletters returns all newsletters, newest first
func (ns *newsletterService) ListNewsletters(_ context.Context) ([]landing.Newsletter, error) {
	newsletters := make([]landing.Newsletter, 0)
	err := ns.db.stormDB.Select().OrderBy("SentAt", "ID").Reverse().Find(&newsletters)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return nil, errors.Errorf("failed to list newsletters: %v", err)
	}

	return newsletters, nil
}

// GetNewsletter finds a newsletter by id
func (ns *newsletterService) GetNewsletter(_ context.Context, id int) (*landing.Newsletter, error) {
	var n landing.Newsletter
	if err := ns.db.stormDB.One("ID", id, &n); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Errorf("failed to find newsletter %d: %v", id, err)
	}

	return &n, nil
}
