package landing

import (
	"context"
	"time"
)

// NewsletterService is the read side of the newsletter archive.
type NewsletterService interface {
	// ListNewsletters returns every newsletter, most recently sent first.
	ListNewsletters(ctx context.Context) ([]Newsletter, error)

	// GetNewsletter returns nil and no error when id does not exist.
	GetNewsletter(ctx context.Context, id int) (*Newsletter, error)
}

// Newsletter is a message that was already sent. Rows are written by an
// external process.
type Newsletter struct {
	ID      int       `json:"id" storm:"id,increment" bson:"_id"`
	Subject string    `json:"subject" bson:"subject"`
	Body    string    `json:"body" bson:"body"`
	SentAt  time.Time `json:"sent_at" storm:"index" bson:"sent_at"`
}
