package landing

import (
	"context"
	"time"
)

// ContactService stores contact form submissions.
type ContactService interface {
	AddContactMessage(ctx context.Context, m *ContactMessage) error
}

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID        int       `json:"id" storm:"id,increment" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject" bson:"subject"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
