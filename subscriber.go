package landing

import "context"

// SubscriberService is the interface that wraps methods related to the subscriber list.
type SubscriberService interface {
	// AddSubscriber stores a new subscriber. It returns an ErrConflict error
	// when the email is already present and ErrUnavailable when the backend
	// cannot be reached.
	AddSubscriber(ctx context.Context, email string) (*Subscriber, error)

	// RemoveSubscriber deletes the subscriber with the given email. It returns
	// an ErrNotFound error when no row was removed.
	RemoveSubscriber(ctx context.Context, email string) error
}

// Subscriber represents an email address registered to receive newsletters.
type Subscriber struct {
	ID    int    `json:"id" storm:"id,increment" bson:"_id"`
	Email string `json:"email" storm:"unique" bson:"email"`
}

// SubscriptionRequest is the body of POST /subscribe.
type SubscriptionRequest struct {
	Email string `json:"email"`
}

// MessageResponse is the success body of the JSON endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
