package landing

// Database is a backing engine that has to be opened before use. Open creates
// the schema when it is missing and is safe to call on every start.
type Database interface {
	Open() error
	Close() error
}

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	Database
	SubscriberService
	NewsletterService
	ContactService
}
