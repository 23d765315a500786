package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rideaware/landing"
)

// Store is a mock landing.Store
type Store struct {
	mock.Mock
}

var _ landing.Store = (*Store)(nil)

func (s *Store) Open() error {
	return s.Called().Error(0)
}

func (s *Store) Close() error {
	return s.Called().Error(0)
}

func (s *Store) AddSubscriber(ctx context.Context, email string) (*landing.Subscriber, error) {
	args := s.Called(ctx, email)
	sub, _ := args.Get(0).(*landing.Subscriber)
	return sub, args.Error(1)
}

func (s *Store) RemoveSubscriber(ctx context.Context, email string) error {
	return s.Called(ctx, email).Error(0)
}

func (s *Store) ListNewsletters(ctx context.Context) ([]landing.Newsletter, error) {
	args := s.Called(ctx)
	newsletters, _ := args.Get(0).([]landing.Newsletter)
	return newsletters, args.Error(1)
}

func (s *Store) GetNewsletter(ctx context.Context, id int) (*landing.Newsletter, error) {
	args := s.Called(ctx, id)
	n, _ := args.Get(0).(*landing.Newsletter)
	return n, args.Error(1)
}

func (s *Store) AddContactMessage(ctx context.Context, m *landing.ContactMessage) error {
	return s.Called(ctx, m).Error(0)
}
