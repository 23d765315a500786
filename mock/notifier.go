package mock

import (
	"github.com/stretchr/testify/mock"

	"github.com/rideaware/landing"
)

// Notifier is a mock landing.Notifier
type Notifier struct {
	mock.Mock
}

var _ landing.Notifier = (*Notifier)(nil)

func (n *Notifier) SendConfirmation(to, unsubscribeLink string) error {
	return n.Called(to, unsubscribeLink).Error(0)
}

func (n *Notifier) SendContactConfirmation(to, name string) error {
	return n.Called(to, name).Error(0)
}

func (n *Notifier) SendContactNotification(to, name, email, subject, message string) error {
	return n.Called(to, name, email, subject, message).Error(0)
}
