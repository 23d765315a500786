package http

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/rideaware/landing"
	"github.com/rideaware/landing/spam"
)

const (
	contactReceivedMessage = "Thank you for your message. We'll get back to you soon!"

	parseFormError      = "Failed to parse form data"
	missingFieldsError  = "All fields are required"
	invalidNameError    = "Please provide a valid name"
	invalidEmailError   = "Please provide a valid email address"
	invalidSubjectError = "Please select a valid subject"
	messageTooShort     = "Message must be at least 10 characters"
	messageTooLong      = "Message must be less than 5000 characters"
	notEnglishError     = "Please submit your message in English"
	spamError           = "Your message was flagged as spam. Please try again with a different message."
)

func (s *Server) contactHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return NewError(err, http.StatusBadRequest, parseFormError)
	}

	m := &landing.ContactMessage{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}
	subscribe := r.FormValue("subscribe") == "on"

	if msg := validateContact(m); msg != "" {
		return NewError(nil, http.StatusBadRequest, msg)
	}

	logger := hlog.FromRequest(r).With().Str("name", m.Name).Str("email", m.Email).Logger()

	if subscribe {
		if _, err := s.Store.AddSubscriber(r.Context(), m.Email); err != nil {
			if landing.ErrorCode(err) == landing.ErrConflict {
				logger.Info().Msg("Subscriber already exists")
			} else {
				logger.Error().Err(err).Msg("Failed to add subscriber from contact form")
				report(r, err)
			}
		} else {
			logger.Info().Msg("New subscriber added from contact form")
		}
	}

	if err := s.Notifier.SendContactConfirmation(m.Email, m.Name); err != nil {
		logger.Error().Err(err).Msg("Failed to send contact confirmation")
		report(r, err)
	}

	if s.AdminEmail != "" {
		if err := s.Notifier.SendContactNotification(s.AdminEmail, m.Name, m.Email, m.Subject, m.Message); err != nil {
			logger.Error().Err(err).Msg("Failed to send contact notification to admin")
			report(r, err)
		}
	}

	if err := s.Store.AddContactMessage(r.Context(), m); err != nil {
		logger.Warn().Err(err).Msg("Failed to save contact message")
		report(r, err)
	}

	logger.Info().Str("subject", m.Subject).Msg("Contact form submitted")
	writeJSONResponse(w, http.StatusCreated, &landing.MessageResponse{
		Message: contactReceivedMessage,
	})

	return nil
}

// validateContact returns the message shown to the visitor, or "" when m is acceptable.
func validateContact(m *landing.ContactMessage) string {
	switch {
	case m.Name == "" || m.Email == "" || m.Subject == "" || m.Message == "":
		return missingFieldsError
	case !spam.IsValidName(m.Name):
		return invalidNameError
	case !spam.IsValidEmail(m.Email):
		return invalidEmailError
	case !spam.IsValidSubject(m.Subject):
		return invalidSubjectError
	case len(m.Message) < spam.MinMessageLength:
		return messageTooShort
	case len(m.Message) > spam.MaxMessageLength:
		return messageTooLong
	case !spam.IsEnglish(m.Message):
		return notEnglishError
	case spam.IsSpam(m.Message):
		return spamError
	}

	return ""
}
