package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/rideaware/landing"
	"github.com/rideaware/landing/pkg/hash"
)

const (
	subscribedMessage   = "Email has been added"
	invalidRequestError = "Invalid request"
	noEmailError        = "No email provided"
	emailExistsError    = "Email already exists"
	unavailableMessage  = "Service temporarily unavailable"
)

func (s *Server) subscribeHandler(w http.ResponseWriter, r *http.Request) error {
	var req landing.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return NewError(err, http.StatusBadRequest, invalidRequestError)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return NewError(nil, http.StatusBadRequest, noEmailError)
	}

	logger := hlog.FromRequest(r)
	subscriber, err := s.Store.AddSubscriber(r.Context(), email)
	if err != nil {
		switch landing.ErrorCode(err) {
		case landing.ErrConflict:
			return NewError(err, http.StatusBadRequest, emailExistsError)
		case landing.ErrUnavailable:
			return NewError(err, http.StatusServiceUnavailable, unavailableMessage)
		}
		return err
	}
	logger.Info().Int("subscriber_id", subscriber.ID).Str("email", email).Msg("Saved new subscriber")

	link, err := s.unsubscribeLink(r, email)
	if err != nil {
		return err
	}

	// The subscriber is already committed; a failed send is only logged.
	if err := s.Notifier.SendConfirmation(email, link); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Failed to send confirmation email")
		report(r, err)
	} else {
		logger.Info().Str("email", email).Msg("Confirmation email sent")
	}

	writeJSONResponse(w, http.StatusCreated, &landing.MessageResponse{
		Message: subscribedMessage,
	})

	return nil
}

// unsubscribeLink builds the link from the base URL the client used to reach us.
func (s *Server) unsubscribeLink(r *http.Request, email string) (string, error) {
	query := url.Values{}
	query.Set("email", email)
	if s.HMACSecret != "" {
		h, err := hash.ComputeHmac256(email, s.HMACSecret)
		if err != nil {
			return "", err
		}
		query.Set("hash", h)
	}

	return fmt.Sprintf("%s/unsubscribe?%s", s.baseURL(r), query.Encode()), nil
}

func (s *Server) baseURL(r *http.Request) string {
	if s.Domain != "" {
		return "https://" + s.Domain
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		scheme = proto
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
