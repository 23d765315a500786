package http

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/rideaware/landing"
	"github.com/rideaware/landing/pkg/hash"
)

const (
	noEmailSpecifiedMessage   = "No email specified"
	invalidUnsubscribeMessage = "Either email or hash is invalid."
	unsubscribedMessage       = "The email %s has been unsubscribed."
	notSubscribedMessage      = "Email %s was not found or already unsubscribed"
)

func (s *Server) unsubscribeHandler(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	email := query.Get("email")
	if email == "" {
		return NewTextError(nil, http.StatusBadRequest, noEmailSpecifiedMessage)
	}

	if s.HMACRequired {
		ok, err := hash.VerifyHmac256(email, query.Get("hash"), s.HMACSecret)
		if err != nil {
			return err
		}
		if !ok {
			return NewTextError(nil, http.StatusBadRequest, invalidUnsubscribeMessage)
		}
	}

	if err := s.Store.RemoveSubscriber(r.Context(), email); err != nil {
		switch landing.ErrorCode(err) {
		case landing.ErrNotFound:
			return NewTextError(err, http.StatusBadRequest, fmt.Sprintf(notSubscribedMessage, email))
		case landing.ErrUnavailable:
			return NewTextError(err, http.StatusServiceUnavailable, unavailableMessage)
		}
		return err
	}

	hlog.FromRequest(r).Info().Str("email", email).Msg("Unsubscribed")
	writeTextResponse(w, http.StatusOK, fmt.Sprintf(unsubscribedMessage, email))

	return nil
}
