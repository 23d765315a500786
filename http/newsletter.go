package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rideaware/landing"
)

const newsletterNotFoundMessage = "Newsletter not found."

func (s *Server) newslettersHandler(w http.ResponseWriter, r *http.Request) error {
	newsletters, err := s.Store.ListNewsletters(r.Context())
	if err != nil {
		if landing.ErrorCode(err) == landing.ErrUnavailable {
			return NewTextError(err, http.StatusServiceUnavailable, unavailableMessage)
		}
		return err
	}

	return s.render(w, http.StatusOK, "newsletters.html", map[string]interface{}{
		"IsNewsletters": true,
		"Newsletters":   newsletters,
	})
}

func (s *Server) newsletterHandler(w http.ResponseWriter, r *http.Request) error {
	// The route only matches digits, so a failed parse means the id overflows.
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return NewTextError(err, http.StatusNotFound, newsletterNotFoundMessage)
	}

	newsletter, err := s.Store.GetNewsletter(r.Context(), id)
	if err != nil {
		if landing.ErrorCode(err) == landing.ErrUnavailable {
			return NewTextError(err, http.StatusServiceUnavailable, unavailableMessage)
		}
		return err
	}
	if newsletter == nil {
		return NewTextError(nil, http.StatusNotFound, newsletterNotFoundMessage)
	}

	return s.render(w, http.StatusOK, "newsletter_detail.html", map[string]interface{}{
		"IsNewsletters": true,
		"Newsletter":    newsletter,
	})
}
