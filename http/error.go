package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/hlog"

	"github.com/rideaware/landing"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
)

type appHandler func(w http.ResponseWriter, r *http.Request) error

// Error parse HTTP error and write to header and body
func (s *Server) Error(fn appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		clientError, ok := err.(ClientError)
		if !ok {
			clientError = fromAppError(err)
		}

		status, headers := clientError.Headers()
		if status >= http.StatusInternalServerError {
			hlog.FromRequest(r).Error().Err(err).Msg("request failed")
			report(r, err)
		} else {
			hlog.FromRequest(r).Warn().Err(err).Int("status", status).Msg("client error")
		}

		body, err := clientError.Body()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}

// report sends err to Sentry, through the request hub when there is one.
func report(r *http.Request, err error) {
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// fromAppError maps landing error codes that escaped a handler to a response.
func fromAppError(err error) *Error {
	switch landing.ErrorCode(err) {
	case landing.ErrInvalid:
		return NewError(err, http.StatusBadRequest, landing.ErrorMessage(err))
	case landing.ErrNotFound:
		return NewError(err, http.StatusNotFound, landing.ErrorMessage(err))
	case landing.ErrConflict:
		return NewError(err, http.StatusConflict, landing.ErrorMessage(err))
	case landing.ErrUnavailable:
		return NewError(err, http.StatusServiceUnavailable, unavailableMessage)
	}

	return NewError(err, http.StatusInternalServerError, landing.ErrInternal)
}

// ClientError is the interface that wraps methods related to error on the client side
type ClientError interface {
	Error() string
	Body() ([]byte, error)
	Headers() (int, map[string]string)
}

// Error represents a detail error message
type Error struct {
	Cause   error  `json:"-"`
	Message string `json:"error"`
	Status  int    `json:"-"`

	text bool
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Body returns response body from error
func (e *Error) Body() ([]byte, error) {
	if e.text {
		return []byte(e.Message), nil
	}

	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("Error while parsing response body: %v", err)
	}
	return body, nil
}

// Headers returns status and header
func (e *Error) Headers() (int, map[string]string) {
	contentType := contentTypeJSON
	if e.text {
		contentType = contentTypeText
	}
	return e.Status, map[string]string{
		"Content-Type": contentType,
	}
}

// NewError returns an error rendered as {"error": message}
func NewError(err error, status int, message string) *Error {
	return &Error{
		Cause:   err,
		Message: message,
		Status:  status,
	}
}

// NewTextError returns an error rendered as a plain text message
func NewTextError(err error, status int, message string) *Error {
	return &Error{
		Cause:   err,
		Message: message,
		Status:  status,
		text:    true,
	}
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	//nolint:errcheck
	json.NewEncoder(w).Encode(response)
}

func writeTextResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(message))
}
