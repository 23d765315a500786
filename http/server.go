package http

import (
	"context"
	"net"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/net/netutil"

	"github.com/rideaware/landing"
)

const (
	shutdownTimeout = 1 * time.Second
)

// Server represents HTTP server
type Server struct {
	ln      net.Listener
	server  *http.Server
	router  *mux.Router
	handler http.Handler
	pages   map[string]*page

	Addr     string
	MaxConns int

	// Domain is the public host name behind TLS. When set, links in emails
	// point to https://Domain instead of the host the request came in on.
	Domain string

	// HMACSecret signs unsubscribe links when set. With HMACRequired,
	// unsubscribe requests without a valid signature are rejected.
	HMACSecret   string
	HMACRequired bool

	// AdminEmail receives contact form notifications when set.
	AdminEmail string

	Store    landing.Store
	Notifier landing.Notifier
}

// NewServer create new HTTP server
func NewServer(logger zerolog.Logger) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
		},
		router: mux.NewRouter(),
		pages:  pages,
	}

	sentryHandler := sentryhttp.New(sentryhttp.Options{})
	s.router.Use(sentryHandler.Handle)

	s.router.HandleFunc("/health", s.healthCheckHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.Error(s.pageHandler("index.html"))).Methods(http.MethodGet)
	s.router.HandleFunc("/about", s.Error(s.pageHandler("about.html"))).Methods(http.MethodGet)
	s.router.HandleFunc("/contact", s.Error(s.pageHandler("contact.html"))).Methods(http.MethodGet)
	s.router.HandleFunc("/contact", s.Error(s.contactHandler)).Methods(http.MethodPost)
	s.router.HandleFunc("/subscribe", s.Error(s.subscribeHandler)).Methods(http.MethodPost)
	s.router.HandleFunc("/unsubscribe", s.Error(s.unsubscribeHandler)).Methods(http.MethodGet)
	s.router.HandleFunc("/newsletters", s.Error(s.newslettersHandler)).Methods(http.MethodGet)
	s.router.HandleFunc("/newsletter/{id:[0-9]+}", s.Error(s.newsletterHandler)).Methods(http.MethodGet)
	s.router.PathPrefix("/static/").Handler(staticHandler()).Methods(http.MethodGet)

	// Logging and scanner blocking wrap the router so they also see requests
	// that match no route.
	var h http.Handler = s.router
	h = blockScannersHandler(h)
	h = hlog.RefererHandler("referer")(h)
	h = hlog.UserAgentHandler("user_agent")(h)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("")
	})(h)
	h = requestIDHandler("req_id", "X-Request-ID")(h)
	h = hlog.NewHandler(logger)(h)
	s.handler = h

	s.server.Handler = s

	return s, nil
}

// ServeHTTP serves r through the middleware chain and the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAddr returns the address the server listens on once opened.
func (s *Server) ListenAddr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Open opens a connection to HTTP server
func (s *Server) Open() (err error) {
	s.ln, err = net.Listen("tcp", s.Addr)
	if err != nil {
		return errors.Errorf("failed to listen to port %s: %v", s.Addr, err)
	}
	if s.MaxConns > 0 {
		s.ln = netutil.LimitListener(s.ln, s.MaxConns)
	}

	go func() {
		_ = s.server.Serve(s.ln)
	}()

	return nil
}

// Close shutdowns HTTP server
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
