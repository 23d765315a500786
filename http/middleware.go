package http

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	uuid "github.com/satori/go.uuid"
)

const maxRequestIDLength = 64

// blockedPatterns are substrings of paths and user agents sent by
// vulnerability scanners and scripted clients. Query strings are not matched
// since they carry subscriber emails.
var blockedPatterns = []string{
	"python-requests",
	"curl",
	"wget",
	"sqlmap",
	"nikto",
	".php",
	".env",
	".git",
	"wp-admin",
	"xmlrpc",
	"backup",
	"config",
}

// requestIDHandler reuses the request id sent in headerName or generates a
// new one, echoes it in the response and adds it to the request logger.
func requestIDHandler(fieldKey, headerName string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerName)
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewV4().String()
			}
			w.Header().Set(headerName, id)

			log := zerolog.Ctx(r.Context())
			log.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str(fieldKey, id)
			})

			next.ServeHTTP(w, r)
		})
	}
}

func blockScannersHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.ToLower(r.URL.Path)
		userAgent := strings.ToLower(r.UserAgent())

		for _, pattern := range blockedPatterns {
			if strings.Contains(path, pattern) || strings.Contains(userAgent, pattern) {
				hlog.FromRequest(r).Warn().
					Str("pattern", pattern).
					Str("remote_addr", r.RemoteAddr).
					Msg("Blocked request")
				writeTextResponse(w, http.StatusForbidden, "Access Denied")
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
