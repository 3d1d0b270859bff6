package session

import (
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Middleware attaches the caller's session to the request context. Requests
// without an X-Session-Id header get a fresh id, echoed in the response header
// so the client can send it back.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(HeaderName)
		if _, err := uuid.Parse(id); err != nil {
			if id != "" {
				log.Debugf("ignoring malformed session id %q", id)
			}
			id = uuid.NewString()
		}
		w.Header().Set(HeaderName, id)
		ctx := WithSession(req.Context(), s.Get(id))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}
