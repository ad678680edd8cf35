package adapthttp

import (
	"context"
	"net/http"
	"time"

	"recipebox/internal/domain"

	"github.com/sirupsen/logrus"
)

type contextKey string

const userContextKey contextKey = "user"

// requireAuth validates the session cookie and resolves it to a user before
// allowing access to protected operations. It performs no mutation.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			return
		}

		userID, err := s.tokens.Verify(cookie.Value)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			return
		}

		// The token may outlive the account it was bound to.
		user, err := s.auth.CurrentUser(r.Context(), userID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated user attached by requireAuth.
func userFrom(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userContextKey).(*domain.User)
	return u
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware records method, path, status, and duration per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
