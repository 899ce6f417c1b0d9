package auth

import (
	"net/http"

	"github.com/google/uuid"
)

// UserIDHeader carries the authenticated user's ID, set by the edge proxy
// after session validation. The core API trusts it as-is.
const UserIDHeader = "X-User-ID"

// Middleware reads the authenticated user ID from the request and stores it
// in the context. Requests without a valid ID pass through unauthenticated;
// operations that need an identity fail with ErrUnauthenticated downstream.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := uuid.Parse(r.Header.Get(UserIDHeader)); err == nil && id != uuid.Nil {
			r = r.WithContext(WithUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
