package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"tweetapp/models"
	"tweetapp/repositories"
)

type contextKey int

const viewerKey contextKey = iota

// Viewer returns the authenticated user placed in the context by
// RequireLogin, or nil outside a guarded route.
func Viewer(ctx context.Context) *models.User {
	user, _ := ctx.Value(viewerKey).(*models.User)
	return user
}

// RequireLogin resolves the session to a stored user and injects it
// into the request context. Requests without a valid session get 401
// before any core call runs.
func RequireLogin(sessions *Sessions, users repositories.UserRepository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sessions.CurrentUserID(r)
			if !ok {
				unauthorized(w)
				return
			}
			user, err := users.FindByID(userID)
			if err != nil {
				// Stale cookie for a user that no longer resolves.
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), viewerKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FulfillLogin sends already-authenticated users away from the
// register and login endpoints.
func FulfillLogin(sessions *Sessions) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := sessions.CurrentUserID(r); ok {
				http.Redirect(w, r, "/timeline", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "authorization required"}`))
}
