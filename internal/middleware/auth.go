package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockpile-app/stockpile-backend/internal/models"
	"github.com/stockpile-app/stockpile-backend/internal/services"
)

type contextKey string

const userContextKey contextKey = "user"

// SessionCookieName is the cookie carrying the session credential.
const SessionCookieName = "token"

// Protect guards a route group: it rejects requests without a valid
// session cookie and attaches the authenticated account (password
// cleared) to the request context.
func Protect(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w, "Not authorized, please login")
				return
			}

			userID, err := services.VerifySession(cookie.Value, jwtSecret)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			user, err := services.FindUserByID(r.Context(), userID)
			if err != nil {
				// A vanished account is an auth failure; a store
				// failure is not the caller's fault.
				if errors.Is(err, mongo.ErrNoDocuments) {
					unauthorized(w, "User not found")
					return
				}
				serverError(w, "Database error")
				return
			}
			user.Password = ""

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the account attached by Protect, or nil when
// the request did not pass through it.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// WithUser attaches an account to the context the same way Protect
// does. Used by handler tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func unauthorized(w http.ResponseWriter, message string) {
	respond(w, http.StatusUnauthorized, message)
}

func serverError(w http.ResponseWriter, message string) {
	respond(w, http.StatusInternalServerError, message)
}

func respond(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
