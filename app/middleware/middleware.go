package middleware

import (
	"context"
	"net/http"
	"time"

	"hadarblog/app/models"
	"hadarblog/app/repositories"
	"hadarblog/app/sessions"
)

type contextKey string

const userContextKey contextKey = "current_user"

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		// Log request details
		println("[", time.Now().Format("2006-01-02 15:04:05"), "]", r.Method, r.URL.Path, "took", duration)
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				println("PANIC:", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ContentTypeJSON sets the Content-Type header to application/json for API routes
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only set JSON content type for API routes
		if len(r.URL.Path) >= 4 && r.URL.Path[:4] == "/api" {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser resolves the session cookie to a user record and stashes it in
// the request context. Requests without a valid session pass through with no
// user; nothing downstream reads ambient session state.
func CurrentUser(store *sessions.Store, users repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessions.CookieName)
			if err == nil {
				if userID, ok := store.UserID(cookie.Value); ok {
					if user, err := users.GetByID(userID); err == nil {
						ctx := context.WithValue(r.Context(), userContextKey, user)
						r = r.WithContext(ctx)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom returns the authenticated user for the request, or nil for a
// guest.
func UserFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}
