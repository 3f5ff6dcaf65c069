package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const userIdContextKey = contextKey("userId")

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authenticate reads the user id the authenticating gateway in front of this
// service sets on each request. Requests without one proceed anonymously;
// the service never verifies credentials itself.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-Id")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		userId, err := uuid.Parse(header)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("invalid X-User-Id header"))
			return
		}

		ctx := context.WithValue(r.Context(), userIdContextKey, userId)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.contextGetUserId(r) == uuid.Nil {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// contextGetUserId returns uuid.Nil for anonymous requests.
func (app *Application) contextGetUserId(r *http.Request) uuid.UUID {
	userId, ok := r.Context().Value(userIdContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return userId
}
