package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	apierrs "jobverse/internal/errors"
)

// userIDHeader carries the caller's identity. It is opaque to the server.
const userIDHeader = "user-id"

type ctxKey string

const userKey ctxKey = "user"

func userFromHeader(r *http.Request) *string {
	id := strings.TrimSpace(r.Header.Get(userIDHeader))
	if id == "" {
		return nil
	}
	return &id
}

func userFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userKey).(string)
	return id
}

func requireUserMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFromHeader(r)
			if user == nil {
				writeError(w, r, apierrs.E(http.StatusUnauthorized, "missing user-id header"), logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, *user)))
		})
	}
}
