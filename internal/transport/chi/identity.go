package chi

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/logger"
)

// Request headers read by the API.
const (
	HeaderUserID    = "X-User-Id"
	HeaderPexelsKey = "X-Pexels-Api-Key"
	HeaderTokens    = "X-Upstream-Tokens"
)

type userIDKey struct{}

// UserIDFromContext returns the caller id set by IdentityMiddleware, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// IdentityMiddleware stores the opaque X-User-Id header in the request context
// and tags the request logger with it. The id is not authenticated.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey{}, id)
		ctx = logger.With(ctx, zap.String("user_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests without a caller id.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == "" {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "Missing "+HeaderUserID)
			return
		}
		next.ServeHTTP(w, r)
	})
}
