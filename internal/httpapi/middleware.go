package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey int

const loggerContextKey contextKey = iota

// requestIDMiddleware assigns each request a uuid and attaches a logger
// carrying it as a structured field to the request context, matching the
// teacher's per-request structured-logging style.
func requestIDMiddleware(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			logger := base.With(zap.String("request_id", requestID))
			w.Header().Set("X-Request-Id", requestID)
			ctx := context.WithValue(r.Context(), loggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func loggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}
