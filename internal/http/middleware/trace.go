package middleware

import (
	"net/http"

	"github.com/magadrive/pricing-core/internal/http/response"
	"github.com/magadrive/pricing-core/internal/observability"
)

// Trace creates a middleware that resolves the request's trace id from the
// X-Request-Id header (or generates one), stores it in the context and
// echoes it back as a response header.
func Trace() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := observability.ResolveTraceID(r.Header.Get(response.HeaderRequestID))
			ctx := observability.WithTraceID(r.Context(), traceID)

			w.Header().Set(response.HeaderRequestID, traceID)

			contextLogger := observability.FromContext(ctx)
			contextLogger.Info("request started",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.String("remote_addr", r.RemoteAddr),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
