package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"

	"github.com/magadrive/pricing-core/internal/config"
	"github.com/magadrive/pricing-core/internal/http/response"
)

// CORS lets browser clients call the pricing routes. Callers may always send
// X-Request-Id, and may always read it back along with Retry-After on 429s.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(corsOptions(cfg))

	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}

func corsOptions(cfg *config.CORSConfig) cors.Options {
	allowedHeaders := slices.Clone(cfg.AllowedHeaders)
	if !slices.ContainsFunc(allowedHeaders, func(h string) bool {
		return http.CanonicalHeaderKey(h) == response.HeaderRequestID
	}) {
		allowedHeaders = append(allowedHeaders, response.HeaderRequestID)
	}

	return cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   []string{response.HeaderRequestID, headerRetryAfter},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
}
