package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/magadrive/pricing-core/internal/http/response"
	"github.com/magadrive/pricing-core/internal/observability"
)

// Recovery converts handler panics into an INTERNAL_ERROR envelope.
// The panic value is logged with a stack trace and never sent to the caller.
func Recovery() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				ctx := r.Context()
				observability.FromContext(ctx).Error("panic recovered",
					observability.String("panic", fmt.Sprint(rec)),
					observability.String("path", r.URL.Path),
					observability.Stack("stack"),
				)

				_ = response.Fail(w, observability.GetTraceID(ctx), http.StatusInternalServerError,
					response.CodeInternalError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
