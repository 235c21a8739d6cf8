package middleware

import (
	"net/http"
	"time"

	"cna/pkg/requestcontext"
)

// RequestTime captures "now" once at the start of the request so every
// time-dependent derivation within it (tenure banding, audit timestamps)
// reads the same instant.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
