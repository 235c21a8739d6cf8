package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	dErrors "cna/pkg/domain-errors"
	"cna/pkg/platform/audit"
	"cna/pkg/platform/httputil"
	"cna/pkg/requestcontext"
)

// Emitter is the audit publishing capability the middleware needs.
type Emitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RequireAdminToken guards mutating endpoints behind the shared admin token.
// The dashboard has a single operator role; there is no per-user session
// model. Rejections are audited as security events; publisher may be nil.
func RequireAdminToken(token string, logger *slog.Logger, publisher Emitter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-Admin-Token")
			if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				if logger != nil {
					logger.WarnContext(r.Context(), "admin token rejected",
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
					)
				}
				if publisher != nil {
					_ = publisher.Emit(r.Context(), audit.Event{
						Category:  audit.CategoryOf(audit.EventAdminTokenRejected),
						Timestamp: time.Now(),
						Action:    string(audit.EventAdminTokenRejected),
						RequestID: requestcontext.RequestID(r.Context()),
						Details:   map[string]string{"path": r.URL.Path},
					})
				}
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
